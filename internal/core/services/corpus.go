package services

import (
	"math"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/tokenizer"
)

// BuildCorpusStats computes inverse document frequencies over a full set
// of message bodies. For each distinct term, df is the number of bodies
// containing it at least once and idf = ln((N+1)/(df+1)) + 1, which is
// bounded below by 1 so rare-term weights dominate without unseen terms
// collapsing to zero.
//
// Cost is O(total tokens in the corpus); it runs once per indexing run,
// never per message. The bodies are read without isolation from writers
// elsewhere in the system, so the snapshot is eventually consistent with
// the stored corpus rather than transactional.
func BuildCorpusStats(bodies []string) *domain.CorpusStats {
	docFreq := make(map[string]int)

	for _, body := range bodies {
		seen := make(map[string]struct{})
		for _, token := range tokenizer.Tokenize(body) {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			docFreq[token]++
		}
	}

	n := float64(len(bodies))
	idf := make(map[string]float64, len(docFreq))
	for term, df := range docFreq {
		idf[term] = math.Log((n+1)/(float64(df)+1)) + 1
	}

	return domain.NewCorpusStats(len(bodies), idf)
}
