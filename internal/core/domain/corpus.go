package domain

// CorpusStats is an immutable snapshot of corpus-wide term statistics:
// the total document count and per-term inverse document frequencies.
//
// A snapshot is produced once per indexing run by scanning every message
// body, handed to embedding generation for that run, and cached for reuse
// by query-time embedding until the next run supersedes it. It is never
// persisted. Queries between runs therefore embed against statistics that
// may lag the stored corpus; that staleness window is a deliberate
// tradeoff, not something callers should compensate for by rebuilding
// per query.
type CorpusStats struct {
	// DocumentCount is the number of documents the snapshot was built from.
	DocumentCount int

	// idf maps each term seen in the corpus to its inverse document
	// frequency weight. Unexported so a published snapshot cannot be
	// mutated by consumers.
	idf map[string]float64
}

// NewCorpusStats creates a snapshot from a document count and idf map.
// The map is owned by the snapshot after the call.
func NewCorpusStats(documentCount int, idf map[string]float64) *CorpusStats {
	if idf == nil {
		idf = map[string]float64{}
	}
	return &CorpusStats{DocumentCount: documentCount, idf: idf}
}

// EmptyCorpusStats returns a snapshot over zero documents. Every term
// weighs DefaultIDF, so embedding degenerates to hashed term frequency.
func EmptyCorpusStats() *CorpusStats {
	return NewCorpusStats(0, nil)
}

// DefaultIDF is the weight for terms absent from the snapshot. The idf
// formula ln((N+1)/(df+1))+1 is bounded below by 1, so unseen terms
// default to the minimum observed weight rather than zero.
const DefaultIDF = 1.0

// IDF returns the inverse document frequency for a term, or DefaultIDF
// if the term was not seen when the snapshot was built.
func (s *CorpusStats) IDF(term string) float64 {
	if w, ok := s.idf[term]; ok {
		return w
	}
	return DefaultIDF
}

// TermCount returns the number of distinct terms in the snapshot.
func (s *CorpusStats) TermCount() int {
	return len(s.idf)
}
