package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/murmur-chat/murmur-cli/internal/core/domain"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driven"
	"github.com/murmur-chat/murmur-cli/internal/core/ports/driving"
	"github.com/murmur-chat/murmur-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers semantic queries by scanning stored embeddings.
//
// There is deliberately no index structure: candidates stream from the
// store in fixed-size batches, so peak memory stays bounded by the batch
// size regardless of corpus size, at the cost of O(corpus) query time.
type SearchService struct {
	msgStore driven.MessageStore
	embedder driven.Embedder
	corpus   *CorpusCache

	readBatchSize int
}

// NewSearchService creates a new search service. The corpus cache is
// shared with the indexer, which publishes a fresh snapshot each run.
func NewSearchService(
	msgStore driven.MessageStore,
	embedder driven.Embedder,
	corpus *CorpusCache,
) *SearchService {
	return &SearchService{
		msgStore:      msgStore,
		embedder:      embedder,
		corpus:        corpus,
		readBatchSize: domain.ReadBatchSize,
	}
}

// SetReadBatchSize overrides the candidate fetch size. Values below 1
// are ignored. The batch size bounds memory, not correctness.
func (s *SearchService) SetReadBatchSize(size int) {
	if size > 0 {
		s.readBatchSize = size
	}
}

// Search finds messages similar in meaning to the query.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Semantic Search")
	logger.Debug("Query: %q", query)

	opts = opts.Normalize()
	logger.Debug("MaxResults: %d, Threshold: %.2f", opts.MaxResults, opts.Threshold)

	// Return empty for empty query
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	// Embed the query against the last corpus snapshot
	stats := s.corpus.Current()
	logger.Debug("Corpus snapshot: %d documents, %d terms", stats.DocumentCount, stats.TermCount())

	queryVec := s.embedder.Embed(query, stats)
	if isZeroVector(queryVec) {
		logger.Debug("Query has no indexable tokens, returning no results")
		return []domain.SearchResult{}, nil
	}

	// Stream candidates in batches and retain those above threshold
	retained, scanned, skipped, err := s.scan(ctx, queryVec, opts.Threshold)
	if err != nil {
		return nil, fmt.Errorf("scan candidates: %w", err)
	}
	logger.Debug("Scanned %d candidates, skipped %d without usable embeddings", scanned, skipped)

	sortResults(retained)

	if len(retained) > opts.MaxResults {
		retained = retained[:opts.MaxResults]
	}
	logger.Info("Final results: %d", len(retained))

	return retained, nil
}

// scan streams every stored candidate through cosine scoring. Candidates
// with missing or corrupt embeddings are counted and skipped, never fatal.
func (s *SearchService) scan(
	ctx context.Context, queryVec []float32, threshold float64,
) (retained []domain.SearchResult, scanned, skipped int, err error) {
	retained = []domain.SearchResult{}

	for offset := 0; ; offset += s.readBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, scanned, skipped, err
		}

		batch, err := s.msgStore.FetchCandidates(ctx, offset, s.readBatchSize)
		if err != nil {
			return nil, scanned, skipped, fmt.Errorf("fetch batch at %d: %w", offset, err)
		}

		for i := range batch {
			scanned++

			candidateVec, ok := domain.DecodeVector(batch[i].Embedding)
			if !ok {
				skipped++
				continue
			}

			similarity := domain.CosineSimilarity(queryVec, candidateVec)
			if similarity < threshold {
				continue
			}

			retained = append(retained, domain.SearchResult{
				MessageID:  batch[i].ID,
				ThreadID:   batch[i].ThreadID,
				Sender:     batch[i].Sender,
				Timestamp:  batch[i].Timestamp,
				Snippet:    batch[i].Snippet,
				Similarity: similarity,
			})
		}

		if len(batch) < s.readBatchSize {
			return retained, scanned, skipped, nil
		}
	}
}

// sortResults orders hits by descending similarity, breaking ties with
// newer timestamp first and then message ID so equal-scoring runs are
// fully deterministic.
func sortResults(results []domain.SearchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		if !results[i].Timestamp.Equal(results[j].Timestamp) {
			return results[i].Timestamp.After(results[j].Timestamp)
		}
		return results[i].MessageID < results[j].MessageID
	})
}

// isZeroVector reports whether every component is exactly zero.
func isZeroVector(v []float32) bool {
	for _, f := range v {
		if f != 0 {
			return false
		}
	}
	return true
}
