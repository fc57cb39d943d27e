package vectorstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hartlaw-ai/lexrag/internal/embedding"
)

const defaultBatchSize = 10

// Store wires the embedding service to the document index. It favors
// availability over strictness: a failed batch does not abort an Add, and a
// failed query embedding downgrades Search to keyword matching instead of
// erroring.
type Store struct {
	index      Index
	embed      *embedding.Service
	collection string
}

func NewStore(index Index, embedSvc *embedding.Service, collection string) *Store {
	if collection == "" {
		collection = "legal_documents"
	}
	return &Store{index: index, embed: embedSvc, collection: collection}
}

func (s *Store) Collection() string { return s.collection }

// Add embeds and persists documents in batches of at most batchSize. A batch
// that fails to embed or insert is skipped, the remaining batches are still
// attempted, and the report states persisted-versus-requested counts.
func (s *Store) Add(ctx context.Context, docs []Document, batchSize int) AddReport {
	report := AddReport{Requested: len(docs)}
	if len(docs) == 0 {
		return report
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		if err := s.addBatch(ctx, batch, start); err != nil {
			slog.Error("document batch failed",
				"collection", s.collection,
				"start", start,
				"end", end,
				"error", err,
			)
			report.Failed = append(report.Failed, BatchError{
				Start:  start,
				End:    end,
				Reason: err.Error(),
			})
			continue
		}
		report.Added += len(batch)
	}

	slog.Info("documents added",
		"collection", s.collection,
		"requested", report.Requested,
		"added", report.Added,
	)
	return report
}

func (s *Store) addBatch(ctx context.Context, batch []Document, offset int) error {
	texts := make([]string, len(batch))
	for i, doc := range batch {
		texts[i] = doc.Text
	}

	vectors, err := s.embed.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed batch: %w", err)
	}

	records := make([]Record, len(batch))
	for i, doc := range batch {
		id := doc.ID
		if id == "" {
			id = fmt.Sprintf("doc_%d", offset+i)
		}
		records[i] = Record{
			ID:        id,
			Text:      doc.Text,
			Metadata:  doc.Metadata.WithDefaults(),
			Embedding: vectors[i],
		}
	}

	if err := s.index.Upsert(ctx, s.collection, records); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// SearchResponse marks degraded results so callers can tell keyword-matched
// answers from vector-ranked ones.
type SearchResponse struct {
	Results  []SearchResult `json:"results"`
	Degraded bool           `json:"degraded"`
}

// Search embeds the query and runs a nearest-neighbor search, optionally
// restricted to one jurisdiction. If embedding fails entirely it degrades to
// keyword search over the same filtered set; if that also fails the response
// is empty. Search never returns an error: interactive callers always get a
// deterministic "no results" path.
func (s *Store) Search(ctx context.Context, query, jurisdiction string, limit int) SearchResponse {
	filter := normalizeFilter(jurisdiction)

	vector, err := s.embed.EmbedSingle(ctx, query)
	if err != nil {
		slog.Warn("query embedding failed, degrading to keyword search",
			"collection", s.collection,
			"error", err,
		)
		return s.searchText(ctx, query, filter, limit)
	}

	results, err := s.index.Query(ctx, s.collection, vector, filter, limit)
	if err != nil {
		slog.Warn("vector search failed, degrading to keyword search",
			"collection", s.collection,
			"error", err,
		)
		return s.searchText(ctx, query, filter, limit)
	}
	return SearchResponse{Results: results}
}

func (s *Store) searchText(ctx context.Context, query, filter string, limit int) SearchResponse {
	results, err := s.index.QueryText(ctx, s.collection, query, filter, limit)
	if err != nil {
		slog.Error("keyword search failed, returning empty result",
			"collection", s.collection,
			"error", err,
		)
		return SearchResponse{Results: []SearchResult{}, Degraded: true}
	}
	return SearchResponse{Results: results, Degraded: true}
}

// Stats is computed from the live index state, never cached.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	total, err := s.index.Count(ctx, s.collection)
	if err != nil {
		return Stats{}, err
	}
	byJur, err := s.index.CountByJurisdiction(ctx, s.collection)
	if err != nil {
		return Stats{}, err
	}
	return Stats{TotalDocuments: total, ByJurisdiction: byJur}, nil
}

// Reset empties the collection. Callers must not run it concurrently with
// in-flight Add or Search calls.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.index.Reset(ctx, s.collection); err != nil {
		return err
	}
	slog.Info("collection reset", "collection", s.collection)
	return nil
}

func normalizeFilter(jurisdiction string) string {
	if jurisdiction == "" || jurisdiction == FilterAll {
		return ""
	}
	return NormalizeJurisdiction(jurisdiction)
}
