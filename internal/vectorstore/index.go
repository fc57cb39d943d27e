package vectorstore

import "context"

// Index is the persistent similarity-search engine underneath the Store.
// Collections are independent namespaces created on first insert.
type Index interface {
	// Upsert inserts records, replacing any record with the same id in the
	// collection. Batches may be retried, so re-inserting must not error.
	Upsert(ctx context.Context, collection string, records []Record) error

	// Query returns up to limit records ordered by ascending distance from
	// the query vector. jurisdiction == "" means no filter.
	Query(ctx context.Context, collection string, vector []float32, jurisdiction string, limit int) ([]SearchResult, error)

	// QueryText is the keyword path used when no query vector is available.
	QueryText(ctx context.Context, collection, query, jurisdiction string, limit int) ([]SearchResult, error)

	Count(ctx context.Context, collection string) (int, error)
	CountByJurisdiction(ctx context.Context, collection string) (map[string]int, error)

	// Reset removes every record in the collection.
	Reset(ctx context.Context, collection string) error
}
