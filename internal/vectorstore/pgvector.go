package vectorstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PgIndex implements Index on Postgres with the pgvector extension.
// Documents live in a single table keyed by (collection, doc_id); the tsv
// column backs the keyword query path.
type PgIndex struct {
	db *pgxpool.Pool
}

func NewPgIndex(db *pgxpool.Pool) *PgIndex {
	return &PgIndex{db: db}
}

// Schema is applied at startup. The vector dimension matches mistral-embed;
// mixing dimensions from different providers in one collection is rejected
// by pgvector at insert time.
const Schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS legal_documents (
	collection    TEXT NOT NULL,
	doc_id        TEXT NOT NULL,
	content       TEXT NOT NULL,
	case_name     TEXT NOT NULL DEFAULT 'Unknown Case',
	citation      TEXT NOT NULL DEFAULT 'N/A',
	court         TEXT NOT NULL DEFAULT 'unknown',
	jurisdiction  TEXT NOT NULL DEFAULT 'unknown',
	date_filed    TEXT NOT NULL DEFAULT '',
	document_type TEXT NOT NULL DEFAULT 'case_law',
	url           TEXT NOT NULL DEFAULT '',
	embedding     vector(1024),
	tsv           tsvector GENERATED ALWAYS AS (to_tsvector('english', content)) STORED,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, doc_id)
);

CREATE INDEX IF NOT EXISTS legal_documents_jurisdiction_idx ON legal_documents (collection, jurisdiction);
CREATE INDEX IF NOT EXISTS legal_documents_tsv_idx ON legal_documents USING GIN (tsv);
`

func (ix *PgIndex) Migrate(ctx context.Context) error {
	if _, err := ix.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply vector store schema: %w", err)
	}
	return nil
}

func (ix *PgIndex) Upsert(ctx context.Context, collection string, records []Record) error {
	tx, err := ix.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		m := rec.Metadata.WithDefaults()
		_, err := tx.Exec(ctx,
			`INSERT INTO legal_documents
			   (collection, doc_id, content, case_name, citation, court, jurisdiction, date_filed, document_type, url, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (collection, doc_id) DO UPDATE SET
			   content = $3, case_name = $4, citation = $5, court = $6,
			   jurisdiction = $7, date_filed = $8, document_type = $9,
			   url = $10, embedding = $11`,
			collection, rec.ID, rec.Text,
			m.CaseName, m.Citation, m.Court, m.Jurisdiction,
			m.DateFiled, m.DocumentType, m.URL,
			pgvector.NewVector(rec.Embedding),
		)
		if err != nil {
			return fmt.Errorf("upsert document %s: %w", rec.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (ix *PgIndex) Query(ctx context.Context, collection string, vector []float32, jurisdiction string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	embedding := pgvector.NewVector(vector)

	query := `SELECT doc_id, content, case_name, citation, court, jurisdiction, date_filed, document_type, url,
	                 embedding <=> $2 AS distance
	          FROM legal_documents
	          WHERE collection = $1 AND embedding IS NOT NULL`
	args := []any{collection, embedding}

	if jurisdiction != "" {
		query += ` AND jurisdiction = $3`
		args = append(args, jurisdiction)
	}
	query += fmt.Sprintf(` ORDER BY embedding <=> $2 LIMIT %d`, limit)

	rows, err := ix.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func (ix *PgIndex) QueryText(ctx context.Context, collection, queryText, jurisdiction string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	// Keyword ranking maps into the distance scale as 1 - rank so degraded
	// results stay comparable: lower is still better, clamped to [0, 1].
	query := `SELECT doc_id, content, case_name, citation, court, jurisdiction, date_filed, document_type, url,
	                 1 - LEAST(ts_rank(tsv, plainto_tsquery('english', $2)), 1) AS distance
	          FROM legal_documents
	          WHERE collection = $1 AND tsv @@ plainto_tsquery('english', $2)`
	args := []any{collection, queryText}

	if jurisdiction != "" {
		query += ` AND jurisdiction = $3`
		args = append(args, jurisdiction)
	}
	query += fmt.Sprintf(` ORDER BY ts_rank(tsv, plainto_tsquery('english', $2)) DESC LIMIT %d`, limit)

	rows, err := ix.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func (ix *PgIndex) Count(ctx context.Context, collection string) (int, error) {
	var count int
	err := ix.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM legal_documents WHERE collection = $1`, collection,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

func (ix *PgIndex) CountByJurisdiction(ctx context.Context, collection string) (map[string]int, error) {
	rows, err := ix.db.Query(ctx,
		`SELECT jurisdiction, COUNT(*) FROM legal_documents WHERE collection = $1 GROUP BY jurisdiction`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("count by jurisdiction: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var jur string
		var n int
		if err := rows.Scan(&jur, &n); err != nil {
			return nil, fmt.Errorf("scan jurisdiction count: %w", err)
		}
		counts[jur] = n
	}
	return counts, rows.Err()
}

func (ix *PgIndex) Reset(ctx context.Context, collection string) error {
	if _, err := ix.db.Exec(ctx,
		`DELETE FROM legal_documents WHERE collection = $1`, collection,
	); err != nil {
		return fmt.Errorf("reset collection %s: %w", collection, err)
	}
	return nil
}

type pgRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanResults(rows pgRows) ([]SearchResult, error) {
	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(
			&r.ID, &r.Text,
			&r.Metadata.CaseName, &r.Metadata.Citation, &r.Metadata.Court,
			&r.Metadata.Jurisdiction, &r.Metadata.DateFiled, &r.Metadata.DocumentType,
			&r.Metadata.URL, &r.Distance,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
