// Package feedback stores user ratings of generated answers and computes
// quality statistics from them.
package feedback

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const Schema = `
CREATE TABLE IF NOT EXISTS answer_feedback (
	id UUID PRIMARY KEY,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	jurisdiction TEXT NOT NULL DEFAULT 'all',
	comment TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_answer_feedback_rating ON answer_feedback (rating);
CREATE INDEX IF NOT EXISTS idx_answer_feedback_jurisdiction ON answer_feedback (jurisdiction);
`

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// Migrate creates the feedback table.
func (s *Service) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate feedback schema: %w", err)
	}
	return nil
}

// Entry is one user rating of a generated answer.
type Entry struct {
	ID           uuid.UUID `json:"id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	Rating       int       `json:"rating"`
	Jurisdiction string    `json:"jurisdiction"`
	Comment      string    `json:"comment,omitempty"`
	Model        string    `json:"model,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Submit validates and stores a rating. Ratings are 1-5.
func (s *Service) Submit(ctx context.Context, entry Entry) (*Entry, error) {
	if entry.Rating < 1 || entry.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", entry.Rating)
	}
	if entry.Question == "" {
		return nil, fmt.Errorf("question is required")
	}
	if entry.Jurisdiction == "" {
		entry.Jurisdiction = "all"
	}
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(ctx,
		`INSERT INTO answer_feedback (id, question, answer, rating, jurisdiction, comment, model, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.Question, entry.Answer, entry.Rating, entry.Jurisdiction,
		entry.Comment, entry.Model, entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	return &entry, nil
}

// Stats summarizes all stored feedback.
type Stats struct {
	TotalFeedback      int                `json:"total_feedback"`
	AverageRating      float64            `json:"average_rating"`
	MedianRating       float64            `json:"median_rating"`
	RatingDistribution map[int]int        `json:"rating_distribution"`
	ByJurisdiction     map[string]float64 `json:"avg_rating_by_jurisdiction"`
}

// Stats computes the aggregate picture: average, median, distribution and
// per-jurisdiction averages.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		RatingDistribution: make(map[int]int),
		ByJurisdiction:     make(map[string]float64),
	}

	rows, err := s.db.Query(ctx,
		`SELECT rating, COUNT(*) FROM answer_feedback GROUP BY rating`)
	if err != nil {
		return nil, fmt.Errorf("query rating distribution: %w", err)
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("scan rating distribution: %w", err)
		}
		stats.RatingDistribution[rating] = count
		stats.TotalFeedback += count
		for i := 0; i < count; i++ {
			ratings = append(ratings, rating)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rating distribution: %w", err)
	}

	if stats.TotalFeedback > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		stats.AverageRating = float64(sum) / float64(stats.TotalFeedback)
		stats.MedianRating = median(ratings)
	}

	jurRows, err := s.db.Query(ctx,
		`SELECT jurisdiction, AVG(rating)::float8 FROM answer_feedback GROUP BY jurisdiction`)
	if err != nil {
		return nil, fmt.Errorf("query jurisdiction averages: %w", err)
	}
	defer jurRows.Close()

	for jurRows.Next() {
		var jurisdiction string
		var avg float64
		if err := jurRows.Scan(&jurisdiction, &avg); err != nil {
			return nil, fmt.Errorf("scan jurisdiction average: %w", err)
		}
		stats.ByJurisdiction[jurisdiction] = avg
	}
	if err := jurRows.Err(); err != nil {
		return nil, fmt.Errorf("read jurisdiction averages: %w", err)
	}

	return stats, nil
}

// LowRated returns entries rated at or below the threshold, newest first.
// These surface the questions the system answers worst.
func (s *Service) LowRated(ctx context.Context, threshold, limit int) ([]Entry, error) {
	if threshold <= 0 {
		threshold = 2
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, question, answer, rating, jurisdiction, comment, model, created_at
		 FROM answer_feedback WHERE rating <= $1
		 ORDER BY created_at DESC LIMIT $2`,
		threshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query low-rated feedback: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &e.Rating, &e.Jurisdiction,
			&e.Comment, &e.Model, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func median(values []int) float64 {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}
