package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

func TestRecallAtK(t *testing.T) {
	ranked := []string{"a", "b", "c", "d"}
	relevant := map[string]bool{"a": true, "c": true, "x": true, "y": true}

	assert.InDelta(t, 0.25, RecallAtK(ranked, relevant, 1), 1e-9)
	assert.InDelta(t, 0.5, RecallAtK(ranked, relevant, 4), 1e-9)
	assert.Zero(t, RecallAtK(ranked, relevant, 0))
	assert.Zero(t, RecallAtK(ranked, map[string]bool{}, 5))
	assert.Zero(t, RecallAtK(nil, relevant, 5))
}

func TestPrecisionAtK(t *testing.T) {
	ranked := []string{"a", "b", "c", "d"}
	relevant := map[string]bool{"a": true, "c": true}

	assert.InDelta(t, 1.0, PrecisionAtK(ranked, relevant, 1), 1e-9)
	assert.InDelta(t, 0.5, PrecisionAtK(ranked, relevant, 2), 1e-9)
	assert.InDelta(t, 0.5, PrecisionAtK(ranked, relevant, 4), 1e-9)
	assert.Zero(t, PrecisionAtK(ranked, relevant, 0))

	// k beyond the ranking still divides by k
	assert.InDelta(t, 0.2, PrecisionAtK([]string{"a"}, relevant, 5), 1e-9)
}

func TestMeanReciprocalRank(t *testing.T) {
	relevant := map[string]bool{"c": true}

	// First relevant id at rank 2
	assert.InDelta(t, 0.5, MeanReciprocalRank([]string{"a", "c", "b"}, relevant), 1e-9)
	assert.InDelta(t, 1.0, MeanReciprocalRank([]string{"c", "a"}, relevant), 1e-9)
	assert.InDelta(t, 1.0/3.0, MeanReciprocalRank([]string{"a", "b", "c"}, relevant), 1e-9)
	assert.Zero(t, MeanReciprocalRank([]string{"a", "b"}, relevant))
	assert.Zero(t, MeanReciprocalRank(nil, relevant))
}

func TestAveragePrecision(t *testing.T) {
	relevant := map[string]bool{"a": true, "c": true}

	// Hits at ranks 1 and 3: (1/1 + 2/3) / 2
	got := AveragePrecision([]string{"a", "b", "c"}, relevant)
	assert.InDelta(t, (1.0+2.0/3.0)/2.0, got, 1e-9)

	// Missing relevant documents drag the score down
	got = AveragePrecision([]string{"a", "b"}, map[string]bool{"a": true, "z": true})
	assert.InDelta(t, 0.5, got, 1e-9)

	assert.Zero(t, AveragePrecision([]string{"b", "d"}, relevant))
	assert.Zero(t, AveragePrecision([]string{"a"}, map[string]bool{}))
}

func TestNDCGAtK(t *testing.T) {
	scores := map[string]float64{"a": 3, "b": 2, "c": 1}

	// Ideal ordering scores exactly 1
	assert.InDelta(t, 1.0, NDCGAtK([]string{"a", "b", "c"}, scores, 3), 1e-9)

	// Any other ordering scores strictly less
	reversed := NDCGAtK([]string{"c", "b", "a"}, scores, 3)
	assert.Less(t, reversed, 1.0)
	assert.Greater(t, reversed, 0.0)

	assert.Zero(t, NDCGAtK([]string{"a"}, map[string]float64{}, 3))
	assert.Zero(t, NDCGAtK([]string{"a", "b"}, map[string]float64{"a": 0, "b": 0}, 2))
}

func TestNDCGAtKDeterministicOnTies(t *testing.T) {
	scores := map[string]float64{"x": 1, "y": 1, "z": 1}
	first := NDCGAtK([]string{"y", "x", "z"}, scores, 3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, NDCGAtK([]string{"y", "x", "z"}, scores, 3))
	}
	// All-equal scores make every ordering ideal
	assert.InDelta(t, 1.0, first, 1e-9)
}

func searchResults(dists ...float64) []vectorstore.SearchResult {
	out := make([]vectorstore.SearchResult, len(dists))
	for i, d := range dists {
		out[i] = vectorstore.SearchResult{ID: string(rune('a' + i)), Distance: d}
	}
	return out
}

func TestCalculateAllWithoutGroundTruth(t *testing.T) {
	report := CalculateAll(searchResults(0.1, 0.4, 0.9), nil, []int{1, 3})

	assert.Equal(t, 3.0, report["total_retrieved"])
	assert.InDelta(t, 0.1, report["min_distance"], 1e-9)
	assert.InDelta(t, 0.9, report["max_distance"], 1e-9)
	assert.InDelta(t, (0.9+0.6+0.1)/3, report["avg_relevance_score"], 1e-9)

	require.Contains(t, report, "ndcg@1")
	require.Contains(t, report, "ndcg@3")
	// Results are already in ascending distance order, so NDCG is ideal
	assert.InDelta(t, 1.0, report["ndcg@3"], 1e-9)

	assert.NotContains(t, report, "mrr")
	assert.NotContains(t, report, "recall@1")
	assert.NotContains(t, report, "precision@3")
}

func TestCalculateAllWithGroundTruth(t *testing.T) {
	relevant := map[string]bool{"b": true}
	report := CalculateAll(searchResults(0.1, 0.4, 0.9), relevant, []int{1, 3})

	assert.InDelta(t, 0.5, report["mrr"], 1e-9)
	assert.InDelta(t, 0.5, report["average_precision"], 1e-9)
	assert.Zero(t, report["recall@1"])
	assert.InDelta(t, 1.0, report["recall@3"], 1e-9)
	assert.InDelta(t, 1.0/3.0, report["precision@3"], 1e-9)
}

func TestCalculateAllEmptyResults(t *testing.T) {
	report := CalculateAll(nil, nil, nil)

	assert.Zero(t, report["total_retrieved"])
	assert.Zero(t, report["avg_relevance_score"])
	// Default k grid is applied
	assert.Contains(t, report, "ndcg@5")
	assert.Zero(t, report["ndcg@5"])
}

func TestCalculateAllClampsRelevance(t *testing.T) {
	// Cosine distance can exceed 1; relevance must stay in [0, 1]
	report := CalculateAll(searchResults(1.7), nil, []int{1})
	assert.Zero(t, report["avg_relevance_score"])
}
