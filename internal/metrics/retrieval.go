// Package metrics implements the information-retrieval measures used to
// score retrieval quality: Recall@K, Precision@K, MRR, Average Precision and
// NDCG@K. All functions are pure and deterministic; degenerate inputs (empty
// relevant set, k=0, zero ideal DCG) yield zero, never an error.
package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

// RecallAtK is the fraction of the relevant set found in the top-k ranking.
func RecallAtK(rankedIDs []string, relevantIDs map[string]bool, k int) float64 {
	if len(relevantIDs) == 0 {
		return 0
	}
	found := 0
	for _, id := range topK(rankedIDs, k) {
		if relevantIDs[id] {
			found++
		}
	}
	return float64(found) / float64(len(relevantIDs))
}

// PrecisionAtK is the fraction of the top-k ranking that is relevant.
func PrecisionAtK(rankedIDs []string, relevantIDs map[string]bool, k int) float64 {
	if k == 0 {
		return 0
	}
	found := 0
	for _, id := range topK(rankedIDs, k) {
		if relevantIDs[id] {
			found++
		}
	}
	return float64(found) / float64(k)
}

// MeanReciprocalRank is the reciprocal of the 1-based rank of the first
// relevant id anywhere in the ranking, or 0 when none appears.
func MeanReciprocalRank(rankedIDs []string, relevantIDs map[string]bool) float64 {
	for i, id := range rankedIDs {
		if relevantIDs[id] {
			return 1.0 / float64(i+1)
		}
	}
	return 0
}

// AveragePrecision sums precision at each rank holding a relevant id and
// divides by the size of the relevant set, so missing relevant documents
// still count against the score.
func AveragePrecision(rankedIDs []string, relevantIDs map[string]bool) float64 {
	if len(relevantIDs) == 0 {
		return 0
	}
	var sum float64
	found := 0
	for i, id := range rankedIDs {
		if relevantIDs[id] {
			found++
			sum += float64(found) / float64(i+1)
		}
	}
	if found == 0 {
		return 0
	}
	return sum / float64(len(relevantIDs))
}

// NDCGAtK normalizes DCG@k against the ideal descending-relevance ordering.
// The result is in [0, 1] for non-negative scores; a zero ideal DCG yields 0.
func NDCGAtK(rankedIDs []string, relevanceScores map[string]float64, k int) float64 {
	if len(relevanceScores) == 0 {
		return 0
	}

	idealIDs := make([]string, 0, len(relevanceScores))
	for id := range relevanceScores {
		idealIDs = append(idealIDs, id)
	}
	sort.Slice(idealIDs, func(i, j int) bool {
		si, sj := relevanceScores[idealIDs[i]], relevanceScores[idealIDs[j]]
		if si != sj {
			return si > sj
		}
		return idealIDs[i] < idealIDs[j]
	})

	idealDCG := dcg(idealIDs, relevanceScores, k)
	if idealDCG == 0 {
		return 0
	}
	return dcg(rankedIDs, relevanceScores, k) / idealDCG
}

func dcg(ids []string, scores map[string]float64, k int) float64 {
	var sum float64
	for i, id := range topK(ids, k) {
		sum += scores[id] / math.Log2(float64(i)+2)
	}
	return sum
}

// Report maps metric names ("recall@5", "mrr", ...) to scores.
type Report map[string]float64

// CalculateAll scores one query's retrieval. When relevantIDs is nil the
// relevance per document is self-derived from 1-distance and only NDCG is
// reported; recall, precision and MRR need binary ground truth.
func CalculateAll(results []vectorstore.SearchResult, relevantIDs map[string]bool, kValues []int) Report {
	if len(kValues) == 0 {
		kValues = []int{1, 3, 5, 10}
	}

	rankedIDs := make([]string, len(results))
	relevanceScores := make(map[string]float64, len(results))
	minDist, maxDist := 1.0, 1.0
	var relevanceSum float64

	for i, r := range results {
		rankedIDs[i] = r.ID
		rel := clamp01(1 - r.Distance)
		relevanceScores[r.ID] = rel
		relevanceSum += rel
		if i == 0 || r.Distance < minDist {
			minDist = r.Distance
		}
		if i == 0 || r.Distance > maxDist {
			maxDist = r.Distance
		}
	}

	report := Report{
		"total_retrieved": float64(len(results)),
		"min_distance":    minDist,
		"max_distance":    maxDist,
	}
	if len(results) > 0 {
		report["avg_relevance_score"] = relevanceSum / float64(len(results))
	} else {
		report["avg_relevance_score"] = 0
	}

	for _, k := range kValues {
		report[fmt.Sprintf("ndcg@%d", k)] = NDCGAtK(rankedIDs, relevanceScores, k)
	}

	if len(relevantIDs) > 0 {
		report["mrr"] = MeanReciprocalRank(rankedIDs, relevantIDs)
		report["average_precision"] = AveragePrecision(rankedIDs, relevantIDs)
		for _, k := range kValues {
			report[fmt.Sprintf("recall@%d", k)] = RecallAtK(rankedIDs, relevantIDs, k)
			report[fmt.Sprintf("precision@%d", k)] = PrecisionAtK(rankedIDs, relevantIDs, k)
		}
	}

	return report
}

func topK(ids []string, k int) []string {
	if k < 0 {
		k = 0
	}
	if k > len(ids) {
		k = len(ids)
	}
	return ids[:k]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
