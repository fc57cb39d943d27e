package metrics

import (
	"sort"
	"sync"
	"time"
)

// QueryRecord is one logged retrieval with its quality scores.
type QueryRecord struct {
	Query        string        `json:"query"`
	NumResults   int           `json:"num_results"`
	Jurisdiction string        `json:"jurisdiction"`
	ResponseTime time.Duration `json:"response_time"`
	Metrics      Report        `json:"metrics"`
	Timestamp    time.Time     `json:"timestamp"`
}

// Summary aggregates query patterns and latency over the process lifetime.
type Summary struct {
	TotalQueries       int            `json:"total_queries"`
	AvgResponseTime    time.Duration  `json:"avg_response_time"`
	MedianResponseTime time.Duration  `json:"median_response_time"`
	P95ResponseTime    time.Duration  `json:"p95_response_time"`
	AvgResultsPerQuery float64        `json:"avg_results_per_query"`
	JurisdictionCounts map[string]int `json:"jurisdiction_distribution"`
}

// Analytics tracks queries in memory. Safe for concurrent use.
type Analytics struct {
	mu      sync.Mutex
	history []QueryRecord
}

func NewAnalytics() *Analytics {
	return &Analytics{}
}

func (a *Analytics) Log(rec QueryRecord) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	a.mu.Lock()
	a.history = append(a.history, rec)
	a.mu.Unlock()
}

func (a *Analytics) Summarize() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Summary{JurisdictionCounts: make(map[string]int)}
	if len(a.history) == 0 {
		return s
	}

	times := make([]time.Duration, len(a.history))
	var totalTime time.Duration
	var totalResults int
	for i, q := range a.history {
		times[i] = q.ResponseTime
		totalTime += q.ResponseTime
		totalResults += q.NumResults
		jur := q.Jurisdiction
		if jur == "" {
			jur = "all"
		}
		s.JurisdictionCounts[jur]++
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	s.TotalQueries = len(a.history)
	s.AvgResponseTime = totalTime / time.Duration(len(a.history))
	s.MedianResponseTime = times[len(times)/2]
	s.P95ResponseTime = times[percentileIndex(len(times), 95)]
	s.AvgResultsPerQuery = float64(totalResults) / float64(len(a.history))
	return s
}

func percentileIndex(n, pct int) int {
	idx := n*pct/100 - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return idx
}
