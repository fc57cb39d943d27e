package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hartlaw-ai/lexrag/internal/agent"
	"github.com/hartlaw-ai/lexrag/internal/metrics"
	"github.com/hartlaw-ai/lexrag/internal/rag"
)

// ResearchHandler exposes question answering: the direct RAG path, raw
// search, and the multi-step agent.
type ResearchHandler struct {
	pipeline  *rag.Pipeline
	agent     *agent.Agent
	analytics *metrics.Analytics
}

func NewResearchHandler(p *rag.Pipeline, a *agent.Agent, an *metrics.Analytics) *ResearchHandler {
	return &ResearchHandler{pipeline: p, agent: a, analytics: an}
}

// Ask answers a question with retrieval-grounded generation.
func (h *ResearchHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req rag.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		writeErr(w, http.StatusBadRequest, "question required")
		return
	}

	answer, err := h.pipeline.AnswerQuestion(r.Context(), req)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

type searchRequest struct {
	Query        string   `json:"query"`
	Jurisdiction string   `json:"jurisdiction,omitempty"`
	Limit        int      `json:"limit,omitempty"`
	RelevantIDs  []string `json:"relevant_ids,omitempty"` // ground truth for metric scoring
}

// Search runs a jurisdiction-filtered retrieval and scores it. Every search
// is logged to analytics.
func (h *ResearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeErr(w, http.StatusBadRequest, "query required")
		return
	}
	if req.Limit <= 0 {
		req.Limit = 5
	}

	start := time.Now()
	resp := h.pipeline.Store().Search(r.Context(), req.Query, req.Jurisdiction, req.Limit)
	elapsed := time.Since(start)

	var relevant map[string]bool
	if len(req.RelevantIDs) > 0 {
		relevant = make(map[string]bool, len(req.RelevantIDs))
		for _, id := range req.RelevantIDs {
			relevant[id] = true
		}
	}
	report := metrics.CalculateAll(resp.Results, relevant, nil)

	h.analytics.Log(metrics.QueryRecord{
		Query:        req.Query,
		NumResults:   len(resp.Results),
		Jurisdiction: req.Jurisdiction,
		ResponseTime: elapsed,
		Metrics:      report,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results":  resp.Results,
		"count":    len(resp.Results),
		"degraded": resp.Degraded,
		"metrics":  report,
	})
}

type researchRequest struct {
	Question string `json:"question"`
}

// Research runs the multi-step agent workflow.
func (h *ResearchHandler) Research(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		writeErr(w, http.StatusBadRequest, "question required")
		return
	}

	result, err := h.agent.Research(r.Context(), req.Question)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Analytics reports query patterns and latency percentiles.
func (h *ResearchHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.analytics.Summarize())
}
