package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hartlaw-ai/lexrag/internal/eval"
	"github.com/hartlaw-ai/lexrag/internal/rag"
)

// EvalHandler scores generated answers with the AI judge.
type EvalHandler struct {
	judge *eval.Judge
}

func NewEvalHandler(j *eval.Judge) *EvalHandler {
	return &EvalHandler{judge: j}
}

type evaluateRequest struct {
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Sources  []rag.Source `json:"sources,omitempty"`
}

// Evaluate judges one answer.
func (h *EvalHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" || req.Answer == "" {
		writeErr(w, http.StatusBadRequest, "question and answer required")
		return
	}

	evaluation, err := h.judge.Evaluate(r.Context(), req.Question, req.Answer, req.Sources)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, evaluation)
}

type batchEvaluateRequest struct {
	Samples []eval.Sample `json:"samples"`
}

// BatchEvaluate judges multiple answers and returns the aggregate picture.
func (h *EvalHandler) BatchEvaluate(w http.ResponseWriter, r *http.Request) {
	var req batchEvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Samples) == 0 {
		writeErr(w, http.StatusBadRequest, "samples required")
		return
	}

	evaluations, errored := h.judge.BatchEvaluate(r.Context(), req.Samples)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"evaluations": evaluations,
		"aggregate":   eval.AggregateEvaluations(evaluations),
		"errors":      errored,
	})
}
