package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hartlaw-ai/lexrag/internal/feedback"
)

type FeedbackHandler struct {
	svc *feedback.Service
}

func NewFeedbackHandler(svc *feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// Submit records a user rating of an answer.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var entry feedback.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.svc.Submit(r.Context(), entry)
	if err != nil {
		if entry.Rating < 1 || entry.Rating > 5 || entry.Question == "" {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// Stats reports rating averages and distributions.
func (h *FeedbackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// LowRated lists the worst-rated answers for review.
func (h *FeedbackHandler) LowRated(w http.ResponseWriter, r *http.Request) {
	threshold := queryInt(r, "threshold", 2)
	limit := queryInt(r, "limit", 20)

	entries, err := h.svc.LowRated(r.Context(), threshold, limit)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
