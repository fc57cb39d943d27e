package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/hartlaw-ai/lexrag/internal/ingest"
	"github.com/hartlaw-ai/lexrag/internal/queue"
	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

const maxUploadBytes = 32 << 20

// DocumentHandler manages the indexed corpus: direct adds, filing uploads,
// background fetches, stats and reset.
type DocumentHandler struct {
	store       *vectorstore.Store
	ingestSvc   *ingest.Service
	queueClient *queue.Client
}

func NewDocumentHandler(store *vectorstore.Store, svc *ingest.Service, qc *queue.Client) *DocumentHandler {
	return &DocumentHandler{store: store, ingestSvc: svc, queueClient: qc}
}

type addDocumentsRequest struct {
	Documents []vectorstore.Document `json:"documents"`
	BatchSize int                    `json:"batch_size,omitempty"`
}

// Add indexes documents posted in the request body. Partial failures are
// reported, not hidden: the response says how many actually persisted.
func (h *DocumentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Documents) == 0 {
		writeErr(w, http.StatusBadRequest, "documents required")
		return
	}

	report := h.store.Add(r.Context(), req.Documents, req.BatchSize)
	status := http.StatusOK
	if report.Added == 0 {
		status = http.StatusBadGateway
	} else if len(report.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, report)
}

// Upload ingests a PDF or text filing from a multipart form. Metadata fields
// come from the form alongside the file.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	meta := vectorstore.Metadata{
		CaseName:     r.FormValue("case_name"),
		Citation:     r.FormValue("citation"),
		Court:        r.FormValue("court"),
		Jurisdiction: r.FormValue("jurisdiction"),
		DateFiled:    r.FormValue("date_filed"),
		DocumentType: r.FormValue("document_type"),
	}

	report, err := h.ingestSvc.IndexFiling(r.Context(), file, filepath.Ext(header.Filename), meta)
	if err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type fetchCorpusRequest struct {
	Topics       []string `json:"topics,omitempty"`
	DocsPerTopic int      `json:"docs_per_topic,omitempty"`
}

// FetchCorpus queues a CourtListener fetch for background indexing.
func (h *DocumentHandler) FetchCorpus(w http.ResponseWriter, r *http.Request) {
	var req fetchCorpusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.queueClient.EnqueueCorpusFetch(queue.CorpusFetchPayload{
		Topics:       req.Topics,
		DocsPerTopic: req.DocsPerTopic,
	}); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

type fetchRegulationsRequest struct {
	Query      string `json:"query"`
	Title      int    `json:"title,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

// FetchRegulations queues an eCFR fetch for background indexing.
func (h *DocumentHandler) FetchRegulations(w http.ResponseWriter, r *http.Request) {
	var req fetchRegulationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeErr(w, http.StatusBadRequest, "query required")
		return
	}

	if err := h.queueClient.EnqueueRegulationFetch(queue.RegulationFetchPayload{
		Query:      req.Query,
		Title:      req.Title,
		MaxResults: req.MaxResults,
	}); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// LoadSamples indexes the built-in demonstration corpus synchronously.
func (h *DocumentHandler) LoadSamples(w http.ResponseWriter, r *http.Request) {
	report := h.ingestSvc.LoadSamples(r.Context())
	writeJSON(w, http.StatusOK, report)
}

// Stats reports live collection counts, total and per jurisdiction.
func (h *DocumentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Reset deletes every document in the collection.
func (h *DocumentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(r.Context()); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
