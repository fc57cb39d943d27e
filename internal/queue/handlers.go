package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/hartlaw-ai/lexrag/internal/ingest"
)

// IngestWorker processes corpus ingestion tasks.
type IngestWorker struct {
	ingestSvc *ingest.Service
}

func NewIngestWorker(svc *ingest.Service) *IngestWorker {
	return &IngestWorker{ingestSvc: svc}
}

// Mux registers the worker's handlers on a new asynq mux.
func (w *IngestWorker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCorpusFetch, w.handleCorpusFetch)
	mux.HandleFunc(TypeRegulationFetch, w.handleRegulationFetch)
	mux.HandleFunc(TypeSampleCorpusLoad, w.handleSampleLoad)
	return mux
}

func (w *IngestWorker) handleCorpusFetch(ctx context.Context, t *asynq.Task) error {
	var payload CorpusFetchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal corpus fetch payload: %w", err)
	}

	report, err := w.ingestSvc.FetchAndIndexOpinions(ctx, payload.Topics, payload.DocsPerTopic)
	if err != nil {
		return fmt.Errorf("corpus fetch: %w", err)
	}

	slog.Info("corpus fetch complete",
		"fetched", report.Fetched,
		"added", report.Add.Added,
		"failed_batches", len(report.Add.Failed),
	)
	return nil
}

func (w *IngestWorker) handleRegulationFetch(ctx context.Context, t *asynq.Task) error {
	var payload RegulationFetchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal regulation fetch payload: %w", err)
	}

	report, err := w.ingestSvc.FetchAndIndexRegulations(ctx, payload.Query, payload.Title, payload.MaxResults)
	if err != nil {
		return fmt.Errorf("regulation fetch: %w", err)
	}

	slog.Info("regulation fetch complete",
		"fetched", report.Fetched,
		"added", report.Add.Added,
	)
	return nil
}

func (w *IngestWorker) handleSampleLoad(ctx context.Context, _ *asynq.Task) error {
	report := w.ingestSvc.LoadSamples(ctx)
	if report.Add.Added == 0 && report.Fetched > 0 {
		return fmt.Errorf("sample corpus load: no documents persisted")
	}
	slog.Info("sample corpus loaded", "added", report.Add.Added)
	return nil
}
