package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/hartlaw-ai/lexrag/internal/config"
	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
	"github.com/hartlaw-ai/lexrag/pkg/chunker"
	"github.com/hartlaw-ai/lexrag/pkg/textextract"
)

// Service assembles corpora from the configured sources and indexes them.
type Service struct {
	store         *vectorstore.Store
	courtListener *CourtListenerClient
	ecfr          *ECFRClient
	batchSize     int
}

func NewService(store *vectorstore.Store, cfg config.IngestConfig) *Service {
	return &Service{
		store:         store,
		courtListener: NewCourtListenerClient(cfg.CourtListenerToken),
		ecfr:          NewECFRClient(),
		batchSize:     cfg.BatchSize,
	}
}

// Report is the outcome of one ingestion run.
type Report struct {
	Fetched int                   `json:"fetched"`
	Add     vectorstore.AddReport `json:"add"`
}

// LoadSamples indexes the built-in case law and regulation corpus.
func (s *Service) LoadSamples(ctx context.Context) Report {
	docs := append(SampleCaseLaw(), SampleRegulations()...)
	report := Report{Fetched: len(docs)}
	report.Add = s.store.Add(ctx, docs, s.batchSize)
	return report
}

// FetchAndIndexOpinions pulls opinions from CourtListener and indexes them.
func (s *Service) FetchAndIndexOpinions(ctx context.Context, topics []string, docsPerTopic int) (Report, error) {
	docs, err := s.courtListener.FetchCorpus(ctx, topics, docsPerTopic)
	if err != nil {
		return Report{}, fmt.Errorf("fetch opinions: %w", err)
	}
	slog.Info("opinions fetched", "count", len(docs), "topics", len(topics))

	report := Report{Fetched: len(docs)}
	report.Add = s.store.Add(ctx, docs, s.batchSize)
	return report, nil
}

// FetchAndIndexRegulations pulls CFR sections matching a query and indexes
// them. A zero title searches all CFR titles.
func (s *Service) FetchAndIndexRegulations(ctx context.Context, query string, title, maxResults int) (Report, error) {
	docs, err := s.ecfr.SearchCFR(ctx, query, title, maxResults)
	if err != nil {
		return Report{}, fmt.Errorf("fetch regulations: %w", err)
	}
	slog.Info("regulations fetched", "count", len(docs), "query", query)

	report := Report{Fetched: len(docs)}
	report.Add = s.store.Add(ctx, docs, s.batchSize)
	return report, nil
}

// IndexFiling extracts an uploaded opinion (PDF or plain text), chunks long
// text into passages, and indexes each passage under a shared document ID.
func (s *Service) IndexFiling(ctx context.Context, r io.Reader, fileType string, meta vectorstore.Metadata) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("read filing: %w", err)
	}

	opinion, err := textextract.Extract(bytes.NewReader(data), int64(len(data)), fileType)
	if err != nil {
		return Report{}, fmt.Errorf("extract filing: %w", err)
	}
	if opinion.Text == "" {
		return Report{}, fmt.Errorf("filing contains no extractable text")
	}

	passages := chunker.Split(opinion.Text, chunker.DefaultOptions())
	baseID := uuid.NewString()

	docs := make([]vectorstore.Document, len(passages))
	for i, p := range passages {
		docs[i] = vectorstore.Document{
			ID:       fmt.Sprintf("%s_%d", baseID, p.Index),
			Text:     p.Content,
			Metadata: meta.WithDefaults(),
		}
	}

	slog.Info("filing extracted", "pages", opinion.Pages, "passages", len(passages))
	report := Report{Fetched: len(docs)}
	report.Add = s.store.Add(ctx, docs, s.batchSize)
	return report, nil
}

// SaveJSONL writes documents one JSON object per line.
func SaveJSONL(path string, docs []vectorstore.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
	}
	return w.Flush()
}

// LoadJSONL reads a corpus saved by SaveJSONL.
func LoadJSONL(path string) ([]vectorstore.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	var docs []vectorstore.Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var doc vectorstore.Document
		if err := json.Unmarshal(line, &doc); err != nil {
			return nil, fmt.Errorf("parse corpus line: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	return docs, nil
}
