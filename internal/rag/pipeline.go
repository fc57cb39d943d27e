package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hartlaw-ai/lexrag/internal/cache"
	"github.com/hartlaw-ai/lexrag/internal/llm"
	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

const searchCacheTTL = 10 * time.Minute

// Pipeline is the question-answering path: retrieve jurisdiction-filtered
// precedents, format them with citations, and generate a grounded answer.
type Pipeline struct {
	store     *vectorstore.Store
	generator *Generator
	cache     *cache.Cache // nil disables caching
}

func NewPipeline(store *vectorstore.Store, gw llm.Gateway, c *cache.Cache) *Pipeline {
	return &Pipeline{
		store:     store,
		generator: NewGenerator(gw),
		cache:     c,
	}
}

func (p *Pipeline) Store() *vectorstore.Store { return p.store }

// RetrieveContext returns the ranked documents for a question, consulting
// the cache first.
func (p *Pipeline) RetrieveContext(ctx context.Context, query, jurisdiction string, limit int) vectorstore.SearchResponse {
	if limit <= 0 {
		limit = 5
	}

	key := cache.SearchKey(query, jurisdiction, limit)
	if p.cache != nil {
		var cached vectorstore.SearchResponse
		if err := p.cache.Get(ctx, key, &cached); err == nil {
			return cached
		}
	}

	resp := p.store.Search(ctx, query, jurisdiction, limit)

	// Degraded results are not cached; the next attempt may have the
	// embedding provider back.
	if p.cache != nil && !resp.Degraded {
		if err := p.cache.Set(ctx, key, resp, searchCacheTTL); err != nil {
			slog.Debug("search cache write failed", "error", err)
		}
	}
	return resp
}

// FormatContext renders retrieved documents as a numbered source list with
// full citations for the generation prompt.
func FormatContext(results []vectorstore.SearchResult) string {
	if len(results) == 0 {
		return "No relevant legal precedents found."
	}

	var sb strings.Builder
	for i, r := range results {
		m := r.Metadata
		fmt.Fprintf(&sb, "[%d] %s, %s (%s, %s)\n%s\n\n",
			i+1, m.CaseName, m.Citation, strings.ToUpper(m.Jurisdiction), m.DateFiled, r.Text)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// AskRequest is a complete question to answer.
type AskRequest struct {
	Question     string `json:"question"`
	Jurisdiction string `json:"jurisdiction,omitempty"` // federal, state, or all
	NumSources   int    `json:"num_sources,omitempty"`
	Model        string `json:"model,omitempty"`
	Provider     string `json:"provider,omitempty"`
}

// Answer is the grounded response plus the sources it cites.
type Answer struct {
	Question           string   `json:"question"`
	Answer             string   `json:"answer"`
	Sources            []Source `json:"sources"`
	JurisdictionFilter string   `json:"jurisdiction_filter"`
	NumSources         int      `json:"num_sources"`
	Degraded           bool     `json:"degraded"`
	Model              string   `json:"model,omitempty"`
}

// Source is a retrieved document formatted for display.
type Source struct {
	Number       int     `json:"number"`
	CaseName     string  `json:"case_name"`
	Citation     string  `json:"citation"`
	Jurisdiction string  `json:"jurisdiction"`
	Court        string  `json:"court"`
	DateFiled    string  `json:"date_filed"`
	Text         string  `json:"text"`
	Relevance    float64 `json:"relevance"`
	URL          string  `json:"url"`
}

// AnswerQuestion runs the full pipeline: retrieve, format, generate.
func (p *Pipeline) AnswerQuestion(ctx context.Context, req AskRequest) (*Answer, error) {
	resp := p.RetrieveContext(ctx, req.Question, req.Jurisdiction, req.NumSources)

	contextStr := FormatContext(resp.Results)
	genResp, err := p.generator.Generate(ctx, GenerateRequest{
		Question: req.Question,
		Context:  contextStr,
		Model:    req.Model,
		Provider: req.Provider,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	filter := req.Jurisdiction
	if filter == "" {
		filter = vectorstore.FilterAll
	}

	return &Answer{
		Question:           req.Question,
		Answer:             genResp.Content,
		Sources:            FormatSources(resp.Results),
		JurisdictionFilter: filter,
		NumSources:         len(resp.Results),
		Degraded:           resp.Degraded,
		Model:              genResp.Model,
	}, nil
}

// GenerateAnswer produces a grounded answer for already-retrieved documents.
// The agent uses it after its verification steps so retrieval is not rerun.
func (p *Pipeline) GenerateAnswer(ctx context.Context, question string, results []vectorstore.SearchResult, model, provider string) (*llm.ChatResponse, error) {
	return p.generator.Generate(ctx, GenerateRequest{
		Question: question,
		Context:  FormatContext(results),
		Model:    model,
		Provider: provider,
	})
}

// FormatSources prepares retrieved documents for display, with relevance
// derived from distance.
func FormatSources(results []vectorstore.SearchResult) []Source {
	sources := make([]Source, len(results))
	for i, r := range results {
		m := r.Metadata
		rel := 1 - r.Distance
		if rel < 0 {
			rel = 0
		}
		sources[i] = Source{
			Number:       i + 1,
			CaseName:     m.CaseName,
			Citation:     m.Citation,
			Jurisdiction: strings.ToUpper(m.Jurisdiction),
			Court:        m.Court,
			DateFiled:    m.DateFiled,
			Text:         truncate(r.Text, 500),
			Relevance:    rel,
			URL:          m.URL,
		}
	}
	return sources
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
