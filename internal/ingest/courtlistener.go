// Package ingest pulls legal documents from public sources (CourtListener,
// eCFR), normalizes them, and indexes them into the vector store.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

const courtListenerBaseURL = "https://www.courtlistener.com/api/rest/v3"

// CourtListenerClient fetches judicial opinions from the CourtListener
// search API.
type CourtListenerClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewCourtListenerClient(token string) *CourtListenerClient {
	return &CourtListenerClient{
		baseURL:    courtListenerBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type courtListenerResult struct {
	ID          json.Number `json:"id"`
	CaseName    string      `json:"caseName"`
	Citation    []string    `json:"citation"`
	Court       string      `json:"court"`
	DateFiled   string      `json:"dateFiled"`
	Snippet     string      `json:"snippet"`
	AbsoluteURL string      `json:"absolute_url"`
	Text        string      `json:"text"`
}

type courtListenerResponse struct {
	Results []courtListenerResult `json:"results"`
}

// SearchOpinions queries CourtListener for opinions matching the query,
// optionally restricted to a court code (e.g. "scotus", "ca9").
func (c *CourtListenerClient) SearchOpinions(ctx context.Context, query, court string, maxResults int) ([]vectorstore.Document, error) {
	if maxResults <= 0 {
		maxResults = 20
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "o")
	params.Set("order_by", "score desc")
	if court != "" {
		params.Set("court", court)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build courtlistener request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("courtlistener request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("courtlistener returned status %d", resp.StatusCode)
	}

	var parsed courtListenerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode courtlistener response: %w", err)
	}

	docs := make([]vectorstore.Document, 0, maxResults)
	for i, item := range parsed.Results {
		if i >= maxResults {
			break
		}
		docs = append(docs, parseOpinion(item))
	}
	return docs, nil
}

func parseOpinion(item courtListenerResult) vectorstore.Document {
	citation := "N/A"
	if len(item.Citation) > 0 && item.Citation[0] != "" {
		citation = item.Citation[0]
	}

	text := item.Text
	if text == "" {
		text = item.Snippet
	}

	return vectorstore.Document{
		ID:   item.ID.String(),
		Text: text,
		Metadata: vectorstore.Metadata{
			CaseName:     item.CaseName,
			Citation:     citation,
			Court:        item.Court,
			Jurisdiction: courtJurisdiction(item.Court),
			DateFiled:    item.DateFiled,
			URL:          item.AbsoluteURL,
			DocumentType: "case_law",
		}.WithDefaults(),
	}
}

var federalCourtCodes = []string{
	"scotus", "ca1", "ca2", "ca3", "ca4", "ca5", "ca6",
	"ca7", "ca8", "ca9", "ca10", "ca11", "cadc", "cafc",
}

// courtJurisdiction maps a CourtListener court code to a jurisdiction.
// Anything not recognizably federal is treated as state.
func courtJurisdiction(court string) string {
	lower := strings.ToLower(court)
	for _, code := range federalCourtCodes {
		if strings.Contains(lower, code) {
			return vectorstore.JurisdictionFederal
		}
	}
	return vectorstore.JurisdictionState
}

// DefaultTopics are the legal areas used when assembling a sample corpus.
var DefaultTopics = []string{
	"contract dispute",
	"employment law",
	"intellectual property",
	"constitutional rights",
	"criminal procedure",
}

// FetchCorpus pulls documents across several topics. Topics that fail to
// fetch are skipped; a corpus partially assembled is still useful.
func (c *CourtListenerClient) FetchCorpus(ctx context.Context, topics []string, docsPerTopic int) ([]vectorstore.Document, error) {
	if len(topics) == 0 {
		topics = DefaultTopics
	}
	if docsPerTopic <= 0 {
		docsPerTopic = 10
	}

	var all []vectorstore.Document
	var lastErr error
	for _, topic := range topics {
		docs, err := c.SearchOpinions(ctx, topic, "", docsPerTopic)
		if err != nil {
			lastErr = err
			continue
		}
		all = append(all, docs...)
	}

	if len(all) == 0 && lastErr != nil {
		return nil, fmt.Errorf("fetch corpus: %w", lastErr)
	}
	return all, nil
}
