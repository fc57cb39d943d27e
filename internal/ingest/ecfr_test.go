package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

const ecfrFixture = `{
	"results": [
		{
			"title_number": 29,
			"section_number": "1630.2",
			"section_title": "Definitions",
			"effective_date": "2023-01-01",
			"full_text": "The term disability means...",
			"snippet": "disability means",
			"html_url": "https://www.ecfr.gov/current/title-29/section-1630.2"
		},
		{
			"section_number": "",
			"section_title": "",
			"full_text": ""
		}
	]
}`

func newECFRServer(t *testing.T, handler http.HandlerFunc) *ECFRClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewECFRClient()
	c.baseURL = srv.URL
	return c
}

func TestSearchCFR(t *testing.T) {
	var gotQuery, gotTitle, gotPerPage string
	client := newECFRServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotTitle = r.URL.Query().Get("title")
		gotPerPage = r.URL.Query().Get("per_page")
		w.Write([]byte(ecfrFixture))
	})

	docs, err := client.SearchCFR(context.Background(), "disability accommodation", 29, 20)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "disability accommodation", gotQuery)
	assert.Equal(t, "29", gotTitle)
	assert.Equal(t, "20", gotPerPage)

	assert.Equal(t, "ecfr_29_1630.2", docs[0].ID)
	assert.Equal(t, "Definitions", docs[0].Metadata.CaseName)
	assert.Equal(t, "29 CFR 1630.2", docs[0].Metadata.Citation)
	assert.Equal(t, vectorstore.JurisdictionFederal, docs[0].Metadata.Jurisdiction)
	assert.Equal(t, "regulation", docs[0].Metadata.DocumentType)
	assert.Equal(t, "The term disability means...", docs[0].Text)

	// A section with no identifiers keeps the citation sentinel
	assert.Equal(t, "N/A", docs[1].Metadata.Citation)
	assert.Equal(t, "Unknown CFR Section", docs[1].Metadata.CaseName)
}

func TestSearchCFRClampsPageSize(t *testing.T) {
	var gotPerPage string
	client := newECFRServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("per_page")
		w.Write([]byte(`{"results": []}`))
	})

	docs, err := client.SearchCFR(context.Background(), "q", 0, 500)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Equal(t, "100", gotPerPage)
}

func TestSearchCFRServerError(t *testing.T) {
	client := newECFRServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.SearchCFR(context.Background(), "q", 0, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
