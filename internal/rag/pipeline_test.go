package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

func sampleResults() []vectorstore.SearchResult {
	return []vectorstore.SearchResult{
		{
			ID:       "r1",
			Text:     "The court held that employment contracts must be interpreted by plain meaning.",
			Distance: 0.2,
			Metadata: vectorstore.Metadata{
				CaseName:     "Smith v. Jones",
				Citation:     "123 F.3d 456 (9th Cir. 2020)",
				Court:        "ca9",
				Jurisdiction: "federal",
				DateFiled:    "2020-03-15",
				URL:          "https://example.com/r1",
			},
		},
		{
			ID:       "r2",
			Text:     "Tenant rights under state housing law require habitable premises.",
			Distance: 0.6,
			Metadata: vectorstore.Metadata{
				CaseName:     "Martinez v. Landlord Property Management",
				Citation:     "345 Cal. Rptr. 3d 678 (Cal. Ct. App. 2021)",
				Court:        "calctapp",
				Jurisdiction: "state",
				DateFiled:    "2021-07-14",
			},
		},
	}
}

func TestFormatContext(t *testing.T) {
	ctx := FormatContext(sampleResults())

	assert.Contains(t, ctx, "[1] Smith v. Jones, 123 F.3d 456 (9th Cir. 2020) (FEDERAL, 2020-03-15)")
	assert.Contains(t, ctx, "[2] Martinez v. Landlord Property Management")
	assert.Contains(t, ctx, "(STATE, 2021-07-14)")
	assert.Contains(t, ctx, "employment contracts must be interpreted")

	// Sources are ordered as retrieved
	assert.Less(t, strings.Index(ctx, "[1]"), strings.Index(ctx, "[2]"))
}

func TestFormatContextEmpty(t *testing.T) {
	assert.Equal(t, "No relevant legal precedents found.", FormatContext(nil))
}

func TestFormatSources(t *testing.T) {
	sources := FormatSources(sampleResults())
	require.Len(t, sources, 2)

	assert.Equal(t, 1, sources[0].Number)
	assert.Equal(t, "Smith v. Jones", sources[0].CaseName)
	assert.Equal(t, "FEDERAL", sources[0].Jurisdiction)
	assert.InDelta(t, 0.8, sources[0].Relevance, 1e-9)
	assert.Equal(t, "https://example.com/r1", sources[0].URL)

	assert.Equal(t, 2, sources[1].Number)
	assert.InDelta(t, 0.4, sources[1].Relevance, 1e-9)
}

func TestFormatSourcesRelevanceFloor(t *testing.T) {
	results := sampleResults()
	results[0].Distance = 1.8
	sources := FormatSources(results)
	assert.Zero(t, sources[0].Relevance)
}

func TestFormatSourcesTruncatesText(t *testing.T) {
	results := sampleResults()
	results[0].Text = strings.Repeat("x", 600)
	sources := FormatSources(results)

	assert.Len(t, sources[0].Text, 503) // 500 chars plus ellipsis
	assert.True(t, strings.HasSuffix(sources[0].Text, "..."))
	assert.Equal(t, results[1].Text, sources[1].Text)
}
