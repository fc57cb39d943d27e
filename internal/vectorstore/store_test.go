package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hartlaw-ai/lexrag/internal/embedding"
)

type fakeIndex struct {
	records     map[string]Record
	upsertErrAt int // 1-based upsert call that fails; 0 disables
	upsertCalls int
	queryErr    error
	textErr     error
	lastFilter  string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{records: make(map[string]Record)}
}

func (f *fakeIndex) Upsert(ctx context.Context, collection string, records []Record) error {
	f.upsertCalls++
	if f.upsertErrAt != 0 && f.upsertCalls == f.upsertErrAt {
		return errors.New("insert failed")
	}
	for _, r := range records {
		f.records[r.ID] = r
	}
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, collection string, vector []float32, jurisdiction string, limit int) ([]SearchResult, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.lastFilter = jurisdiction
	return f.matching(jurisdiction, limit, 0.2), nil
}

func (f *fakeIndex) QueryText(ctx context.Context, collection, queryText, jurisdiction string, limit int) ([]SearchResult, error) {
	if f.textErr != nil {
		return nil, f.textErr
	}
	f.lastFilter = jurisdiction
	return f.matching(jurisdiction, limit, 0.5), nil
}

func (f *fakeIndex) matching(jurisdiction string, limit int, dist float64) []SearchResult {
	var out []SearchResult
	for _, r := range f.records {
		if jurisdiction != "" && r.Metadata.Jurisdiction != jurisdiction {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, SearchResult{ID: r.ID, Text: r.Text, Metadata: r.Metadata, Distance: dist})
	}
	return out
}

func (f *fakeIndex) Count(ctx context.Context, collection string) (int, error) {
	return len(f.records), nil
}

func (f *fakeIndex) CountByJurisdiction(ctx context.Context, collection string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, r := range f.records {
		counts[r.Metadata.Jurisdiction]++
	}
	return counts, nil
}

func (f *fakeIndex) Reset(ctx context.Context, collection string) error {
	f.records = make(map[string]Record)
	return nil
}

type stubEmbedder struct {
	err   error
	calls int
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 2}
	}
	return out, nil
}

func (s *stubEmbedder) Name() string { return "stub" }

func newTestStore(ix Index, embErr error) *Store {
	svc := embedding.NewServiceWith(&stubEmbedder{err: embErr}, nil, false, 1, time.Millisecond)
	return NewStore(ix, svc, "test_collection")
}

func docs(n int, jurisdiction string) []Document {
	out := make([]Document, n)
	for i := range out {
		out[i] = Document{
			ID:   fmt.Sprintf("d%d", i),
			Text: fmt.Sprintf("text %d", i),
			Metadata: Metadata{
				CaseName:     fmt.Sprintf("Case %d", i),
				Jurisdiction: jurisdiction,
			},
		}
	}
	return out
}

func TestAddAllSucceed(t *testing.T) {
	ix := newFakeIndex()
	store := newTestStore(ix, nil)

	report := store.Add(context.Background(), docs(10, "federal"), 4)
	assert.Equal(t, 10, report.Requested)
	assert.Equal(t, 10, report.Added)
	assert.Empty(t, report.Failed)
	assert.Len(t, ix.records, 10)
}

func TestAddPartialBatchFailure(t *testing.T) {
	ix := newFakeIndex()
	ix.upsertErrAt = 2 // second batch of 5 fails
	store := newTestStore(ix, nil)

	report := store.Add(context.Background(), docs(15, "federal"), 5)
	assert.Equal(t, 15, report.Requested)
	assert.Equal(t, 10, report.Added)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 5, report.Failed[0].Start)
	assert.Equal(t, 10, report.Failed[0].End)
	assert.Contains(t, report.Failed[0].Reason, "insert failed")
}

func TestAddGeneratesMissingIDs(t *testing.T) {
	ix := newFakeIndex()
	store := newTestStore(ix, nil)

	ds := docs(3, "state")
	ds[1].ID = ""
	report := store.Add(context.Background(), ds, 2)

	assert.Equal(t, 3, report.Added)
	// Generated id reflects global position, not batch offset
	assert.Contains(t, ix.records, "doc_1")
}

func TestAddEmptyInput(t *testing.T) {
	store := newTestStore(newFakeIndex(), nil)
	report := store.Add(context.Background(), nil, 5)
	assert.Zero(t, report.Requested)
	assert.Zero(t, report.Added)
}

func TestAddAppliesMetadataDefaults(t *testing.T) {
	ix := newFakeIndex()
	store := newTestStore(ix, nil)

	store.Add(context.Background(), []Document{{ID: "x", Text: "t"}}, 1)
	rec := ix.records["x"]
	assert.Equal(t, "Unknown Case", rec.Metadata.CaseName)
	assert.Equal(t, "N/A", rec.Metadata.Citation)
	assert.Equal(t, JurisdictionUnknown, rec.Metadata.Jurisdiction)
}

func TestSearchFiltersJurisdiction(t *testing.T) {
	ix := newFakeIndex()
	store := newTestStore(ix, nil)
	store.Add(context.Background(), docs(3, "federal"), 10)
	seedIndex(ix, 2, "state")

	resp := store.Search(context.Background(), "question", "federal", 10)
	assert.False(t, resp.Degraded)
	assert.Equal(t, "federal", ix.lastFilter)
	for _, r := range resp.Results {
		assert.Equal(t, "federal", r.Metadata.Jurisdiction)
	}
}

func TestSearchAllDisablesFilter(t *testing.T) {
	ix := newFakeIndex()
	store := newTestStore(ix, nil)
	store.Add(context.Background(), docs(2, "federal"), 10)

	store.Search(context.Background(), "q", FilterAll, 10)
	assert.Equal(t, "", ix.lastFilter)

	store.Search(context.Background(), "q", "", 10)
	assert.Equal(t, "", ix.lastFilter)
}

func TestSearchDegradesOnEmbedFailure(t *testing.T) {
	ix := newFakeIndex()
	store := newTestStore(ix, errors.New("provider down"))
	seedIndex(ix, 3, "federal")

	resp := store.Search(context.Background(), "question", "", 10)
	assert.True(t, resp.Degraded)
	assert.Len(t, resp.Results, 3)
}

func TestSearchDegradesOnQueryFailure(t *testing.T) {
	ix := newFakeIndex()
	ix.queryErr = errors.New("index broken")
	store := newTestStore(ix, nil)
	seedIndex(ix, 2, "state")

	resp := store.Search(context.Background(), "question", "", 10)
	assert.True(t, resp.Degraded)
	assert.Len(t, resp.Results, 2)
}

func TestSearchEmptyWhenEverythingFails(t *testing.T) {
	ix := newFakeIndex()
	ix.queryErr = errors.New("down")
	ix.textErr = errors.New("also down")
	store := newTestStore(ix, nil)

	resp := store.Search(context.Background(), "question", "", 10)
	assert.True(t, resp.Degraded)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestStatsAndReset(t *testing.T) {
	ix := newFakeIndex()
	store := newTestStore(ix, nil)
	store.Add(context.Background(), docs(3, "federal"), 10)

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalDocuments)
	assert.Equal(t, 3, stats.ByJurisdiction["federal"])

	require.NoError(t, store.Reset(context.Background()))
	stats, err = store.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalDocuments)
}

func seedIndex(ix *fakeIndex, n int, jurisdiction string) {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("seed%d", i)
		ix.records[id] = Record{
			ID:       id,
			Text:     "seeded",
			Metadata: Metadata{Jurisdiction: jurisdiction}.WithDefaults(),
		}
	}
}
