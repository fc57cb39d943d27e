package eval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hartlaw-ai/lexrag/internal/llm"
	"github.com/hartlaw-ai/lexrag/internal/rag"
)

type fakeGateway struct {
	responses []string
	errs      []error
	calls     int
	lastReq   llm.ChatRequest
}

func (f *fakeGateway) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	f.lastReq = req
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	content := ""
	if i < len(f.responses) {
		content = f.responses[i]
	}
	return &llm.ChatResponse{Content: content, Model: req.Model}, nil
}

func (f *fakeGateway) Provider(name string) (llm.Provider, error) {
	return nil, errors.New("not implemented")
}

const judgeJSON = `{
	"factual_accuracy": 9,
	"citation_validity": 8,
	"jurisdictional_alignment": 7,
	"completeness": 8,
	"clarity": 9,
	"overall_score": 8.2,
	"strengths": ["well cited"],
	"weaknesses": ["brief"],
	"hallucination_detected": false,
	"feedback": "Solid answer."
}`

func TestEvaluate(t *testing.T) {
	gw := &fakeGateway{responses: []string{judgeJSON}}
	judge := NewJudge(gw, "")

	ev, err := judge.Evaluate(context.Background(), "What is at-will employment?", "An answer.", []rag.Source{
		{Number: 1, CaseName: "Smith v. Jones", Citation: "123 F.3d 456", Text: "holding text"},
	})
	require.NoError(t, err)

	assert.InDelta(t, 9.0, ev.FactualAccuracy, 1e-9)
	assert.InDelta(t, 8.2, ev.OverallScore, 1e-9)
	assert.False(t, ev.HallucinationDetected)
	assert.Equal(t, []string{"well cited"}, ev.Strengths)
	assert.Equal(t, defaultJudgeModel, ev.EvaluatorModel)

	// The judge asks for structured output
	assert.True(t, gw.lastReq.JSONMode)
	assert.Contains(t, gw.lastReq.Messages[0].Content, "Smith v. Jones")
}

func TestEvaluateStripsCodeFence(t *testing.T) {
	gw := &fakeGateway{responses: []string{"```json\n" + judgeJSON + "\n```"}}
	judge := NewJudge(gw, "custom-model")

	ev, err := judge.Evaluate(context.Background(), "q", "a", nil)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, ev.CitationValidity, 1e-9)
	assert.Equal(t, "custom-model", ev.EvaluatorModel)
}

func TestEvaluateBadJSON(t *testing.T) {
	gw := &fakeGateway{responses: []string{"not json"}}
	judge := NewJudge(gw, "")

	_, err := judge.Evaluate(context.Background(), "q", "a", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse judge response")
}

func TestBatchEvaluateSkipsFailures(t *testing.T) {
	gw := &fakeGateway{
		responses: []string{judgeJSON, "", judgeJSON},
		errs:      []error{nil, errors.New("provider down"), nil},
	}
	judge := NewJudge(gw, "")

	samples := []Sample{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
		{Question: "q3", Answer: "a3"},
	}
	evaluations, errored := judge.BatchEvaluate(context.Background(), samples)
	assert.Len(t, evaluations, 2)
	assert.Equal(t, 1, errored)
}

func TestAggregateEvaluations(t *testing.T) {
	evaluations := []Evaluation{
		{FactualAccuracy: 8, CitationValidity: 6, JurisdictionalAlignment: 10, Completeness: 8, Clarity: 9, OverallScore: 8.2, HallucinationDetected: true},
		{FactualAccuracy: 6, CitationValidity: 8, JurisdictionalAlignment: 6, Completeness: 6, Clarity: 7, OverallScore: 6.6},
	}

	agg := AggregateEvaluations(evaluations)
	assert.Equal(t, 2, agg.TotalEvaluations)
	assert.InDelta(t, 7.0, agg.AvgFactualAccuracy, 1e-9)
	assert.InDelta(t, 7.0, agg.AvgCitationValidity, 1e-9)
	assert.InDelta(t, 8.0, agg.AvgJurisdictionalAlignment, 1e-9)
	assert.InDelta(t, 7.4, agg.AvgOverallScore, 1e-9)
	assert.InDelta(t, 0.5, agg.HallucinationRate, 1e-9)
}

func TestAggregateEvaluationsEmpty(t *testing.T) {
	agg := AggregateEvaluations(nil)
	assert.Zero(t, agg.TotalEvaluations)
	assert.Zero(t, agg.AvgOverallScore)
	assert.Zero(t, agg.HallucinationRate)
}

func TestFormatSourcesForPrompt(t *testing.T) {
	assert.Equal(t, "No sources provided.", formatSources(nil))

	long := make([]byte, 400)
	for i := range long {
		long[i] = 'x'
	}
	out := formatSources([]rag.Source{{Number: 1, CaseName: "A", Citation: "1 U.S. 1", Text: string(long)}})
	assert.Contains(t, out, "[1] A, 1 U.S. 1")
	assert.Contains(t, out, "...")
	assert.Less(t, len(out), 400)
}
