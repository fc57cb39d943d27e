// Package eval scores generated legal answers with an AI judge: factual
// accuracy, citation validity, jurisdictional alignment, completeness and
// clarity, each on a 0-10 scale.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hartlaw-ai/lexrag/internal/llm"
	"github.com/hartlaw-ai/lexrag/internal/rag"
)

const defaultJudgeModel = "mistral-small-latest"

// Judge uses an LLM to evaluate the quality of a generated legal answer.
type Judge struct {
	gateway llm.Gateway
	model   string
}

func NewJudge(gw llm.Gateway, model string) *Judge {
	if model == "" {
		model = defaultJudgeModel
	}
	return &Judge{gateway: gw, model: model}
}

// Evaluation holds per-criterion scores plus qualitative feedback.
type Evaluation struct {
	FactualAccuracy         float64  `json:"factual_accuracy"`
	CitationValidity        float64  `json:"citation_validity"`
	JurisdictionalAlignment float64  `json:"jurisdictional_alignment"`
	Completeness            float64  `json:"completeness"`
	Clarity                 float64  `json:"clarity"`
	OverallScore            float64  `json:"overall_score"`
	Strengths               []string `json:"strengths,omitempty"`
	Weaknesses              []string `json:"weaknesses,omitempty"`
	HallucinationDetected   bool     `json:"hallucination_detected"`
	Feedback                string   `json:"feedback"`
	EvaluatorModel          string   `json:"evaluator_model"`
	Duration                time.Duration `json:"duration_ms"`
}

const judgePromptTemplate = `You are an expert legal research evaluator. Assess the quality of this legal answer.

QUESTION: %s

GENERATED ANSWER:
%s

AVAILABLE SOURCES:
%s

Evaluate the answer on these criteria (score 0-10 for each):

1. FACTUAL ACCURACY: Are all claims supported by the provided sources?
2. CITATION VALIDITY: Are citations correctly attributed and formatted?
3. JURISDICTIONAL ALIGNMENT: Does the answer properly distinguish between federal/state law when relevant?
4. COMPLETENESS: Does the answer fully address the question?
5. CLARITY: Is the answer clear and well-organized?

Respond in this EXACT JSON format:
{
    "factual_accuracy": <score 0-10>,
    "citation_validity": <score 0-10>,
    "jurisdictional_alignment": <score 0-10>,
    "completeness": <score 0-10>,
    "clarity": <score 0-10>,
    "overall_score": <average of above>,
    "strengths": ["strength 1", "strength 2"],
    "weaknesses": ["weakness 1", "weakness 2"],
    "hallucination_detected": <true/false>,
    "feedback": "Brief constructive feedback in 2-3 sentences"
}`

// Evaluate scores one question/answer pair against its sources.
func (j *Judge) Evaluate(ctx context.Context, question, answer string, sources []rag.Source) (*Evaluation, error) {
	start := time.Now()

	prompt := fmt.Sprintf(judgePromptTemplate, question, answer, formatSources(sources))

	resp, err := j.gateway.Chat(ctx, llm.ChatRequest{
		Model: j.model,
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("judge evaluation: %w", err)
	}

	var evaluation Evaluation
	content := stripCodeFence(resp.Content)
	if err := json.Unmarshal([]byte(content), &evaluation); err != nil {
		return nil, fmt.Errorf("parse judge response: %w", err)
	}

	evaluation.EvaluatorModel = j.model
	evaluation.Duration = time.Since(start)
	return &evaluation, nil
}

// Sample pairs an answer with its retrieval context for batch evaluation.
type Sample struct {
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Sources  []rag.Source `json:"sources"`
}

// BatchEvaluate scores multiple samples. A sample whose evaluation fails is
// skipped and counted as an error; the rest still run.
func (j *Judge) BatchEvaluate(ctx context.Context, samples []Sample) ([]Evaluation, int) {
	evaluations := make([]Evaluation, 0, len(samples))
	errored := 0
	for _, s := range samples {
		ev, err := j.Evaluate(ctx, s.Question, s.Answer, s.Sources)
		if err != nil {
			errored++
			continue
		}
		evaluations = append(evaluations, *ev)
	}
	return evaluations, errored
}

// Aggregate averages criterion scores across evaluations and reports the
// hallucination rate.
type Aggregate struct {
	TotalEvaluations           int     `json:"total_evaluations"`
	AvgFactualAccuracy         float64 `json:"avg_factual_accuracy"`
	AvgCitationValidity        float64 `json:"avg_citation_validity"`
	AvgJurisdictionalAlignment float64 `json:"avg_jurisdictional_alignment"`
	AvgCompleteness            float64 `json:"avg_completeness"`
	AvgClarity                 float64 `json:"avg_clarity"`
	AvgOverallScore            float64 `json:"avg_overall_score"`
	HallucinationRate          float64 `json:"hallucination_rate"`
}

func AggregateEvaluations(evaluations []Evaluation) Aggregate {
	agg := Aggregate{TotalEvaluations: len(evaluations)}
	if len(evaluations) == 0 {
		return agg
	}

	hallucinations := 0
	for _, ev := range evaluations {
		agg.AvgFactualAccuracy += ev.FactualAccuracy
		agg.AvgCitationValidity += ev.CitationValidity
		agg.AvgJurisdictionalAlignment += ev.JurisdictionalAlignment
		agg.AvgCompleteness += ev.Completeness
		agg.AvgClarity += ev.Clarity
		agg.AvgOverallScore += ev.OverallScore
		if ev.HallucinationDetected {
			hallucinations++
		}
	}

	n := float64(len(evaluations))
	agg.AvgFactualAccuracy /= n
	agg.AvgCitationValidity /= n
	agg.AvgJurisdictionalAlignment /= n
	agg.AvgCompleteness /= n
	agg.AvgClarity /= n
	agg.AvgOverallScore /= n
	agg.HallucinationRate = float64(hallucinations) / n
	return agg
}

func formatSources(sources []rag.Source) string {
	if len(sources) == 0 {
		return "No sources provided."
	}
	var sb strings.Builder
	for _, s := range sources {
		text := s.Text
		if len(text) > 300 {
			text = text[:300] + "..."
		}
		fmt.Fprintf(&sb, "[%d] %s, %s\n%s\n\n", s.Number, s.CaseName, s.Citation, text)
	}
	return sb.String()
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
