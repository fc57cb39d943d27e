// Package agent implements multi-step legal research: jurisdiction analysis,
// filtered retrieval, citation verification, consistency cross-checking, and
// answer generation.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hartlaw-ai/lexrag/internal/llm"
	"github.com/hartlaw-ai/lexrag/internal/rag"
	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

const defaultModel = "mistral-small-latest"

type Agent struct {
	pipeline *rag.Pipeline
	gateway  llm.Gateway
	model    string
}

func New(pipeline *rag.Pipeline, gw llm.Gateway, model string) *Agent {
	if model == "" {
		model = defaultModel
	}
	return &Agent{pipeline: pipeline, gateway: gw, model: model}
}

// Step records one stage of the research workflow for display.
type Step struct {
	Step      int      `json:"step"`
	Action    string   `json:"action"`
	Result    string   `json:"result"`
	Reasoning string   `json:"reasoning,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ResearchResult is the full outcome of a multi-step research run.
type ResearchResult struct {
	Question     string           `json:"question"`
	Answer       string           `json:"answer"`
	Jurisdiction string           `json:"jurisdiction"`
	Steps        []Step           `json:"steps"`
	Sources      []rag.Source     `json:"sources"`
	Citations    CitationCheck    `json:"citation_verification"`
	Consistency  ConsistencyCheck `json:"consistency_check"`
}

// Research runs the five-step workflow. Individual analysis steps degrade
// (jurisdiction falls back to "all") rather than failing the whole run; only
// answer generation errors propagate.
func (a *Agent) Research(ctx context.Context, question string) (*ResearchResult, error) {
	var steps []Step

	jurisdiction, reasoning := a.analyzeJurisdiction(ctx, question)
	steps = append(steps, Step{
		Step:      1,
		Action:    "Analyze Jurisdiction Requirements",
		Result:    fmt.Sprintf("Detected jurisdiction: %s", jurisdiction),
		Reasoning: reasoning,
	})

	resp := a.pipeline.RetrieveContext(ctx, question, jurisdiction, 5)
	steps = append(steps, Step{
		Step:   2,
		Action: "Retrieve Relevant Documents",
		Result: fmt.Sprintf("Found %d relevant documents", len(resp.Results)),
	})

	citations := VerifyCitations(resp.Results)
	steps = append(steps, Step{
		Step:     3,
		Action:   "Verify Citation Accuracy",
		Result:   fmt.Sprintf("Verified %d citations", citations.TotalVerified),
		Warnings: citations.Issues,
	})

	consistency := CheckConsistency(resp.Results, jurisdiction)
	steps = append(steps, Step{
		Step:     4,
		Action:   "Cross-Check Jurisdictional Consistency",
		Result:   consistency.Summary,
		Warnings: consistency.Warnings,
	})

	genResp, err := a.pipeline.GenerateAnswer(ctx, question, resp.Results, a.model, "")
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	steps = append(steps, Step{
		Step:   5,
		Action: "Generate Comprehensive Answer",
		Result: "Answer generated with verified citations",
	})

	return &ResearchResult{
		Question:     question,
		Answer:       genResp.Content,
		Jurisdiction: jurisdiction,
		Steps:        steps,
		Sources:      rag.FormatSources(resp.Results),
		Citations:    citations,
		Consistency:  consistency,
	}, nil
}

const jurisdictionPrompt = `Analyze this legal question and determine the most appropriate jurisdiction(s) to search.

Question: %s

Determine:
1. Is this primarily a FEDERAL or STATE law question, or BOTH?
2. What legal domain is involved (employment, contracts, criminal, etc.)?

Respond in JSON format:
{
    "jurisdiction": "federal" or "state" or "all",
    "legal_domain": "domain name",
    "reasoning": "brief explanation"
}`

// analyzeJurisdiction asks the model which jurisdiction the question targets.
// Any failure falls back to searching all jurisdictions.
func (a *Agent) analyzeJurisdiction(ctx context.Context, question string) (jurisdiction, reasoning string) {
	resp, err := a.gateway.Chat(ctx, llm.ChatRequest{
		Model: a.model,
		Messages: []llm.Message{
			{Role: "user", Content: fmt.Sprintf(jurisdictionPrompt, question)},
		},
		Temperature: 0.1,
		JSONMode:    true,
	})
	if err != nil {
		slog.Warn("jurisdiction analysis failed, searching all jurisdictions", "error", err)
		return vectorstore.FilterAll, fmt.Sprintf("analysis unavailable: %v", err)
	}

	var analysis struct {
		Jurisdiction string `json:"jurisdiction"`
		LegalDomain  string `json:"legal_domain"`
		Reasoning    string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Content)), &analysis); err != nil {
		slog.Warn("jurisdiction analysis returned invalid JSON", "error", err)
		return vectorstore.FilterAll, "analysis returned unparseable output"
	}

	switch analysis.Jurisdiction {
	case vectorstore.JurisdictionFederal, vectorstore.JurisdictionState, vectorstore.FilterAll:
		return analysis.Jurisdiction, analysis.Reasoning
	default:
		return vectorstore.FilterAll, analysis.Reasoning
	}
}
