package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hartlaw-ai/lexrag/internal/llm"
	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

type stubGateway struct {
	content string
	err     error
	lastReq llm.ChatRequest
}

func (s *stubGateway) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &llm.ChatResponse{Content: s.content}, nil
}

func (s *stubGateway) Provider(name string) (llm.Provider, error) {
	return nil, errors.New("not implemented")
}

func TestAnalyzeJurisdictionFederal(t *testing.T) {
	gw := &stubGateway{content: `{"jurisdiction": "federal", "legal_domain": "employment", "reasoning": "FLSA question"}`}
	a := New(nil, gw, "")

	jurisdiction, reasoning := a.analyzeJurisdiction(context.Background(), "Does the FLSA require overtime pay?")
	assert.Equal(t, vectorstore.JurisdictionFederal, jurisdiction)
	assert.Equal(t, "FLSA question", reasoning)
	assert.True(t, gw.lastReq.JSONMode)
}

func TestAnalyzeJurisdictionFailureDegradesToAll(t *testing.T) {
	gw := &stubGateway{err: errors.New("provider down")}
	a := New(nil, gw, "")

	jurisdiction, reasoning := a.analyzeJurisdiction(context.Background(), "question")
	assert.Equal(t, vectorstore.FilterAll, jurisdiction)
	assert.Contains(t, reasoning, "analysis unavailable")
}

func TestAnalyzeJurisdictionBadJSONDegradesToAll(t *testing.T) {
	gw := &stubGateway{content: "I think this is federal law."}
	a := New(nil, gw, "")

	jurisdiction, _ := a.analyzeJurisdiction(context.Background(), "question")
	assert.Equal(t, vectorstore.FilterAll, jurisdiction)
}

func TestAnalyzeJurisdictionUnexpectedValueDegradesToAll(t *testing.T) {
	gw := &stubGateway{content: `{"jurisdiction": "municipal", "reasoning": "odd"}`}
	a := New(nil, gw, "")

	jurisdiction, reasoning := a.analyzeJurisdiction(context.Background(), "question")
	assert.Equal(t, vectorstore.FilterAll, jurisdiction)
	assert.Equal(t, "odd", reasoning)
}
