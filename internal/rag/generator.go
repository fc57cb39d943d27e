package rag

import (
	"context"
	"fmt"

	"github.com/hartlaw-ai/lexrag/internal/llm"
)

const legalSystemPrompt = `You are a legal research assistant specializing in case law analysis.
Your role is to provide accurate, citation-grounded answers to legal questions.

IMPORTANT INSTRUCTIONS:
1. Base your answers ONLY on the provided legal sources
2. Always cite specific cases using their full citations (e.g., "Smith v. Jones, 123 F.3d 456")
3. Reference the source number in brackets [1], [2], etc. when citing
4. Clearly distinguish between federal and state law when relevant
5. If the sources don't contain enough information, acknowledge the limitation
6. Do not make up cases or citations not present in the sources

Format your response with:
- A direct answer to the question
- Supporting analysis with specific citations
- Any important limitations or caveats`

// Generator produces citation-grounded answers from formatted context.
type Generator struct {
	gateway llm.Gateway
}

func NewGenerator(gw llm.Gateway) *Generator {
	return &Generator{gateway: gw}
}

type GenerateRequest struct {
	Question string
	Context  string
	Model    string
	Provider string
}

func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*llm.ChatResponse, error) {
	userMessage := fmt.Sprintf(`Legal Question: %s

Relevant Legal Sources:
%s

Please provide a comprehensive answer to the legal question based on the sources provided. Include specific citations and analyze how the cases apply to the question.`, req.Question, req.Context)

	return g.gateway.Chat(ctx, llm.ChatRequest{
		Provider: req.Provider,
		Model:    req.Model,
		Messages: []llm.Message{
			{Role: "system", Content: legalSystemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: 0.3,
		MaxTokens:   1500,
	})
}
