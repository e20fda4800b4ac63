package client

import (
	"context"
	"strings"

	"ai-service/internal/config"
	"ai-service/internal/domain/entity"

	"google.golang.org/genai"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGenAIClient builds the process-wide genai client. It is safe for
// concurrent use and is shared by every request.
func NewGenAIClient(ctx context.Context, cfg config.GeminiConfig) (*genai.Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.UseVertex {
		cc = &genai.ClientConfig{
			Project:  cfg.Project,
			Location: cfg.Location,
			Backend:  genai.BackendVertexAI,
		}
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/") + "/"
	}
	return genai.NewClient(ctx, cc)
}

func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig) (*GeminiClient, error) {
	c, err := NewGenAIClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewGeminiClientFromClient(c, cfg.Model), nil
}

func NewGeminiClientFromClient(c *genai.Client, model string) *GeminiClient {
	return &GeminiClient{
		client: c,
		model:  model,
	}
}

func (g *GeminiClient) Model() string {
	return g.model
}

// Generate sends prompt as the whole content payload in a single call.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (*entity.Completion, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, err
	}
	// A blocked or truncated candidate can arrive without any text parts.
	if len(result.Candidates) == 0 || !hasText(result.Candidates[0].Content) {
		return nil, entity.ErrEmptyCompletion
	}

	completion := &entity.Completion{
		Text:  result.Text(),
		Model: g.model,
	}
	if result.UsageMetadata != nil {
		completion.TokenCount = int(result.UsageMetadata.TotalTokenCount)
	}
	return completion, nil
}

func hasText(content *genai.Content) bool {
	if content == nil {
		return false
	}
	for _, part := range content.Parts {
		if part != nil && !part.Thought && part.Text != "" {
			return true
		}
	}
	return false
}
