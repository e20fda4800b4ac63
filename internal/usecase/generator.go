package usecase

import (
	"context"
	"fmt"

	"ai-service/internal/domain/entity"
	"ai-service/internal/domain/repository"

	"github.com/gofiber/fiber/v2/log"
)

type Generator struct {
	aiProvider repository.AIProvider
	confidence float64
}

func NewGenerator(ai repository.AIProvider) *Generator {
	return &Generator{aiProvider: ai, confidence: entity.DefaultConfidence}
}

// AssemblePrompt appends context to prompt with no separator. A missing
// context leaves the prompt untouched.
func AssemblePrompt(prompt string, extra *string) string {
	if extra == nil {
		return prompt
	}
	return prompt + *extra
}

func (g *Generator) Generate(ctx context.Context, req entity.GenerationRequest) (*entity.GenerationResult, error) {
	if req.Prompt == nil {
		return nil, fmt.Errorf("%w: prompt is required", entity.ErrInvalidRequest)
	}

	completion, err := g.aiProvider.Generate(ctx, AssemblePrompt(*req.Prompt, req.Context))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrUpstreamFailure, err)
	}
	log.Debugw("generation complete", "model", completion.Model, "token_count", completion.TokenCount)

	confidence := g.confidence
	return &entity.GenerationResult{
		Response:   completion.Text,
		Confidence: &confidence,
	}, nil
}
