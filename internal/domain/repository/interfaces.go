package repository

import (
	"context"

	"ai-service/internal/domain/entity"
)

type AIProvider interface {
	Generate(ctx context.Context, prompt string) (*entity.Completion, error)
}
