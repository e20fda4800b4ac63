package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-service/internal/domain/entity"
	"ai-service/internal/domain/repository"
)

// BoundedProvider caps how long a single generation may take. There is
// no retry and no fallback: the first error is returned as is.
type BoundedProvider struct {
	next    repository.AIProvider
	timeout time.Duration
}

// NewBoundedProvider wraps next. A timeout <= 0 disables the bound.
func NewBoundedProvider(next repository.AIProvider, timeout time.Duration) *BoundedProvider {
	return &BoundedProvider{next: next, timeout: timeout}
}

func (b *BoundedProvider) Generate(ctx context.Context, prompt string) (*entity.Completion, error) {
	if b.timeout <= 0 {
		return b.next.Generate(ctx, prompt)
	}

	boundCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	type result struct {
		completion *entity.Completion
		err        error
	}
	done := make(chan result, 1)
	go func() {
		c, err := b.next.Generate(boundCtx, prompt)
		done <- result{c, err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(boundCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("generation exceeded %s: %w", b.timeout, r.err)
		}
		return r.completion, r.err
	case <-boundCtx.Done():
		// The in-flight call is abandoned; it observes boundCtx and exits on its own.
		return nil, fmt.Errorf("generation exceeded %s: %w", b.timeout, boundCtx.Err())
	}
}
