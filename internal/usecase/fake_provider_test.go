package usecase

import (
	"context"
	"sync"

	"ai-service/internal/domain/entity"
)

// fakeProvider records every prompt it receives and answers with text or err.
type fakeProvider struct {
	mu      sync.Mutex
	prompts []string
	text    string
	err     error
	delay   chan struct{}
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (*entity.Completion, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.delay != nil {
		select {
		case <-f.delay:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Completion{Text: f.text, Model: "fake"}, nil
}

func (f *fakeProvider) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func ptr(s string) *string { return &s }
