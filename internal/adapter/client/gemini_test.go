package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"ai-service/internal/config"
	"ai-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGemini struct {
	mu      sync.Mutex
	paths   []string
	prompts []string
	status  int
	body    string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Contents []struct {
			Role  string `json:"role"`
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	for _, c := range req.Contents {
		for _, p := range c.Parts {
			f.prompts = append(f.prompts, p.Text)
		}
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = w.Write([]byte(f.body))
}

func newTestClient(t *testing.T, fake *fakeGemini) *GeminiClient {
	t.Helper()
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	c, err := NewGeminiClient(context.Background(), config.GeminiConfig{
		Model:   "gemini-2.5-flash",
		APIKey:  "test-api-key",
		BaseURL: ts.URL,
	})
	require.NoError(t, err)
	return c
}

func TestGeminiClient_Generate(t *testing.T) {
	fake := &fakeGemini{
		status: http.StatusOK,
		body: `{
			"candidates": [
				{
					"content": {"role": "model", "parts": [{"text": "mocked response string"}]},
					"finishReason": "STOP"
				}
			],
			"usageMetadata": {"promptTokenCount": 3, "candidatesTokenCount": 4, "totalTokenCount": 7}
		}`,
	}
	c := newTestClient(t, fake)

	got, err := c.Generate(context.Background(), "Hello world")
	require.NoError(t, err)

	assert.Equal(t, "mocked response string", got.Text)
	assert.Equal(t, "gemini-2.5-flash", got.Model)
	assert.Equal(t, 7, got.TokenCount)

	require.Len(t, fake.prompts, 1)
	assert.Equal(t, "Hello world", fake.prompts[0])
	require.Len(t, fake.paths, 1)
	assert.True(t, strings.HasSuffix(fake.paths[0], "models/gemini-2.5-flash:generateContent"), fake.paths[0])
}

func TestGeminiClient_GenerateNoCandidates(t *testing.T) {
	fake := &fakeGemini{status: http.StatusOK, body: `{"candidates": []}`}
	c := newTestClient(t, fake)

	_, err := c.Generate(context.Background(), "Hello")
	assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
}

func TestGeminiClient_GenerateCandidateWithoutText(t *testing.T) {
	bodies := map[string]string{
		"safety block": `{"candidates": [{"finishReason": "SAFETY"}]}`,
		"no parts":     `{"candidates": [{"content": {"role": "model", "parts": []}, "finishReason": "STOP"}]}`,
		"empty text":   `{"candidates": [{"content": {"role": "model", "parts": [{"text": ""}]}, "finishReason": "MAX_TOKENS"}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, &fakeGemini{status: http.StatusOK, body: body})

			got, err := c.Generate(context.Background(), "Hello")
			assert.Nil(t, got)
			assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
		})
	}
}

func TestGeminiClient_GenerateAPIError(t *testing.T) {
	fake := &fakeGemini{
		status: http.StatusUnauthorized,
		body:   `{"error": {"code": 401, "message": "API key not valid", "status": "UNAUTHENTICATED"}}`,
	}
	c := newTestClient(t, fake)

	got, err := c.Generate(context.Background(), "Hello")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "401")
}
