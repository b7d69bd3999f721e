package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"alfredoptarigan/ats-analyzer/internal/config"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func testGeminiConfig() config.GeminiConfig {
	return config.GeminiConfig{
		Model:           "gemini-test",
		Temperature:     0.2,
		MaxOutputTokens: 1024,
	}
}

func TestGeminiClient_Complete(t *testing.T) {
	var (
		gotModel  string
		gotPrompt string
		gotConfig *genai.GenerateContentConfig
	)
	generate := func(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		gotModel = model
		gotPrompt = contents[0].Parts[0].Text
		gotConfig = cfg
		return textResponse(`{"name":"A"}`), nil
	}

	client := newGeminiClient(generate, testGeminiConfig(), nil)
	text, err := client.Complete(context.Background(), "score this")

	require.NoError(t, err)
	assert.Equal(t, `{"name":"A"}`, text)
	assert.Equal(t, "gemini-test", gotModel)
	assert.Equal(t, "gemini-test", client.Model())
	assert.Equal(t, "score this", gotPrompt)
	require.NotNil(t, gotConfig.Temperature)
	assert.InDelta(t, 0.2, *gotConfig.Temperature, 1e-6)
	assert.Equal(t, int32(1024), gotConfig.MaxOutputTokens)
}

func TestGeminiClient_NoCandidates(t *testing.T) {
	for _, resp := range []*genai.GenerateContentResponse{nil, {}} {
		generate := func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return resp, nil
		}

		text, err := newGeminiClient(generate, testGeminiConfig(), nil).Complete(context.Background(), "p")
		require.NoError(t, err)
		assert.Equal(t, NoContent, text)
	}
}

func TestGeminiClient_ErrorIsWrappedAndNotRetried(t *testing.T) {
	calls := 0
	upstream := errors.New("503 unavailable")
	generate := func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		calls++
		return nil, upstream
	}

	text, err := newGeminiClient(generate, testGeminiConfig(), nil).Complete(context.Background(), "p")

	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, NoContent, text)
	assert.Equal(t, 1, calls)
}

func TestGeminiClient_PerCallTimeout(t *testing.T) {
	cfg := testGeminiConfig()
	cfg.Timeout = 20 * time.Millisecond

	generate := func(ctx context.Context, _ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(cfg.Timeout), deadline, time.Second)

		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, err := newGeminiClient(generate, cfg, nil).Complete(context.Background(), "p")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), testGeminiConfig(), nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
