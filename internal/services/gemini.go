package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/logger"
)

// NoContent is returned by Complete when the service answered without any candidate text.
const NoContent = ""

const rawPreviewLimit = 500

var ErrMissingAPIKey = errors.New("gemini api key is not configured")

type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

type geminiClient struct {
	generate  generateFunc
	model     string
	genConfig *genai.GenerateContentConfig
	timeout   time.Duration
	log       *zap.Logger
}

func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, log *zap.Logger) (CompletionClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiClient(client.Models.GenerateContent, cfg, log), nil
}

func newGeminiClient(generate generateFunc, cfg config.GeminiConfig, log *zap.Logger) *geminiClient {
	temperature := cfg.Temperature

	return &geminiClient{
		generate: generate,
		model:    cfg.Model,
		genConfig: &genai.GenerateContentConfig{
			Temperature:     &temperature,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
		timeout: cfg.Timeout,
		log:     logger.OrNop(log).With(zap.String(logger.FieldModel, cfg.Model)),
	}
}

func (g *geminiClient) Model() string {
	return g.model
}

// Complete sends a single prompt. It never retries; callers decide what an error means.
func (g *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	started := time.Now()
	resp, err := g.generate(ctx, g.model, genai.Text(prompt), g.genConfig)
	if err != nil {
		g.log.Warn("gemini request failed", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return NoContent, fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		g.log.Warn("gemini returned no candidates", zap.Duration("elapsed", time.Since(started)))
		return NoContent, nil
	}

	text := resp.Text()
	g.log.Debug("gemini raw reply",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("chars", len(text)),
		zap.String("preview", logger.TruncateForLog(text, rawPreviewLimit)),
	)

	return text, nil
}
