package services

import (
	"context"
	"sync"

	"alfredoptarigan/ats-analyzer/internal/models"
)

type fakeCompletionClient struct {
	mu       sync.Mutex
	prompts  []string
	complete func(ctx context.Context, prompt string) (string, error)
}

func (f *fakeCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.complete == nil {
		return NoContent, nil
	}
	return f.complete(ctx, prompt)
}

func (f *fakeCompletionClient) Model() string {
	return "fake-model"
}

func (f *fakeCompletionClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func replyWith(raw string) *fakeCompletionClient {
	return &fakeCompletionClient{
		complete: func(context.Context, string) (string, error) {
			return raw, nil
		},
	}
}

type fakeExtractor struct {
	extract func(path string) (string, error)
}

func (f *fakeExtractor) ExtractText(path string) (string, error) {
	return f.extract(path)
}

type fakeScorer struct {
	score func(ctx context.Context, resumeText, jobDescription string) models.ScoreResult
}

func (f *fakeScorer) Score(ctx context.Context, resumeText, jobDescription string) models.ScoreResult {
	return f.score(ctx, resumeText, jobDescription)
}

func (f *fakeScorer) Analyze(context.Context, string, string) models.DetailedReport {
	return models.DefaultDetailedReport()
}
