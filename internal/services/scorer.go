package services

import (
	"context"

	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/models"
)

// Scorer turns one resume text and one job description into a structured result.
// Both methods are total: a failed or garbled completion degrades to defaults.
type Scorer interface {
	Score(ctx context.Context, resumeText, jobDescription string) models.ScoreResult
	Analyze(ctx context.Context, resumeText, jobDescription string) models.DetailedReport
}

type ScorerOption func(*scorer)

// WithReportValidator attaches minimum-count issues to every detailed report.
func WithReportValidator(v ReportValidator) ScorerOption {
	return func(s *scorer) {
		s.validator = v
	}
}

type scorer struct {
	prompts   *PromptBuilder
	client    CompletionClient
	validator ReportValidator
	log       *zap.Logger
}

func NewScorer(client CompletionClient, log *zap.Logger, opts ...ScorerOption) Scorer {
	s := &scorer{
		prompts: NewPromptBuilder(),
		client:  client,
		log:     logger.OrNop(log),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *scorer) Score(ctx context.Context, resumeText, jobDescription string) models.ScoreResult {
	raw := s.complete(ctx, s.prompts.BuildScorePrompt(resumeText, jobDescription))

	result, outcome := RecoverScoreResult(raw)
	s.log.Debug("score recovered",
		zap.Stringer("outcome", outcome),
		zap.Float64("jScore", result.JScore),
		zap.Float64("gScore", result.GScore),
	)

	return result
}

func (s *scorer) Analyze(ctx context.Context, resumeText, jobDescription string) models.DetailedReport {
	raw := s.complete(ctx, s.prompts.BuildReportPrompt(resumeText, jobDescription))

	report, outcome := RecoverDetailedReport(raw)
	s.log.Debug("report recovered", zap.Stringer("outcome", outcome))

	if s.validator != nil {
		issues, err := s.validator.Validate(report)
		if err != nil {
			s.log.Warn("report validation failed", zap.Error(err))
		}
		report.ValidationIssues = issues
	}

	return report
}

// complete maps a completion error to NoContent so recovery falls back to defaults.
func (s *scorer) complete(ctx context.Context, prompt string) string {
	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.log.Error("completion failed, using defaults", zap.Error(err))
		return NoContent
	}
	return raw
}
