package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/models"
)

// ProgressFunc is called once per document, after its result is recorded.
type ProgressFunc func(done, total int, item models.BatchItemResult)

// BatchProcessor scores documents one at a time, in input order. Process always
// returns exactly one result per document.
type BatchProcessor interface {
	Process(ctx context.Context, docs []models.BatchDocument, jobDescription string) []models.BatchItemResult
}

type BatchOption func(*batchProcessor)

func WithProgress(fn ProgressFunc) BatchOption {
	return func(p *batchProcessor) {
		p.progress = fn
	}
}

type batchProcessor struct {
	extractor TextExtractor
	scorer    Scorer
	newPacer  PacerFactory
	log       *zap.Logger
	progress  ProgressFunc
	now       func() time.Time
}

func NewBatchProcessor(extractor TextExtractor, scorer Scorer, newPacer PacerFactory, log *zap.Logger, opts ...BatchOption) BatchProcessor {
	p := &batchProcessor{
		extractor: extractor,
		scorer:    scorer,
		newPacer:  newPacer,
		log:       logger.OrNop(log),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *batchProcessor) Process(ctx context.Context, docs []models.BatchDocument, jobDescription string) []models.BatchItemResult {
	log := p.log.With(zap.String(logger.FieldBatch, uuid.NewString()))
	log.Info("batch started", zap.Int("documents", len(docs)))

	pacer := p.newPacer()
	started := time.Now()
	results := make([]models.BatchItemResult, 0, len(docs))

	record := func(item models.BatchItemResult) {
		results = append(results, item)
		if p.progress != nil {
			p.progress(len(results), len(docs), item)
		}
	}

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			p.cancelRemaining(log, docs[i:], err, record)
			break
		}

		item := p.processOne(ctx, log, doc, jobDescription)
		record(item)

		if i == len(docs)-1 {
			break
		}
		if err := pacer.Wait(ctx); err != nil {
			p.cancelRemaining(log, docs[i+1:], err, record)
			break
		}
	}

	failed := 0
	for _, r := range results {
		if r.Status == models.StatusFailed {
			failed++
		}
	}
	log.Info("batch finished",
		zap.Int("completed", len(results)-failed),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(started)),
	)

	return results
}

func (p *batchProcessor) processOne(ctx context.Context, log *zap.Logger, doc models.BatchDocument, jobDescription string) models.BatchItemResult {
	log = log.With(zap.String(logger.FieldFile, doc.FileName))

	text, err := p.extractor.ExtractText(doc.Path)
	if err != nil {
		log.Warn("text extraction failed", zap.Error(err))
		return models.FailedItem(doc.FileName, fmt.Errorf("failed to extract text: %w", err), p.now())
	}

	score := p.scorer.Score(ctx, text, jobDescription)

	// A cancelled call degrades to defaults inside the scorer; that is not a real score.
	if err := ctx.Err(); err != nil {
		log.Warn("scoring interrupted", zap.Error(err))
		return models.FailedItem(doc.FileName, fmt.Errorf("batch cancelled: %w", err), p.now())
	}

	log.Info("document scored", zap.Float64("jScore", score.JScore), zap.Float64("gScore", score.GScore))
	return models.CompletedItem(doc.FileName, score, p.now())
}

func (p *batchProcessor) cancelRemaining(log *zap.Logger, docs []models.BatchDocument, cause error, record func(models.BatchItemResult)) {
	log.Warn("batch cancelled", zap.Int("remaining", len(docs)), zap.Error(cause))

	err := fmt.Errorf("batch cancelled: %w", cause)
	for _, doc := range docs {
		record(models.FailedItem(doc.FileName, err, p.now()))
	}
}
