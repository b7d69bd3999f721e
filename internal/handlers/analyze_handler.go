package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

var resumeFields = []string{"resume", "resumes"}

type AnalyzeHandler struct {
	storage      services.StorageService
	extractor    services.TextExtractor
	scorer       services.Scorer
	batch        services.BatchProcessor
	exporter     services.Exporter
	validate     *validator.Validate
	log          *zap.Logger
	maxFiles     int
	batchTimeout time.Duration
}

type AnalyzeHandlerConfig struct {
	MaxFiles     int
	BatchTimeout time.Duration
}

func NewAnalyzeHandler(
	storage services.StorageService,
	extractor services.TextExtractor,
	scorer services.Scorer,
	batch services.BatchProcessor,
	exporter services.Exporter,
	log *zap.Logger,
	cfg AnalyzeHandlerConfig,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		storage:      storage,
		extractor:    extractor,
		scorer:       scorer,
		batch:        batch,
		exporter:     exporter,
		validate:     validator.New(),
		log:          logger.OrNop(log),
		maxFiles:     cfg.MaxFiles,
		batchTimeout: cfg.BatchTimeout,
	}
}

// intake is what survived upload: stored documents in request order plus rejected
// files keyed by their position in the request.
type intake struct {
	docs     []models.BatchDocument
	rejected map[int]models.BatchItemResult
	total    int
}

// HandleAnalyze handles POST /analyze. One file returns JSON, several return a ranked XLSX.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	return h.handle(c, func(in intake, jd string) error {
		if in.total > 1 {
			return h.respondBatch(c, in, jd)
		}
		if err := singleUpload(in); err != nil {
			return badRequest(c, err.Error())
		}
		if c.Query("report") == "detailed" {
			return h.respondReport(c, in.docs[0], jd)
		}
		return h.respondScore(c, in.docs[0], jd)
	})
}

// HandleBatch handles POST /analyze/batch, which always returns a spreadsheet.
func (h *AnalyzeHandler) HandleBatch(c *fiber.Ctx) error {
	return h.handle(c, func(in intake, jd string) error {
		return h.respondBatch(c, in, jd)
	})
}

// HandleReport handles POST /analyze/report for a single resume.
func (h *AnalyzeHandler) HandleReport(c *fiber.Ctx) error {
	return h.handle(c, func(in intake, jd string) error {
		if in.total != 1 {
			return badRequest(c, "Exactly one resume is required for a detailed report")
		}
		if err := singleUpload(in); err != nil {
			return badRequest(c, err.Error())
		}
		return h.respondReport(c, in.docs[0], jd)
	})
}

func (h *AnalyzeHandler) handle(c *fiber.Ctx, respond func(in intake, jd string) error) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "No file uploaded")
	}

	files := collectFiles(form)
	if len(files) == 0 {
		return badRequest(c, "No file uploaded")
	}
	if h.maxFiles > 0 && len(files) > h.maxFiles {
		return badRequest(c, fmt.Sprintf("Too many files. Max files: %d", h.maxFiles))
	}

	req := models.AnalyzeRequest{JobDescription: strings.TrimSpace(c.FormValue("jobDescription"))}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Job description is required")
	}

	in := intake{
		docs:     make([]models.BatchDocument, 0, len(files)),
		rejected: map[int]models.BatchItemResult{},
		total:    len(files),
	}
	defer func() {
		for _, doc := range in.docs {
			if err := h.storage.DeleteFile(doc.Path); err != nil {
				h.log.Warn("failed to remove upload", zap.String(logger.FieldFile, doc.FileName), zap.Error(err))
			}
		}
	}()

	for i, file := range files {
		doc, err := h.storage.SaveFile(file)
		if errors.Is(err, services.ErrFileTooLarge) {
			h.log.Warn("upload rejected", zap.String(logger.FieldFile, file.Filename), zap.Error(err))
			in.rejected[i] = models.FailedItem(filepath.Base(file.Filename), err, time.Now())
			continue
		}
		if err != nil {
			return serverError(c, "Failed to save uploaded file", err)
		}
		in.docs = append(in.docs, doc)
	}

	return respond(in, req.JobDescription)
}

// singleUpload reports why a one-file request has nothing to score.
func singleUpload(in intake) error {
	if r, ok := in.rejected[0]; ok {
		return errors.New(r.Error)
	}
	return nil
}

// scoreRequest extracts the resume text and validates the pair before any LLM call.
func (h *AnalyzeHandler) scoreRequest(doc models.BatchDocument, jd string) (models.ScoreRequest, error) {
	text, err := h.extractor.ExtractText(doc.Path)
	if err != nil {
		h.log.Warn("text extraction failed", zap.String(logger.FieldFile, doc.FileName), zap.Error(err))
		return models.ScoreRequest{}, err
	}

	req := models.ScoreRequest{ResumeText: text, JobDescription: jd}
	if err := h.validate.Struct(req); err != nil {
		return models.ScoreRequest{}, services.ErrEmptyDocument
	}
	return req, nil
}

func (h *AnalyzeHandler) respondScore(c *fiber.Ctx, doc models.BatchDocument, jd string) error {
	req, err := h.scoreRequest(doc, jd)
	if err != nil {
		return serverError(c, "Failed to extract text from resume", err)
	}

	return c.JSON(h.scorer.Score(c.UserContext(), req.ResumeText, req.JobDescription))
}

func (h *AnalyzeHandler) respondReport(c *fiber.Ctx, doc models.BatchDocument, jd string) error {
	req, err := h.scoreRequest(doc, jd)
	if err != nil {
		return serverError(c, "Failed to extract text from resume", err)
	}

	return c.JSON(h.scorer.Analyze(c.UserContext(), req.ResumeText, req.JobDescription))
}

func (h *AnalyzeHandler) respondBatch(c *fiber.Ctx, in intake, jd string) error {
	ctx := c.UserContext()
	if h.batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.batchTimeout)
		defer cancel()
	}

	processed := h.batch.Process(ctx, in.docs, jd)

	// Rejected uploads take their request position back before ranking.
	results := make([]models.BatchItemResult, 0, in.total)
	next := 0
	for i := 0; i < in.total; i++ {
		if r, ok := in.rejected[i]; ok {
			results = append(results, r)
			continue
		}
		results = append(results, processed[next])
		next++
	}

	file, err := h.exporter.Export(services.RankResults(results))
	if err != nil {
		h.log.Error("export failed", zap.Error(err))
		return serverError(c, "Failed to generate results file", err)
	}

	c.Attachment(file.FileName)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Status(fiber.StatusOK).Send(file.Data)
}

// collectFiles accepts both the single and the multi-file field names.
func collectFiles(form *multipart.Form) []*multipart.FileHeader {
	var files []*multipart.FileHeader
	for _, field := range resumeFields {
		files = append(files, form.File[field]...)
	}
	return files
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: msg})
}

func serverError(c *fiber.Ctx, msg string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error:   msg,
		Details: err.Error(),
	})
}
