package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/handlers"
	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/services"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}
	defer zl.Sync()

	zl.Info("config loaded",
		zap.String("env", cfg.Server.Env),
		zap.String(logger.FieldModel, cfg.Gemini.Model),
		zap.String("pacing", cfg.Batch.Pacing),
	)

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		zl.Fatal("failed to create upload directory", zap.Error(err))
	}

	client, err := services.NewGeminiClient(context.Background(), cfg.Gemini, zl)
	if err != nil {
		zl.Fatal("failed to initialize gemini client", zap.Error(err))
	}

	var scorerOpts []services.ScorerOption
	if cfg.Report.ValidateMinimums {
		validator, err := services.NewReportValidator()
		if err != nil {
			zl.Fatal("failed to load report validator", zap.Error(err))
		}
		scorerOpts = append(scorerOpts, services.WithReportValidator(validator))
	}

	extractor := services.NewTextExtractor()
	scorer := services.NewScorer(client, zl, scorerOpts...)
	batch := services.NewBatchProcessor(extractor, scorer, services.NewPacerFactory(cfg.Batch), zl)

	analyzeHandler := handlers.NewAnalyzeHandler(
		storageService,
		extractor,
		scorer,
		batch,
		services.NewXLSXExporter(),
		zl,
		handlers.AnalyzeHandlerConfig{
			MaxFiles:     cfg.Storage.MaxFiles,
			BatchTimeout: cfg.Batch.Timeout,
		},
	)
	healthHandler := handlers.NewHealthHandler(client.Model())

	bodyLimit := cfg.Storage.MaxFileSize * int64(max(cfg.Storage.MaxFiles, 1))

	app := fiber.New(fiber.Config{
		AppName:      "ATS Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Batch.Timeout + 30*time.Second,
		BodyLimit:    int(bodyLimit),
		ErrorHandler: customErrorHandler,

		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDevelopment()}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept",
		ExposeHeaders: "Content-Disposition",
	}))

	api := app.Group("/api")
	api.Get("/health", healthHandler.HandleHealth)
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/analyze/batch", analyzeHandler.HandleBatch)
	api.Post("/analyze/report", analyzeHandler.HandleReport)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ATS Resume Analyzer API",
			"endpoints": []string{
				"GET /api/health",
				"POST /api/analyze",
				"POST /api/analyze/batch",
				"POST /api/analyze/report",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zl.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
