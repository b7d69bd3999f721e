package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/services"
)

const app = "ats"

var (
	debug   bool
	jsonLog bool
	jobFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "ats scores resumes against a job description with an LLM",
		SilenceUsage: true,
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringVar(&jobFile, "job", "", "path to a text file with the job description")
	_ = rootCmd.MarkPersistentFlagRequired("job")
}

// pipeline is the part of the service graph shared by every command.
type pipeline struct {
	cfg       *config.Config
	log       *zap.Logger
	extractor services.TextExtractor
	scorer    services.Scorer
}

func newPipeline(ctx context.Context) (*pipeline, error) {
	cfg := config.Load()

	zl, err := logger.New(jsonLog || cfg.Log.JSON, debug || cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	client, err := services.NewGeminiClient(ctx, cfg.Gemini, zl)
	if err != nil {
		return nil, fmt.Errorf("initializing gemini client: %w", err)
	}

	var opts []services.ScorerOption
	if cfg.Report.ValidateMinimums {
		validator, err := services.NewReportValidator()
		if err != nil {
			return nil, err
		}
		opts = append(opts, services.WithReportValidator(validator))
	}

	return &pipeline{
		cfg:       cfg,
		log:       zl,
		extractor: services.NewTextExtractor(),
		scorer:    services.NewScorer(client, zl, opts...),
	}, nil
}

func readJobDescription(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading job description: %w", err)
	}

	jd := strings.TrimSpace(string(data))
	if jd == "" {
		return "", fmt.Errorf("job description file %s is empty", path)
	}
	return jd, nil
}
