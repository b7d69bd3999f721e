package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

var outFile string

var batchCmd = &cobra.Command{
	Use:   "batch <resume>...",
	Short: "Score several resumes, rank them and write an XLSX report",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		jd, err := readJobDescription(jobFile)
		if err != nil {
			return err
		}

		p, err := newPipeline(ctx)
		if err != nil {
			return err
		}
		defer p.log.Sync()

		if p.cfg.Batch.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.cfg.Batch.Timeout)
			defer cancel()
		}

		docs := make([]models.BatchDocument, 0, len(args))
		for _, path := range args {
			docs = append(docs, models.BatchDocument{FileName: filepath.Base(path), Path: path})
		}

		progress := func(done, total int, item models.BatchItemResult) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s: %s\n", done, total, item.FileName, item.Status)
		}

		batch := services.NewBatchProcessor(p.extractor, p.scorer, services.NewPacerFactory(p.cfg.Batch), p.log,
			services.WithProgress(progress))
		ranked := services.RankResults(batch.Process(ctx, docs, jd))

		file, err := services.NewXLSXExporter().Export(ranked)
		if err != nil {
			return err
		}

		target := outFile
		if target == "" {
			target = file.FileName
		}
		if err := os.WriteFile(target, file.Data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}

		p.log.Info("results written", zap.String("path", target), zap.Int("rows", len(ranked)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&outFile, "out", "o", "", "output XLSX path (default ats_results_<unix>.xlsx)")
}
