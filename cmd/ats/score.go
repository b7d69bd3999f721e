package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var detailed bool

var scoreCmd = &cobra.Command{
	Use:   "score <resume>",
	Short: "Score a single resume and print the result as JSON",
	Args:  cobra.ExactArgs(1),
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

		text, err := p.extractor.ExtractText(args[0])
		if err != nil {
			return fmt.Errorf("extracting %s: %w", args[0], err)
		}

		var out any
		if detailed {
			out = p.scorer.Analyze(ctx, text, jd)
		} else {
			out = p.scorer.Score(ctx, text, jd)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolVar(&detailed, "detailed", false, "return the detailed improvement report")
}
