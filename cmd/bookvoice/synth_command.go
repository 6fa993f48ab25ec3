package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"bookvoice/internal/logging"
	"bookvoice/internal/pipeline"
	"bookvoice/internal/services/gemini"
	"bookvoice/internal/ttscache"
)

func newSynthCommand(ctx *commandContext) *cobra.Command {
	var voiceFlag string
	var outputFlag string
	var noCache bool
	var noSummaries bool

	cmd := &cobra.Command{
		Use:     "synth FILE...",
		Aliases: []string{"narrate"},
		Short:   "Synthesize one audio file per markdown document",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if voiceFlag != "" {
				cfg.Narration.Voice = voiceFlag
			}
			if outputFlag != "" {
				cfg.Paths.OutputDir = outputFlag
			}
			if noCache {
				cfg.Cache.Enabled = false
			}
			if noSummaries {
				cfg.Narration.CodeSummaries = false
			}

			if err := cfg.RequireAPIKey(); err != nil {
				return err
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}
			// Unlisted names are passed through: the voice table lags the API.
			if !gemini.KnownVoice(cfg.Narration.Voice) {
				logger.Warn("voice not in the known list, trying it anyway",
					slog.String("voice", cfg.Narration.Voice))
			}

			client := gemini.NewClient(gemini.Config{
				APIKey:         cfg.Gemini.APIKey,
				BaseURL:        cfg.Gemini.BaseURL,
				TTSModel:       cfg.Gemini.TTSModel,
				SummaryModel:   cfg.Gemini.SummaryModel,
				TimeoutSeconds: cfg.Gemini.TimeoutSeconds,
				RetryAttempts:  cfg.Gemini.RetryAttempts,
			})

			opts := pipeline.Options{
				Config:      cfg,
				Logger:      logger,
				Synthesizer: client,
			}
			if cfg.Narration.CodeSummaries {
				opts.Summarizer = client
			}
			if cfg.Cache.Enabled {
				cache, err := ttscache.Open(cfg.Paths.CacheDir)
				if err != nil {
					logger.Warn("synthesis cache unavailable, continuing without it", logging.Error(err))
				} else {
					defer cache.Close()
					opts.Cache = cache
				}
			}

			p, err := pipeline.New(opts)
			if err != nil {
				return err
			}
			summary, err := p.Run(cmd.Context(), args)
			if err != nil {
				return err
			}

			printRunSummary(cmd, summary)
			if summary.Failures > 0 {
				return fmt.Errorf("%d of %d documents failed", summary.Failures, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&voiceFlag, "voice", "", "Voice name (overrides configuration)")
	cmd.Flags().StringVarP(&outputFlag, "output-dir", "o", "", "Output directory (overrides configuration)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the synthesis cache")
	cmd.Flags().BoolVar(&noSummaries, "no-summaries", false, "Narrate code blocks verbatim instead of summarizing")
	return cmd
}

func printRunSummary(cmd *cobra.Command, summary *pipeline.RunSummary) {
	out := cmd.OutOrStdout()
	for _, result := range summary.Results {
		note := ""
		if result.FellBack {
			note = " (fragments concatenated; playback may skip)"
		}
		fmt.Fprintf(out, "%s -> %s [%s]%s\n",
			result.Title, result.OutputPath, formatDuration(result.Duration), note)
	}
	fmt.Fprintf(out, "Narrated %d document(s), %d failed\n", len(summary.Results), summary.Failures)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "unknown length"
	}
	return d.Round(time.Second).String()
}
