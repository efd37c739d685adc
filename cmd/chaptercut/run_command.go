package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chaptercut/internal/config"
	"chaptercut/internal/preflight"
	"chaptercut/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var src sourceFlags
	var fade string
	var fadeSeconds float64
	var workers int
	var choose bool

	cmd := &cobra.Command{
		Use:   "run [video-url-or-id]",
		Short: "Cut a downloaded video into tagged chapter files",
		Long: "Reads timestamps from the video description or its comments, builds one\n" +
			"segment per chapter, and slices, fades, and tags each segment from --media.\n" +
			"Without a video argument the description and comments come from local files.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(src.media) == "" {
				return fmt.Errorf("--media is required")
			}
			if err := applyRunOverrides(cmd, cfg, fade, fadeSeconds, workers, choose); err != nil {
				return err
			}
			if err := preflight.Failed(preflight.RunAll(cfg)); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			provider, err := src.provider(cmd.Context(), cfg, args, logger)
			if err != nil {
				return err
			}
			manager := workflow.NewManager(cfg, provider, logger,
				workflow.WithPrompt(cmd.InOrStdin(), cmd.OutOrStdout()),
				workflow.WithProgressOutput(cmd.ErrOrStderr()),
			)
			report, err := manager.Run(cmd.Context(), src.media)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Timestamps from %s (%s style, %.1f%% coverage)\n",
				report.Candidate.Block.Label(), report.Candidate.Style, report.Candidate.Score*100)
			workflow.RenderSummary(out, report)
			return report.Err()
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&fade, "fade", "", "Override postprocess.fade (none, in, out, both)")
	cmd.Flags().Float64Var(&fadeSeconds, "fade-seconds", 0, "Override postprocess.fade_seconds (fractions allowed, e.g. 0.5)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Override postprocess.workers")
	cmd.Flags().BoolVar(&choose, "choose", false, "List the comments with valid timestamps and prompt for one")
	return cmd
}

func applyRunOverrides(cmd *cobra.Command, cfg *config.Config, fade string, fadeSeconds float64, workers int, choose bool) error {
	flags := cmd.Flags()
	if flags.Changed("fade") {
		cfg.Postprocess.Fade = strings.ToLower(strings.TrimSpace(fade))
	}
	if flags.Changed("fade-seconds") {
		cfg.Postprocess.FadeSeconds = fadeSeconds
	}
	if flags.Changed("workers") {
		cfg.Postprocess.Workers = workers
	}
	if flags.Changed("choose") {
		cfg.Timestamps.ChooseComment = choose
	}
	return cfg.Validate()
}
