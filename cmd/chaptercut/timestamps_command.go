package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chaptercut/internal/workflow"
)

func newTimestampsCommand(ctx *commandContext) *cobra.Command {
	var src sourceFlags
	var choose bool

	cmd := &cobra.Command{
		Use:   "timestamps [video-url-or-id]",
		Short: "Show the selected timestamps and planned segments without cutting",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("choose") {
				cfg.Timestamps.ChooseComment = choose
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			provider, err := src.provider(cmd.Context(), cfg, args, logger)
			if err != nil {
				return err
			}

			manager := workflow.NewManager(cfg, provider, logger, workflow.WithPrompt(cmd.InOrStdin(), cmd.OutOrStdout()))
			report, err := manager.Plan(cmd.Context(), src.media)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Video: %s (%s)\n", report.Video.Title, report.Video.ID)
			fmt.Fprintf(out, "Source: %s, %s style, %d markers, %.1f%% coverage\n",
				report.Candidate.Block.Label(), report.Candidate.Style, len(report.Candidate.Markers), report.Candidate.Score*100)
			fmt.Fprintf(out, "Output folder: %s\n", report.OutputDir)
			workflow.RenderSegments(out, report.Segments)
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&choose, "choose", false, "List the comments with valid timestamps and prompt for one")
	return cmd
}
