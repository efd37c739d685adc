package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var levelFlag string

	ctx := newCommandContext(&configFlag, &levelFlag)

	rootCmd := &cobra.Command{
		Use:           "chaptercut",
		Short:         "Split videos into tagged chapter files using their timestamps",
		Long: `chaptercut reads the chapter timestamps a video's description or comments
list, picks the listing that covers the most of the video, and cuts the
downloaded media into one tagged file per chapter.`,
		Example: `  chaptercut run https://youtu.be/DyY9Wpfajqo --media "Fallout OST.mp3"
  chaptercut timestamps --media mix.m4a --description mix.txt
  chaptercut run --media mix.m4a --comments comments.json --fade both --fade-seconds 2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&levelFlag, "log-level", "", "Override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newTimestampsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))

	return rootCmd
}
