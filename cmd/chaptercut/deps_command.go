package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"chaptercut/internal/deps"
	"chaptercut/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check media tools, directories, and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			statuses := preflight.CheckSystemDeps(cfg)
			tools := newStatusTable("External tools", "Tool", "Command", "Available", "Detail").flag(3)
			for _, s := range statuses {
				detail := s.Version
				if !s.Available {
					detail = s.Detail
				}
				tools.add(s.Name, s.Command, yesNo(s.Available), detail)
			}
			fmt.Fprintln(out, tools.render())

			checks := preflight.RunAll(cfg)
			report := newStatusTable("Preflight", "Check", "Passed", "Detail").flag(2)
			for _, r := range append(checks, preflight.CheckYouTubeKey(cfg)) {
				report.add(r.Name, yesNo(r.Passed), r.Detail)
			}
			fmt.Fprintln(out, report.render())

			return errors.Join(deps.Missing(statuses), preflight.Failed(checks))
		},
	}
}
