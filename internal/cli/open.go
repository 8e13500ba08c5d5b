package cli

import (
	"fmt"

	"github.com/bimo-labs/bimo/internal/logger"
	"github.com/bimo-labs/bimo/internal/project"
	"github.com/bimo-labs/bimo/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open an existing project and show its top-level files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := project.Open(args[0])
		if err != nil {
			return err
		}
		l := logger.Component(log, "project")
		l.Info().Str("path", res.Path).Msg("project opened")

		entries, err := workspace.ReadDir(res.Path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Project %s (%s)\n", res.Name, res.Path)
		if len(entries) == 0 {
			fmt.Fprintln(out, "  (empty)")
			return nil
		}
		printEntries(cmd, entries, "  ")
		return nil
	},
}
