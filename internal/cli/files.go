package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bimo-labs/bimo/internal/logger"
	"github.com/bimo-labs/bimo/internal/workspace"
	"github.com/spf13/cobra"
)

var lsJSON bool

func init() {
	lsCmd.Flags().BoolVar(&lsJSON, "json", false, "Print entries as JSON")
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(writeCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls <dir>",
	Short: "List a directory the way the editor's file tree shows it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := workspace.ReadDir(args[0])
		if err != nil {
			return err
		}
		if lsJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(entries)
		}
		printEntries(cmd, entries, "")
		return nil
	},
}

var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Print a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := workspace.ReadFile(args[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), content)
		return err
	},
}

var writeCmd = &cobra.Command{
	Use:   "write <file>",
	Short: "Replace a file with standard input",
	Long: `Replace <file> with everything read from standard input. The file is written
to a temporary sibling first and renamed into place, so readers never see a
partial save.

Example:
  echo "print('hello')" | bimo write ./game/main.lua`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), workspace.MaxFileSize+1))
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		if len(data) > workspace.MaxFileSize {
			return fmt.Errorf("input exceeds %d bytes", workspace.MaxFileSize)
		}
		if err := workspace.WriteFile(args[0], string(data)); err != nil {
			return err
		}
		l := logger.Component(log, "workspace")
		l.Info().Str("path", args[0]).Int("bytes", len(data)).Msg("file saved")
		return nil
	},
}

func printEntries(cmd *cobra.Command, entries []workspace.Entry, indent string) {
	out := cmd.OutOrStdout()
	for _, e := range entries {
		if e.IsDir {
			fmt.Fprintf(out, "%s%s/\n", indent, e.Name)
		} else {
			fmt.Fprintf(out, "%s%s\n", indent, e.Name)
		}
	}
}
