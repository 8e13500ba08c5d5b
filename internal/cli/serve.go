package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bimo-labs/bimo/internal/bridge"
	"github.com/bimo-labs/bimo/internal/logger"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve editor commands over stdin/stdout",
	Long: `Serve the editor bridge: read one JSON request per line from standard input
and write one JSON response per line to standard output. Logs go to standard
error.

Request:  {"id": 1, "command": "create_project_dir", "args": {"baseDir": "/tmp", "projectName": "game"}}
Response: {"id": 1, "result": {"createdPath": "/tmp/game"}}

Commands: handshake, create_project_dir, open_project, read_dir,
read_file_content, write_file_content.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := bridge.NewServer(logger.Component(log, "bridge"))
		if err := bridge.RegisterEditorCommands(s, buildVersion); err != nil {
			return err
		}
		return s.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}
