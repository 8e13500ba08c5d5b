package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bimo-labs/bimo/internal/logger"
	"github.com/bimo-labs/bimo/internal/workspace"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", workspace.DefaultDebounce, "Quiet period before reporting a change")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Print a line whenever files under a project change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		root := args[0]
		out := cmd.OutOrStdout()
		l := logger.Component(log, "watch")

		return workspace.Watch(ctx, root, workspace.WatchOptions{
			Debounce: watchDebounce,
			Logger:   &l,
			OnReady: func() {
				l.Info().Str("root", root).Msg("watching")
			},
		}, func() {
			fmt.Fprintf(out, "%s changed %s\n", time.Now().Format(time.RFC3339), root)
		})
	},
}
