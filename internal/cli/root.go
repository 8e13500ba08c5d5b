package cli

import (
	"fmt"
	"os"

	"github.com/bimo-labs/bimo/internal/branding"
	"github.com/bimo-labs/bimo/internal/config"
	"github.com/bimo-labs/bimo/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// log is replaced in PersistentPreRunE once the config is loaded.
var log = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates and opens editor projects and serves the editor's
file operations to the UI shell over a typed JSON bridge.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		l, err := logger.New(cmd.ErrOrStderr(), config.Get(config.KeyLogLevel), config.Get(config.KeyLogFormat))
		if err != nil {
			return fmt.Errorf("configuring logger: %w", err)
		}
		log = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: console or json")
	bindFlags()
}

// bindFlags lets --log-level and --log-format override the config file.
func bindFlags() {
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
