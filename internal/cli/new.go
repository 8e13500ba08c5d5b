package cli

import (
	"encoding/json"
	"fmt"

	"github.com/bimo-labs/bimo/internal/config"
	"github.com/bimo-labs/bimo/internal/logger"
	"github.com/bimo-labs/bimo/internal/project"
	"github.com/spf13/cobra"
)

var (
	newDir  string
	newJSON bool
)

func init() {
	newCmd.Flags().StringVar(&newDir, "dir", "", "Base directory (default: projects_dir setting, then the current directory)")
	newCmd.Flags().BoolVar(&newJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new project directory",
	Long: `Create a new, empty project directory named <name> inside an existing base
directory. The command fails if anything already exists at that path.

Examples:
  bimo new MyNewProject --dir ~/games
  bimo config set projects_dir ~/games && bimo new platformer`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base := newDir
		if base == "" {
			dir, err := config.ProjectsDir()
			if err != nil {
				return err
			}
			base = dir
		}

		l := logger.Component(log, "project")
		res, err := project.Create(project.CreateRequest{BaseDir: base, Name: args[0]})
		if err != nil {
			l.Debug().Err(err).Str("base", base).Str("name", args[0]).Msg("create failed")
			return err
		}
		l.Info().Str("path", res.CreatedPath).Msg("project created")

		out := cmd.OutOrStdout()
		if newJSON {
			return json.NewEncoder(out).Encode(map[string]string{"createdPath": res.CreatedPath})
		}
		fmt.Fprintf(out, "Created project at %s\n", res.CreatedPath)
		fmt.Fprintf(out, "\nNext steps:\n  bimo open %s\n", res.CreatedPath)
		return nil
	},
}
