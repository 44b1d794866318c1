package cli

import (
	"fmt"
	"os"
	"strings"

	"gather-cli/internal/format"
	"gather-cli/internal/store"
	"gather-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir         string
	BackendKind string
	PrettyJSON  bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "gather",
		Short:        "Gather (local-first) knowledge-collection dashboard",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard
  gather

  # Scriptable commands
  gather cards list --project project-research

  # Save a link, letting analysis prefill title/tags/project
  gather cards create --link https://openai.com/research/gpt-4 --analyze

  # Direct card lookup (shortcut for: gather cards show <card-id>)
  gather card-gpt4
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("GATHER_DIR", ""), "Path to data dir (default: .gather discovery, then ~/.gather)")
	cmd.PersistentFlags().StringVar(&app.BackendKind, "backend", envOr("GATHER_BACKEND", ""), "Storage backend (file|sqlite; default: autodetect)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newCardsCmd(app))
	cmd.AddCommand(newSessionsCmd(app))
	cmd.AddCommand(newResetCmd(app))

	return cmd
}

func runTUI(app *App) error {
	s, err := openStore(app)
	if err != nil {
		return err
	}
	return tui.Run(s)
}

func openStore(app *App) (*store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
		app.Dir = dir
	}
	backend, err := store.OpenBackend(dir, app.BackendKind)
	if err != nil {
		return nil, err
	}
	return store.New(backend), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
