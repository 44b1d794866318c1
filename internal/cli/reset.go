package cli

import (
	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all data and restore the seed document",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := s.Reset()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]int{
				"projects": len(doc.Projects),
				"tags":     len(doc.Tags),
				"cards":    len(doc.Cards),
			}})
		},
	}
	return cmd
}
