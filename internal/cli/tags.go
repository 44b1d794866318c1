package cli

import (
	"gather-cli/internal/model"
	"gather-cli/internal/query"

	"github.com/spf13/cobra"
)

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Tag commands",
	}
	cmd.AddCommand(newTagsListCmd(app))
	cmd.AddCommand(newTagsEnsureCmd(app))
	return cmd
}

func newTagsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags (sorted by name) with card counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := s.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			type row struct {
				model.Tag
				Cards int `json:"cards"`
			}
			tags := query.TagsByName(doc)
			rows := make([]row, 0, len(tags))
			for _, t := range tags {
				rows = append(rows, row{Tag: t, Cards: query.CardCountByTag(doc, t.ID)})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
	return cmd
}

func newTagsEnsureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensure <name>",
		Short: "Find a tag by name, creating it when absent (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := s.EnsureTag(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if t == nil {
				return writeErr(cmd, errNotFound("tag", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	return cmd
}
