package cli

import (
	"gather-cli/internal/model"
	"gather-cli/internal/mutate"
	"gather-cli/internal/query"
	"gather-cli/internal/store"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsRenameCmd(app))
	return cmd
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := store.NewID(store.KindProject)
			if err != nil {
				return writeErr(cmd, err)
			}
			var created model.Project
			_, err = s.Update(func(doc *model.Document) error {
				p, err := mutate.CreateProject(doc, id, name)
				if err != nil {
					return err
				}
				created = *p
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects with card counts",
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
				model.Project
				Cards int `json:"cards"`
			}
			rows := make([]row, 0, len(doc.Projects))
			for _, p := range doc.Projects {
				rows = append(rows, row{Project: p, Cards: query.CardCountByProject(doc, p.ID)})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
	return cmd
}

func newProjectsRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <project-id>",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var renamed model.Project
			_, err = s.Update(func(doc *model.Document) error {
				p, err := mutate.RenameProject(doc, args[0], name)
				if err != nil {
					return err
				}
				renamed = *p
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": renamed})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
