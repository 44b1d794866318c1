package cli

import (
	"errors"
	"fmt"
	"time"

	"gather-cli/internal/analyze"
	"gather-cli/internal/model"
	"gather-cli/internal/mutate"
	"gather-cli/internal/publish"
	"gather-cli/internal/query"
	"gather-cli/internal/store"

	"github.com/spf13/cobra"
)

func newCardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Card commands",
	}
	cmd.AddCommand(newCardsCreateCmd(app))
	cmd.AddCommand(newCardsListCmd(app))
	cmd.AddCommand(newCardsShowCmd(app))
	cmd.AddCommand(newCardsEditCmd(app))
	cmd.AddCommand(newCardsExportCmd(app))
	return cmd
}

func newCardsCreateCmd(app *App) *cobra.Command {
	var (
		title      string
		link       string
		projectID  string
		tagNames   []string
		runAnalyze bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a card (with --analyze, prefill from the link)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if runAnalyze {
				if !analyze.ValidURL(link) {
					return writeErr(cmd, fmt.Errorf("--analyze needs a valid --link url, got %q", link))
				}
				res, err := analyze.New().Analyze(cmd.Context(), link)
				switch {
				case errors.Is(err, analyze.ErrNoMatch):
					// Manual-entry fallback: keep whatever the user passed.
					fmt.Fprintln(cmd.ErrOrStderr(), "analysis found nothing for this link; enter details manually")
				case err != nil:
					return writeErr(cmd, err)
				default:
					if title == "" {
						title = res.Title
					}
					if len(tagNames) == 0 {
						tagNames = res.Tags
					}
					doc, err := s.Load()
					if err != nil {
						return writeErr(cmd, err)
					}
					if projectID == "" {
						if _, ok := doc.FindProject(res.ProjectID); ok {
							projectID = res.ProjectID
						}
					}
				}
			}

			tagIDs, err := s.ResolveTagNames(tagNames)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := store.NewID(store.KindCard)
			if err != nil {
				return writeErr(cmd, err)
			}

			var created model.Card
			_, err = s.Update(func(doc *model.Document) error {
				c, err := mutate.CreateCard(doc, mutate.NewCard{
					ID:        id,
					Title:     title,
					Link:      link,
					ProjectID: projectID,
					TagIDs:    tagIDs,
				}, time.Now())
				if err != nil {
					return err
				}
				created = *c
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Card title")
	cmd.Flags().StringVar(&link, "link", "", "Source link")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id (empty: unassigned)")
	cmd.Flags().StringSliceVar(&tagNames, "tag", nil, "Tag name (repeatable; missing tags are created)")
	cmd.Flags().BoolVar(&runAnalyze, "analyze", false, "Prefill title/tags/project by analyzing --link")
	return cmd
}

func newCardsListCmd(app *App) *cobra.Command {
	var (
		projectID string
		tagID     string
		search    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards, newest-touched first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := s.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			cards := query.Apply(doc, query.Filter{
				ProjectID: projectID,
				TagID:     tagID,
				Search:    search,
			})
			return writeOut(cmd, app, map[string]any{"data": cards})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only cards in this project")
	cmd.Flags().StringVar(&tagID, "tag", "", "Only cards carrying this tag id")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive title substring")
	return cmd
}

func newCardsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <card-id>",
		Short: "Show one card with its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := s.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			c, ok := doc.FindCard(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("card", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
	return cmd
}

func newCardsEditCmd(app *App) *cobra.Command {
	var (
		title    string
		tagNames []string
	)

	cmd := &cobra.Command{
		Use:   "edit <card-id>",
		Short: "Edit a card's title and/or tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			edit := mutate.CardEdit{}
			if cmd.Flags().Changed("title") {
				edit.Title = &title
			}
			if cmd.Flags().Changed("tag") {
				tagIDs, err := s.ResolveTagNames(tagNames)
				if err != nil {
					return writeErr(cmd, err)
				}
				edit.TagIDs = &tagIDs
			}

			var edited model.Card
			_, err = s.Update(func(doc *model.Document) error {
				c, err := mutate.EditCard(doc, args[0], edit, time.Now())
				if err != nil {
					return err
				}
				edited = *c
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": edited})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringSliceVar(&tagNames, "tag", nil, "Replacement tag names (repeatable)")
	return cmd
}

func newCardsExportCmd(app *App) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "export <card-id>",
		Short: "Render a card as Markdown (or HTML) on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := s.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			var out string
			if asHTML {
				out, err = publish.RenderCardHTML(doc, args[0])
			} else {
				out, err = publish.RenderCardMarkdown(doc, args[0])
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "Emit an HTML page instead of Markdown")
	return cmd
}
