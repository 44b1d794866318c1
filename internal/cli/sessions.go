package cli

import (
	"sort"
	"time"

	"gather-cli/internal/model"
	"gather-cli/internal/mutate"
	"gather-cli/internal/store"

	"github.com/spf13/cobra"
)

func newSessionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Session (note) commands",
	}
	cmd.AddCommand(newSessionsAddCmd(app))
	cmd.AddCommand(newSessionsEditCmd(app))
	cmd.AddCommand(newSessionsListCmd(app))
	return cmd
}

func newSessionsAddCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "add <card-id>",
		Short: "Add a Markdown session to a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := store.NewID(store.KindSession)
			if err != nil {
				return writeErr(cmd, err)
			}
			var added model.Session
			_, err = s.Update(func(doc *model.Document) error {
				sess, err := mutate.AddSession(doc, args[0], id, content, time.Now())
				if err != nil {
					return err
				}
				added = *sess
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": added})
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Session content (Markdown)")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newSessionsEditCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "edit <card-id> <session-id>",
		Short: "Replace a session's content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var edited model.Session
			_, err = s.Update(func(doc *model.Document) error {
				sess, err := mutate.EditSession(doc, args[0], args[1], content, time.Now())
				if err != nil {
					return err
				}
				edited = *sess
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": edited})
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Replacement content (Markdown)")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newSessionsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <card-id>",
		Short: "List a card's sessions, newest first",
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
			sessions := append([]model.Session(nil), c.Sessions...)
			sort.SliceStable(sessions, func(i, j int) bool {
				return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
			})
			return writeOut(cmd, app, map[string]any{"data": sessions})
		},
	}
	return cmd
}
