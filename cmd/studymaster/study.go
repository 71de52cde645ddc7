package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studymaster/internal/cli"
	"github.com/at-ishikawa/studymaster/internal/learning"
)

func newStudyCommand() *cobra.Command {
	var dueOnly bool

	command := &cobra.Command{
		Use:   "study <set>",
		Short: "Review the flashcards of a study set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			found, err := ws.Library().Find(args[0])
			if err != nil {
				return fmt.Errorf("Library().Find(%s) > %w", args[0], err)
			}
			if len(found.Flashcards) == 0 {
				return fmt.Errorf("%q has no flashcards", found.Title)
			}
			set, err := ws.Library().Load(found.ID, now())
			if err != nil {
				return fmt.Errorf("Library().Load(%s) > %w", found.ID, err)
			}

			out := cmd.OutOrStdout()
			configureColor(out)
			session := cli.NewFlashcardSession(
				cli.NewInteractiveSession(cmd.InOrStdin(), out),
				set,
				ws.Tracker(learning.SystemClock{}),
				ws.Aggregator(),
				dueOnly,
			)
			fmt.Fprintf(out, "Starting %q with %d cards\n", set.Title, session.GetCardCount())
			if err := session.Run(cmd.Context(), session); err != nil {
				return err
			}

			if err := ws.Save(); err != nil {
				return fmt.Errorf("ws.Save() > %w", err)
			}
			return nil
		},
	}
	command.Flags().BoolVar(&dueOnly, "due", false, "only review cards that are due")

	return command
}
