package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/studymaster/internal/cli"
	"github.com/at-ishikawa/studymaster/internal/learning"
	"github.com/at-ishikawa/studymaster/internal/quiz"
)

var _ pflag.Value = (*quiz.Mode)(nil)

func newQuizCommand() *cobra.Command {
	var mode quiz.Mode
	var maxQuestions int

	command := &cobra.Command{
		Use:   "quiz <set>",
		Short: "Take a multiple-choice quiz over a study set",
		Long: `Take a multiple-choice quiz over a study set.

Modes:
  adaptive   due questions, the ones you keep missing first
  difficult  only questions with a low difficulty score
  random     every question in random order

When adaptive or difficult finds nothing to ask, the quiz switches to random.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			if !cmd.Flags().Changed("mode") {
				if mode, err = quiz.ParseMode(cfg.Quiz.Mode); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("max") {
				maxQuestions = cfg.Quiz.MaxQuestions
			}

			found, err := ws.Library().Find(args[0])
			if err != nil {
				return fmt.Errorf("Library().Find(%s) > %w", args[0], err)
			}
			set, err := ws.Library().Load(found.ID, now())
			if err != nil {
				return fmt.Errorf("Library().Load(%s) > %w", found.ID, err)
			}

			out := cmd.OutOrStdout()
			configureColor(out)
			session, err := cli.NewQuizSession(
				cli.NewInteractiveSession(cmd.InOrStdin(), out),
				set,
				mode,
				maxQuestions,
				ws.Tracker(learning.SystemClock{}),
				ws.Aggregator(),
				nil,
			)
			if err != nil {
				return fmt.Errorf("cli.NewQuizSession() > %w", err)
			}
			fmt.Fprintf(out, "Starting %q in %s mode with %d questions\n", set.Title, session.Mode(), session.GetQuestionCount())
			if err := session.Run(cmd.Context(), session); err != nil {
				return err
			}

			if err := ws.Save(); err != nil {
				return fmt.Errorf("ws.Save() > %w", err)
			}
			return nil
		},
	}
	mode = quiz.ModeAdaptive
	command.Flags().Var(&mode, "mode", "quiz mode: adaptive, difficult or random")
	command.Flags().IntVar(&maxQuestions, "max", quiz.DefaultMaxQuestions, "maximum number of questions")

	return command
}
