package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studymaster/internal/learning"
	"github.com/at-ishikawa/studymaster/internal/statistics"
)

const recentQuizLimit = 10

func newStatsCommand() *cobra.Command {
	var period string

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics and recent quiz results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parsePeriod(period)
			if err != nil {
				return err
			}

			_, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			out := cmd.OutOrStdout()
			stats := ws.RefreshStatistics(now())
			renderTable(out,
				[]string{"Metric", "Value"},
				[][]string{
					{"Study sessions", strconv.Itoa(stats.TotalStudySessions)},
					{"Cards studied", strconv.Itoa(stats.TotalCardsStudied)},
					{"Quizzes taken", strconv.Itoa(stats.TotalQuizzesTaken)},
					{"Quiz questions", strconv.Itoa(stats.TotalQuizQuestions)},
					{"Average score", fmt.Sprintf("%.1f%%", stats.AverageScore)},
					{"Study streak", fmt.Sprintf("%d days", stats.StudyStreak)},
				},
				[]columnAlignment{alignLeft, alignRight},
			)

			questions := learning.SummarizeQuestions(ws.Store().Questions())
			fmt.Fprintln(out, "\nQuiz questions")
			renderTable(out,
				[]string{"Answered", "Difficult", "Mastered", "Accuracy"},
				[][]string{{
					strconv.Itoa(questions.Answered),
					strconv.Itoa(questions.Difficult),
					strconv.Itoa(questions.Mastered),
					fmt.Sprintf("%.1f%%", questions.AverageAccuracy*100),
				}},
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
			)

			categories := ws.Library().CategorySummaries()
			categoryRows := make([][]string, 0, len(categories))
			for _, c := range categories {
				categoryRows = append(categoryRows, []string{
					c.Category,
					strconv.Itoa(c.Sets),
					strconv.Itoa(c.Flashcards),
					strconv.Itoa(c.QuizQuestions),
					strconv.Itoa(c.TimesStudied),
				})
			}
			fmt.Fprintln(out, "\nBy category")
			renderTable(out,
				[]string{"Category", "Sets", "Cards", "Quiz", "Studied"},
				categoryRows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
			)

			history := ws.Aggregator().History()
			if len(history) == 0 {
				fmt.Fprintln(out, "No quizzes taken yet.")
				return nil
			}

			periods := statistics.CalculatePeriods(history, year, month)
			periodRows := make([][]string, 0, len(periods))
			for _, p := range periods {
				periodRows = append(periodRows, []string{
					p.Period,
					strconv.Itoa(p.QuizzesTaken),
					fmt.Sprintf("%d/%d", p.CorrectTotal, p.QuestionsTotal),
					fmt.Sprintf("%.1f%%", p.AverageScore),
					strconv.Itoa(p.UniqueSets),
				})
			}
			fmt.Fprintln(out, "\nBy month")
			renderTable(out,
				[]string{"Month", "Quizzes", "Correct", "Average", "Sets"},
				periodRows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
			)

			recent := history[:min(len(history), recentQuizLimit)]
			recentRows := make([][]string, 0, len(recent))
			for _, result := range recent {
				recentRows = append(recentRows, []string{
					result.Date.Local().Format("2006-01-02 15:04"),
					result.SetTitle,
					result.Mode,
					fmt.Sprintf("%d/%d", result.Score, result.TotalQuestions),
					fmt.Sprintf("%d%%", result.Percentage),
				})
			}
			fmt.Fprintln(out, "\nRecent quizzes")
			renderTable(out,
				[]string{"Date", "Set", "Mode", "Score", "Percentage"},
				recentRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			)
			return nil
		},
	}
	command.Flags().StringVar(&period, "period", "", "limit the monthly summary to a year (2025) or a month (2025-01)")

	return command
}

// parsePeriod parses "", "2006" or "2006-01" into a year and month filter.
func parsePeriod(period string) (year int, month int, err error) {
	if period == "" {
		return 0, 0, nil
	}
	if t, err := time.Parse("2006-01", period); err == nil {
		return t.Year(), int(t.Month()), nil
	}
	if t, err := time.Parse("2006", period); err == nil {
		return t.Year(), 0, nil
	}
	return 0, 0, fmt.Errorf("invalid period %q, expected YYYY or YYYY-MM", period)
}
