package statistics

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Aggregator owns the statistics record and the quiz history of a workspace.
type Aggregator struct {
	stats   Statistics
	history []QuizResult
}

func NewAggregator(stats Statistics, history []QuizResult) *Aggregator {
	return &Aggregator{
		stats:   stats,
		history: slices.Clone(history),
	}
}

func (a *Aggregator) Statistics() Statistics {
	return a.stats
}

// History returns the quiz results, newest first.
func (a *Aggregator) History() []QuizResult {
	return slices.Clone(a.history)
}

// Replace overwrites the statistics wholesale, as a backup import does.
func (a *Aggregator) Replace(stats Statistics) {
	a.stats = stats
}

func (a *Aggregator) StudySession() Statistics {
	a.stats = RecordStudySession(a.stats)
	return a.stats
}

// CompleteQuiz records a finished quiz, fills in its id and percentage and
// recomputes the study streak as of the quiz date.
func (a *Aggregator) CompleteQuiz(result QuizResult) (QuizResult, error) {
	stats, err := RecordQuizCompletion(a.stats, result.Score, result.TotalQuestions)
	if err != nil {
		return QuizResult{}, fmt.Errorf("RecordQuizCompletion() > %w", err)
	}
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	// RecordQuizCompletion already rejected a zero total.
	result.Percentage, _ = Percentage(result.Score, result.TotalQuestions)

	a.history = prepend(a.history, result)
	stats.StudyStreak = StudyStreak(a.history, result.Date)
	a.stats = stats
	return result, nil
}

// Refresh recomputes the study streak as of now.
func (a *Aggregator) Refresh(now time.Time) Statistics {
	a.stats.StudyStreak = StudyStreak(a.history, now)
	return a.stats
}
