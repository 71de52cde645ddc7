// Package statistics rolls study and quiz outcomes up into summary counters.
package statistics

import (
	"errors"
	"fmt"
)

var (
	ErrNoQuestions  = errors.New("a quiz needs at least one question")
	ErrInvalidScore = errors.New("score is out of range")
)

// Statistics is the single aggregate record of a learner.
type Statistics struct {
	TotalStudySessions int     `json:"totalStudySessions" yaml:"total_study_sessions" db:"total_study_sessions"`
	TotalCardsStudied  int     `json:"totalCardsStudied" yaml:"total_cards_studied" db:"total_cards_studied"`
	TotalQuizzesTaken  int     `json:"totalQuizzesTaken" yaml:"total_quizzes_taken" db:"total_quizzes_taken"`
	TotalQuizQuestions int     `json:"totalQuizQuestions" yaml:"total_quiz_questions" db:"total_quiz_questions"`
	AverageScore       float64 `json:"averageScore" yaml:"average_score" db:"average_score"`
	StudyStreak        int     `json:"studyStreak" yaml:"study_streak" db:"study_streak"`
}

// RecordStudySession counts one finished flashcard session.
func RecordStudySession(stats Statistics) Statistics {
	stats.TotalStudySessions++
	stats.TotalCardsStudied++
	return stats
}

// RecordQuizCompletion folds a finished quiz into the counters.
// AverageScore is the mean of the per-quiz percentages, every quiz weighted
// equally regardless of its question count.
func RecordQuizCompletion(stats Statistics, score, totalQuestions int) (Statistics, error) {
	if totalQuestions <= 0 {
		return stats, ErrNoQuestions
	}
	if score < 0 || score > totalQuestions {
		return stats, fmt.Errorf("%w: %d of %d", ErrInvalidScore, score, totalQuestions)
	}

	percentage := float64(score) / float64(totalQuestions) * 100
	taken := stats.TotalQuizzesTaken
	stats.AverageScore = (stats.AverageScore*float64(taken) + percentage) / float64(taken+1)
	stats.TotalQuizzesTaken = taken + 1
	stats.TotalQuizQuestions += totalQuestions
	return stats, nil
}
