// Package learning holds per-item review state for flashcards and quiz
// questions and the rules that move that state forward after each answer.
package learning

import (
	"errors"
	"time"
)

const (
	MinCardDifficulty = 1
	MaxCardDifficulty = 5

	MinQuestionDifficulty = 0.5
	MaxQuestionDifficulty = 5.0

	// Questions below DifficultQuestionBelow are still a struggle, and
	// questions at MasteredQuestionFrom or above are considered learned.
	DifficultQuestionBelow = 2.0
	MasteredQuestionFrom   = 4.0

	day = 24 * time.Hour
)

var ErrNoAnswers = errors.New("the question was never answered")

// CardProgress is the review state of a single flashcard.
type CardProgress struct {
	Difficulty   int       `json:"difficulty" yaml:"difficulty" db:"difficulty"`
	ReviewCount  int       `json:"reviewCount" yaml:"review_count" db:"review_count"`
	CorrectCount int       `json:"correctCount" yaml:"correct_count" db:"correct_count"`
	LastReviewed time.Time `json:"lastReviewed" yaml:"last_reviewed" db:"last_reviewed"`
	NextReview   time.Time `json:"nextReview" yaml:"next_review" db:"next_review"`
}

// IsDue reports whether the card can be shown again at now.
func (p CardProgress) IsDue(now time.Time) bool {
	return !p.NextReview.After(now)
}

// QuizProgress is the review state of a single multiple-choice question.
// AverageTime is measured in seconds.
type QuizProgress struct {
	Difficulty      float64   `json:"difficulty" yaml:"difficulty" db:"difficulty"`
	AnswerCount     int       `json:"answerCount" yaml:"answer_count" db:"answer_count"`
	CorrectCount    int       `json:"correctCount" yaml:"correct_count" db:"correct_count"`
	IncorrectStreak int       `json:"incorrectStreak" yaml:"incorrect_streak" db:"incorrect_streak"`
	AverageTime     float64   `json:"averageTime" yaml:"average_time" db:"average_time"`
	LastAnswered    time.Time `json:"lastAnswered" yaml:"last_answered" db:"last_answered"`
	NextReview      time.Time `json:"nextReview" yaml:"next_review" db:"next_review"`
}

// IsDue reports whether the question can be asked again at now.
func (p QuizProgress) IsDue(now time.Time) bool {
	return !p.NextReview.After(now)
}

func (p QuizProgress) IsDifficult() bool {
	return p.Difficulty < DifficultQuestionBelow
}

func (p QuizProgress) IsMastered() bool {
	return p.Difficulty >= MasteredQuestionFrom
}

// Accuracy returns the share of correct answers in [0,1].
func (p QuizProgress) Accuracy() (float64, error) {
	if p.AnswerCount <= 0 {
		return 0, ErrNoAnswers
	}
	return float64(p.CorrectCount) / float64(p.AnswerCount), nil
}
