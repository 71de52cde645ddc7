package statistics

import (
	"math"
	"slices"
	"time"
)

const (
	// HistoryLimit is the number of quiz results kept, newest first.
	HistoryLimit = 50

	streakWindowDays = 30
)

// QuizResult is one finished quiz.
type QuizResult struct {
	ID             string    `json:"id" yaml:"id" db:"id"`
	SetID          string    `json:"setId" yaml:"set_id" db:"set_id"`
	SetTitle       string    `json:"setTitle" yaml:"set_title" db:"set_title"`
	Mode           string    `json:"mode" yaml:"mode" db:"mode"`
	Score          int       `json:"score" yaml:"score" db:"score"`
	TotalQuestions int       `json:"totalQuestions" yaml:"total_questions" db:"total_questions"`
	Percentage     int       `json:"percentage" yaml:"percentage" db:"percentage"`
	Date           time.Time `json:"date" yaml:"date" db:"taken_at"`
	Answers        []Answer  `json:"answers,omitempty" yaml:"answers,omitempty" db:"-"`
}

// Answer is a single graded answer inside a QuizResult.
type Answer struct {
	QuestionIndex int     `json:"questionIndex" yaml:"question_index"`
	QuestionID    string  `json:"questionId" yaml:"question_id"`
	Selected      int     `json:"selected" yaml:"selected"`
	Correct       int     `json:"correct" yaml:"correct"`
	IsCorrect     bool    `json:"isCorrect" yaml:"is_correct"`
	Difficulty    float64 `json:"difficulty" yaml:"difficulty"`
	TimeTaken     float64 `json:"timeTaken,omitempty" yaml:"time_taken,omitempty"`
}

// Percentage rounds score/total to a whole percent. A zero total is
// rejected like in RecordQuizCompletion.
func Percentage(score, total int) (int, error) {
	if total <= 0 {
		return 0, ErrNoQuestions
	}
	return int(math.Round(float64(score) / float64(total) * 100)), nil
}

// StudyStreak counts consecutive calendar days, ending today, on which at
// least one quiz was finished. Days are taken in now's location and only the
// last 30 days are considered. No quiz today means no streak.
func StudyStreak(history []QuizResult, now time.Time) int {
	today := startOfDay(now)
	windowStart := today.AddDate(0, 0, -streakWindowDays)

	days := make(map[time.Time]struct{})
	for _, result := range history {
		day := startOfDay(result.Date.In(now.Location()))
		if day.Before(windowStart) || day.After(today) {
			continue
		}
		days[day] = struct{}{}
	}

	streak := 0
	for day := today; ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// prepend adds result in front and drops the oldest entries beyond HistoryLimit.
func prepend(history []QuizResult, result QuizResult) []QuizResult {
	history = slices.Insert(slices.Clone(history), 0, result)
	if len(history) > HistoryLimit {
		history = history[:HistoryLimit]
	}
	return history
}
