package learning

import (
	"math"
	"time"
)

const (
	questionDifficultyStep   = 0.5
	questionDifficultyLapse  = 0.8
	questionIntervalBase     = 1.8
	questionRelearnUnit      = 12 * time.Hour
	minQuestionRelearnFactor = 1.0
)

// UpdateQuestionProgress returns the progress of a quiz question after one
// graded answer. timeTaken is the answer time in seconds and feeds the running
// mean in AverageTime; negative values count as 0.
//
// Correct answers reset the incorrect streak, raise the difficulty by 0.5 and
// schedule the question 1.8^(difficulty-1) days out. Wrong answers extend the
// streak, lower the difficulty by 0.8 (floored at 0.5) and bring the question
// back after max(1, difficulty) * 12 hours.
func UpdateQuestionProgress(current *QuizProgress, wasCorrect bool, timeTaken float64, now time.Time) QuizProgress {
	next := QuizProgress{Difficulty: 1}
	if current != nil {
		next = *current
	}
	if timeTaken < 0 {
		timeTaken = 0
	}

	previousCount := next.AnswerCount
	next.AnswerCount++
	next.AverageTime = (next.AverageTime*float64(previousCount) + timeTaken) / float64(next.AnswerCount)
	next.LastAnswered = now

	if wasCorrect {
		next.CorrectCount++
		next.IncorrectStreak = 0
		// The streak was just reset, so a correct answer always raises the difficulty.
		next.Difficulty = math.Min(next.Difficulty+questionDifficultyStep, MaxQuestionDifficulty)
		next.NextReview = now.Add(questionInterval(next.Difficulty))
		return next
	}

	next.IncorrectStreak++
	next.Difficulty = math.Max(next.Difficulty-questionDifficultyLapse, MinQuestionDifficulty)
	next.NextReview = now.Add(time.Duration(math.Max(minQuestionRelearnFactor, next.Difficulty) * float64(questionRelearnUnit)))
	return next
}

func questionInterval(difficulty float64) time.Duration {
	return time.Duration(math.Pow(questionIntervalBase, difficulty-1) * float64(day))
}
