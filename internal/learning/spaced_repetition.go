package learning

import (
	"math"
	"time"
)

// UpdateCardProgress returns the progress of a flashcard after one
// self-assessed review. A nil current progress means the card was never
// reviewed.
//
// A correct answer raises the difficulty level by one (capped at 5) and
// schedules the card 2^(difficulty-1) days out. A wrong answer drops the level
// by one (floored at 1) and brings the card back after one day.
func UpdateCardProgress(current *CardProgress, wasCorrect bool, now time.Time) CardProgress {
	next := CardProgress{Difficulty: MinCardDifficulty}
	if current != nil {
		next = *current
	}

	next.ReviewCount++
	if wasCorrect {
		next.CorrectCount++
	}
	next.LastReviewed = now

	if wasCorrect {
		next.Difficulty = min(next.Difficulty+1, MaxCardDifficulty)
		next.NextReview = now.Add(cardInterval(next.Difficulty))
		return next
	}

	next.Difficulty = max(next.Difficulty-1, MinCardDifficulty)
	next.NextReview = now.Add(day)
	return next
}

func cardInterval(difficulty int) time.Duration {
	return time.Duration(math.Pow(2, float64(difficulty-1))) * day
}

// DueCards returns the ids whose cards are eligible for review at now.
// Cards without progress are always due.
func DueCards(ids []string, store *Store, now time.Time) []string {
	var due []string
	for _, id := range ids {
		progress, ok := store.Card(id)
		if ok && !progress.IsDue(now) {
			continue
		}
		due = append(due, id)
	}
	return due
}
