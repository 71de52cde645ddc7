package learning

import "time"

// Clock supplies the current time to the Tracker.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// Tracker binds a Store to a Clock so callers can record answers without
// passing the time around. The update rules themselves stay pure.
type Tracker struct {
	store *Store
	clock Clock
}

func NewTracker(store *Store, clock Clock) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Tracker{
		store: store,
		clock: clock,
	}
}

// Store returns the underlying progress store.
func (t *Tracker) Store() *Store {
	return t.store
}

// Now returns the tracker's current time.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// ReviewCard records a flashcard review and returns the stored progress.
func (t *Tracker) ReviewCard(id string, wasCorrect bool) CardProgress {
	var current *CardProgress
	if progress, ok := t.store.Card(id); ok {
		current = &progress
	}
	next := UpdateCardProgress(current, wasCorrect, t.clock.Now())
	t.store.SetCard(id, next)
	return next
}

// AnswerQuestion records a quiz answer and returns the stored progress.
func (t *Tracker) AnswerQuestion(id string, wasCorrect bool, timeTaken float64) QuizProgress {
	var current *QuizProgress
	if progress, ok := t.store.Question(id); ok {
		current = &progress
	}
	next := UpdateQuestionProgress(current, wasCorrect, timeTaken, t.clock.Now())
	t.store.SetQuestion(id, next)
	return next
}

// QuestionDifficulty returns the difficulty of a question, 1 when it was
// never answered.
func (t *Tracker) QuestionDifficulty(id string) float64 {
	if progress, ok := t.store.Question(id); ok {
		return progress.Difficulty
	}
	return 1
}
