package quiz

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/at-ishikawa/studymaster/internal/learning"
	"github.com/at-ishikawa/studymaster/internal/studyset"
)

const DefaultMaxQuestions = 10

// Candidate is a question that may be asked, with its stored progress.
// Progress is nil when the question was never answered.
type Candidate struct {
	ID       string
	Question studyset.QuizQuestion
	Progress *learning.QuizProgress
}

func (c Candidate) incorrectStreak() int {
	if c.Progress == nil {
		return 0
	}
	return c.Progress.IncorrectStreak
}

func (c Candidate) difficulty() float64 {
	if c.Progress == nil {
		return 1
	}
	return c.Progress.Difficulty
}

// Candidates pairs every question of a study set with its progress.
func Candidates(set studyset.Set, store *learning.Store) []Candidate {
	candidates := make([]Candidate, 0, len(set.QuizQuestions))
	for i, question := range set.QuizQuestions {
		id := studyset.QuestionID(set.ID, i)
		candidate := Candidate{ID: id, Question: question}
		if progress, ok := store.Question(id); ok {
			candidate.Progress = &progress
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

// Select builds an ordered batch of at most maxCount questions. maxCount <= 0
// means DefaultMaxQuestions. rng drives ModeRandom; nil uses the global source.
//
// An empty result is a valid outcome. Callers decide whether to fall back to
// another mode.
func Select(candidates []Candidate, mode Mode, maxCount int, now time.Time, rng *rand.Rand) ([]Candidate, error) {
	if maxCount <= 0 {
		maxCount = DefaultMaxQuestions
	}

	var selected []Candidate
	switch mode {
	case ModeAdaptive:
		selected = selectAdaptive(candidates, now)
	case ModeDifficult:
		selected = selectDifficult(candidates)
	case ModeRandom:
		selected = slices.Clone(candidates)
		shuffle(selected, rng)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	if len(selected) > maxCount {
		selected = selected[:maxCount]
	}
	return selected, nil
}

func selectAdaptive(candidates []Candidate, now time.Time) []Candidate {
	due := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Progress == nil || c.Progress.IsDue(now) {
			due = append(due, c)
		}
	}

	slices.SortStableFunc(due, func(a, b Candidate) int {
		if a.incorrectStreak() != b.incorrectStreak() {
			return b.incorrectStreak() - a.incorrectStreak()
		}
		return cmp.Compare(a.difficulty(), b.difficulty())
	})
	return due
}

func selectDifficult(candidates []Candidate) []Candidate {
	var difficult []Candidate
	for _, c := range candidates {
		if c.Progress != nil && c.Progress.IsDifficult() {
			difficult = append(difficult, c)
		}
	}

	slices.SortStableFunc(difficult, func(a, b Candidate) int {
		return cmp.Compare(a.Progress.Difficulty, b.Progress.Difficulty)
	})
	return difficult
}

func shuffle(candidates []Candidate, rng *rand.Rand) {
	swap := func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	if rng == nil {
		rand.Shuffle(len(candidates), swap)
		return
	}
	rng.Shuffle(len(candidates), swap)
}
