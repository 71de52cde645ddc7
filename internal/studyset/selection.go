package studyset

import "fmt"

// ContentSelection decides which generated content is kept for a new set.
type ContentSelection string

const (
	SelectBoth       ContentSelection = "both"
	SelectFlashcards ContentSelection = "flashcards"
	SelectQuiz       ContentSelection = "quiz"
)

// ParseContentSelection validates a user supplied selection.
func ParseContentSelection(value string) (ContentSelection, error) {
	switch selection := ContentSelection(value); selection {
	case SelectBoth, SelectFlashcards, SelectQuiz:
		return selection, nil
	case "":
		return SelectBoth, nil
	default:
		return "", fmt.Errorf("unknown content selection %q, expected both, flashcards or quiz", value)
	}
}

// Apply drops the content kinds the selection excludes.
func (s ContentSelection) Apply(flashcards []Flashcard, questions []QuizQuestion) ([]Flashcard, []QuizQuestion) {
	switch s {
	case SelectFlashcards:
		return flashcards, nil
	case SelectQuiz:
		return nil, questions
	default:
		return flashcards, questions
	}
}
