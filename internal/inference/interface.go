package inference

import (
	"context"

	"github.com/at-ishikawa/studymaster/internal/studyset"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_generator.go -package=mock_inference

// Generator turns study material into flashcards and quiz questions.
type Generator interface {
	GenerateContent(ctx context.Context, text string) (Content, error)
}

// Completer relays study material to the provider and returns the
// provider's chat completion body unchanged.
type Completer interface {
	Complete(ctx context.Context, text string) ([]byte, error)
}

// Content is AI generated material that passed validation.
type Content struct {
	Flashcards []studyset.Flashcard    `json:"flashcards"`
	Quiz       []studyset.QuizQuestion `json:"quiz"`
}

// Annotate marks every item as AI generated and attaches tags.
func (c Content) Annotate(tags []string) Content {
	annotated := Content{
		Flashcards: make([]studyset.Flashcard, len(c.Flashcards)),
		Quiz:       make([]studyset.QuizQuestion, len(c.Quiz)),
	}
	for i, card := range c.Flashcards {
		card.CreatedBy = studyset.CreatedByAI
		card.Tags = tags
		annotated.Flashcards[i] = card
	}
	for i, question := range c.Quiz {
		question.CreatedBy = studyset.CreatedByAI
		question.Tags = tags
		annotated.Quiz[i] = question
	}
	return annotated
}

const (
	DefaultMaxRetryAttempts = 3
)
