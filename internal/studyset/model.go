// Package studyset models study sets: the flashcards and quiz questions
// generated from one piece of study material.
package studyset

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	CreatedByAI     = "ai"
	CreatedByManual = "manual"
	CreatedByImport = "import"

	// OptionCount is the number of answer options of every quiz question.
	OptionCount = 4
)

var ErrInvalidContent = errors.New("invalid study content")

// Flashcard is a question/answer pair reviewed by self-assessment.
type Flashcard struct {
	Question  string   `json:"question" yaml:"question" validate:"required"`
	Answer    string   `json:"answer" yaml:"answer" validate:"required"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedBy string   `json:"createdBy,omitempty" yaml:"created_by,omitempty"`
}

// QuizQuestion is a single-best-answer question with four options.
// Correct is the zero-based index of the right option.
type QuizQuestion struct {
	Question  string   `json:"question" yaml:"question" validate:"required"`
	Options   []string `json:"options" yaml:"options" validate:"len=4,dive,required"`
	Correct   int      `json:"correct" yaml:"correct" validate:"min=0,max=3"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedBy string   `json:"createdBy,omitempty" yaml:"created_by,omitempty"`
}

// IsCorrect reports whether the option at index answers the question.
func (q QuizQuestion) IsCorrect(index int) bool {
	return index == q.Correct
}

// CorrectOption returns the text of the right option.
func (q QuizQuestion) CorrectOption() string {
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return ""
	}
	return q.Options[q.Correct]
}

// Set is a titled collection of flashcards and quiz questions.
type Set struct {
	ID            string         `json:"id" yaml:"id"`
	Title         string         `json:"title" yaml:"title"`
	Category      string         `json:"category" yaml:"category"`
	Flashcards    []Flashcard    `json:"flashcards" yaml:"flashcards"`
	QuizQuestions []QuizQuestion `json:"quizQuestions" yaml:"quiz_questions"`
	Created       time.Time      `json:"created" yaml:"created"`
	LastStudied   *time.Time     `json:"lastStudied" yaml:"last_studied"`
	StudyCount    int            `json:"studyCount" yaml:"study_count"`
}

// CardIDs returns the item identifiers of every flashcard in the set.
func (s Set) CardIDs() []string {
	ids := make([]string, 0, len(s.Flashcards))
	for i := range s.Flashcards {
		ids = append(ids, CardID(s.ID, i))
	}
	return ids
}

var validate = validator.New()

// Validate checks that every flashcard and question is complete.
func Validate(flashcards []Flashcard, questions []QuizQuestion) error {
	var problems []string
	for i, card := range flashcards {
		if err := validate.Struct(card); err != nil {
			problems = append(problems, fmt.Sprintf("flashcards[%d]: %s", i, describe(err)))
		}
	}
	for i, question := range questions {
		if err := validate.Struct(question); err != nil {
			problems = append(problems, fmt.Sprintf("quiz[%d]: %s", i, describe(err)))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(problems, "; "))
	}
	return nil
}

func describe(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		if e.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed %s=%s", field, e.Tag(), e.Param()))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s failed %s", field, e.Tag()))
	}
	return strings.Join(messages, ", ")
}
