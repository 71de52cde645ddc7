package assets

import (
	"fmt"
	"io"

	"github.com/at-ishikawa/studymaster/internal/studyset"
)

// StudySetTemplate is the data passed to a study set template
type StudySetTemplate struct {
	Title      string
	Category   string
	Tags       []string
	Flashcards []studyset.Flashcard
	Questions  []studyset.QuizQuestion
}

// NewStudySetTemplate builds the template data of a set
func NewStudySetTemplate(set studyset.Set, tags []string) StudySetTemplate {
	return StudySetTemplate{
		Title:      set.Title,
		Category:   set.Category,
		Tags:       tags,
		Flashcards: set.Flashcards,
		Questions:  set.QuizQuestions,
	}
}

func WriteStudySet(output io.Writer, templatePath string, templateData StudySetTemplate) error {
	tmpl, err := ParseStudySetTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseStudySetTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
