package studyset

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// ExportVersion is written into every exported file.
const ExportVersion = "1.0"

// SetExport is the file format of a single exported set.
type SetExport struct {
	Set
	ExportedAt time.Time `json:"exportedAt"`
	Version    string    `json:"version"`
}

// ExportSet writes one set as indented JSON.
func ExportSet(w io.Writer, set Set, now time.Time) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(SetExport{Set: set, ExportedAt: now, Version: ExportVersion}); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	return nil
}

var whitespace = regexp.MustCompile(`\s+`)

// ExportFileName derives a file name from the set title.
func ExportFileName(set Set) string {
	title := strings.TrimSpace(set.Title)
	if title == "" {
		title = set.ID
	}
	return whitespace.ReplaceAllString(title, "_") + "_flashcards.json"
}

// ImportSet stores an exported set under a fresh id with its study history reset.
func (l *Library) ImportSet(exported Set, now time.Time) (Set, error) {
	title := exported.Title
	if strings.TrimSpace(title) == "" {
		title = ImportedTitle
	}
	flashcards := make([]Flashcard, len(exported.Flashcards))
	for i, card := range exported.Flashcards {
		if card.CreatedBy == "" {
			card.CreatedBy = CreatedByImport
		}
		flashcards[i] = card
	}
	questions := make([]QuizQuestion, len(exported.QuizQuestions))
	for i, question := range exported.QuizQuestions {
		if question.CreatedBy == "" {
			question.CreatedBy = CreatedByImport
		}
		questions[i] = question
	}
	if err := Validate(flashcards, questions); err != nil {
		return Set{}, err
	}
	set, err := l.Save(title, exported.Category, flashcards, questions, now)
	if err != nil {
		return Set{}, fmt.Errorf("l.Save() > %w", err)
	}
	return set, nil
}
