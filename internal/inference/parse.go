package inference

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/at-ishikawa/studymaster/internal/studyset"
)

var ErrMalformedContent = errors.New("malformed AI content")

var (
	openingFence = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	closingFence = regexp.MustCompile("\\s*```$")
	controlChars = regexp.MustCompile(`[\x{0000}-\x{001F}\x{007F}-\x{009F}]`)
)

type rawContent struct {
	Flashcards []rawFlashcard `json:"flashcards"`
	Quiz       []rawQuestion  `json:"quiz"`
}

type rawFlashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type rawQuestion struct {
	Question string          `json:"question"`
	Options  []string        `json:"options"`
	Correct  json.RawMessage `json:"correct"`
}

// ParseContent decodes the text of an AI answer into validated content.
// Markdown code fences are stripped first. When the text still is not valid
// JSON, the first complete object is extracted, control characters are
// removed and single quotes are turned into double quotes before one more try.
func ParseContent(text string) (Content, error) {
	cleaned := stripFences(text)

	var decoded rawContent
	if err := decode(cleaned, &decoded); err != nil {
		slog.Default().Debug("AI content is not valid JSON, retrying after cleanup",
			"error", err,
		)
		cleaned = extractObject(cleaned)
		cleaned = controlChars.ReplaceAllString(cleaned, "")
		cleaned = strings.ReplaceAll(cleaned, "'", `"`)
		decoded = rawContent{}
		if err := decode(cleaned, &decoded); err != nil {
			return Content{}, fmt.Errorf("%w: json.Unmarshal(%s) > %w", ErrMalformedContent, text, err)
		}
	}

	content, err := decoded.toContent()
	if err != nil {
		return Content{}, fmt.Errorf("%w: %w", ErrMalformedContent, err)
	}
	return content, nil
}

func decode(text string, v *rawContent) error {
	decoder := json.NewDecoder(strings.NewReader(text))
	return decoder.Decode(v)
}

func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = openingFence.ReplaceAllString(cleaned, "")
	cleaned = closingFence.ReplaceAllString(cleaned, "")
	return cleaned
}

// extractObject returns the first balanced JSON object in text, or text
// itself when there is none.
func extractObject(text string) string {
	firstBrace := -1
	braceCount := 0
	inString := false
	escapeNext := false

	for i, ch := range text {
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case '{':
			if firstBrace == -1 {
				firstBrace = i
			}
			braceCount++
		case '}':
			if firstBrace == -1 {
				continue
			}
			braceCount--
			if braceCount == 0 {
				return text[firstBrace : i+1]
			}
		}
	}
	return text
}

func (r rawContent) toContent() (Content, error) {
	if len(r.Flashcards) == 0 && len(r.Quiz) == 0 {
		return Content{}, errors.New("neither flashcards nor quiz questions were generated")
	}

	content := Content{
		Flashcards: make([]studyset.Flashcard, 0, len(r.Flashcards)),
		Quiz:       make([]studyset.QuizQuestion, 0, len(r.Quiz)),
	}
	for _, card := range r.Flashcards {
		content.Flashcards = append(content.Flashcards, studyset.Flashcard{
			Question: strings.TrimSpace(card.Question),
			Answer:   strings.TrimSpace(card.Answer),
		})
	}
	for i, question := range r.Quiz {
		correct, err := resolveCorrect(question.Correct, question.Options)
		if err != nil {
			return Content{}, fmt.Errorf("quiz[%d]: %w", i, err)
		}
		content.Quiz = append(content.Quiz, studyset.QuizQuestion{
			Question: strings.TrimSpace(question.Question),
			Options:  question.Options,
			Correct:  correct,
		})
	}

	if err := studyset.Validate(content.Flashcards, content.Quiz); err != nil {
		return Content{}, err
	}
	return content, nil
}

// resolveCorrect accepts the correct option as a zero-based index, a letter
// A-D, or the text of the option itself.
func resolveCorrect(raw json.RawMessage, options []string) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errors.New("correct option is missing")
	}

	var index int
	if err := json.Unmarshal(raw, &index); err == nil {
		return index, nil
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("correct option %s is neither a number nor a string", raw)
	}
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	if len(value) == 1 {
		letter := strings.ToUpper(value)[0]
		if letter >= 'A' && letter < 'A'+studyset.OptionCount {
			return int(letter - 'A'), nil
		}
	}
	for i, option := range options {
		if strings.EqualFold(strings.TrimSpace(option), value) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("correct option %q does not match any option", value)
}
