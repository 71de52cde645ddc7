package studyset

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	FlashcardSheet = "Flashcards"
	QuizSheet      = "Quiz"
)

// ImportSpreadsheet reads manually written content from a workbook.
// The "Flashcards" sheet has question and answer columns; the "Quiz" sheet
// has a question, four options and the correct option as A-D or 1-4.
// The first row of each sheet is a header. Missing sheets are skipped.
func ImportSpreadsheet(path string) ([]Flashcard, []QuizQuestion, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("excelize.OpenFile(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	var flashcards []Flashcard
	if slices.Contains(sheets, FlashcardSheet) {
		rows, err := f.GetRows(FlashcardSheet)
		if err != nil {
			return nil, nil, fmt.Errorf("f.GetRows(%s) > %w", FlashcardSheet, err)
		}
		flashcards = parseFlashcardRows(rows)
	}

	var questions []QuizQuestion
	if slices.Contains(sheets, QuizSheet) {
		rows, err := f.GetRows(QuizSheet)
		if err != nil {
			return nil, nil, fmt.Errorf("f.GetRows(%s) > %w", QuizSheet, err)
		}
		questions, err = parseQuizRows(rows)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := Validate(flashcards, questions); err != nil {
		return nil, nil, err
	}
	return flashcards, questions, nil
}

func parseFlashcardRows(rows [][]string) []Flashcard {
	var flashcards []Flashcard
	for _, row := range skipHeader(rows) {
		if isBlank(row) {
			continue
		}
		flashcards = append(flashcards, Flashcard{
			Question:  cell(row, 0),
			Answer:    cell(row, 1),
			CreatedBy: CreatedByImport,
		})
	}
	return flashcards
}

func parseQuizRows(rows [][]string) ([]QuizQuestion, error) {
	var questions []QuizQuestion
	for i, row := range skipHeader(rows) {
		if isBlank(row) {
			continue
		}
		correct, err := ParseCorrectOption(cell(row, 5))
		if err != nil {
			// +2 for the header and one-based row numbers
			return nil, fmt.Errorf("%w: %s row %d: %w", ErrInvalidContent, QuizSheet, i+2, err)
		}
		questions = append(questions, QuizQuestion{
			Question:  cell(row, 0),
			Options:   []string{cell(row, 1), cell(row, 2), cell(row, 3), cell(row, 4)},
			Correct:   correct,
			CreatedBy: CreatedByImport,
		})
	}
	return questions, nil
}

// ParseCorrectOption parses a right-option marker given as a letter (A-D) or
// a 1-based number into an option index.
func ParseCorrectOption(value string) (int, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if len(value) == 1 && value[0] >= 'A' && value[0] < 'A'+OptionCount {
		return int(value[0] - 'A'), nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > OptionCount {
		return 0, fmt.Errorf("correct option %q is not A-D or 1-4", value)
	}
	return n - 1, nil
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func isBlank(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
