package studyset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cellName, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cellName, &row))
		}
	}
	path := filepath.Join(t.TempDir(), "content.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportSpreadsheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		FlashcardSheet: {
			{"Question", "Answer"},
			{"What is ATP?", "The energy currency of the cell"},
			{},
			{" Mitosis ", " Cell division "},
		},
		QuizSheet: {
			{"Question", "A", "B", "C", "D", "Correct"},
			{"Powerhouse of the cell?", "Nucleus", "Mitochondrion", "Ribosome", "Golgi", "b"},
			{"Carrier of genes?", "DNA", "ATP", "Lipid", "Glucose", 1},
		},
	})

	flashcards, questions, err := ImportSpreadsheet(path)
	require.NoError(t, err)
	assert.Equal(t, []Flashcard{
		{Question: "What is ATP?", Answer: "The energy currency of the cell", CreatedBy: CreatedByImport},
		{Question: "Mitosis", Answer: "Cell division", CreatedBy: CreatedByImport},
	}, flashcards)
	assert.Equal(t, []QuizQuestion{
		{
			Question:  "Powerhouse of the cell?",
			Options:   []string{"Nucleus", "Mitochondrion", "Ribosome", "Golgi"},
			Correct:   1,
			CreatedBy: CreatedByImport,
		},
		{
			Question:  "Carrier of genes?",
			Options:   []string{"DNA", "ATP", "Lipid", "Glucose"},
			Correct:   0,
			CreatedBy: CreatedByImport,
		},
	}, questions)
}

func TestImportSpreadsheet_Errors(t *testing.T) {
	t.Run("bad correct column", func(t *testing.T) {
		path := writeWorkbook(t, map[string][][]any{
			QuizSheet: {
				{"Question", "A", "B", "C", "D", "Correct"},
				{"q", "a", "b", "c", "d", "E"},
			},
		})
		_, _, err := ImportSpreadsheet(path)
		require.ErrorIs(t, err, ErrInvalidContent)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("missing answer", func(t *testing.T) {
		path := writeWorkbook(t, map[string][][]any{
			FlashcardSheet: {
				{"Question", "Answer"},
				{"q"},
			},
		})
		_, _, err := ImportSpreadsheet(path)
		assert.ErrorIs(t, err, ErrInvalidContent)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := ImportSpreadsheet(filepath.Join(t.TempDir(), "missing.xlsx"))
		assert.Error(t, err)
	})
}

func TestParseCorrectOption(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "A", want: 0},
		{value: "d", want: 3},
		{value: "2", want: 1},
		{value: " 4 ", want: 3},
		{value: "0", wantErr: true},
		{value: "5", wantErr: true},
		{value: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			got, err := ParseCorrectOption(tc.value)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
