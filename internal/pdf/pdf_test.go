package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studymaster/internal/studyset"
)

func TestConvertMarkdownToPDF(t *testing.T) {
	tests := []struct {
		name          string
		markdownPath  string
		setupFile     func(t *testing.T) string
		wantErr       bool
		wantErrMsg    string
		validateAfter func(t *testing.T, pdfPath string)
	}{
		{
			name:         "invalid extension",
			markdownPath: "test.txt",
			wantErr:      true,
			wantErrMsg:   "input file must have .md extension",
		},
		{
			name:         "file not found",
			markdownPath: "nonexistent.md",
			wantErr:      true,
			wantErrMsg:   "os.ReadFile",
		},
		{
			name: "successful conversion",
			setupFile: func(t *testing.T) string {
				mdPath := filepath.Join(t.TempDir(), "test.md")
				content := []byte("# Test Set\n\n**1. What is a cell?**\n\nThe basic unit of life\n")
				require.NoError(t, os.WriteFile(mdPath, content, 0644))
				return mdPath
			},
			validateAfter: func(t *testing.T, pdfPath string) {
				_, err := os.Stat(pdfPath)
				assert.NoError(t, err, "PDF file should be created")
				assert.Equal(t, ".pdf", filepath.Ext(pdfPath))
				assert.True(t, filepath.IsAbs(pdfPath))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mdPath := tt.markdownPath
			if tt.setupFile != nil {
				mdPath = tt.setupFile(t)
			}

			pdfPath, err := ConvertMarkdownToPDF(mdPath)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			if tt.validateAfter != nil {
				tt.validateAfter(t, pdfPath)
			}
		})
	}
}

func TestRenderSet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs")
	set := studyset.Set{
		Title:    "Cell Biology",
		Category: "Science",
		Flashcards: []studyset.Flashcard{
			{Question: "What is a cell?", Answer: "The basic unit of life"},
		},
		QuizQuestions: []studyset.QuizQuestion{
			{Question: "Powerhouse of the cell?", Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi"}, Correct: 1},
		},
	}

	pdfPath, err := RenderSet(set, []string{"biology"}, dir, "")
	require.NoError(t, err)
	assert.Equal(t, "Cell_Biology.pdf", filepath.Base(pdfPath))

	markdown, err := os.ReadFile(filepath.Join(dir, "Cell_Biology.md"))
	require.NoError(t, err)
	assert.Contains(t, string(markdown), "# Cell Biology")
	assert.Contains(t, string(markdown), "1. B) Mitochondria")

	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestFileBaseName(t *testing.T) {
	assert.Equal(t, "Go_Basics", fileBaseName("  Go   Basics "))
	assert.Equal(t, "a_b", fileBaseName("a/b"))
	assert.Equal(t, "study_set", fileBaseName("   "))
}
