// Package testutil provides shared test helpers for creating config files and workspace fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studymaster/internal/studyset"
	"github.com/at-ishikawa/studymaster/internal/workspace"
)

// SetupTestConfig creates a minimal config file and all required directories for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"workspace", "pdf", "export"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`workspace:
  file: %s
database:
  driver: sqlite
  path: %s
outputs:
  pdf_directory: %s
  export_directory: %s
`,
		filepath.Join(tmpDir, "workspace", "workspace.json"),
		filepath.Join(tmpDir, "studymaster.db"),
		filepath.Join(tmpDir, "pdf"),
		filepath.Join(tmpDir, "export"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithProvider creates a config file pointing the AI client at baseURL
// with a fake API key.
func SetupTestConfigWithProvider(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte(fmt.Sprintf("ai:\n  api_key: fake-key-for-testing\n  base_url: %s\n  retry_attempts: 0\n", baseURL))...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// StudySetOption configures optional fields when creating a study set fixture.
type StudySetOption func(*studyset.Set)

// WithCategory sets the category of the study set.
func WithCategory(category string) StudySetOption {
	return func(set *studyset.Set) {
		set.Category = category
	}
}

// WithCreated sets the creation time of the study set.
func WithCreated(created time.Time) StudySetOption {
	return func(set *studyset.Set) {
		set.Created = created
	}
}

// NewStudySet returns a set with the given number of numbered flashcards and quiz questions.
// The first option of every question is the correct one.
func NewStudySet(id, title string, flashcards, questions int, opts ...StudySetOption) studyset.Set {
	set := studyset.Set{
		ID:       id,
		Title:    title,
		Category: studyset.DefaultCategory,
		Created:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for i := range flashcards {
		set.Flashcards = append(set.Flashcards, studyset.Flashcard{
			Question:  fmt.Sprintf("Question %d", i+1),
			Answer:    fmt.Sprintf("Answer %d", i+1),
			CreatedBy: studyset.CreatedByManual,
		})
	}
	for i := range questions {
		set.QuizQuestions = append(set.QuizQuestions, studyset.QuizQuestion{
			Question:  fmt.Sprintf("Quiz %d", i+1),
			Options:   []string{fmt.Sprintf("Right %d", i+1), "Wrong A", "Wrong B", "Wrong C"},
			Correct:   0,
			CreatedBy: studyset.CreatedByManual,
		})
	}
	for _, opt := range opts {
		opt(&set)
	}
	return set
}

// CreateWorkspace writes a workspace file at path containing sets.
func CreateWorkspace(t *testing.T, path string, sets ...studyset.Set) {
	t.Helper()

	ws, err := workspace.Open(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, ws.Close())
	}()

	for _, set := range sets {
		ws.Library().Put(set)
	}
	require.NoError(t, ws.Save())
}
