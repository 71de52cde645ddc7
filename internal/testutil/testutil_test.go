package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studymaster/internal/config"
	"github.com/at-ishikawa/studymaster/internal/studyset"
	"github.com/at-ishikawa/studymaster/internal/workspace"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	for _, d := range []string{"workspace", "pdf", "export"} {
		info, err := os.Stat(filepath.Join(tmpDir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	cfg, err := config.Load(got)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "workspace", "workspace.json"), cfg.Workspace.File)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, filepath.Join(tmpDir, "pdf"), cfg.Outputs.PDFDirectory)
}

func TestSetupTestConfigWithProvider(t *testing.T) {
	t.Setenv("STUDYMASTER_AI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	got := SetupTestConfigWithProvider(t, t.TempDir(), "http://127.0.0.1:9999")

	cfg, err := config.Load(got)
	require.NoError(t, err)
	assert.Equal(t, "fake-key-for-testing", cfg.AI.APIKey)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.AI.BaseURL)
	assert.Zero(t, cfg.AI.RetryAttempts)
}

func TestNewStudySet(t *testing.T) {
	set := NewStudySet("set1", "Biology", 2, 3, WithCategory("Science"))

	assert.Equal(t, "Science", set.Category)
	require.Len(t, set.Flashcards, 2)
	require.Len(t, set.QuizQuestions, 3)
	assert.Equal(t, "Right 3", set.QuizQuestions[2].CorrectOption())
	assert.NoError(t, studyset.Validate(set.Flashcards, set.QuizQuestions))
}

func TestCreateWorkspace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.json")
	CreateWorkspace(t, path,
		NewStudySet("set1", "Biology", 1, 1, WithCategory("Science")),
		NewStudySet("set2", "History", 1, 0),
	)

	ws, err := workspace.Open(path)
	require.NoError(t, err)
	defer ws.Close()

	assert.Equal(t, 2, ws.Library().Len())
	assert.Contains(t, ws.Library().Categories(), "Science")
	set, err := ws.Library().Get("set1")
	require.NoError(t, err)
	assert.Equal(t, "Biology", set.Title)
}
