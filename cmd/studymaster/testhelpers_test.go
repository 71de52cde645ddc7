package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studymaster/internal/testutil"
	"github.com/at-ishikawa/studymaster/internal/workspace"
)

var fixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// executeCommand runs the root command with args and stdin, and returns everything written to stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setNow(t *testing.T, fixed time.Time) {
	t.Helper()
	oldNow := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = oldNow })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

func workspacePath(tmpDir string) string {
	return filepath.Join(tmpDir, "workspace", "workspace.json")
}

// setupWorkspace writes a config and a workspace holding a "Biology" set with
// two flashcards and two quiz questions.
func setupWorkspace(t *testing.T) (tmpDir string, cfgPath string) {
	t.Helper()
	tmpDir = t.TempDir()
	cfgPath = testutil.SetupTestConfig(t, tmpDir)
	testutil.CreateWorkspace(t, workspacePath(tmpDir), testutil.NewStudySet("set-1", "Biology", 2, 2))
	return tmpDir, cfgPath
}

// openTestWorkspace opens the workspace of tmpDir and closes it when the test ends.
func openTestWorkspace(t *testing.T, tmpDir string) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.Open(workspacePath(tmpDir))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ws.Close()
	})
	return ws
}
