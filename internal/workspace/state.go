// Package workspace persists everything a learner owns in a single file:
// study sets, progress records, statistics and quiz history.
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studymaster/internal/learning"
	"github.com/at-ishikawa/studymaster/internal/statistics"
	"github.com/at-ishikawa/studymaster/internal/studyset"
)

var ErrUnsupportedFormat = errors.New("unsupported workspace file format")

// State is the persisted form of a workspace.
type State struct {
	CardSets     map[string]studyset.Set          `json:"cardSets" yaml:"card_sets"`
	Categories   []string                         `json:"categories" yaml:"categories"`
	Statistics   statistics.Statistics            `json:"statistics" yaml:"statistics"`
	QuizHistory  []statistics.QuizResult          `json:"quizHistory" yaml:"quiz_history"`
	CardProgress map[string]learning.CardProgress `json:"cardProgress" yaml:"card_progress"`
	QuizProgress map[string]learning.QuizProgress `json:"quizProgress" yaml:"quiz_progress"`
	Tags         []string                         `json:"tags" yaml:"tags"`
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yml", ".yaml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// readState loads the state at path. A missing file is an empty state.
func readState(path string) (State, error) {
	f, err := formatOf(path)
	if err != nil {
		return State{}, err
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var state State
	switch f {
	case formatYAML:
		err = yaml.NewDecoder(file).Decode(&state)
	default:
		err = json.NewDecoder(file).Decode(&state)
	}
	if errors.Is(err, io.EOF) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("decode(%s) > %w", path, err)
	}
	return state, nil
}

// writeState replaces the file at path through a temporary file in the same directory.
func writeState(path string, state State) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp() > %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	switch f {
	case formatYAML:
		encoder := yaml.NewEncoder(tmp)
		if err = encoder.Encode(state); err == nil {
			err = encoder.Close()
		}
	default:
		encoder := json.NewEncoder(tmp)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(state)
	}
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode(%s) > %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close() > %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", path, err)
	}
	return nil
}
