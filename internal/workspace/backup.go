package workspace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/at-ishikawa/studymaster/internal/statistics"
	"github.com/at-ishikawa/studymaster/internal/studyset"
)

var ErrInvalidBackup = errors.New("file is neither a backup nor an exported study set")

// Backup is the file format of a full export.
type Backup struct {
	CardSets   map[string]studyset.Set `json:"cardSets"`
	Categories []string                `json:"categories,omitempty"`
	Statistics *statistics.Statistics  `json:"statistics,omitempty"`
	ExportedAt time.Time               `json:"exportedAt"`
	Version    string                  `json:"version"`
}

// BackupFileName is the default name of a full export made at now.
func BackupFileName(now time.Time) string {
	return fmt.Sprintf("StudyMaster_Backup_%s.json", now.Format(time.DateOnly))
}

// ExportAll writes all sets, categories and statistics as indented JSON.
func (w *Workspace) ExportAll(out io.Writer, now time.Time) error {
	stats := w.aggregator.Statistics()
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(Backup{
		CardSets:   w.library.Sets(),
		Categories: w.library.Categories(),
		Statistics: &stats,
		ExportedAt: now,
		Version:    studyset.ExportVersion,
	}); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	return nil
}

// ImportResult describes what an import changed.
type ImportResult struct {
	FullBackup bool
	Sets       []studyset.Set
}

type importFile struct {
	CardSets   map[string]studyset.Set `json:"cardSets"`
	Categories []string                `json:"categories"`
	Statistics *statistics.Statistics  `json:"statistics"`
	Flashcards []studyset.Flashcard    `json:"flashcards"`
	studyset.Set
}

// Import reads either a full backup or a single exported set.
// A backup merges its sets by id, adds its categories and replaces the
// statistics. A single set is stored under a new id.
func (w *Workspace) Import(in io.Reader, now time.Time) (ImportResult, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return ImportResult{}, fmt.Errorf("io.ReadAll() > %w", err)
	}

	var file importFile
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&file); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	switch {
	case file.CardSets != nil:
		result := ImportResult{FullBackup: true}
		for _, set := range file.CardSets {
			w.library.Put(set)
			result.Sets = append(result.Sets, set)
		}
		slices.SortFunc(result.Sets, func(a, b studyset.Set) int {
			return strings.Compare(a.ID, b.ID)
		})
		for _, category := range file.Categories {
			if err := w.library.AddCategory(category); err != nil {
				return ImportResult{}, fmt.Errorf("library.AddCategory(%s) > %w", category, err)
			}
		}
		if file.Statistics != nil {
			w.aggregator.Replace(*file.Statistics)
		}
		return result, nil
	case file.Flashcards != nil:
		exported := file.Set
		exported.Flashcards = file.Flashcards
		set, err := w.library.ImportSet(exported, now)
		if err != nil {
			return ImportResult{}, fmt.Errorf("library.ImportSet() > %w", err)
		}
		return ImportResult{Sets: []studyset.Set{set}}, nil
	default:
		return ImportResult{}, ErrInvalidBackup
	}
}
