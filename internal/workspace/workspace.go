package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gofrs/flock"

	"github.com/at-ishikawa/studymaster/internal/learning"
	"github.com/at-ishikawa/studymaster/internal/statistics"
	"github.com/at-ishikawa/studymaster/internal/studyset"
)

var ErrLocked = errors.New("workspace is locked by another process")

// Workspace is an opened state file. It holds an exclusive lock on the file
// until Close is called.
type Workspace struct {
	path string
	lock *flock.Flock

	library    *studyset.Library
	store      *learning.Store
	aggregator *statistics.Aggregator
	tags       []string
}

// Open locks and loads the workspace at path. The file is created on the
// first Save when it does not exist yet.
func Open(path string) (*Workspace, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock.TryLock(%s) > %w", lock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	state, err := readState(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("readState() > %w", err)
	}
	slog.Default().Debug("opened workspace",
		"path", path,
		"sets", len(state.CardSets),
		"cardProgress", len(state.CardProgress),
		"quizProgress", len(state.QuizProgress),
	)

	w := newWorkspace(state)
	w.path = path
	w.lock = lock
	return w, nil
}

func newWorkspace(state State) *Workspace {
	return &Workspace{
		library:    studyset.NewLibraryFrom(state.CardSets, state.Categories),
		store:      learning.NewStoreFrom(state.CardProgress, state.QuizProgress),
		aggregator: statistics.NewAggregator(state.Statistics, state.QuizHistory),
		tags:       slices.Clone(state.Tags),
	}
}

func (w *Workspace) Path() string {
	return w.path
}

func (w *Workspace) Library() *studyset.Library {
	return w.library
}

func (w *Workspace) Store() *learning.Store {
	return w.store
}

func (w *Workspace) Aggregator() *statistics.Aggregator {
	return w.aggregator
}

// Tracker returns a progress tracker over the workspace store.
func (w *Workspace) Tracker(clock learning.Clock) *learning.Tracker {
	return learning.NewTracker(w.store, clock)
}

// State snapshots the workspace for persistence or export.
func (w *Workspace) State() State {
	return State{
		CardSets:     w.library.Sets(),
		Categories:   w.library.Categories(),
		Statistics:   w.aggregator.Statistics(),
		QuizHistory:  w.aggregator.History(),
		CardProgress: w.store.Cards(),
		QuizProgress: w.store.Questions(),
		Tags:         slices.Clone(w.tags),
	}
}

func (w *Workspace) Save() error {
	if err := writeState(w.path, w.State()); err != nil {
		return fmt.Errorf("writeState() > %w", err)
	}
	return nil
}

// Close releases the file lock without saving.
func (w *Workspace) Close() error {
	if w.lock == nil {
		return nil
	}
	if err := w.lock.Unlock(); err != nil {
		return fmt.Errorf("lock.Unlock() > %w", err)
	}
	return nil
}

// DeleteSet removes a set together with the progress of its items.
func (w *Workspace) DeleteSet(id string) error {
	if err := w.library.Delete(id); err != nil {
		return fmt.Errorf("library.Delete(%s) > %w", id, err)
	}
	removed := w.store.DeleteWithPrefix(studyset.SetPrefix(id))
	slog.Default().Debug("deleted study set",
		"id", id,
		"progressRecords", removed,
	)
	return nil
}

func (w *Workspace) Tags() []string {
	return slices.Clone(w.tags)
}

// AddTags registers tags that are not known yet.
func (w *Workspace) AddTags(tags ...string) {
	for _, tag := range tags {
		if tag != "" && !slices.Contains(w.tags, tag) {
			w.tags = append(w.tags, tag)
		}
	}
}

// RefreshStatistics recomputes derived counters as of now.
func (w *Workspace) RefreshStatistics(now time.Time) statistics.Statistics {
	return w.aggregator.Refresh(now)
}
