// Package datasync copies workspace progress and statistics between the
// workspace file and a SQL database.
package datasync

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/at-ishikawa/studymaster/internal/learning"
	"github.com/at-ishikawa/studymaster/internal/statistics"
	"github.com/at-ishikawa/studymaster/internal/workspace"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	CardsNew         int
	CardsUpdated     int
	CardsSkipped     int
	QuestionsNew     int
	QuestionsUpdated int
	QuestionsSkipped int
	QuizResults      int
	StatisticsSaved  bool
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer writes workspace state to the database.
type Importer struct {
	progressRepo   learning.ProgressRepository
	statisticsRepo statistics.Repository
	writer         io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(progressRepo learning.ProgressRepository, statisticsRepo statistics.Repository, writer io.Writer) *Importer {
	return &Importer{
		progressRepo:   progressRepo,
		statisticsRepo: statisticsRepo,
		writer:         writer,
	}
}

// Import writes progress records, quiz history and the statistics row.
// Rows that already exist with different values are only overwritten with
// UpdateExisting; identical rows are skipped silently.
func (imp *Importer) Import(ctx context.Context, state workspace.State, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult

	cards, err := imp.importCards(ctx, state.CardProgress, opts, &result)
	if err != nil {
		return nil, fmt.Errorf("importCards() > %w", err)
	}
	questions, err := imp.importQuestions(ctx, state.QuizProgress, opts, &result)
	if err != nil {
		return nil, fmt.Errorf("importQuestions() > %w", err)
	}
	result.QuizResults = len(state.QuizHistory)

	if opts.DryRun {
		return &result, nil
	}
	if err := imp.progressRepo.SaveCards(ctx, cards); err != nil {
		return nil, fmt.Errorf("SaveCards() > %w", err)
	}
	if err := imp.progressRepo.SaveQuestions(ctx, questions); err != nil {
		return nil, fmt.Errorf("SaveQuestions() > %w", err)
	}
	if err := imp.statisticsRepo.SaveResults(ctx, state.QuizHistory); err != nil {
		return nil, fmt.Errorf("SaveResults() > %w", err)
	}
	if err := imp.statisticsRepo.Save(ctx, state.Statistics); err != nil {
		return nil, fmt.Errorf("Save() > %w", err)
	}
	result.StatisticsSaved = true
	return &result, nil
}

func (imp *Importer) importCards(ctx context.Context, progress map[string]learning.CardProgress, opts ImportOptions, result *ImportResult) ([]learning.CardProgressRecord, error) {
	existing, err := imp.progressRepo.FindCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindCards() > %w", err)
	}
	stored := make(map[string]learning.CardProgress, len(existing))
	for _, record := range existing {
		stored[record.ItemID] = record.CardProgress
	}

	var records []learning.CardProgressRecord
	for _, id := range slices.Sorted(maps.Keys(progress)) {
		current := progress[id]
		previous, ok := stored[id]
		switch {
		case !ok:
			fmt.Fprintf(imp.writer, "  [NEW]  card %s\n", id)
			result.CardsNew++
		case sameCard(previous, current):
			continue
		case !opts.UpdateExisting:
			fmt.Fprintf(imp.writer, "  [SKIP]  card %s\n", id)
			result.CardsSkipped++
			continue
		default:
			fmt.Fprintf(imp.writer, "  [UPDATE]  card %s\n", id)
			result.CardsUpdated++
		}
		records = append(records, learning.CardProgressRecord{ItemID: id, CardProgress: current})
	}
	return records, nil
}

func (imp *Importer) importQuestions(ctx context.Context, progress map[string]learning.QuizProgress, opts ImportOptions, result *ImportResult) ([]learning.QuizProgressRecord, error) {
	existing, err := imp.progressRepo.FindQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindQuestions() > %w", err)
	}
	stored := make(map[string]learning.QuizProgress, len(existing))
	for _, record := range existing {
		stored[record.ItemID] = record.QuizProgress
	}

	var records []learning.QuizProgressRecord
	for _, id := range slices.Sorted(maps.Keys(progress)) {
		current := progress[id]
		previous, ok := stored[id]
		switch {
		case !ok:
			fmt.Fprintf(imp.writer, "  [NEW]  question %s\n", id)
			result.QuestionsNew++
		case sameQuestion(previous, current):
			continue
		case !opts.UpdateExisting:
			fmt.Fprintf(imp.writer, "  [SKIP]  question %s\n", id)
			result.QuestionsSkipped++
			continue
		default:
			fmt.Fprintf(imp.writer, "  [UPDATE]  question %s\n", id)
			result.QuestionsUpdated++
		}
		records = append(records, learning.QuizProgressRecord{ItemID: id, QuizProgress: current})
	}
	return records, nil
}

// Timestamps are compared by instant since the database may return another location.
func sameCard(a, b learning.CardProgress) bool {
	return a.Difficulty == b.Difficulty &&
		a.ReviewCount == b.ReviewCount &&
		a.CorrectCount == b.CorrectCount &&
		sameInstant(a.LastReviewed, b.LastReviewed) &&
		sameInstant(a.NextReview, b.NextReview)
}

func sameQuestion(a, b learning.QuizProgress) bool {
	return a.Difficulty == b.Difficulty &&
		a.AnswerCount == b.AnswerCount &&
		a.CorrectCount == b.CorrectCount &&
		a.IncorrectStreak == b.IncorrectStreak &&
		a.AverageTime == b.AverageTime &&
		sameInstant(a.LastAnswered, b.LastAnswered) &&
		sameInstant(a.NextReview, b.NextReview)
}

// sameInstant compares at the microsecond resolution of DATETIME(6) columns.
func sameInstant(a, b time.Time) bool {
	return a.Truncate(time.Microsecond).Equal(b.Truncate(time.Microsecond))
}

// ExportData holds all exported data from the database.
type ExportData struct {
	Cards      []learning.CardProgressRecord
	Questions  []learning.QuizProgressRecord
	Statistics statistics.Statistics
}

// Apply copies the exported progress into store.
func (d ExportData) Apply(store *learning.Store) {
	for _, record := range d.Cards {
		store.SetCard(record.ItemID, record.CardProgress)
	}
	for _, record := range d.Questions {
		store.SetQuestion(record.ItemID, record.QuizProgress)
	}
}

// Exporter reads DB and returns domain structs.
type Exporter struct {
	progressRepo   learning.ProgressRepository
	statisticsRepo statistics.Repository
}

// NewExporter creates a new Exporter.
func NewExporter(progressRepo learning.ProgressRepository, statisticsRepo statistics.Repository) *Exporter {
	return &Exporter{
		progressRepo:   progressRepo,
		statisticsRepo: statisticsRepo,
	}
}

// Export reads all data from the database.
func (e *Exporter) Export(ctx context.Context) (*ExportData, error) {
	cards, err := e.progressRepo.FindCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("progressRepo.FindCards() > %w", err)
	}

	questions, err := e.progressRepo.FindQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("progressRepo.FindQuestions() > %w", err)
	}

	stats, err := e.statisticsRepo.Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("statisticsRepo.Find() > %w", err)
	}

	return &ExportData{
		Cards:      cards,
		Questions:  questions,
		Statistics: stats,
	}, nil
}
