package learning

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/learning/mock_repository.go -package=mock_learning

// CardProgressRecord is a flashcard progress row keyed by item id.
type CardProgressRecord struct {
	ItemID string `db:"item_id"`
	CardProgress
}

// QuizProgressRecord is a quiz question progress row keyed by item id.
type QuizProgressRecord struct {
	ItemID string `db:"item_id"`
	QuizProgress
}

// ProgressRepository persists review progress outside the process.
type ProgressRepository interface {
	FindCards(ctx context.Context) ([]CardProgressRecord, error)
	FindQuestions(ctx context.Context) ([]QuizProgressRecord, error)
	SaveCards(ctx context.Context, records []CardProgressRecord) error
	SaveQuestions(ctx context.Context, records []QuizProgressRecord) error
}

// DBProgressRepository implements ProgressRepository on MySQL or SQLite.
type DBProgressRepository struct {
	db *sqlx.DB
}

// NewDBProgressRepository creates a new DBProgressRepository.
func NewDBProgressRepository(db *sqlx.DB) *DBProgressRepository {
	return &DBProgressRepository{db: db}
}

// FindCards returns every stored flashcard progress ordered by item id.
func (r *DBProgressRepository) FindCards(ctx context.Context) ([]CardProgressRecord, error) {
	var records []CardProgressRecord
	if err := r.db.SelectContext(ctx, &records,
		`SELECT item_id, difficulty, review_count, correct_count, last_reviewed, next_review
		FROM card_progress ORDER BY item_id`); err != nil {
		return nil, fmt.Errorf("db.SelectContext(card_progress) > %w", err)
	}
	return records, nil
}

// FindQuestions returns every stored quiz progress ordered by item id.
func (r *DBProgressRepository) FindQuestions(ctx context.Context) ([]QuizProgressRecord, error) {
	var records []QuizProgressRecord
	if err := r.db.SelectContext(ctx, &records,
		`SELECT item_id, difficulty, answer_count, correct_count, incorrect_streak, average_time, last_answered, next_review
		FROM quiz_progress ORDER BY item_id`); err != nil {
		return nil, fmt.Errorf("db.SelectContext(quiz_progress) > %w", err)
	}
	return records, nil
}

// SaveCards inserts or replaces flashcard progress rows in one transaction.
func (r *DBProgressRepository) SaveCards(ctx context.Context, records []CardProgressRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, record := range records {
		if _, err := tx.NamedExecContext(ctx,
			`REPLACE INTO card_progress (item_id, difficulty, review_count, correct_count, last_reviewed, next_review)
			VALUES (:item_id, :difficulty, :review_count, :correct_count, :last_reviewed, :next_review)`,
			record); err != nil {
			return fmt.Errorf("tx.NamedExecContext(replace card_progress %s) > %w", record.ItemID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// SaveQuestions inserts or replaces quiz progress rows in one transaction.
func (r *DBProgressRepository) SaveQuestions(ctx context.Context, records []QuizProgressRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, record := range records {
		if _, err := tx.NamedExecContext(ctx,
			`REPLACE INTO quiz_progress (item_id, difficulty, answer_count, correct_count, incorrect_streak, average_time, last_answered, next_review)
			VALUES (:item_id, :difficulty, :answer_count, :correct_count, :incorrect_streak, :average_time, :last_answered, :next_review)`,
			record); err != nil {
			return fmt.Errorf("tx.NamedExecContext(replace quiz_progress %s) > %w", record.ItemID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}
