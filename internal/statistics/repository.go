package statistics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/statistics/mock_repository.go -package=mock_statistics

// Repository persists the statistics record and the quiz history.
type Repository interface {
	Find(ctx context.Context) (Statistics, error)
	Save(ctx context.Context, stats Statistics) error
	SaveResults(ctx context.Context, results []QuizResult) error
}

// statisticsRowID is the id of the single statistics row.
const statisticsRowID = 1

type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Find returns the stored statistics, or zero counters when nothing was saved yet.
func (r *DBRepository) Find(ctx context.Context) (Statistics, error) {
	var stats Statistics
	err := r.db.GetContext(ctx, &stats,
		`SELECT total_study_sessions, total_cards_studied, total_quizzes_taken, total_quiz_questions, average_score, study_streak
		FROM learner_statistics WHERE id = ?`, statisticsRowID)
	if errors.Is(err, sql.ErrNoRows) {
		return Statistics{}, nil
	}
	if err != nil {
		return Statistics{}, fmt.Errorf("db.GetContext(learner_statistics) > %w", err)
	}
	return stats, nil
}

func (r *DBRepository) Save(ctx context.Context, stats Statistics) error {
	if _, err := r.db.ExecContext(ctx,
		`REPLACE INTO learner_statistics (id, total_study_sessions, total_cards_studied, total_quizzes_taken, total_quiz_questions, average_score, study_streak)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		statisticsRowID,
		stats.TotalStudySessions,
		stats.TotalCardsStudied,
		stats.TotalQuizzesTaken,
		stats.TotalQuizQuestions,
		stats.AverageScore,
		stats.StudyStreak,
	); err != nil {
		return fmt.Errorf("db.ExecContext(replace learner_statistics) > %w", err)
	}
	return nil
}

// SaveResults inserts or replaces quiz results in one transaction.
func (r *DBRepository) SaveResults(ctx context.Context, results []QuizResult) error {
	if len(results) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, result := range results {
		if _, err := tx.NamedExecContext(ctx,
			`REPLACE INTO quiz_results (id, set_id, set_title, mode, score, total_questions, percentage, taken_at)
			VALUES (:id, :set_id, :set_title, :mode, :score, :total_questions, :percentage, :taken_at)`,
			result); err != nil {
			return fmt.Errorf("tx.NamedExecContext(replace quiz_results %s) > %w", result.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}
