package statistics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		total   int
		want    int
		wantErr error
	}{
		{name: "exact", score: 8, total: 10, want: 80},
		{name: "rounded", score: 2, total: 3, want: 67},
		{name: "zero total", score: 1, total: 0, wantErr: ErrNoQuestions},
		{name: "negative total", score: 0, total: -1, wantErr: ErrNoQuestions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Percentage(tt.score, tt.total)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStudyStreak(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	at := func(daysAgo int, hour int) QuizResult {
		day := now.AddDate(0, 0, -daysAgo)
		return QuizResult{Date: time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)}
	}

	tests := []struct {
		name    string
		history []QuizResult
		want    int
	}{
		{
			name: "empty history",
			want: 0,
		},
		{
			name:    "only today",
			history: []QuizResult{at(0, 9)},
			want:    1,
		},
		{
			name:    "several quizzes on one day count once",
			history: []QuizResult{at(0, 9), at(0, 12), at(0, 15), at(1, 8)},
			want:    2,
		},
		{
			name:    "gap stops the streak",
			history: []QuizResult{at(0, 9), at(1, 9), at(3, 9), at(4, 9)},
			want:    2,
		},
		{
			name:    "nothing today",
			history: []QuizResult{at(1, 9), at(2, 9)},
			want:    0,
		},
		{
			name:    "unordered history",
			history: []QuizResult{at(2, 9), at(0, 9), at(1, 9)},
			want:    3,
		},
		{
			name:    "future entries are ignored",
			history: []QuizResult{at(-1, 9), at(0, 9)},
			want:    1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StudyStreak(tc.history, now))
		})
	}
}

func TestStudyStreak_Window(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	var history []QuizResult
	for i := 0; i < 40; i++ {
		history = append(history, QuizResult{Date: now.AddDate(0, 0, -i)})
	}
	assert.Equal(t, 31, StudyStreak(history, now))
}

func TestStudyStreak_Location(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, tokyo)
	// 23:30 UTC on March 9 is already March 10 in Tokyo.
	history := []QuizResult{{Date: time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)}}
	assert.Equal(t, 1, StudyStreak(history, now))
}

func TestAggregator(t *testing.T) {
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	aggregator := NewAggregator(Statistics{}, nil)

	aggregator.StudySession()
	aggregator.StudySession()

	first, err := aggregator.CompleteQuiz(QuizResult{SetID: "s1", SetTitle: "Cells", Mode: "adaptive", Score: 8, TotalQuestions: 10, Date: day})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 80, first.Percentage)

	second, err := aggregator.CompleteQuiz(QuizResult{ID: "fixed", SetID: "s1", Score: 4, TotalQuestions: 10, Date: day.Add(24 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "fixed", second.ID)

	assert.Equal(t, Statistics{
		TotalStudySessions: 2,
		TotalCardsStudied:  2,
		TotalQuizzesTaken:  2,
		TotalQuizQuestions: 20,
		AverageScore:       60,
		StudyStreak:        2,
	}, aggregator.Statistics())

	history := aggregator.History()
	require.Len(t, history, 2)
	assert.Equal(t, "fixed", history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)

	_, err = aggregator.CompleteQuiz(QuizResult{Score: 1, TotalQuestions: 0, Date: day})
	assert.ErrorIs(t, err, ErrNoQuestions)
	assert.Len(t, aggregator.History(), 2)

	stats := aggregator.Refresh(day.Add(5 * 24 * time.Hour))
	assert.Zero(t, stats.StudyStreak)
}

func TestAggregator_HistoryLimit(t *testing.T) {
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	aggregator := NewAggregator(Statistics{}, nil)
	for i := 0; i < HistoryLimit+5; i++ {
		_, err := aggregator.CompleteQuiz(QuizResult{ID: fmt.Sprint(i), Score: 1, TotalQuestions: 1, Date: day})
		require.NoError(t, err)
	}

	history := aggregator.History()
	require.Len(t, history, HistoryLimit)
	assert.Equal(t, fmt.Sprint(HistoryLimit+4), history[0].ID)
	assert.Equal(t, HistoryLimit+5, aggregator.Statistics().TotalQuizzesTaken)
}
