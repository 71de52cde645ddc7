package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeQuestions(t *testing.T) {
	tests := []struct {
		name      string
		questions map[string]QuizProgress
		want      QuestionSummary
	}{
		{
			name: "no progress",
			want: QuestionSummary{},
		},
		{
			name: "counts difficult and mastered questions",
			questions: map[string]QuizProgress{
				"s1_quiz_0": {Difficulty: 0.5, AnswerCount: 4, CorrectCount: 1},
				"s1_quiz_1": {Difficulty: 1.9, AnswerCount: 2, CorrectCount: 1},
				"s1_quiz_2": {Difficulty: 2, AnswerCount: 4, CorrectCount: 3},
				"s1_quiz_3": {Difficulty: 4, AnswerCount: 4, CorrectCount: 4},
				"s1_quiz_4": {Difficulty: 5, AnswerCount: 4, CorrectCount: 4},
			},
			want: QuestionSummary{
				Answered:        5,
				Difficult:       2,
				Mastered:        2,
				AverageAccuracy: (0.25 + 0.5 + 0.75 + 1 + 1) / 5,
			},
		},
		{
			name: "never answered records are skipped",
			questions: map[string]QuizProgress{
				"s1_quiz_0": {Difficulty: 1},
				"s1_quiz_1": {Difficulty: 3, AnswerCount: 2, CorrectCount: 1},
			},
			want: QuestionSummary{Answered: 1, AverageAccuracy: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeQuestions(tt.questions)
			assert.Equal(t, tt.want.Answered, got.Answered)
			assert.Equal(t, tt.want.Difficult, got.Difficult)
			assert.Equal(t, tt.want.Mastered, got.Mastered)
			assert.InDelta(t, tt.want.AverageAccuracy, got.AverageAccuracy, 1e-9)
		})
	}
}
