package statistics

import (
	"fmt"
	"sort"
)

// PeriodStatistics summarizes the quizzes finished in one month.
type PeriodStatistics struct {
	Period         string // "2025-01"
	QuizzesTaken   int
	QuestionsTotal int
	CorrectTotal   int
	AverageScore   float64
	UniqueSets     int
}

type periodData struct {
	quizzes    int
	questions  int
	correct    int
	percentSum float64
	uniqueSets map[string]struct{}
}

// CalculatePeriods groups the quiz history by month, newest month first.
// year and month filter the history; 0 means no filter.
func CalculatePeriods(history []QuizResult, year, month int) []PeriodStatistics {
	stats := make(map[string]*periodData)
	for _, result := range history {
		if result.Date.IsZero() || result.TotalQuestions <= 0 {
			continue
		}
		if !matchesFilter(result.Date.Year(), int(result.Date.Month()), year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", result.Date.Year(), int(result.Date.Month()))
		data, ok := stats[period]
		if !ok {
			data = &periodData{uniqueSets: make(map[string]struct{})}
			stats[period] = data
		}
		data.quizzes++
		data.questions += result.TotalQuestions
		data.correct += result.Score
		data.percentSum += float64(result.Score) / float64(result.TotalQuestions) * 100
		data.uniqueSets[result.SetID] = struct{}{}
	}

	periods := make([]PeriodStatistics, 0, len(stats))
	for period, data := range stats {
		periods = append(periods, PeriodStatistics{
			Period:         period,
			QuizzesTaken:   data.quizzes,
			QuestionsTotal: data.questions,
			CorrectTotal:   data.correct,
			AverageScore:   data.percentSum / float64(data.quizzes),
			UniqueSets:     len(data.uniqueSets),
		})
	}

	// Sort by period descending (newest first)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})
	return periods
}

func matchesFilter(resultYear, resultMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if resultYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return resultMonth == filterMonth
}
