package learning

// QuestionSummary counts quiz questions by how well they are known.
type QuestionSummary struct {
	Answered  int
	Difficult int
	Mastered  int
	// AverageAccuracy is the mean Accuracy of answered questions, in [0,1].
	AverageAccuracy float64
}

// SummarizeQuestions summarizes stored quiz progress. Records that were
// never answered are skipped.
func SummarizeQuestions(questions map[string]QuizProgress) QuestionSummary {
	var summary QuestionSummary
	var accuracySum float64
	for _, progress := range questions {
		accuracy, err := progress.Accuracy()
		if err != nil {
			continue
		}
		summary.Answered++
		accuracySum += accuracy
		if progress.IsDifficult() {
			summary.Difficult++
		}
		if progress.IsMastered() {
			summary.Mastered++
		}
	}
	if summary.Answered > 0 {
		summary.AverageAccuracy = accuracySum / float64(summary.Answered)
	}
	return summary
}
