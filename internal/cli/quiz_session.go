package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/at-ishikawa/studymaster/internal/learning"
	"github.com/at-ishikawa/studymaster/internal/quiz"
	"github.com/at-ishikawa/studymaster/internal/statistics"
	"github.com/at-ishikawa/studymaster/internal/studyset"
)

// QuizSession manages an interactive multiple-choice quiz over one set
type QuizSession struct {
	*InteractiveSession
	set        studyset.Set
	mode       quiz.Mode
	questions  []quiz.Candidate
	tracker    *learning.Tracker
	aggregator *statistics.Aggregator

	index   int
	score   int
	answers []statistics.Answer
	result  *statistics.QuizResult
}

// NewQuizSession selects the questions to ask. When a non-random mode finds
// nothing to ask, it tells the user and falls back to random.
func NewQuizSession(
	base *InteractiveSession,
	set studyset.Set,
	mode quiz.Mode,
	maxQuestions int,
	tracker *learning.Tracker,
	aggregator *statistics.Aggregator,
	rng *rand.Rand,
) (*QuizSession, error) {
	candidates := quiz.Candidates(set, tracker.Store())
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", statistics.ErrNoQuestions, set.Title)
	}

	selected, err := quiz.Select(candidates, mode, maxQuestions, tracker.Now(), rng)
	if err != nil {
		return nil, fmt.Errorf("quiz.Select() > %w", err)
	}
	if len(selected) == 0 && mode != quiz.ModeRandom {
		fmt.Fprintf(base.stdoutWriter, "No questions match the %s mode. Switching to random mode.\n", mode)
		mode = quiz.ModeRandom
		selected, err = quiz.Select(candidates, mode, maxQuestions, tracker.Now(), rng)
		if err != nil {
			return nil, fmt.Errorf("quiz.Select() > %w", err)
		}
	}

	return &QuizSession{
		InteractiveSession: base,
		set:                set,
		mode:               mode,
		questions:          selected,
		tracker:            tracker,
		aggregator:         aggregator,
	}, nil
}

// Mode returns the mode the questions were selected with.
func (r *QuizSession) Mode() quiz.Mode {
	return r.mode
}

// GetQuestionCount returns the number of questions in the quiz
func (r *QuizSession) GetQuestionCount() int {
	return len(r.questions)
}

// Result returns the recorded result, or nil when the quiz was not completed.
func (r *QuizSession) Result() *statistics.QuizResult {
	return r.result
}

func (r *QuizSession) Session(ctx context.Context) error {
	if r.index >= len(r.questions) {
		if err := r.complete(); err != nil {
			return err
		}
		return errEnd
	}
	current := r.questions[r.index]

	fmt.Fprintf(r.stdoutWriter, "\nQuestion %d/%d\n", r.index+1, len(r.questions))
	_, _ = r.bold.Fprintln(r.stdoutWriter, current.Question.Question)
	for i, option := range current.Question.Options {
		fmt.Fprintf(r.stdoutWriter, "  %c) %s\n", 'A'+i, option)
	}

	started := r.tracker.Now()
	var selected int
	for {
		fmt.Fprint(r.stdoutWriter, "Your answer [A-D, q to quit]: ")
		input, err := r.readLine(ctx)
		if err != nil {
			return r.abortOnEOF(err)
		}
		if isQuit(input) {
			fmt.Fprintln(r.stdoutWriter, "Quiz aborted. No result was recorded.")
			return errEnd
		}
		choice, ok := parseChoice(input, len(current.Question.Options))
		if ok {
			selected = choice
			break
		}
		fmt.Fprintf(r.stdoutWriter, "Please answer with A-%c or 1-%d.\n", 'A'+len(current.Question.Options)-1, len(current.Question.Options))
	}
	timeTaken := r.tracker.Now().Sub(started).Seconds()

	difficulty := r.tracker.QuestionDifficulty(current.ID)
	isCorrect := current.Question.IsCorrect(selected)
	r.tracker.AnswerQuestion(current.ID, isCorrect, timeTaken)
	if isCorrect {
		r.score++
		fmt.Fprint(r.stdoutWriter, "✅ ")
		_, _ = r.green.Fprintln(r.stdoutWriter, "Correct!")
	} else {
		fmt.Fprint(r.stdoutWriter, "❌ ")
		_, _ = r.red.Fprintf(r.stdoutWriter, "Wrong. The answer is %c) %s\n", 'A'+current.Question.Correct, current.Question.CorrectOption())
	}

	r.answers = append(r.answers, statistics.Answer{
		QuestionIndex: r.index,
		QuestionID:    current.ID,
		Selected:      selected,
		Correct:       current.Question.Correct,
		IsCorrect:     isCorrect,
		Difficulty:    difficulty,
		TimeTaken:     timeTaken,
	})
	r.index++
	return nil
}

func (r *QuizSession) complete() error {
	if r.result != nil {
		return nil
	}
	result, err := r.aggregator.CompleteQuiz(statistics.QuizResult{
		SetID:          r.set.ID,
		SetTitle:       r.set.Title,
		Mode:           string(r.mode),
		Score:          r.score,
		TotalQuestions: len(r.questions),
		Date:           r.tracker.Now(),
		Answers:        r.answers,
	})
	if err != nil {
		return fmt.Errorf("aggregator.CompleteQuiz() > %w", err)
	}
	r.result = &result

	fmt.Fprintf(r.stdoutWriter, "\nScore: %s (%d%%)\n", r.bold.Sprintf("%d/%d", result.Score, result.TotalQuestions), result.Percentage)
	fmt.Fprintf(r.stdoutWriter, "Study streak: %d days\n", r.aggregator.Statistics().StudyStreak)
	return nil
}

func (r *QuizSession) abortOnEOF(err error) error {
	if endOfInput(err) {
		fmt.Fprintln(r.stdoutWriter, "\nQuiz aborted. No result was recorded.")
		return errEnd
	}
	return fmt.Errorf("error reading input: %w", err)
}

// parseChoice accepts a letter (A, B, ...) or a 1-based number.
func parseChoice(input string, optionCount int) (int, bool) {
	input = strings.ToUpper(strings.TrimSpace(input))
	if len(input) != 1 {
		return 0, false
	}
	c := input[0]
	switch {
	case c >= 'A' && int(c-'A') < optionCount:
		return int(c - 'A'), true
	case c >= '1' && int(c-'1') < optionCount:
		return int(c - '1'), true
	}
	return 0, false
}
