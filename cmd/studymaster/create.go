package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studymaster/internal/studyset"
)

const fieldSeparator = "::"

var errNothingToCreate = errors.New("no flashcards or quiz questions were given")

// manualContent is the YAML layout accepted by create --from.
type manualContent struct {
	Flashcards []studyset.Flashcard `yaml:"flashcards"`
	Quiz       []manualQuestion     `yaml:"quiz"`
}

type manualQuestion struct {
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
	// Correct is a letter (A-D) or a 1-based number.
	Correct string `yaml:"correct"`
}

func newCreateCommand() *cobra.Command {
	var (
		title     string
		category  string
		from      string
		tags      []string
		cards     []string
		questions []string
	)

	command := &cobra.Command{
		Use:   "create",
		Short: "Create a study set from flashcards and quiz questions written by hand",
		Long: `Create a study set from hand-written content.

Flashcards are given as --card "question::answer" and quiz questions as
--question "question::option A::option B::option C::option D::correct", where
correct is A-D or 1-4. Content can also be read from a YAML file with --from,
or from stdin with --from -:

  flashcards:
    - question: What is a cell?
      answer: The basic unit of life
  quiz:
    - question: Which organelle makes ATP?
      options: [Mitochondria, Nucleus, Ribosome, Golgi apparatus]
      correct: A`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var content manualContent
			if from != "" {
				raw, err := readMaterial(cmd.InOrStdin(), from)
				if err != nil {
					return err
				}
				if err := yaml.Unmarshal([]byte(raw), &content); err != nil {
					return fmt.Errorf("yaml.Unmarshal(%s) > %w", from, err)
				}
			}

			flashcards := slices.Clone(content.Flashcards)
			for _, value := range cards {
				card, err := parseCardFlag(value)
				if err != nil {
					return err
				}
				flashcards = append(flashcards, card)
			}

			quizQuestions := make([]studyset.QuizQuestion, 0, len(content.Quiz)+len(questions))
			for i, q := range content.Quiz {
				question, err := q.toQuizQuestion()
				if err != nil {
					return fmt.Errorf("quiz[%d] > %w", i, err)
				}
				quizQuestions = append(quizQuestions, question)
			}
			for _, value := range questions {
				question, err := parseQuestionFlag(value)
				if err != nil {
					return err
				}
				quizQuestions = append(quizQuestions, question)
			}
			if len(flashcards) == 0 && len(quizQuestions) == 0 {
				return errNothingToCreate
			}

			allTags := manualTags(tags, flashcards, quizQuestions)
			for i := range flashcards {
				flashcards[i].CreatedBy = studyset.CreatedByManual
				flashcards[i].Tags = allTags
			}
			for i := range quizQuestions {
				quizQuestions[i].CreatedBy = studyset.CreatedByManual
				quizQuestions[i].Tags = allTags
			}
			if err := studyset.Validate(flashcards, quizQuestions); err != nil {
				return fmt.Errorf("studyset.Validate() > %w", err)
			}

			_, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			set, err := ws.Library().Save(title, category, flashcards, quizQuestions, now())
			if err != nil {
				return fmt.Errorf("Library().Save() > %w", err)
			}
			ws.AddTags(allTags...)
			if err := ws.Save(); err != nil {
				return fmt.Errorf("ws.Save() > %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved %q (%s) with %d flashcards and %d quiz questions\n",
				set.Title, set.ID, len(set.Flashcards), len(set.QuizQuestions))
			if len(allTags) > 0 {
				fmt.Fprintf(out, "Tags: %s\n", strings.Join(allTags, ", "))
			}
			return nil
		},
	}
	command.Flags().StringVar(&title, "title", "", "title of the new study set")
	command.Flags().StringVar(&category, "category", studyset.DefaultCategory, "category of the new study set")
	command.Flags().StringVar(&from, "from", "", `YAML file with flashcards and quiz questions, or "-" for stdin`)
	command.Flags().StringSliceVar(&tags, "tags", nil, "tags to attach in addition to the detected topics")
	command.Flags().StringArrayVar(&cards, "card", nil, `flashcard as "question::answer" (repeatable)`)
	command.Flags().StringArrayVar(&questions, "question", nil, `quiz question as "question::A::B::C::D::correct" (repeatable)`)

	return command
}

func parseCardFlag(value string) (studyset.Flashcard, error) {
	parts := splitFields(value)
	if len(parts) != 2 {
		return studyset.Flashcard{}, fmt.Errorf("card %q must be question%sanswer", value, fieldSeparator)
	}
	return studyset.Flashcard{Question: parts[0], Answer: parts[1]}, nil
}

func parseQuestionFlag(value string) (studyset.QuizQuestion, error) {
	parts := splitFields(value)
	if len(parts) != studyset.OptionCount+2 {
		return studyset.QuizQuestion{}, fmt.Errorf("question %q needs a question, %d options and the correct option", value, studyset.OptionCount)
	}
	q := manualQuestion{
		Question: parts[0],
		Options:  parts[1 : studyset.OptionCount+1],
		Correct:  parts[studyset.OptionCount+1],
	}
	return q.toQuizQuestion()
}

func (q manualQuestion) toQuizQuestion() (studyset.QuizQuestion, error) {
	correct, err := studyset.ParseCorrectOption(q.Correct)
	if err != nil {
		return studyset.QuizQuestion{}, fmt.Errorf("studyset.ParseCorrectOption() > %w", err)
	}
	return studyset.QuizQuestion{
		Question: strings.TrimSpace(q.Question),
		Options:  q.Options,
		Correct:  correct,
	}, nil
}

func splitFields(value string) []string {
	parts := strings.Split(value, fieldSeparator)
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// manualTags merges the given tags with the topics found in the content.
func manualTags(given []string, flashcards []studyset.Flashcard, questions []studyset.QuizQuestion) []string {
	var text strings.Builder
	for _, card := range flashcards {
		fmt.Fprintln(&text, card.Question, card.Answer)
	}
	for _, question := range questions {
		fmt.Fprintln(&text, question.Question, strings.Join(question.Options, " "))
	}

	var tags []string
	for _, tag := range append(slices.Clone(given), studyset.ExtractTags(text.String())...) {
		tag = strings.TrimSpace(tag)
		if tag != "" && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}
