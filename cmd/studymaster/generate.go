package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studymaster/internal/studyset"
)

func newGenerateCommand() *cobra.Command {
	var title string
	var category string
	var selection string

	command := &cobra.Command{
		Use:   "generate [file]",
		Short: "Generate flashcards and quiz questions from study material with AI",
		Long: `Generate flashcards and quiz questions from a text file, or from stdin when
the file is omitted or "-". The generated content is saved as a new study set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contentSelection, err := studyset.ParseContentSelection(selection)
			if err != nil {
				return err
			}

			source := "-"
			if len(args) > 0 {
				source = args[0]
			}
			material, err := readMaterial(cmd.InOrStdin(), source)
			if err != nil {
				return err
			}
			if strings.TrimSpace(material) == "" {
				return fmt.Errorf("no study material in %s", source)
			}

			cfg, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			generator, err := newGenerator(cfg.AI)
			if err != nil {
				return err
			}
			defer func() {
				_ = generator.Close()
			}()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generating content (model: %s)...\n", cfg.AI.Model)
			content, err := generator.GenerateContent(cmd.Context(), material)
			if err != nil {
				return fmt.Errorf("generator.GenerateContent() > %w", err)
			}

			tags := studyset.ExtractTags(material)
			content = content.Annotate(tags)
			flashcards, questions := contentSelection.Apply(content.Flashcards, content.Quiz)

			if title == "" && source != "-" {
				title = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
			}
			set, err := ws.Library().Save(title, category, flashcards, questions, now())
			if err != nil {
				return fmt.Errorf("Library().Save() > %w", err)
			}
			ws.AddTags(tags...)
			if err := ws.Save(); err != nil {
				return fmt.Errorf("ws.Save() > %w", err)
			}

			fmt.Fprintf(out, "Saved %q (%s) with %d flashcards and %d quiz questions\n",
				set.Title, set.ID, len(set.Flashcards), len(set.QuizQuestions))
			if len(tags) > 0 {
				fmt.Fprintf(out, "Tags: %s\n", strings.Join(tags, ", "))
			}
			return nil
		},
	}
	command.Flags().StringVar(&title, "title", "", "title of the new study set (default: file name)")
	command.Flags().StringVar(&category, "category", studyset.DefaultCategory, "category of the new study set")
	command.Flags().StringVar(&selection, "content", string(studyset.SelectBoth), "content to keep: both, flashcards or quiz")

	return command
}

func readMaterial(stdin io.Reader, source string) (string, error) {
	if source == "-" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("io.ReadAll(stdin) > %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", source, err)
	}
	return string(content), nil
}
