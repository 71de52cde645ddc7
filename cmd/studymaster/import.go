package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studymaster/internal/studyset"
)

func newImportCommand() *cobra.Command {
	var (
		title    string
		category string
	)

	command := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an exported set, a backup (.json) or a spreadsheet (.xlsx)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			_, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			out := cmd.OutOrStdout()
			switch strings.ToLower(filepath.Ext(path)) {
			case ".xlsx":
				flashcards, questions, err := studyset.ImportSpreadsheet(path)
				if err != nil {
					return fmt.Errorf("studyset.ImportSpreadsheet() > %w", err)
				}
				if title == "" {
					title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				}
				set, err := ws.Library().Save(title, category, flashcards, questions, now())
				if err != nil {
					return fmt.Errorf("Library().Save() > %w", err)
				}
				fmt.Fprintf(out, "Imported %q with %d flashcards and %d quiz questions\n", set.Title, len(set.Flashcards), len(set.QuizQuestions))
			default:
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("os.Open(%s) > %w", path, err)
				}
				defer func() {
					_ = file.Close()
				}()

				result, err := ws.Import(file, now())
				if err != nil {
					return fmt.Errorf("ws.Import() > %w", err)
				}
				if result.FullBackup {
					fmt.Fprintf(out, "Restored %d study sets from the backup\n", len(result.Sets))
				} else {
					for _, set := range result.Sets {
						fmt.Fprintf(out, "Imported %q\n", set.Title)
					}
				}
			}

			if err := ws.Save(); err != nil {
				return fmt.Errorf("ws.Save() > %w", err)
			}
			return nil
		},
	}
	command.Flags().StringVar(&title, "title", "", "title of a set imported from a spreadsheet (default: the file name)")
	command.Flags().StringVar(&category, "category", studyset.DefaultCategory, "category of a set imported from a spreadsheet")

	return command
}
