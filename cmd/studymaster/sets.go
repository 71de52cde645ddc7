package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSetsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "sets",
		Short: "Manage study sets and categories",
	}

	command.AddCommand(
		newSetsListCommand(),
		newSetsDeleteCommand(),
		newCategoriesCommand(),
	)
	return command
}

func newSetsListCommand() *cobra.Command {
	var category string

	command := &cobra.Command{
		Use:   "list",
		Short: "List study sets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			var rows [][]string
			for _, set := range ws.Library().List() {
				if category != "" && set.Category != category {
					continue
				}
				lastStudied := "-"
				if set.LastStudied != nil {
					lastStudied = set.LastStudied.Local().Format("2006-01-02")
				}
				rows = append(rows, []string{
					set.ID,
					set.Title,
					set.Category,
					strconv.Itoa(len(set.Flashcards)),
					strconv.Itoa(len(set.QuizQuestions)),
					strconv.Itoa(set.StudyCount),
					lastStudied,
				})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No study sets yet. Create one with `studymaster generate` or `studymaster import`.")
				return nil
			}
			renderTable(out,
				[]string{"ID", "Title", "Category", "Cards", "Quiz", "Studied", "Last studied"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			)
			return nil
		},
	}
	command.Flags().StringVar(&category, "category", "", "only list sets of this category")

	return command
}

func newSetsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <set>",
		Short: "Delete a study set and its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			set, err := ws.Library().Find(args[0])
			if err != nil {
				return fmt.Errorf("Library().Find(%s) > %w", args[0], err)
			}
			if err := ws.DeleteSet(set.ID); err != nil {
				return err
			}
			if err := ws.Save(); err != nil {
				return fmt.Errorf("ws.Save() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", set.Title)
			return nil
		},
	}
}

func newCategoriesCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			counts := make(map[string]int)
			for _, set := range ws.Library().List() {
				counts[set.Category]++
			}
			var rows [][]string
			for _, category := range ws.Library().Categories() {
				rows = append(rows, []string{category, strconv.Itoa(counts[category])})
			}
			renderTable(cmd.OutOrStdout(), []string{"Category", "Sets"}, rows, []columnAlignment{alignLeft, alignRight})
			return nil
		},
	}

	command.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return updateCategories(cmd, args[0], true)
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a category; its sets move to the default category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return updateCategories(cmd, args[0], false)
			},
		},
	)
	return command
}

func updateCategories(cmd *cobra.Command, name string, add bool) error {
	_, ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer func() {
		_ = ws.Close()
	}()

	if add {
		err = ws.Library().AddCategory(name)
	} else {
		err = ws.Library().DeleteCategory(name)
	}
	if err != nil {
		return err
	}
	if err := ws.Save(); err != nil {
		return fmt.Errorf("ws.Save() > %w", err)
	}
	if add {
		fmt.Fprintf(cmd.OutOrStdout(), "Added category %q\n", name)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %q\n", name)
	}
	return nil
}
