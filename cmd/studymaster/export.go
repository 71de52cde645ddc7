package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studymaster/internal/studyset"
	"github.com/at-ishikawa/studymaster/internal/workspace"
)

func newExportCommand() *cobra.Command {
	var outputPath string

	command := &cobra.Command{
		Use:   "export [set]",
		Short: "Export one study set, or every set with the statistics as a backup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ws, err := openWorkspace()
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			exportedAt := now()
			var set studyset.Set
			fileName := workspace.BackupFileName(exportedAt)
			if len(args) == 1 {
				set, err = ws.Library().Find(args[0])
				if err != nil {
					return fmt.Errorf("Library().Find(%s) > %w", args[0], err)
				}
				fileName = studyset.ExportFileName(set)
			}

			path := outputPath
			if path == "" {
				path = filepath.Join(cfg.Outputs.ExportDirectory, fileName)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
			}
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("os.Create(%s) > %w", path, err)
			}
			defer func() {
				_ = file.Close()
			}()

			if len(args) == 1 {
				err = studyset.ExportSet(file, set, exportedAt)
			} else {
				err = ws.ExportAll(file, exportedAt)
			}
			if err != nil {
				return fmt.Errorf("export > %w", err)
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("file.Close() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	command.Flags().StringVarP(&outputPath, "output", "o", "", "output file path")

	return command
}
