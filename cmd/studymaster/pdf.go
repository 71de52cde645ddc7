package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studymaster/internal/pdf"
)

func newPDFCommand() *cobra.Command {
	var outputDir string

	command := &cobra.Command{
		Use:   "pdf <set>",
		Short: "Render a study set with its answer key as a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ws, err := openWorkspace()
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
			if outputDir == "" {
				outputDir = cfg.Outputs.PDFDirectory
			}
			path, err := pdf.RenderSet(set, setTags(set), outputDir, cfg.Outputs.TemplateFile)
			if err != nil {
				return fmt.Errorf("pdf.RenderSet() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", path)
			return nil
		},
	}
	command.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (default: outputs.pdf_directory)")

	return command
}
