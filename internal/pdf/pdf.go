// Package pdf renders study sets to printable PDF files.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/studymaster/internal/assets"
	"github.com/at-ishikawa/studymaster/internal/studyset"
)

// RenderSet writes the set as markdown into dir and converts it to PDF.
// It returns the absolute path of the PDF file.
func RenderSet(set studyset.Set, tags []string, dir string, templatePath string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	markdownPath := filepath.Join(dir, fileBaseName(set.Title)+".md")
	file, err := os.Create(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
	}
	if err := assets.WriteStudySet(file, templatePath, assets.NewStudySetTemplate(set, tags)); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("assets.WriteStudySet() > %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("file.Close() > %w", err)
	}

	return ConvertMarkdownToPDF(markdownPath)
}

func fileBaseName(title string) string {
	name := strings.Join(strings.Fields(title), "_")
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)
	if name == "" {
		return "study_set"
	}
	return name
}

// ConvertMarkdownToPDF converts a markdown file to PDF using mdtopdf package
// The PDF file will be created in the same directory as the markdown file
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}

	return absPath, nil
}
