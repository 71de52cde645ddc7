package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const studySetTemplateName = "study-set.md.go.tmpl"

//go:embed templates/study-set.md.go.tmpl
var fallbackStudySetTemplate string

func ParseStudySetTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, studySetTemplateName, fallbackStudySetTemplate)
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
		"inc": func(i int) int {
			return i + 1
		},
		"letter": func(i int) string {
			return string(rune('A' + i))
		},
	}

	// First, try to read from the filesystem
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}

	return tmpl, nil
}
