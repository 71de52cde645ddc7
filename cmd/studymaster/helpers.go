package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/at-ishikawa/studymaster/internal/config"
	"github.com/at-ishikawa/studymaster/internal/inference"
	"github.com/at-ishikawa/studymaster/internal/inference/openai"
	"github.com/at-ishikawa/studymaster/internal/studyset"
	"github.com/at-ishikawa/studymaster/internal/workspace"
)

// now is replaced in tests.
var now = time.Now

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// openWorkspace loads the configuration and opens its workspace. The caller closes the workspace.
func openWorkspace() (*config.Config, *workspace.Workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loadConfig() > %w", err)
	}
	ws, err := workspace.Open(cfg.Workspace.File)
	if err != nil {
		return nil, nil, fmt.Errorf("workspace.Open() > %w", err)
	}
	return cfg, ws, nil
}

type generatorCloser interface {
	inference.Generator
	io.Closer
}

// newGenerator uses the proxy when one is configured, otherwise the provider directly.
func newGenerator(cfg config.AIConfig) (generatorCloser, error) {
	if cfg.ProxyURL != "" {
		return openai.NewProxyClient(cfg.ProxyURL, cfg.RetryAttempts), nil
	}
	if cfg.APIKey == "" {
		return nil, errors.New("an API key is required: set STUDYMASTER_AI_API_KEY, OPENROUTER_API_KEY or OPENAI_API_KEY, or configure ai.proxy_url")
	}
	systemPrompt, err := readSystemPrompt(cfg.SystemPromptFile)
	if err != nil {
		return nil, err
	}
	return openai.NewClient(openai.Config{
		BaseURL:          cfg.BaseURL,
		APIKey:           cfg.APIKey,
		Model:            cfg.Model,
		Temperature:      cfg.Temperature,
		SystemPrompt:     systemPrompt,
		MaxRetryAttempts: cfg.RetryAttempts,
	}), nil
}

func readSystemPrompt(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return string(content), nil
}

// setTags collects the tags of every item of a set in first-seen order.
func setTags(set studyset.Set) []string {
	var tags []string
	add := func(itemTags []string) {
		for _, tag := range itemTags {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
	}
	for _, card := range set.Flashcards {
		add(card.Tags)
	}
	for _, question := range set.QuizQuestions {
		add(question.Tags)
	}
	return tags
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// configureColor disables colors when the output is not a terminal.
func configureColor(writer io.Writer) {
	color.NoColor = !isTerminal(writer)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(writer io.Writer, headers []string, rows [][]string, aligns []columnAlignment) {
	columns := len(headers)
	if columns == 0 {
		return
	}

	tw := table.NewWriter()
	if isTerminal(writer) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	fmt.Fprintln(writer, tw.Render())
}
