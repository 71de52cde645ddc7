package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/studymaster/internal/bootstrap"
	"github.com/at-ishikawa/studymaster/internal/config"
	"github.com/at-ishikawa/studymaster/internal/inference/openai"
	"github.com/at-ishikawa/studymaster/internal/server"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "studymaster-server",
		Short:         "HTTP server relaying study material to the AI provider",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A missing .env file is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("godotenv.Load() > %w", err)
	}

	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	client, err := newClient(cfg.AI)
	if err != nil {
		return err
	}
	app.AddCloser("ai client", client)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: newHandler(client, cfg.Server.CORS.AllowedOrigins),
	}
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", srv.Addr, "model", client.GetModel())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func newClient(cfg config.AIConfig) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("an API key is required: set STUDYMASTER_AI_API_KEY, OPENROUTER_API_KEY or OPENAI_API_KEY")
	}
	var systemPrompt string
	if cfg.SystemPromptFile != "" {
		content, err := os.ReadFile(cfg.SystemPromptFile)
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile(%s) > %w", cfg.SystemPromptFile, err)
		}
		systemPrompt = string(content)
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

func newHandler(client *openai.Client, allowedOrigins []string) http.Handler {
	mux := server.NewMux(server.NewContentHandler(client, client))
	return server.CORSMiddleware(h2c.NewHandler(mux, &http2.Server{}), allowedOrigins)
}
