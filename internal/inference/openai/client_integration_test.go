//go:build integration

package openai_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/at-ishikawa/studymaster/internal/inference/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: OPENROUTER_API_KEY=your-key go test -tags integration ./internal/inference/openai
func TestClient_GenerateContent_Integration(t *testing.T) {
	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})),
	)

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		t.Skip("OPENROUTER_API_KEY environment variable not set, skipping integration test")
	}

	client := openai.NewClient(openai.Config{
		APIKey:           apiKey,
		Model:            os.Getenv("STUDYMASTER_AI_MODEL"),
		MaxRetryAttempts: 2,
	})
	defer func() {
		_ = client.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	content, err := client.GenerateContent(ctx, `Photosynthesis converts light energy into chemical energy.
It takes place in the chloroplasts of plant cells and produces glucose and oxygen from carbon dioxide and water.`)
	require.NoError(t, err)
	assert.NotZero(t, len(content.Flashcards)+len(content.Quiz))
	for _, question := range content.Quiz {
		assert.Len(t, question.Options, 4)
	}
}
