package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/studymaster/internal/inference"
	"resty.dev/v3"
)

const (
	DefaultBaseURL     = "https://openrouter.ai/api/v1"
	DefaultModel       = "mistralai/mistral-7b-instruct:free"
	defaultTemperature = 0.3
)

// DefaultSystemPrompt is sent when no custom prompt is configured.
const DefaultSystemPrompt = `You turn university study material into learning content.

Extract meaningful flashcards (a question and its answer) and multiple-choice quiz questions.
Every quiz question has exactly four options and exactly one of them is correct.

Return ONLY a JSON object in this shape, with no text outside the JSON:
{
  "flashcards": [{"question": "...", "answer": "..."}],
  "quiz": [{"question": "...", "options": ["...", "...", "...", "..."], "correct": 0}]
}

"correct" is the zero-based index of the correct option.
Write the content in the language of the material.`

type Client struct {
	httpClient       *resty.Client
	model            string
	temperature      float32
	systemPrompt     string
	maxRetryAttempts uint
}

type Config struct {
	BaseURL          string
	APIKey           string
	Model            string
	Temperature      float32
	SystemPrompt     string
	MaxRetryAttempts uint
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		temperature:      temperature,
		systemPrompt:     systemPrompt,
		maxRetryAttempts: cfg.MaxRetryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Content returns the text of the first choice.
func (response *ChatCompletionResponse) Content() (string, error) {
	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response body or choices", inference.ErrMalformedContent)
	}
	content := response.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: empty response content", inference.ErrMalformedContent)
	}
	return content, nil
}

func (client *Client) getRequestBody(text string) ChatCompletionRequest {
	return ChatCompletionRequest{
		Model:       client.model,
		Temperature: client.temperature,
		Messages: []Message{
			{Role: RoleSystem, Content: client.systemPrompt},
			{Role: RoleUser, Content: text},
		},
	}
}

// GenerateContent implements the inference.Generator interface
func (client *Client) GenerateContent(ctx context.Context, text string) (inference.Content, error) {
	var result inference.Content
	if err := withRetry(ctx, client.maxRetryAttempts, func() error {
		content, err := client.generateContent(ctx, text)
		if err != nil {
			return err
		}
		result = content
		return nil
	}); err != nil {
		return inference.Content{}, err
	}
	return result, nil
}

func (client *Client) generateContent(ctx context.Context, text string) (inference.Content, error) {
	requestBody := client.getRequestBody(text)
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return inference.Content{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return inference.Content{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	content, err := responseBody.Content()
	if err != nil {
		return inference.Content{}, fmt.Errorf("responseBody.Content() > %w", err)
	}
	slog.Default().Debug("openai response content",
		"model", client.model,
		"response", responseBody,
	)

	parsed, err := inference.ParseContent(content)
	if err != nil {
		slog.Default().Error("Failed to parse AI content",
			"model", client.model,
			"error", err)
		return inference.Content{}, fmt.Errorf("inference.ParseContent() > %w", err)
	}
	return parsed, nil
}

// Complete implements the inference.Completer interface
func (client *Client) Complete(ctx context.Context, text string) ([]byte, error) {
	var result []byte
	if err := withRetry(ctx, client.maxRetryAttempts, func() error {
		requestBody := client.getRequestBody(text)
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetBody(requestBody).
			Post("/chat/completions")
		if err != nil {
			return fmt.Errorf("httpClient.Post > %w", err)
		}
		if response.IsError() {
			return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}
		result = []byte(response.String())
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}
