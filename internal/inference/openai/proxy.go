package openai

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/studymaster/internal/inference"
	"resty.dev/v3"
)

// ProxyClient generates content through a studymaster-server instance,
// which holds the provider credentials.
type ProxyClient struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

func NewProxyClient(proxyURL string, retryAttempts uint) *ProxyClient {
	client := resty.New()
	client.SetBaseURL(proxyURL)
	client.SetHeader("Content-Type", "application/json")
	return &ProxyClient{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

func (client ProxyClient) Close() error {
	return client.httpClient.Close()
}

type GenerateContentRequest struct {
	Text string `json:"text"`
}

// GenerateContent implements the inference.Generator interface
func (client *ProxyClient) GenerateContent(ctx context.Context, text string) (inference.Content, error) {
	var result inference.Content
	if err := withRetry(ctx, client.maxRetryAttempts, func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetBody(GenerateContentRequest{Text: text}).
			SetResult(&ChatCompletionResponse{}).
			Post("/api/generate-content")
		if err != nil {
			return fmt.Errorf("httpClient.Post > %w", err)
		}
		if response.IsError() {
			return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}

		content, err := response.Result().(*ChatCompletionResponse).Content()
		if err != nil {
			return fmt.Errorf("Content() > %w", err)
		}
		parsed, err := inference.ParseContent(content)
		if err != nil {
			return fmt.Errorf("inference.ParseContent() > %w", err)
		}
		result = parsed
		return nil
	}); err != nil {
		return inference.Content{}, err
	}
	return result, nil
}
