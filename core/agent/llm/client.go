// Package llm wraps the Azure OpenAI chat completion API for email
// classification.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

const DefaultDeployment = "gpt-4o-mini"

type Client struct {
	client      *openai.Client
	deployment  string
	maxTokens   int
	temperature float32
	breaker     *gobreaker.CircuitBreaker
}

type ClientConfig struct {
	Endpoint    string
	APIKey      string
	APIVersion  string
	Deployment  string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	deployment := cfg.Deployment
	if deployment == "" {
		deployment = DefaultDeployment
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 512
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	apiCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		apiCfg.APIVersion = cfg.APIVersion
	}
	apiCfg.AzureModelMapperFunc = func(model string) string {
		return deployment
	}
	apiCfg.HTTPClient = &http.Client{Timeout: timeout}

	// A dead completion endpoint should fail the remaining emails of a
	// batch fast instead of burning the full timeout per message.
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "azure-openai",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		client:      openai.NewClientWithConfig(apiCfg),
		deployment:  deployment,
		maxTokens:   maxTokens,
		temperature: float32(cfg.Temperature),
		breaker:     breaker,
	}
}

// Complete sends a single user-role message and returns the completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.deployment,
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
	})
	if err != nil {
		return "", err
	}

	resp := result.(openai.ChatCompletionResponse)
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
