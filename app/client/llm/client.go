package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"campanion/app/config"

	"github.com/samber/oops"
	"github.com/sashabaranov/go-openai"
)

const requestTimeout = 30 * time.Second

// Completer is the single capability the agent needs from an LLM provider.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
}

var _ Completer = (*Client)(nil)

func NewClient(cfg config.ModelConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: requestTimeout,
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)

	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	aiResponse, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: c.temperature,
		},
	)
	if err != nil {
		return "", oops.Code("provider_failure").Wrapf(err, "failed to create chat completion")
	}

	if len(aiResponse.Choices) == 0 {
		return "", oops.Code("provider_failure").Errorf("no chat completion found")
	}

	return strings.TrimSpace(aiResponse.Choices[0].Message.Content), nil
}
