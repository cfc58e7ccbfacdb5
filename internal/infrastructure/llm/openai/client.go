package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/unp-digital/sciencebot/internal/infrastructure/resilience"
)

// Client provides chat completions and query embeddings over the
// OpenAI-compatible API. It implements ports.ChatCompleter and
// ports.Embedder.
type Client struct {
	api         *openai.Client
	chatModel   string
	embedModel  openai.EmbeddingModel
	temperature float32
	maxTokens   int
	executor    *resilience.Executor
}

type Config struct {
	APIKey      string
	BaseURL     string
	ChatModel   string
	EmbedModel  string
	Temperature float32
	MaxTokens   int
	Executor    *resilience.Executor
}

func New(cfg Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(clientCfg),
		chatModel:   cfg.ChatModel,
		embedModel:  openai.EmbeddingModel(cfg.EmbedModel),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		executor:    cfg.Executor,
	}
}

// Complete issues one chat completion with a system instruction and a single
// user turn. No conversation state is carried between calls.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	var out string
	err := c.execute(ctx, "openai.chat", func(ctx context.Context) error {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.chatModel,
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		})
		if err != nil {
			return parseAPIError("chat completion", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty chat completion response")
		}
		out = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	var out []float32
	err := c.execute(ctx, "openai.embed", func(ctx context.Context) error {
		resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input:          []string{text},
			Model:          c.embedModel,
			EncodingFormat: openai.EmbeddingEncodingFormatFloat,
		})
		if err != nil {
			return parseAPIError("embedding", err)
		}
		if len(resp.Data) == 0 {
			return fmt.Errorf("empty embedding response")
		}
		out = resp.Data[0].Embedding
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	if c.executor == nil {
		return wrapFailure(operation, fn(ctx))
	}
	err := c.executor.Execute(ctx, operation, fn, classifyOpenAIError)
	return wrapFailure(operation, err)
}
