package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

type OllamaConfig struct {
	Host            string // empty uses OLLAMA_HOST or the local default
	EmbeddingModel  string
	CompletionModel string
}

// embeds text and streams chat completions from an Ollama server
type OllamaClient struct {
	client          *api.Client
	embeddingModel  string
	completionModel string
}

func NewOllamaClient(config OllamaConfig) (*OllamaClient, error) {
	var client *api.Client

	if config.Host == "" {
		var err error

		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create client from environment: %w", err)
		}
	} else {
		u, err := url.Parse(config.Host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host: %w", err)
		}

		client = api.NewClient(u, http.DefaultClient)
	}

	return &OllamaClient{
		client:          client,
		embeddingModel:  config.EmbeddingModel,
		completionModel: config.CompletionModel,
	}, nil
}

// generates a single embedding for the given text
func (c *OllamaClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.Embed(ctx, &api.EmbedRequest{
		Model: c.embeddingModel,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned from ollama")
	}

	return resp.Embeddings[0], nil
}

// opens a streamed chat completion
func (c *OllamaClient) StreamCompletion(ctx context.Context, req CompletionRequest) (Stream, error) {
	model := req.Model
	if model == "" {
		model = c.completionModel
	}

	messages := make([]api.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, api.Message{Role: msg.Role, Content: msg.Content})
	}

	streaming := true
	chatReq := &api.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   &streaming,
	}

	return newPushStream(ctx, func(ctx context.Context, emit func(string) error) error {
		err := c.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
			if resp.Message.Content == "" {
				return nil
			}

			return emit(resp.Message.Content)
		})
		if err != nil {
			return fmt.Errorf("failed to chat with ollama: %w", err)
		}

		return nil
	}), nil
}
