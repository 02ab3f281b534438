package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type GeminiConfig struct {
	APIKey          string
	EmbeddingModel  string
	CompletionModel string
}

// embeds text and streams completions through the Gemini API
type GeminiClient struct {
	client          *genai.Client
	embeddingModel  string
	completionModel string
}

func NewGeminiClient(ctx context.Context, config GeminiConfig) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{
		client:          client,
		embeddingModel:  config.EmbeddingModel,
		completionModel: config.CompletionModel,
	}, nil
}

// generates a single embedding for the given text
func (c *GeminiClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.Models.EmbedContent(ctx, c.embeddingModel,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding")
	}

	return resp.Embeddings[0].Values, nil
}

// opens a streamed completion; system messages become the system instruction
func (c *GeminiClient) StreamCompletion(ctx context.Context, req CompletionRequest) (Stream, error) {
	model := req.Model
	if model == "" {
		model = c.completionModel
	}

	contents, system := toGeminiContents(req.Messages)

	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	return newPushStream(ctx, func(ctx context.Context, emit func(string) error) error {
		for resp, err := range c.client.Models.GenerateContentStream(ctx, model, contents, cfg) {
			if err != nil {
				return fmt.Errorf("gemini stream: %w", err)
			}

			if text := resp.Text(); text != "" {
				if err := emit(text); err != nil {
					return err
				}
			}
		}

		return nil
	}), nil
}

// splits messages into gemini contents and a joined system instruction
func toGeminiContents(messages []Message) ([]*genai.Content, string) {
	var system []string

	contents := make([]*genai.Content, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			system = append(system, msg.Content)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	return contents, strings.Join(system, "\n\n")
}
