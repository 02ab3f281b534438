package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/packages/ssestream"
	"github.com/openai/openai-go/v2/shared"
)

type OpenAIConfig struct {
	APIKey          string
	BaseURL         string
	EmbeddingModel  string
	CompletionModel string
}

// embeds text and streams chat completions through the OpenAI API
type OpenAIClient struct {
	client          openai.Client
	embeddingModel  string
	completionModel string
}

func NewOpenAIClient(config OpenAIConfig) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &OpenAIClient{
		client:          openai.NewClient(opts...),
		embeddingModel:  config.EmbeddingModel,
		completionModel: config.CompletionModel,
	}
}

// generates a single embedding for the given text
func (c *OpenAIClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:          openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model:          openai.EmbeddingModel(c.embeddingModel),
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned from OpenAI")
	}

	values := resp.Data[0].Embedding
	embedding := make([]float32, len(values))

	for i, v := range values {
		embedding[i] = float32(v)
	}

	return embedding, nil
}

// opens a streamed chat completion
func (c *OpenAIClient) StreamCompletion(ctx context.Context, req CompletionRequest) (Stream, error) {
	model := req.Model
	if model == "" {
		model = c.completionModel
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		case RoleUser:
			messages = append(messages, openai.UserMessage(msg.Content))
		default:
			return nil, fmt.Errorf("unsupported message role: %q", msg.Role)
		}
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: messages,
	})

	// connection and status failures are already known here
	if err := stream.Err(); err != nil {
		stream.Close() //nolint:errcheck,gosec // already failed
		return nil, fmt.Errorf("failed to start completion: %w", err)
	}

	return &openAIStream{stream: stream}, nil
}

type openAIStream struct {
	stream  *ssestream.Stream[openai.ChatCompletionChunk]
	current string
	closed  bool
}

func (s *openAIStream) Next() bool {
	for s.stream.Next() {
		chunk := s.stream.Current()

		if len(chunk.Choices) == 0 {
			continue
		}

		s.current = chunk.Choices[0].Delta.Content
		return true
	}

	return false
}

func (s *openAIStream) Chunk() string {
	return s.current
}

func (s *openAIStream) Err() error {
	return s.stream.Err()
}

func (s *openAIStream) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	return s.stream.Close()
}
