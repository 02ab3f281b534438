package chat

import (
	"bytes"
	"encoding/json"

	"github.com/lc4490/rmp-rag/internal/llm"
	"github.com/lc4490/rmp-rag/internal/ranker"
)

// content type of a streamed reply
const streamContentType = "text/plain; charset=utf-8"

// ChatRequest is the conversation posted by the client.
// the body may be a bare JSON array of messages or {"messages": [...]}.
type ChatRequest struct {
	Messages []llm.Message `json:"messages"`
}

func (r *ChatRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &r.Messages)
	}

	var wrapped struct {
		Messages []llm.Message `json:"messages"`
	}

	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}

	r.Messages = wrapped.Messages

	return nil
}

// PreviewResponse shows what would be sent to the completion model
type PreviewResponse struct {
	Query      string          `json:"query"`
	Candidates []ranker.Ranked `json:"candidates"`
	Messages   []llm.Message   `json:"messages"`
}
