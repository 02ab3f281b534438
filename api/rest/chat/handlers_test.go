package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agentcore "github.com/lc4490/rmp-rag/internal/agent"
	apperrors "github.com/lc4490/rmp-rag/internal/errors"
	"github.com/lc4490/rmp-rag/internal/llm"
	"github.com/lc4490/rmp-rag/internal/ranker"
	"github.com/lc4490/rmp-rag/internal/retriever"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// implements llm.Embedder and llm.Completer for testing
type mockLLM struct {
	generateEmbeddingFunc func(ctx context.Context, text string) ([]float32, error)
	streamCompletionFunc  func(ctx context.Context, req llm.CompletionRequest) (llm.Stream, error)
}

func (m *mockLLM) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.generateEmbeddingFunc != nil {
		return m.generateEmbeddingFunc(ctx, text)
	}

	return []float32{0.1, 0.2}, nil
}

func (m *mockLLM) StreamCompletion(ctx context.Context, req llm.CompletionRequest) (llm.Stream, error) {
	if m.streamCompletionFunc != nil {
		return m.streamCompletionFunc(ctx, req)
	}

	return &llm.SliceStream{Chunks: []string{"Dr. Easy ", "Going ", "is a great pick."}}, nil
}

// implements agent.Searcher for testing
type mockSearcher struct {
	searchFunc func(ctx context.Context, query retriever.Query) ([]ranker.Candidate, error)
}

func (m *mockSearcher) Search(ctx context.Context, query retriever.Query) ([]ranker.Candidate, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}

	return []ranker.Candidate{
		{ID: "Dr. Hard Grader", Metadata: ranker.Metadata{"rating": 3.6, "difficulty": 4.8}},
		{ID: "Dr. Easy Going", Metadata: ranker.Metadata{"rating": 4.7, "difficulty": 1.2, "keywords": []any{"biology"}}},
	}, nil
}

func newRouter(llmClient *mockLLM, searcher *mockSearcher) *gin.Engine {
	chatAgent := agentcore.New(llmClient, searcher, llmClient, agentcore.DefaultOptions())

	router := gin.New()
	router.Use(apperrors.Recovery())
	RegisterRoutes(router.Group("/api"), chatAgent)

	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()

	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

const biologyConversation = `[{"role":"user","content":"recommend an easy biology professor"}]`

func TestChatHandler_StreamsReply(t *testing.T) {
	router := newRouter(&mockLLM{}, &mockSearcher{})

	w := post(router, "/api/chat", biologyConversation)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Dr. Easy Going is a great pick.", w.Body.String())
}

func TestChatHandler_AcceptsWrappedMessages(t *testing.T) {
	router := newRouter(&mockLLM{}, &mockSearcher{})

	w := post(router, "/api/chat", `{"messages":[{"role":"user","content":"any physics profs?"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChatHandler_SendsRankedPromptToModel(t *testing.T) {
	var sent []llm.Message

	llmClient := &mockLLM{streamCompletionFunc: func(_ context.Context, req llm.CompletionRequest) (llm.Stream, error) {
		sent = req.Messages
		return &llm.SliceStream{Chunks: []string{"ok"}}, nil
	}}

	w := post(newRouter(llmClient, &mockSearcher{}), "/api/chat", biologyConversation)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, sent, 2)
	content := sent[1].Content
	assert.True(t, strings.HasPrefix(content, "recommend an easy biology professor"))
	assert.Less(t, strings.Index(content, "Dr. Easy Going"), strings.Index(content, "Dr. Hard Grader"))
}

func TestChatHandler_BadRequests(t *testing.T) {
	router := newRouter(&mockLLM{}, &mockSearcher{})

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", `[{"role":`},
		{"empty array", `[]`},
		{"null", `null`},
		{"blank last message", `[{"role":"user","content":"   "}]`},
		{"unknown role", `[{"role":"robot","content":"hi"}]`},
		{"wrong shape", `{"messages":"hello"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(router, "/api/chat", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, errorBody(t, w).Error)
		})
	}
}

func TestChatHandler_UpstreamFailuresBeforeFirstByte(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	tests := []struct {
		name     string
		llm      *mockLLM
		searcher *mockSearcher
		message  string
	}{
		{
			name: "embedding",
			llm: &mockLLM{generateEmbeddingFunc: func(context.Context, string) ([]float32, error) {
				return nil, errors.New("invalid api key")
			}},
			searcher: &mockSearcher{},
			message:  "invalid api key",
		},
		{
			name: "search",
			llm:  &mockLLM{},
			searcher: &mockSearcher{searchFunc: func(context.Context, retriever.Query) ([]ranker.Candidate, error) {
				return nil, errors.New("index rag not found")
			}},
			message: "index rag not found",
		},
		{
			name: "completion start",
			llm: &mockLLM{streamCompletionFunc: func(context.Context, llm.CompletionRequest) (llm.Stream, error) {
				return nil, errors.New("model overloaded")
			}},
			searcher: &mockSearcher{},
			message:  "model overloaded",
		},
		{
			name: "stream fails before any text",
			llm: &mockLLM{streamCompletionFunc: func(context.Context, llm.CompletionRequest) (llm.Stream, error) {
				return &llm.SliceStream{Failure: errors.New("stream reset")}, nil
			}},
			searcher: &mockSearcher{},
			message:  "stream reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(newRouter(tt.llm, tt.searcher), "/api/chat", biologyConversation)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			assert.Contains(t, errorBody(t, w).Error, tt.message)
		})
	}
}

func TestChatHandler_AbortsConnectionMidStream(t *testing.T) {
	llmClient := &mockLLM{streamCompletionFunc: func(context.Context, llm.CompletionRequest) (llm.Stream, error) {
		return &llm.SliceStream{Chunks: []string{"Dr. Easy"}, Failure: errors.New("upstream dropped")}, nil
	}}

	server := httptest.NewServer(newRouter(llmClient, &mockSearcher{}))
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/chat", "application/json", strings.NewReader(biologyConversation))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.Error(t, err, "truncated stream must not look complete")
	assert.Equal(t, "Dr. Easy", string(body))
}

func TestPreviewHandler(t *testing.T) {
	completionCalled := false
	llmClient := &mockLLM{streamCompletionFunc: func(context.Context, llm.CompletionRequest) (llm.Stream, error) {
		completionCalled = true
		return &llm.SliceStream{}, nil
	}}

	w := post(newRouter(llmClient, &mockSearcher{}), "/api/chat/preview", biologyConversation)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, completionCalled)

	var preview PreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))

	assert.Equal(t, "recommend an easy biology professor", preview.Query)
	require.Len(t, preview.Candidates, 2)
	assert.Equal(t, "Dr. Easy Going", preview.Candidates[0].ID)
	assert.Greater(t, preview.Candidates[0].RankScore, preview.Candidates[1].RankScore)
	require.Len(t, preview.Messages, 2)
	assert.Equal(t, llm.RoleSystem, preview.Messages[0].Role)
}

func TestChatRequest_UnmarshalJSON(t *testing.T) {
	var bare ChatRequest
	require.NoError(t, json.Unmarshal([]byte(` [{"role":"user","content":"hi"}]`), &bare))
	assert.Len(t, bare.Messages, 1)

	var wrapped ChatRequest
	require.NoError(t, json.Unmarshal([]byte(`{"messages":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]}`), &wrapped))
	assert.Len(t, wrapped.Messages, 2)
	assert.Equal(t, "assistant", wrapped.Messages[1].Role)
}
