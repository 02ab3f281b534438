package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agentcore "github.com/lc4490/rmp-rag/internal/agent"
	"github.com/lc4490/rmp-rag/internal/llm"
	"github.com/lc4490/rmp-rag/internal/ranker"
	"github.com/lc4490/rmp-rag/internal/retriever"
)

type mockEmbedder struct {
	embedFunc func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return m.embedFunc(ctx, text)
}

type mockSearcher struct{}

func (mockSearcher) Search(context.Context, retriever.Query) ([]ranker.Candidate, error) {
	return []ranker.Candidate{{ID: "Dr. Smith", Metadata: ranker.Metadata{"subject": "Biology", "rating": 4.8}}}, nil
}

type mockCompleter struct {
	streamFunc func(ctx context.Context, req llm.CompletionRequest) (llm.Stream, error)
}

func (m *mockCompleter) StreamCompletion(ctx context.Context, req llm.CompletionRequest) (llm.Stream, error) {
	return m.streamFunc(ctx, req)
}

func newSocketServer(t *testing.T, completer *mockCompleter, origins []string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	embedder := &mockEmbedder{embedFunc: func(context.Context, string) ([]float32, error) {
		return []float32{0.1, 0.2}, nil
	}}

	chatAgent := agentcore.New(embedder, mockSearcher{}, completer, agentcore.DefaultOptions())

	router := gin.New()
	RegisterRoutes(router.Group("/api"), chatAgent, origins)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close() //nolint:errcheck
	}
	t.Cleanup(func() { conn.Close() }) //nolint:errcheck

	return conn
}

// reads frames until done or error and returns the concatenated chunks plus the final frame
func readReply(t *testing.T, conn *websocket.Conn) (string, ServerMessage) {
	t.Helper()

	var text strings.Builder
	for {
		var frame ServerMessage
		require.NoError(t, conn.ReadJSON(&frame))

		if frame.Type != TypeChunk {
			return text.String(), frame
		}

		text.WriteString(frame.Content)
	}
}

func TestChatSocket_StreamsChunksThenDone(t *testing.T) {
	requests := make(chan llm.CompletionRequest, 1)
	completer := &mockCompleter{streamFunc: func(_ context.Context, req llm.CompletionRequest) (llm.Stream, error) {
		requests <- req
		return &llm.SliceStream{Chunks: []string{"Dr. Smith ", "", "is great."}}, nil
	}}

	conn := dial(t, newSocketServer(t, completer, nil))

	require.NoError(t, conn.WriteJSON(ClientMessage{
		Type:     TypeChat,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "who teaches biology?"}},
	}))

	text, final := readReply(t, conn)

	assert.Equal(t, "Dr. Smith is great.", text)
	assert.Equal(t, TypeDone, final.Type)

	gotRequest := <-requests
	require.Len(t, gotRequest.Messages, 2)
	assert.Contains(t, gotRequest.Messages[1].Content, "Professor: Dr. Smith")
}

func TestChatSocket_ValidationErrorKeepsConnection(t *testing.T) {
	completer := &mockCompleter{streamFunc: func(context.Context, llm.CompletionRequest) (llm.Stream, error) {
		return &llm.SliceStream{Chunks: []string{"ok"}}, nil
	}}

	conn := dial(t, newSocketServer(t, completer, nil))

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeChat}))
	_, final := readReply(t, conn)
	assert.Equal(t, TypeError, final.Type)
	assert.Equal(t, "bad_request", final.Code)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "subscribe"}))
	_, final = readReply(t, conn)
	assert.Equal(t, TypeError, final.Type)
	assert.Contains(t, final.Error, "subscribe")

	require.NoError(t, conn.WriteJSON(ClientMessage{
		Type:     TypeChat,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hello"}},
	}))
	text, final := readReply(t, conn)
	assert.Equal(t, "ok", text)
	assert.Equal(t, TypeDone, final.Type)
}

func TestChatSocket_StreamFailureSendsErrorFrame(t *testing.T) {
	completer := &mockCompleter{streamFunc: func(context.Context, llm.CompletionRequest) (llm.Stream, error) {
		return &llm.SliceStream{Chunks: []string{"partial"}, Failure: assert.AnError}, nil
	}}

	conn := dial(t, newSocketServer(t, completer, nil))

	require.NoError(t, conn.WriteJSON(ClientMessage{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hello"}},
	}))

	text, final := readReply(t, conn)

	assert.Equal(t, "partial", text)
	assert.Equal(t, TypeError, final.Type)
	assert.Equal(t, "upstream_error", final.Code)
}

func TestChatSocket_RejectsUnknownOrigin(t *testing.T) {
	completer := &mockCompleter{}
	url := newSocketServer(t, completer, []string{"http://localhost:3000"})

	header := http.Header{}
	header.Set("Origin", "http://evil.test")

	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close() //nolint:errcheck

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/api/chat/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.test")
	assert.False(t, check(req))

	req.Header.Set("Origin", "http://evil.test")
	assert.True(t, originChecker([]string{"*"})(req))
	assert.True(t, originChecker(nil)(req))
}

// emits one chunk, then blocks until its context is cancelled
type blockingStream struct {
	ctx     context.Context
	sent    bool
	current string
	closed  chan struct{}
}

func (s *blockingStream) Next() bool {
	if !s.sent {
		s.sent = true
		s.current = "first"
		return true
	}

	<-s.ctx.Done()
	return false
}

func (s *blockingStream) Chunk() string { return s.current }

func (s *blockingStream) Err() error { return s.ctx.Err() }

func (s *blockingStream) Close() error {
	close(s.closed)
	return nil
}

func TestChatSocket_ClientDisconnectStopsUpstream(t *testing.T) {
	closed := make(chan struct{})
	completer := &mockCompleter{streamFunc: func(ctx context.Context, _ llm.CompletionRequest) (llm.Stream, error) {
		return &blockingStream{ctx: ctx, closed: closed}, nil
	}}

	conn := dial(t, newSocketServer(t, completer, nil))

	require.NoError(t, conn.WriteJSON(ClientMessage{
		Type:     TypeChat,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hello"}},
	}))

	var frame ServerMessage
	require.NoError(t, conn.ReadJSON(&frame))
	require.Equal(t, ServerMessage{Type: TypeChunk, Content: "first"}, frame)

	require.NoError(t, conn.Close())

	select {
	case <-closed:
	case <-time.After(3 * time.Second):
		t.Fatal("upstream completion still open after the client disconnected")
	}
}

func TestChatSocket_InvalidFrameKeepsConnection(t *testing.T) {
	completer := &mockCompleter{streamFunc: func(context.Context, llm.CompletionRequest) (llm.Stream, error) {
		return &llm.SliceStream{Chunks: []string{"ok"}}, nil
	}}

	conn := dial(t, newSocketServer(t, completer, nil))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	_, final := readReply(t, conn)
	assert.Equal(t, TypeError, final.Type)
	assert.Equal(t, "invalid message format", final.Error)

	require.NoError(t, conn.WriteJSON(ClientMessage{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hello"}},
	}))
	text, final := readReply(t, conn)
	assert.Equal(t, "ok", text)
	assert.Equal(t, TypeDone, final.Type)
}
