package tui

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// returns one scripted slice per Read call
type chunkedBody struct {
	chunks [][]byte
	closed bool
}

func (b *chunkedBody) Read(p []byte) (int, error) {
	if len(b.chunks) == 0 {
		return 0, io.EOF
	}

	n := copy(p, b.chunks[0])
	b.chunks = b.chunks[1:]

	return n, nil
}

func (b *chunkedBody) Close() error {
	b.closed = true
	return nil
}

func drain(t *testing.T, s *ReplyStream) string {
	t.Helper()

	var out strings.Builder
	for {
		text, err := s.Next()
		if errors.Is(err, io.EOF) {
			return out.String()
		}
		require.NoError(t, err)
		out.WriteString(text)
	}
}

func TestChatClient_Open(t *testing.T) {
	var received []Message

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Dr. Smith "))
		w.(http.Flusher).Flush()
		_, _ = w.Write([]byte("teaches Biology."))
	}))
	defer srv.Close()

	client := NewChatClient(srv.URL + "/")
	conversation := []Message{
		{Role: roleAssistant, Content: greeting},
		{Role: roleUser, Content: "who teaches biology?"},
	}

	stream, err := client.Open(context.Background(), conversation)
	require.NoError(t, err)
	defer stream.Close() //nolint:errcheck

	assert.Equal(t, "Dr. Smith teaches Biology.", drain(t, stream))
	assert.Equal(t, conversation, received)
}

func TestChatClient_Open_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"conversation must not be empty","code":"VALIDATION_ERROR"}`))
	}))
	defer srv.Close()

	_, err := NewChatClient(srv.URL).Open(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "conversation must not be empty")
}

func TestChatClient_Open_PlainServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewChatClient(srv.URL).Open(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "bad gateway")
}

func TestReplyStream_HoldsSplitRunes(t *testing.T) {
	word := []byte("café ✓")
	// split inside the three-byte check mark
	cut := len(word) - 1

	body := &chunkedBody{chunks: [][]byte{word[:cut], word[cut:]}}
	stream := &ReplyStream{body: body}

	first, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "café ", first)

	second, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "✓", second)

	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, stream.Close())
	assert.True(t, body.closed)
}

func TestReplyStream_TruncatedRuneAtEnd(t *testing.T) {
	body := &chunkedBody{chunks: [][]byte{{'o', 'k', 0xE2, 0x9C}}}
	stream := &ReplyStream{body: body}

	text := drain(t, stream)

	assert.True(t, strings.HasPrefix(text, "ok"))
	assert.Contains(t, text, "�")
}

func TestSplitValidUTF8(t *testing.T) {
	tests := []struct {
		name         string
		input        []byte
		wantComplete string
		wantRest     []byte
	}{
		{"ascii", []byte("abc"), "abc", []byte{}},
		{"empty", []byte{}, "", []byte{}},
		{"whole multibyte", []byte("é"), "é", []byte{}},
		{"cut two byte rune", []byte{'a', 0xC3}, "a", []byte{0xC3}},
		{"cut four byte rune", []byte{'a', 0xF0, 0x9F, 0x98}, "a", []byte{0xF0, 0x9F, 0x98}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			complete, rest := splitValidUTF8(tt.input)
			assert.Equal(t, tt.wantComplete, string(complete))
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}
