package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// manages HTTP requests to the chat REST API
type ChatClient struct {
	endpoint   string
	httpClient *http.Client
}

// creates a new chat client for the server at serverURL
func NewChatClient(serverURL string) *ChatClient {
	return &ChatClient{
		endpoint: strings.TrimRight(serverURL, "/"),
		// no client timeout: replies stream for as long as the model writes,
		// callers bound the request through the context instead
		httpClient: &http.Client{},
	}
}

// posts the whole conversation and returns the streamed reply
func (c *ChatClient) Open(ctx context.Context, conversation []Message) (*ReplyStream, error) {
	payloadBytes, err := json.Marshal(conversation)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.endpoint + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close() //nolint:errcheck
		return nil, responseError(resp)
	}

	return &ReplyStream{body: resp.Body}, nil
}

// builds an error from a non-200 response, preferring the server's message
func responseError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var errResp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}

	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
	}

	return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// reads a plain-text reply body as UTF-8 fragments
type ReplyStream struct {
	body    io.ReadCloser
	pending []byte
}

// returns the next decoded fragment, or io.EOF once the reply is complete.
// multi-byte characters split across reads are held back until whole.
func (s *ReplyStream) Next() (string, error) {
	buf := make([]byte, readBufferSize)

	for {
		n, err := s.body.Read(buf)
		if n > 0 {
			s.pending = append(s.pending, buf[:n]...)
			complete, rest := splitValidUTF8(s.pending)

			if len(complete) > 0 {
				text := string(complete)
				s.pending = append([]byte(nil), rest...)
				return text, nil
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return s.flush()
			}

			return "", fmt.Errorf("reading reply: %w", err)
		}
	}
}

// drains anything left once the body ended
func (s *ReplyStream) flush() (string, error) {
	if len(s.pending) == 0 {
		return "", io.EOF
	}

	text := string(s.pending)
	s.pending = nil

	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}

	return text, nil
}

func (s *ReplyStream) Close() error {
	return s.body.Close()
}
