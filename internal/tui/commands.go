package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// opens a reply stream for the given conversation
func openChat(client *ChatClient, conversation []Message) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatRequestTimeout)

		stream, err := client.Open(ctx, conversation)
		if err != nil {
			cancel()
			return ChatErrorMsg{err: err}
		}

		return StreamOpenedMsg{stream: stream, cancel: cancel}
	}
}

// reads the next fragment of an open reply
func readChunk(stream *ReplyStream) tea.Cmd {
	return func() tea.Msg {
		text, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return StreamDoneMsg{}
		}

		if err != nil {
			return ChatErrorMsg{err: err}
		}

		return ChunkMsg{text: text}
	}
}
