package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// main TUI application model
type Model struct {
	width  int
	height int
	chat   *ChatModel
}

// represents a chat message in the conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chat screen: transcript viewport above a single line input
type ChatModel struct {
	input           textinput.Model
	viewport        viewport.Model
	spinner         spinner.Model
	glamourRenderer *glamour.TermRenderer
	theme           Theme
	width           int
	height          int
	ready           bool
	messages        []Message
	isStreaming     bool
	status          string
	client          *ChatClient
	stream          *ReplyStream
	cancel          context.CancelFunc
}

// sent once the server accepted the conversation and started replying
type StreamOpenedMsg struct {
	stream *ReplyStream
	cancel context.CancelFunc
}

// carries one fragment of the streamed reply
type ChunkMsg struct {
	text string
}

// sent when the reply stream ended normally
type StreamDoneMsg struct{}

// sent when the request or the stream failed
type ChatErrorMsg struct {
	err error
}

// color palette for one theme
type Theme struct {
	Name      string // glamour standard style name
	Text      string
	Muted     string
	Accent    string
	Border    string
	ErrorText string
}
