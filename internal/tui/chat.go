package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"

	// title, status, input box and help line
	chromeHeight = 7
)

// returns a chat screen that talks to client, starting with the greeting
func NewChatModel(client *ChatClient, themeName string) *ChatModel {
	theme := themeByName(themeName)

	ti := textinput.New()
	ti.Placeholder = "ask about professors, courses, or subjects..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &ChatModel{
		input:    ti,
		spinner:  sp,
		client:   client,
		messages: []Message{{Role: roleAssistant, Content: greeting}},
	}
	m.applyTheme(theme)

	return m
}

func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ChatModel) Update(msg tea.Msg) (*ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, m.send()

		case "ctrl+t":
			m.applyTheme(m.theme.toggled())
			return m, nil

		case "esc":
			if m.isStreaming {
				m.stopStream()
				m.status = "reply cancelled"
				m.refresh()
			}
			return m, nil

		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case StreamOpenedMsg:
		if !m.isStreaming {
			// cancelled before the server answered
			msg.stream.Close() //nolint:errcheck
			msg.cancel()
			return m, nil
		}

		m.stream = msg.stream
		m.cancel = msg.cancel
		return m, readChunk(m.stream)

	case ChunkMsg:
		if !m.isStreaming || m.stream == nil {
			return m, nil
		}

		m.appendToReply(msg.text)
		return m, readChunk(m.stream)

	case StreamDoneMsg:
		m.stopStream()
		m.status = ""
		m.refresh()
		return m, nil

	case ChatErrorMsg:
		if !m.isStreaming {
			return m, nil
		}

		m.stopStream()
		m.failReply(msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.isStreaming {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// appends the user's turn plus an empty assistant placeholder and posts the
// conversation up to and including the user's turn
func (m *ChatModel) send() tea.Cmd {
	query := strings.TrimSpace(m.input.Value())
	if query == "" || m.isStreaming {
		return nil
	}

	m.input.SetValue("")
	m.messages = append(m.messages, Message{Role: roleUser, Content: query})

	conversation := make([]Message, len(m.messages))
	copy(conversation, m.messages)

	m.messages = append(m.messages, Message{Role: roleAssistant, Content: ""})
	m.isStreaming = true
	m.status = ""
	m.refresh()

	return tea.Batch(openChat(m.client, conversation), m.spinner.Tick)
}

func (m *ChatModel) appendToReply(text string) {
	last := &m.messages[len(m.messages)-1]
	last.Content += text
	m.refresh()
}

// keeps whatever was streamed and reports the failure inline
func (m *ChatModel) failReply(err error) {
	last := &m.messages[len(m.messages)-1]
	if last.Content == "" {
		last.Content = errorApology
	}

	m.status = fmt.Sprintf("error: %v", err)
	m.refresh()
}

func (m *ChatModel) stopStream() {
	if m.stream != nil {
		m.stream.Close() //nolint:errcheck
		m.stream = nil
	}

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.isStreaming = false
}

func (m *ChatModel) applyTheme(theme Theme) {
	m.theme = theme
	m.input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted))
	m.input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Text))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))
	m.rebuildRenderer()
	m.refresh()
}

func (m *ChatModel) rebuildRenderer() {
	wrap := max(m.width-6, 20)

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.Name),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		// fall back to raw markdown
		m.glamourRenderer = nil
		return
	}

	m.glamourRenderer = r
}

func (m *ChatModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-8, 10)

	vpHeight := max(height-chromeHeight, 3)
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}

	m.rebuildRenderer()
	m.refresh()
}

// re-renders the transcript into the viewport and keeps it scrolled to the end
func (m *ChatModel) refresh() {
	if !m.ready {
		return
	}

	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *ChatModel) renderTranscript() string {
	var b strings.Builder

	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}

		if msg.Role == roleUser {
			b.WriteString(m.theme.userLabelStyle().Render("You"))
			b.WriteString("\n")
			b.WriteString(msg.Content)
			b.WriteString("\n")
			continue
		}

		b.WriteString(m.theme.assistantLabelStyle().Render("Assistant"))
		b.WriteString("\n")
		b.WriteString(m.renderMarkdown(msg.Content))
	}

	return b.String()
}

func (m *ChatModel) renderMarkdown(content string) string {
	if content == "" {
		return "\n"
	}

	if m.glamourRenderer == nil {
		return content + "\n"
	}

	out, err := m.glamourRenderer.Render(content)
	if err != nil {
		return content + "\n"
	}

	return strings.TrimLeft(out, "\n")
}

func (m *ChatModel) View() string {
	if !m.ready {
		return "\n  loading..."
	}

	var b strings.Builder

	b.WriteString(m.theme.titleStyle().Render("Rate My Professor assistant"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	switch {
	case m.isStreaming:
		b.WriteString(m.spinner.View() + " thinking...")
	case strings.HasPrefix(m.status, "error"):
		b.WriteString(m.theme.errorStyle().Render(m.status))
	default:
		b.WriteString(m.theme.helpStyle().Render(m.status))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.boxStyle(m.width).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.theme.helpStyle().Render("enter send • esc cancel reply • ctrl+t theme • ctrl+c quit"))

	return b.String()
}
