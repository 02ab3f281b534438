package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lc4490/rmp-rag/internal/config"
)

func NewApp(flags config.Flags) *Model {
	return &Model{
		chat: NewChatModel(NewChatClient(flags.ServerURL), flags.Theme),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.chat.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.chat.stopStream()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)

	return m, cmd
}

func (m *Model) View() string {
	return m.chat.View()
}
