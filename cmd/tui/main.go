package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/lc4490/rmp-rag/internal/config"
	"github.com/lc4490/rmp-rag/internal/tui"
)

func main() {
	flags := config.ParseOSFlags()

	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "rmp chat needs an interactive terminal")
		os.Exit(1)
	}

	app := tui.NewApp(flags)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running rmp chat: %v\n", err)
		os.Exit(1)
	}
}
