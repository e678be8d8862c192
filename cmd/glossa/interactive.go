package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"glossa/cmd/glossa/ui"
	"glossa/internal/app"
)

// runInteractive wires the controller and launches the TUI.
func runInteractive() error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open language store: %w", err)
	}
	defer st.Close()

	ctrl := app.NewController(st, newService())
	model := ui.New(ctrl, cfg.Share.BaseURL)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}
