package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"hunterquest/internal/engine"
)

func RunBoard(ctx context.Context, svc *engine.Service, hunter string, out io.Writer) error {
	m := newBoardModel(ctx, svc, hunter)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
