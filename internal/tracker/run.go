package tracker

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe5h/tally/internal/service"
)

// Run starts the interactive stopwatch and blocks until the user saves,
// discards, or the context is canceled.
func Run(ctx context.Context, storage service.Storage) error {
	if storage == nil {
		return fmt.Errorf("storage is required")
	}

	p := tea.NewProgram(newModel(ctx, storage), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tracker failed: %w", err)
	}

	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
