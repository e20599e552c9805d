package screen

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasks/internal/store"
)

// Options configure Run.
type Options struct {
	Store     *store.Store
	Logger    *log.Logger
	CharLimit int
	AltScreen bool

	// Input and Output override the terminal, mainly for tests.
	Input  io.Reader
	Output io.Writer
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled. Tasks live only as long as the program.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		opts.Store = store.New(store.WithLogger(opts.Logger))
	}
	m := New(NewController(opts.Store, opts.Logger), opts.CharLimit)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
