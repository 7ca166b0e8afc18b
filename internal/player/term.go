package player

import (
	"fmt"

	"golang.org/x/term"

	"github.com/ytmcli/ytmcli/internal/shared"
)

// TerminalModeGuard owns the terminal's raw mode. Exactly one holder at a
// time: acquiring while held fails with [shared.ErrRawModeHeld] instead of
// silently nesting, and releasing restores the state captured at acquire.
type TerminalModeGuard struct {
	fd    int
	held  bool
	saved *term.State

	// swapped out in tests
	makeRaw func(int) (*term.State, error)
	restore func(int, *term.State) error
}

// NewTerminalModeGuard creates a guard for the given file descriptor,
// usually os.Stdin.
func NewTerminalModeGuard(fd int) *TerminalModeGuard {
	return &TerminalModeGuard{
		fd:      fd,
		makeRaw: term.MakeRaw,
		restore: term.Restore,
	}
}

// Acquire switches the terminal to raw mode and records the prior state.
func (g *TerminalModeGuard) Acquire() error {
	if g.held {
		return shared.ErrRawModeHeld
	}

	saved, err := g.makeRaw(g.fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}

	g.saved = saved
	g.held = true
	return nil
}

// Release restores the terminal state captured by Acquire. The guard drops
// its hold even when the restore syscall fails, so a second Release reports
// [shared.ErrRawModeNotHeld] rather than restoring twice.
func (g *TerminalModeGuard) Release() error {
	if !g.held {
		return shared.ErrRawModeNotHeld
	}

	saved := g.saved
	g.held = false
	g.saved = nil

	if err := g.restore(g.fd, saved); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}

	return nil
}

// Held reports whether the guard currently owns raw mode.
func (g *TerminalModeGuard) Held() bool {
	return g.held
}
