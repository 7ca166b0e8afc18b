package player

import (
	"errors"
	"testing"

	"golang.org/x/term"

	"github.com/ytmcli/ytmcli/internal/shared"
)

// newFakeGuard returns a guard whose raw/restore calls are recorded instead
// of touching a real terminal.
func newFakeGuard(restoreErr error) (*TerminalModeGuard, *int, *int) {
	rawCalls := 0
	restoreCalls := 0

	g := &TerminalModeGuard{
		fd: 0,
		makeRaw: func(fd int) (*term.State, error) {
			rawCalls++
			return &term.State{}, nil
		},
		restore: func(fd int, s *term.State) error {
			restoreCalls++
			return restoreErr
		},
	}

	return g, &rawCalls, &restoreCalls
}

func TestTerminalModeGuard(t *testing.T) {
	t.Run("acquire then release", func(t *testing.T) {
		g, rawCalls, restoreCalls := newFakeGuard(nil)

		if g.Held() {
			t.Error("fresh guard should not be held")
		}

		if err := g.Acquire(); err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		if !g.Held() {
			t.Error("guard should be held after Acquire")
		}

		if err := g.Release(); err != nil {
			t.Fatalf("Release() error = %v", err)
		}
		if g.Held() {
			t.Error("guard should not be held after Release")
		}

		if *rawCalls != 1 || *restoreCalls != 1 {
			t.Errorf("raw=%d restore=%d, want 1/1", *rawCalls, *restoreCalls)
		}
	})

	t.Run("nested acquire fails fast", func(t *testing.T) {
		g, rawCalls, _ := newFakeGuard(nil)

		if err := g.Acquire(); err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		if err := g.Acquire(); !errors.Is(err, shared.ErrRawModeHeld) {
			t.Errorf("second Acquire() error = %v, want ErrRawModeHeld", err)
		}
		if *rawCalls != 1 {
			t.Errorf("raw mode entered %d times, want 1", *rawCalls)
		}
	})

	t.Run("release without hold fails", func(t *testing.T) {
		g, _, restoreCalls := newFakeGuard(nil)

		if err := g.Release(); !errors.Is(err, shared.ErrRawModeNotHeld) {
			t.Errorf("Release() error = %v, want ErrRawModeNotHeld", err)
		}
		if *restoreCalls != 0 {
			t.Errorf("restore called %d times, want 0", *restoreCalls)
		}
	})

	t.Run("restore runs exactly once even after failure", func(t *testing.T) {
		g, _, restoreCalls := newFakeGuard(errors.New("tty gone"))

		if err := g.Acquire(); err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}

		if err := g.Release(); err == nil {
			t.Error("Release() should surface restore failure")
		}

		// The hold is gone regardless, so a retry cannot double-restore.
		if err := g.Release(); !errors.Is(err, shared.ErrRawModeNotHeld) {
			t.Errorf("second Release() error = %v, want ErrRawModeNotHeld", err)
		}
		if *restoreCalls != 1 {
			t.Errorf("restore called %d times, want 1", *restoreCalls)
		}
	})

	t.Run("deferred release restores on panic", func(t *testing.T) {
		g, _, restoreCalls := newFakeGuard(nil)

		func() {
			defer func() { _ = recover() }()
			defer func() {
				if g.Held() {
					g.Release()
				}
			}()

			if err := g.Acquire(); err != nil {
				t.Fatalf("Acquire() error = %v", err)
			}
			panic("mid-session failure")
		}()

		if g.Held() {
			t.Error("guard should not be held after panic unwound")
		}
		if *restoreCalls != 1 {
			t.Errorf("restore called %d times, want 1", *restoreCalls)
		}
	})

	t.Run("acquire release acquire cycle", func(t *testing.T) {
		g, rawCalls, _ := newFakeGuard(nil)

		for i := 0; i < 3; i++ {
			if err := g.Acquire(); err != nil {
				t.Fatalf("Acquire() #%d error = %v", i, err)
			}
			if err := g.Release(); err != nil {
				t.Fatalf("Release() #%d error = %v", i, err)
			}
		}

		if *rawCalls != 3 {
			t.Errorf("raw mode entered %d times, want 3", *rawCalls)
		}
	})
}
