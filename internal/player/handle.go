package player

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ytmcli/ytmcli/internal/shared"
)

const (
	// socketWarmup bounds how long Spawn waits for the player to create its
	// IPC socket before giving up and proceeding best-effort.
	socketWarmup    = 2 * time.Second
	socketPollEvery = 50 * time.Millisecond
	stopGracePeriod = 3 * time.Second
)

var _ Player = (*Handle)(nil)

// Handle owns one spawned player process and its IPC socket. Spawn failures
// propagate to the caller; after that every method is best-effort, so a dead
// or wedged player degrades playback control but never crashes the session.
type Handle struct {
	cmd        *exec.Cmd
	socketPath string
	client     *ipcClient
	logger     *log.Logger
	done       chan struct{}
}

// Spawn starts the configured player binary for the given media URL with a
// fresh per-track IPC socket. stdout and stderr are discarded so the player
// cannot scribble on the raw-mode terminal.
func Spawn(cfg shared.MPVConfig, mediaURL string, logger *log.Logger) (*Handle, error) {
	binary := cfg.Binary
	if binary == "" {
		binary = "mpv"
	}

	socketPath := filepath.Join(os.TempDir(), fmt.Sprintf("ytmcli-mpv-%s.sock", shared.GenerateID()))

	args := append([]string{}, cfg.Flags...)
	args = append(args, "--input-ipc-server="+socketPath, mediaURL)

	cmd := exec.Command(binary, args...)
	// nil Stdout/Stderr connect the player to the null device

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrPlayerSpawn, err)
	}

	h := &Handle{
		cmd:        cmd,
		socketPath: socketPath,
		client:     newIPCClient(socketPath),
		logger:     logger,
		done:       make(chan struct{}),
	}

	go func() {
		cmd.Wait()
		close(h.done)
	}()

	h.awaitSocket()

	return h, nil
}

// awaitSocket polls for the IPC socket to appear. The player creates it
// shortly after startup; if it never does, control calls simply fail soft.
func (h *Handle) awaitSocket() {
	deadline := time.Now().Add(socketWarmup)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(h.socketPath); err == nil {
			return
		}
		if h.Exited() {
			return
		}
		time.Sleep(socketPollEvery)
	}

	h.logger.Debug("player socket never appeared", "path", h.socketPath)
}

// Exited reports whether the player process has terminated, without blocking.
func (h *Handle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Send issues a fire-and-forget command. Failures are logged and swallowed.
func (h *Handle) Send(args ...any) {
	if err := h.client.command(args...); err != nil {
		h.logger.Debug("player command failed", "args", args, "kind", err.Kind)
	}
}

// TogglePause flips the player's pause property.
func (h *Handle) TogglePause() {
	h.Send("cycle", "pause")
}

// TimePosition returns the current playback position in seconds, or 0 when
// the player cannot answer in time.
func (h *Handle) TimePosition() float64 {
	var pos float64
	if err := h.client.getProperty("time-pos", &pos); err != nil {
		h.logger.Debug("time-pos query failed", "kind", err.Kind)
		return 0
	}
	return pos
}

// Paused returns the player's pause state. ok is false when the player
// cannot answer in time, leaving the caller's cached state authoritative.
func (h *Handle) Paused() (bool, bool) {
	var paused bool
	if err := h.client.getProperty("pause", &paused); err != nil {
		h.logger.Debug("pause query failed", "kind", err.Kind)
		return false, false
	}
	return paused, true
}

// Stop terminates the player process with a bounded grace period and removes
// the socket file. Safe to call after the process has already exited.
func (h *Handle) Stop() {
	defer os.Remove(h.socketPath)

	if h.cmd == nil || h.cmd.Process == nil {
		return
	}

	select {
	case <-h.done:
		return
	default:
	}

	if err := h.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		h.logger.Debug("failed to signal player", "err", err)
	}

	select {
	case <-h.done:
	case <-time.After(stopGracePeriod):
		h.logger.Warn("player ignored SIGTERM, killing")
		h.cmd.Process.Kill()
		<-h.done
	}
}
