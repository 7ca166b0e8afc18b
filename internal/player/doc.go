// Package player owns playback: the external mpv process, its JSON IPC
// socket, terminal raw mode, and the single-threaded session loop.
//
// Key pieces:
//   - [TerminalModeGuard] : exclusive raw-mode ownership with exactly-once
//     restore semantics. Acquiring while held fails fast; the session holds
//     the guard for its whole life and lends the terminal to overlays.
//   - [Handle] : one spawned player process per track. Spawn failures
//     propagate; once the process is up, every IPC interaction is
//     best-effort and can never abort playback.
//   - [IPCError] : typed IPC failure (timeout, transport, protocol) so
//     callers can decide what to swallow.
//   - [Session] : the cursor-driven playback loop. One goroutine, bounded
//     polls: a 200ms keypress wait and a 500ms pause-state reconciliation
//     against the player. Keys are dispatched through a fixed table
//     (space/n/b/l/a/d/q).
//
// The session never blocks indefinitely on the player or on stdin, so a
// wedged mpv cannot wedge the UI.
package player
