// Package ui implements the interactive full-screen overlays using bubbletea's Elm architecture.
//
// Two overlays exist:
//   - [SelectionModel] : search-result picker with circular navigation,
//     1..9 jump keys and an inline add-to-playlist flow
//   - [LyricsModel] : scrolling lyrics view that follows playback position,
//     highlighting the active cue (or an estimated line for unsynced lyrics)
//
// Both models implement bubbletea's standard Init/Update/View pattern. The
// playback session lends the terminal to an overlay and takes it back when
// the overlay's program exits; overlays never touch raw mode beyond what
// bubbletea manages.
//
// Text is word-wrapped by [Wrap], which preserves the mapping from display
// rows back to source lines so cue highlighting survives wrapping. On
// terminals without a UTF-8 locale the overlays degrade to lossy ASCII
// rendering.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
