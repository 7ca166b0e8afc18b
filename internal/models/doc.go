// Package models defines domain entities shared across the ytmcli client.
//
// The package contains three categories of types:
//
// 1. Streaming data: Lightweight structs representing YouTube Music data
//   - [Track] : Song metadata returned by search and radio endpoints
//
// 2. Local entities: Rows persisted by the store package
//   - [Playlist] : Locally saved playlist metadata
//   - [Dislike] : A track the user never wants queued again
//
// 3. Lyrics: Parsed LRC content
//   - [Cue] : One timestamped lyric line
//   - [Lyrics] : A full set of cues with synced/plain classification and
//     highlight-index helpers used by the lyrics overlay
package models
