// Package store implements SQLite persistence for the client's local state.
//
// Two stores share one database:
//   - [PlaylistStore] : Saved playlists and their track membership, ordered
//     by an explicit position column
//   - [DislikeStore] : Tracks the user has marked never-play-again, consulted
//     when building radio queues
//
// [Init] creates the schema idempotently; there is no migration history
// because the schema is small and additive. Playlists are addressed by name
// in the CLI and the playback overlays, so names are unique.
package store
