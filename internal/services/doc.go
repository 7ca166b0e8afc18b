// Package services implements the HTTP clients the player depends on.
//
// # YouTube Music
//
// [YouTubeService] communicates with the FastAPI proxy server wrapping
// ytmusicapi. The proxy handles YouTube Music authentication complexities.
// The auth_file path is sent via X-Auth-File header on each request.
// All YouTube operations are synchronous HTTP calls to the proxy endpoints.
//
// # Lyrics
//
// [LyricsService] fetches lyrics from the LRCLIB API, preferring an exact
// match on track, artist, album and duration and falling back to a fuzzy
// search. Synced lyrics are parsed from LRC format by [ParseLRC]; plain
// lyrics are kept line by line without timestamps. Requests are rate limited
// to stay polite toward the public instance.
//
// # OAuth
//
// [OAuthAuthenticator] runs the Google TV device-code flow and writes the
// resulting token file for the proxy to consume.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrLyricsNotFound] : no lyrics exist for the track
//   - [shared.ErrTrackNotFound] : search produced no usable results
package services
