// LRCLIB [LyricsProvider] implementation
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/ytmcli/ytmcli/internal/models"
	"github.com/ytmcli/ytmcli/internal/shared"
)

const (
	defaultLyricsBaseURL   = "https://lrclib.net/api"
	defaultLyricsUserAgent = "ytmcli/0.4.0 (https://github.com/ytmcli/ytmcli)"
)

// lrclibRecord is the LRCLIB representation of one lyrics entry.
type lrclibRecord struct {
	ID           int     `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// LyricsService implements [LyricsProvider] backed by the LRCLIB API.
type LyricsService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewLyricsService creates a LyricsService for the given LRCLIB instance.
func NewLyricsService(baseURL, userAgent string) *LyricsService {
	if baseURL == "" {
		baseURL = defaultLyricsBaseURL
	}
	if userAgent == "" {
		userAgent = defaultLyricsUserAgent
	}

	return &LyricsService{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: http.DefaultClient,
		// lrclib.net asks clients to stay under a couple requests per second
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
}

// SetHTTPClient swaps the underlying [http.Client], used in tests.
func (l *LyricsService) SetHTTPClient(c *http.Client) {
	l.httpClient = c
}

// Lyrics fetches lyrics for a track, preferring an exact signature match and
// falling back to a fuzzy search. Returns [shared.ErrLyricsNotFound] when
// neither yields usable lyrics.
func (l *LyricsService) Lyrics(ctx context.Context, track models.Track) (*models.Lyrics, error) {
	record, err := l.get(ctx, track)
	if err != nil {
		return nil, err
	}

	if record == nil {
		record, err = l.search(ctx, track)
		if err != nil {
			return nil, err
		}
	}

	if record == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrLyricsNotFound, track.Label())
	}

	return recordToLyrics(record)
}

// get calls GET /get with the full track signature. A 404 is not an error;
// it means fall through to search.
func (l *LyricsService) get(ctx context.Context, track models.Track) (*lrclibRecord, error) {
	params := url.Values{}
	params.Set("track_name", track.Title)
	params.Set("artist_name", track.Artist)
	if track.Album != "" {
		params.Set("album_name", track.Album)
	}
	if track.Duration > 0 {
		params.Set("duration", fmt.Sprintf("%d", track.Duration))
	}

	var record lrclibRecord
	found, err := l.doRequest(ctx, "/get?"+params.Encode(), &record)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return &record, nil
}

// search calls GET /search and picks the first result carrying lyrics,
// preferring synced ones.
func (l *LyricsService) search(ctx context.Context, track models.Track) (*lrclibRecord, error) {
	params := url.Values{}
	params.Set("track_name", track.Title)
	if track.Artist != "" {
		params.Set("artist_name", track.Artist)
	}

	var records []lrclibRecord
	found, err := l.doRequest(ctx, "/search?"+params.Encode(), &records)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	for i := range records {
		if records[i].SyncedLyrics != "" {
			return &records[i], nil
		}
	}
	for i := range records {
		if records[i].PlainLyrics != "" {
			return &records[i], nil
		}
	}

	return nil, nil
}

// doRequest performs a rate-limited GET. Returns found=false on 404 so
// callers can fall back instead of failing.
func (l *LyricsService) doRequest(ctx context.Context, endpoint string, result any) (bool, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	return true, nil
}

// recordToLyrics converts an LRCLIB record into [models.Lyrics], preferring
// synced content.
func recordToLyrics(record *lrclibRecord) (*models.Lyrics, error) {
	if record.SyncedLyrics != "" {
		cues := ParseLRC(record.SyncedLyrics)
		if len(cues) > 0 {
			return &models.Lyrics{Cues: cues, Synced: true}, nil
		}
	}

	if record.PlainLyrics != "" {
		return &models.Lyrics{Cues: ParsePlain(record.PlainLyrics)}, nil
	}

	if record.Instrumental {
		return nil, fmt.Errorf("%w: instrumental track", shared.ErrLyricsNotFound)
	}

	return nil, shared.ErrLyricsNotFound
}
