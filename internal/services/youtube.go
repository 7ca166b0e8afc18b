// YouTube Music [SearchService] implementation
//
// Communicates with the FastAPI proxy server running on port 8080.
// The proxy wraps the ytmusicapi Python library for YouTube Music operations.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ytmcli/ytmcli/internal/models"
	"github.com/ytmcli/ytmcli/internal/shared"
)

const defaultYTBaseURL string = "http://localhost:8080"

// YouTubeArtist represents an artist in YouTube Music responses.
type YouTubeArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type youtubeAlbum struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// YouTubeTrack represents a track/video in YouTube Music responses.
type YouTubeTrack struct {
	VideoID     string          `json:"videoId"`
	Title       string          `json:"title"`
	Artists     []YouTubeArtist `json:"artists"`
	Album       *youtubeAlbum   `json:"album"`
	Duration    string          `json:"duration"`
	DurationSec int             `json:"duration_seconds"` // Duration in seconds
}

// YouTubeService implements [SearchService] for YouTube Music via proxy.
type YouTubeService struct {
	baseURL    string
	authFile   string
	httpClient *http.Client
}

// NewYouTubeService creates a new YouTube Music service instance.
//
// The authFile path is forwarded to the proxy via X-Auth-File on each
// request; pass "" for unauthenticated read-only access.
func NewYouTubeService(baseURL, authFile string) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}

	return &YouTubeService{
		baseURL:    baseURL,
		authFile:   authFile,
		httpClient: http.DefaultClient,
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube Music"
}

// SetHTTPClient swaps the underlying [http.Client], used in tests.
func (y *YouTubeService) SetHTTPClient(c *http.Client) {
	y.httpClient = c
}

func (y *YouTubeService) doRequest(ctx context.Context, method, endpoint string, result any) error {
	apiURL := y.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, method, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if y.authFile != "" {
		req.Header.Set("X-Auth-File", y.authFile)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search returns up to limit song results for a free-text query.
//
// Calls GET /api/search?q={query}&filter=songs on the proxy.
func (y *YouTubeService) Search(ctx context.Context, query string, limit int) ([]models.Track, error) {
	endpoint := fmt.Sprintf("/api/search?q=%s&filter=songs", url.QueryEscape(query))

	var results []YouTubeTrack
	if err := y.doRequest(ctx, http.MethodGet, endpoint, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no results for %q", shared.ErrTrackNotFound, query)
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return convertTracks(results), nil
}

// Radio returns the watch playlist seeded by a video ID.
//
// Calls GET /api/watch_playlist?video_id={id}&radio=true on the proxy. The
// first returned track echoes the seed.
func (y *YouTubeService) Radio(ctx context.Context, videoID string) ([]models.Track, error) {
	endpoint := fmt.Sprintf("/api/watch_playlist?video_id=%s&radio=true", url.QueryEscape(videoID))

	var watch struct {
		Tracks []YouTubeTrack `json:"tracks"`
	}
	if err := y.doRequest(ctx, http.MethodGet, endpoint, &watch); err != nil {
		return nil, err
	}

	return convertTracks(watch.Tracks), nil
}

// convertTracks maps proxy track payloads to [models.Track], dropping
// entries without a video ID (upcoming releases, region-blocked items).
func convertTracks(in []YouTubeTrack) []models.Track {
	tracks := make([]models.Track, 0, len(in))
	for _, ytt := range in {
		if ytt.VideoID == "" {
			continue
		}

		track := models.Track{
			VideoID:  ytt.VideoID,
			Title:    ytt.Title,
			Duration: ytt.DurationSec,
		}
		if track.Title == "" {
			track.Title = models.UnknownTitle
		}

		if len(ytt.Artists) > 0 {
			track.Artist = ytt.Artists[0].Name
		}

		if ytt.Album != nil {
			track.Album = ytt.Album.Name
		}

		tracks = append(tracks, track)
	}

	return tracks
}
