package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// DefaultAPIURL is the catalog Web API base URL.
const DefaultAPIURL = "https://api.spotify.com/v1/"

// playlistPageSize is the largest page the playlist items endpoint serves.
const playlistPageSize = 100

// SpotifyCatalog reads tracks and playlists from the Spotify Web API.
type SpotifyCatalog struct {
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyCatalog creates a SpotifyCatalog.
// An empty baseURL selects DefaultAPIURL; a nil httpClient selects http.DefaultClient.
func NewSpotifyCatalog(baseURL string, httpClient *http.Client) *SpotifyCatalog {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &SpotifyCatalog{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// statusRecorder remembers the status of the last response it carried.
// A 401 is not always a decodable API error body, so the status is read here.
type statusRecorder struct {
	base   http.RoundTripper
	status atomic.Int32
}

func (r *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	base := r.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	r.status.Store(int32(resp.StatusCode))
	return resp, nil
}

func (r *statusRecorder) unauthorized() bool {
	return r.status.Load() == http.StatusUnauthorized
}

// client returns an API client that sends token as a bearer credential.
func (c *SpotifyCatalog) client(token string) (*spotify.Client, *statusRecorder) {
	recorder := &statusRecorder{base: c.httpClient.Transport}
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: token,
				TokenType:   "Bearer",
			}),
			Base: recorder,
		},
		Timeout: c.httpClient.Timeout,
	}
	return spotify.New(httpClient, spotify.WithBaseURL(c.baseURL)), recorder
}

// FetchTrack returns the name and first artist of a track.
func (c *SpotifyCatalog) FetchTrack(ctx context.Context, token, id string) (domain.CatalogItem, error) {
	client, recorder := c.client(token)
	track, err := client.GetTrack(ctx, spotify.ID(id))
	if err != nil {
		return domain.CatalogItem{}, classifyCatalogError(err, recorder.unauthorized())
	}

	item, ok := itemFromTrack(track)
	if !ok {
		return domain.CatalogItem{}, fmt.Errorf("%w: track %s has no name or artist",
			domain.ErrMalformedCatalogResponse, id)
	}
	return item, nil
}

// FetchPlaylist returns the playlist name and its track count.
func (c *SpotifyCatalog) FetchPlaylist(
	ctx context.Context,
	token, id string,
) (domain.PlaylistInfo, error) {
	client, recorder := c.client(token)
	playlist, err := client.GetPlaylist(ctx, spotify.ID(id),
		spotify.Fields("name,tracks.total"))
	if err != nil {
		return domain.PlaylistInfo{}, classifyCatalogError(err, recorder.unauthorized())
	}

	if playlist.Name == "" {
		return domain.PlaylistInfo{}, fmt.Errorf("%w: playlist %s has no name",
			domain.ErrMalformedCatalogResponse, id)
	}

	return domain.PlaylistInfo{
		ID:    id,
		Name:  playlist.Name,
		Total: int(playlist.Tracks.Total),
	}, nil
}

// FetchPlaylistItems pages through the playlist sequentially.
// Entries without a track (removed tracks, episodes) or without name/artist are skipped.
func (c *SpotifyCatalog) FetchPlaylistItems(
	ctx context.Context,
	token string,
	info domain.PlaylistInfo,
) ([]domain.CatalogItem, error) {
	client, recorder := c.client(token)
	items := make([]domain.CatalogItem, 0, info.Total)

	for offset := 0; offset < info.Total; offset += playlistPageSize {
		page, err := client.GetPlaylistItems(ctx, spotify.ID(info.ID),
			spotify.Limit(playlistPageSize), spotify.Offset(offset))
		if err != nil {
			return nil, fmt.Errorf("page at offset %d: %w",
				offset, classifyCatalogError(err, recorder.unauthorized()))
		}

		for i := range page.Items {
			track := page.Items[i].Track.Track
			if track == nil {
				continue
			}
			if item, ok := itemFromTrack(track); ok {
				items = append(items, item)
			}
		}
	}

	return items, nil
}

func itemFromTrack(track *spotify.FullTrack) (domain.CatalogItem, bool) {
	if track.Name == "" || len(track.Artists) == 0 || track.Artists[0].Name == "" {
		return domain.CatalogItem{}, false
	}
	return domain.CatalogItem{
		Title:         track.Name,
		PrimaryArtist: track.Artists[0].Name,
	}, true
}

// classifyCatalogError maps client errors onto the domain catalog errors.
// unauthorized reports that the failing response carried status 401.
func classifyCatalogError(err error, unauthorized bool) error {
	if unauthorized {
		return fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
		}
		return fmt.Errorf("%w: status %d: %w", domain.ErrCatalogRequest, apiErr.Status, err)
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %w", domain.ErrMalformedCatalogResponse, err)
	}

	return fmt.Errorf("%w: %w", domain.ErrCatalogRequest, err)
}

// Ensure SpotifyCatalog implements ports.Catalog.
var _ ports.Catalog = (*SpotifyCatalog)(nil)
