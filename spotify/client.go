// Package spotify is the read-only music catalog client. It authenticates
// with the client-credentials grant (no per-user identity); the bearer token
// lives in memory only and is re-fetched by the token source whenever it
// expires, never persisted.
package spotify

import (
	"context"
	"os"

	"github.com/pkg/errors"
	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrMissingCredentials is returned when SPOTIFY_ID or SPOTIFY_SECRET is not set.
var ErrMissingCredentials = errors.New("missing SPOTIFY_ID or SPOTIFY_SECRET environment variable")

// Artist is the catalog shape the rest of the service consumes.
type Artist struct {
	Id       string   `json:"id"`
	Name     string   `json:"name"`
	Genres   []string `json:"genres,omitempty"`
	ImageUrl string   `json:"imageUrl,omitempty"`
}

// Client wraps the Spotify Web API client with the lookups MelodyMatch needs.
type Client struct {
	api *spotifyapi.Client
}

// New creates a catalog client around an already-authenticated API client.
func New(api *spotifyapi.Client) *Client {
	return &Client{api: api}
}

// NewFromEnv builds a client-credentials catalog client from SPOTIFY_ID and
// SPOTIFY_SECRET. The returned client refreshes its token on expiry through
// the underlying oauth2 token source.
func NewFromEnv(ctx context.Context) (*Client, error) {
	clientID := os.Getenv("SPOTIFY_ID")
	clientSecret := os.Getenv("SPOTIFY_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	// Fetch eagerly so a credential problem surfaces at startup instead of on
	// the first user-facing lookup.
	if _, err := config.Token(ctx); err != nil {
		return nil, errors.Wrap(err, "exchange client credentials")
	}

	return New(spotifyapi.New(config.Client(ctx))), nil
}

// ArtistsByIds looks up catalog artists by id list.
func (c *Client) ArtistsByIds(ctx context.Context, ids []string) ([]Artist, error) {
	if len(ids) == 0 {
		return []Artist{}, nil
	}

	spotifyIds := make([]spotifyapi.ID, 0, len(ids))
	for _, id := range ids {
		spotifyIds = append(spotifyIds, spotifyapi.ID(id))
	}

	full, err := c.api.GetArtists(ctx, spotifyIds...)
	if err != nil {
		return nil, errors.Wrap(err, "get artists")
	}

	artists := make([]Artist, 0, len(full))
	for _, a := range full {
		if a == nil {
			continue
		}
		artists = append(artists, fromFullArtist(a))
	}
	return artists, nil
}

// GenreSeeds returns the catalog's seedable genre names.
func (c *Client) GenreSeeds(ctx context.Context) ([]string, error) {
	genres, err := c.api.GetAvailableGenreSeeds(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get genre seeds")
	}
	return genres, nil
}

// RecommendedArtists returns artists drawn from genre-seeded track
// recommendations: each recommended track contributes its primary artist,
// de-duplicated, preserving recommendation order.
func (c *Client) RecommendedArtists(ctx context.Context, genres []string, limit int) ([]Artist, error) {
	if len(genres) == 0 {
		return []Artist{}, nil
	}

	recommendations, err := c.api.GetRecommendations(
		ctx,
		spotifyapi.Seeds{Genres: genres},
		nil,
		spotifyapi.Limit(limit),
	)
	if err != nil {
		return nil, errors.Wrap(err, "get recommendations")
	}

	seen := map[string]bool{}
	artists := []Artist{}
	for _, track := range recommendations.Tracks {
		if len(track.Artists) == 0 {
			continue
		}
		primary := track.Artists[0]
		if seen[string(primary.ID)] {
			continue
		}
		seen[string(primary.ID)] = true
		artists = append(artists, Artist{Id: string(primary.ID), Name: primary.Name})
	}
	return artists, nil
}

func fromFullArtist(a *spotifyapi.FullArtist) Artist {
	artist := Artist{
		Id:     string(a.ID),
		Name:   a.Name,
		Genres: a.Genres,
	}
	if len(a.Images) > 0 {
		artist.ImageUrl = a.Images[0].URL
	}
	return artist
}
