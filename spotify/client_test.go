package spotify

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	spotifyapi "github.com/zmb3/spotify/v2"
)

func TestNewFromEnvMissingCredentials(t *testing.T) {
	os.Unsetenv("SPOTIFY_ID")
	os.Unsetenv("SPOTIFY_SECRET")

	_, err := NewFromEnv(context.Background())
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestFromFullArtist(t *testing.T) {
	tests := []struct {
		name     string
		input    spotifyapi.FullArtist
		expected Artist
	}{
		{
			name: "artist with image",
			input: spotifyapi.FullArtist{
				SimpleArtist: spotifyapi.SimpleArtist{ID: "artist1", Name: "Artist One"},
				Genres:       []string{"pop", "dance"},
				Images:       []spotifyapi.Image{{URL: "https://img/1"}, {URL: "https://img/2"}},
			},
			expected: Artist{Id: "artist1", Name: "Artist One", Genres: []string{"pop", "dance"}, ImageUrl: "https://img/1"},
		},
		{
			name: "artist without image",
			input: spotifyapi.FullArtist{
				SimpleArtist: spotifyapi.SimpleArtist{ID: "artist2", Name: "Artist Two"},
			},
			expected: Artist{Id: "artist2", Name: "Artist Two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fromFullArtist(&tt.input))
		})
	}
}

func TestArtistsByIdsEmptyInput(t *testing.T) {
	client := New(nil)

	artists, err := client.ArtistsByIds(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, artists)
}

func TestRecommendedArtistsEmptyGenres(t *testing.T) {
	client := New(nil)

	artists, err := client.RecommendedArtists(context.Background(), nil, 10)
	assert.NoError(t, err)
	assert.Empty(t, artists)
}
