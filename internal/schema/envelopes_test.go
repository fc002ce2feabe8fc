package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/go-spotify-stats/internal/spotify"
)

func TestNewTopArtists(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		req  PageRequest
		want TopArtists
	}{
		{
			name: "page fields from upstream",
			raw:  `{"items":[{"name":"Foo"}],"limit":5,"offset":10,"total":42}`,
			req:  PageRequest{Limit: 20, Offset: 0},
			want: TopArtists{Artists: []Artist{{Name: "Foo"}}, Limit: 5, Offset: 10, Total: 42},
		},
		{
			name: "page fields fall back to request",
			raw:  `{"items":[]}`,
			req:  PageRequest{Limit: 20, Offset: 3},
			want: TopArtists{Artists: []Artist{}, Limit: 20, Offset: 3, Total: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTopArtists(ptr(decode[spotify.Page[spotify.Artist]](t, tt.raw)), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTopArtists_EmptyItemsEncodeAsArray(t *testing.T) {
	got, err := NewTopArtists(&spotify.Page[spotify.Artist]{}, PageRequest{Limit: 20})
	require.NoError(t, err)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"artists":[],"limit":20,"offset":0,"total":0}`, string(out))
}

func TestNewTopTracks_MalformedItemPropagates(t *testing.T) {
	raw := decode[spotify.Page[spotify.Track]](t, `{"items":[{"name":"ok","explicit":false},{"explicit":true}]}`)

	_, err := NewTopTracks(&raw, PageRequest{Limit: 20})
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "track", malformed.Entity)
	assert.Equal(t, "name", malformed.Field)
	assert.Contains(t, err.Error(), "tracks[1]")
}

func TestNewSavedAlbums(t *testing.T) {
	raw := decode[spotify.Page[spotify.SavedAlbum]](t, `{
		"items":[{"added_at":"2024-01-02T03:04:05Z","album":{"name":"X","album_type":"album","release_date":"2020"}}],
		"limit":10,"offset":0,"total":1
	}`)

	got, err := NewSavedAlbums(&raw, PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got.Albums, 1)
	assert.Equal(t, "2024-01-02T03:04:05Z", got.Albums[0].AddedAt)
	assert.Equal(t, "X", got.Albums[0].Album.Name)
	assert.Equal(t, 1, got.Total)

	raw = decode[spotify.Page[spotify.SavedAlbum]](t, `{"items":[{"added_at":"2024-01-02T03:04:05Z"}]}`)
	_, err = NewSavedAlbums(&raw, PageRequest{Limit: 10})
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
}

func TestNewFollowedArtists(t *testing.T) {
	t.Run("cursors pass through", func(t *testing.T) {
		raw := decode[spotify.FollowedArtists](t, `{"artists":{
			"items":[{"id":"a1","name":"Foo","followers":{"total":9}}],
			"limit":10,"total":25,"cursors":{"after":"a1"}
		}}`)

		got, err := NewFollowedArtists(&raw, 10)
		require.NoError(t, err)
		assert.Equal(t, Cursors{After: "a1"}, got.Cursors)
		assert.Equal(t, 25, got.Total)
		assert.Equal(t, ptr(9), got.Artists[0].Followers)
	})

	t.Run("missing artists key", func(t *testing.T) {
		raw := decode[spotify.FollowedArtists](t, `{}`)
		_, err := NewFollowedArtists(&raw, 10)
		var malformed *MalformedError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "artists", malformed.Field)
	})
}

func TestNewRecentlyPlayed(t *testing.T) {
	raw := decode[spotify.CursorPage[spotify.PlayHistory]](t, `{
		"items":[{"played_at":"2024-05-01T10:00:00Z","track":{"name":"Song","explicit":false}}],
		"cursors":{"after":"1714557600000","before":"1714550000000"}
	}`)

	got, err := NewRecentlyPlayed(&raw, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Limit)
	assert.Equal(t, Cursors{After: "1714557600000", Before: "1714550000000"}, got.Cursors)
	require.Len(t, got.Tracks, 1)
	assert.Equal(t, "2024-05-01T10:00:00Z", got.Tracks[0].PlayedAt)
}

func TestNewPlaybackState(t *testing.T) {
	t.Run("nothing playing", func(t *testing.T) {
		got, err := NewPlaybackState(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ad without item", func(t *testing.T) {
		raw := decode[spotify.PlaybackState](t, `{
			"device":{"id":"d1","name":"Phone","type":"Smartphone"},
			"repeat_state":"off","shuffle_state":false,"progress_ms":0,"is_playing":true,
			"currently_playing_type":"ad","item":null,"actions":{"pausing":true}
		}`)

		got, err := NewPlaybackState(&raw)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.Track)
		assert.Equal(t, "ad", got.CurrentlyPlayingType)
		require.NotNil(t, got.Actions)
		assert.Equal(t, ptr(true), got.Actions.Pausing)
		assert.Nil(t, got.Actions.Seeking)
	})

	t.Run("malformed device", func(t *testing.T) {
		raw := decode[spotify.PlaybackState](t, `{"device":{"id":"d1"},"is_playing":false}`)
		_, err := NewPlaybackState(&raw)
		var malformed *MalformedError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "device", malformed.Entity)
	})
}
