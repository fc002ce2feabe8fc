// Package schema defines the canonical JSON served to the frontend and the
// functions that normalize raw Spotify objects into it.
package schema

// Image is the first image of an upstream image list.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist is a normalized artist. Optional numeric fields are pointers so an
// absent upstream value stays absent instead of becoming zero.
type Artist struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres,omitempty"`
	URI        string   `json:"uri,omitempty"`
	Popularity *int     `json:"popularity,omitempty"`
	Followers  *int     `json:"followers,omitempty"`
	Image      *Image   `json:"image,omitempty"`
}

// Album is a normalized album.
type Album struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	AlbumType   string   `json:"album_type"`
	ReleaseDate string   `json:"release_date"`
	Cover       *Image   `json:"cover,omitempty"`
	TotalTracks *int     `json:"total_tracks,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Artists     []Artist `json:"artists,omitempty"`
}

// Track is a normalized track.
type Track struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Popularity  *int     `json:"popularity,omitempty"`
	Artists     []Artist `json:"artists,omitempty"`
	DurationMS  *int     `json:"duration_ms,omitempty"`
	Explicit    bool     `json:"explicit"`
	DiscNumber  *int     `json:"disc_number,omitempty"`
	TrackNumber *int     `json:"track_number,omitempty"`
	Album       *Album   `json:"album,omitempty"`
}

// User is the normalized profile of the signed-in user.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
	Followers   int    `json:"followers"`
	Product     string `json:"product"`
	Image       *Image `json:"image,omitempty"`
}

// Device is a normalized Spotify Connect device.
type Device struct {
	ID               string `json:"id"`
	IsActive         bool   `json:"is_active"`
	IsPrivateSession bool   `json:"is_private_session"`
	IsRestricted     bool   `json:"is_restricted"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	VolumePercent    int    `json:"volume_percent"`
	SupportsVolume   bool   `json:"supports_volume"`
}

// Cursors are opaque continuation markers passed through from upstream.
type Cursors struct {
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

// TopArtists is the body of GET /top/artists.
type TopArtists struct {
	Artists []Artist `json:"artists"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
	Total   int      `json:"total"`
}

// TopTracks is the body of GET /top/tracks.
type TopTracks struct {
	Tracks []Track `json:"tracks"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Total  int     `json:"total"`
}

// FollowedArtists is the body of GET /following/artists.
type FollowedArtists struct {
	Artists []Artist `json:"artists"`
	Limit   int      `json:"limit"`
	Total   int      `json:"total"`
	Cursors Cursors  `json:"cursors"`
}

// SavedAlbum is an album from the user's library with the time it was saved.
type SavedAlbum struct {
	AddedAt string `json:"added_at"`
	Album   Album  `json:"album"`
}

// SavedAlbums is the body of GET /albums/saved.
type SavedAlbums struct {
	Albums []SavedAlbum `json:"albums"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
	Total  int          `json:"total"`
}

// AlbumTracks is the body of GET /albums/{id}/tracks.
type AlbumTracks struct {
	Tracks []Track `json:"tracks"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Total  int     `json:"total"`
}

// PlayedTrack is a play history entry.
type PlayedTrack struct {
	Track    Track  `json:"track"`
	PlayedAt string `json:"played_at"`
}

// RecentlyPlayed is the body of GET /player/recently_played.
type RecentlyPlayed struct {
	Tracks  []PlayedTrack `json:"tracks"`
	Limit   int           `json:"limit"`
	Cursors Cursors       `json:"cursors"`
}

// PlaybackActions reports which playback actions are available.
type PlaybackActions struct {
	InterruptingPlayback  *bool `json:"interrupting_playback,omitempty"`
	Pausing               *bool `json:"pausing,omitempty"`
	Resuming              *bool `json:"resuming,omitempty"`
	Seeking               *bool `json:"seeking,omitempty"`
	SkippingNext          *bool `json:"skipping_next,omitempty"`
	SkippingPrev          *bool `json:"skipping_prev,omitempty"`
	TogglingRepeatContext *bool `json:"toggling_repeat_context,omitempty"`
	TogglingShuffle       *bool `json:"toggling_shuffle,omitempty"`
	TogglingRepeatTrack   *bool `json:"toggling_repeat_track,omitempty"`
	TransferringPlayback  *bool `json:"transferring_playback,omitempty"`
}

// PlaybackState is the body of GET /player/playback_state.
type PlaybackState struct {
	Device               *Device          `json:"device,omitempty"`
	Track                *Track           `json:"track,omitempty"`
	RepeatState          string           `json:"repeat_state"`
	ShuffleState         bool             `json:"shuffle_state"`
	ProgressMS           int              `json:"progress_ms"`
	IsPlaying            bool             `json:"is_playing"`
	CurrentlyPlayingType string           `json:"currently_playing_type"`
	Actions              *PlaybackActions `json:"actions,omitempty"`
}
