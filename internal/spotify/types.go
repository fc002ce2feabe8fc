package spotify

// The types below mirror the Spotify Web API objects as loosely as the API
// itself treats them: any field that Spotify omits or nulls in some object
// variants is a pointer, so normalization can tell "absent" from "zero".
// See https://developer.spotify.com/documentation/web-api/reference/

// Image is an entry of an upstream images list.
type Image struct {
	URL    *string `json:"url"`
	Height *int    `json:"height"`
	Width  *int    `json:"width"`
}

// Followers is the {total: int} wrapper Spotify uses for follower counts.
type Followers struct {
	Total *int `json:"total"`
}

// Artist covers both the simplified and the full artist object.
type Artist struct {
	ID         *string    `json:"id"`
	Name       *string    `json:"name"`
	Genres     []string   `json:"genres"`
	URI        *string    `json:"uri"`
	Popularity *int       `json:"popularity"`
	Followers  *Followers `json:"followers"`
	Images     []Image    `json:"images"`
}

// Album covers both the simplified and the full album object.
type Album struct {
	ID          *string  `json:"id"`
	Name        *string  `json:"name"`
	AlbumType   *string  `json:"album_type"`
	ReleaseDate *string  `json:"release_date"`
	TotalTracks *int     `json:"total_tracks"`
	Genres      []string `json:"genres"`
	Artists     []Artist `json:"artists"`
	Images      []Image  `json:"images"`
}

// Track covers the full track object and the simplified one returned by the
// album tracks endpoint (which has no album and no popularity).
type Track struct {
	ID          *string  `json:"id"`
	Name        *string  `json:"name"`
	Popularity  *int     `json:"popularity"`
	Artists     []Artist `json:"artists"`
	DurationMS  *int     `json:"duration_ms"`
	Explicit    *bool    `json:"explicit"`
	DiscNumber  *int     `json:"disc_number"`
	TrackNumber *int     `json:"track_number"`
	Album       *Album   `json:"album"`
}

// User is the private user object returned by /me.
type User struct {
	ID          *string    `json:"id"`
	Email       *string    `json:"email"`
	DisplayName *string    `json:"display_name"`
	Country     *string    `json:"country"`
	Product     *string    `json:"product"`
	Followers   *Followers `json:"followers"`
	Images      []Image    `json:"images"`
}

// Device is a Spotify Connect device.
type Device struct {
	ID               *string `json:"id"`
	IsActive         *bool   `json:"is_active"`
	IsPrivateSession *bool   `json:"is_private_session"`
	IsRestricted     *bool   `json:"is_restricted"`
	Name             *string `json:"name"`
	Type             *string `json:"type"`
	VolumePercent    *int    `json:"volume_percent"`
	SupportsVolume   *bool   `json:"supports_volume"`
}

// Cursors are the continuation markers of cursor-paginated endpoints.
type Cursors struct {
	After  *string `json:"after"`
	Before *string `json:"before"`
}

// Page is an offset-paginated list.
type Page[T any] struct {
	Items  []T     `json:"items"`
	Limit  *int    `json:"limit"`
	Offset *int    `json:"offset"`
	Total  *int    `json:"total"`
	Next   *string `json:"next"`
}

// CursorPage is a cursor-paginated list.
type CursorPage[T any] struct {
	Items   []T      `json:"items"`
	Limit   *int     `json:"limit"`
	Total   *int     `json:"total"`
	Next    *string  `json:"next"`
	Cursors *Cursors `json:"cursors"`
}

// SavedAlbum is an item of /me/albums.
type SavedAlbum struct {
	AddedAt *string `json:"added_at"`
	Album   *Album  `json:"album"`
}

// PlayHistory is an item of /me/player/recently-played.
type PlayHistory struct {
	Track    *Track  `json:"track"`
	PlayedAt *string `json:"played_at"`
}

// FollowedArtists wraps the cursor page returned by /me/following.
type FollowedArtists struct {
	Artists *CursorPage[Artist] `json:"artists"`
}

// PlaybackActions lists which playback actions are available.
type PlaybackActions struct {
	InterruptingPlayback  *bool `json:"interrupting_playback"`
	Pausing               *bool `json:"pausing"`
	Resuming              *bool `json:"resuming"`
	Seeking               *bool `json:"seeking"`
	SkippingNext          *bool `json:"skipping_next"`
	SkippingPrev          *bool `json:"skipping_prev"`
	TogglingRepeatContext *bool `json:"toggling_repeat_context"`
	TogglingShuffle       *bool `json:"toggling_shuffle"`
	TogglingRepeatTrack   *bool `json:"toggling_repeat_track"`
	TransferringPlayback  *bool `json:"transferring_playback"`
}

// PlaybackState is the body of GET /me/player.
type PlaybackState struct {
	Device               *Device          `json:"device"`
	RepeatState          *string          `json:"repeat_state"`
	ShuffleState         *bool            `json:"shuffle_state"`
	ProgressMS           *int             `json:"progress_ms"`
	IsPlaying            *bool            `json:"is_playing"`
	CurrentlyPlayingType *string          `json:"currently_playing_type"`
	Item                 *Track           `json:"item"`
	Actions              *PlaybackActions `json:"actions"`
}

// PlayOptions is the body of PUT /me/player/play. Nil fields are omitted,
// so an empty PlayOptions resumes the current context.
type PlayOptions struct {
	ContextURI *string     `json:"context_uri,omitempty"`
	Offset     *PlayOffset `json:"offset,omitempty"`
	PositionMS *int        `json:"position_ms,omitempty"`
}

// PlayOffset selects where in the context playback starts.
type PlayOffset struct {
	Position int `json:"position"`
}

// IsZero reports whether no option is set.
func (o PlayOptions) IsZero() bool {
	return o.ContextURI == nil && o.Offset == nil && o.PositionMS == nil
}
