package spotify

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CurrentUser fetches the profile of the token's owner.
func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.Do(ctx, http.MethodGet, "/me", nil, nil, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// TopArtists fetches the user's top artists for a time range.
func (c *Client) TopArtists(ctx context.Context, token, timeRange string, limit, offset int) (*Page[Artist], error) {
	var page Page[Artist]
	if err := c.Do(ctx, http.MethodGet, "/me/top/artists", topQuery(timeRange, limit, offset), nil, token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// TopTracks fetches the user's top tracks for a time range.
func (c *Client) TopTracks(ctx context.Context, token, timeRange string, limit, offset int) (*Page[Track], error) {
	var page Page[Track]
	if err := c.Do(ctx, http.MethodGet, "/me/top/tracks", topQuery(timeRange, limit, offset), nil, token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func topQuery(timeRange string, limit, offset int) url.Values {
	return url.Values{
		"time_range": {timeRange},
		"limit":      {strconv.Itoa(limit)},
		"offset":     {strconv.Itoa(offset)},
	}
}

// FollowedArtists fetches the artists the user follows. after is the cursor
// from a previous page and may be empty.
func (c *Client) FollowedArtists(ctx context.Context, token string, limit int, after string) (*FollowedArtists, error) {
	query := url.Values{
		"type":  {"artist"},
		"limit": {strconv.Itoa(limit)},
	}
	if after != "" {
		query.Set("after", after)
	}

	var followed FollowedArtists
	if err := c.Do(ctx, http.MethodGet, "/me/following", query, nil, token, &followed); err != nil {
		return nil, err
	}
	return &followed, nil
}

// SavedAlbums fetches albums saved in the user's library.
func (c *Client) SavedAlbums(ctx context.Context, token string, limit, offset int) (*Page[SavedAlbum], error) {
	var page Page[SavedAlbum]
	if err := c.Do(ctx, http.MethodGet, "/me/albums", pageQuery(limit, offset), nil, token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Album fetches a single album.
func (c *Client) Album(ctx context.Context, token, albumID string) (*Album, error) {
	var album Album
	if err := c.Do(ctx, http.MethodGet, "/albums/"+url.PathEscape(albumID), nil, nil, token, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// AlbumTracks fetches a page of an album's tracks.
func (c *Client) AlbumTracks(ctx context.Context, token, albumID string, limit, offset int) (*Page[Track], error) {
	var page Page[Track]
	path := "/albums/" + url.PathEscape(albumID) + "/tracks"
	if err := c.Do(ctx, http.MethodGet, path, pageQuery(limit, offset), nil, token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func pageQuery(limit, offset int) url.Values {
	return url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
}

// RecentlyPlayed fetches the user's play history. At most one of after and
// before should be set; both are passed through untouched.
func (c *Client) RecentlyPlayed(ctx context.Context, token string, limit int, after, before string) (*CursorPage[PlayHistory], error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if after != "" {
		query.Set("after", after)
	}
	if before != "" {
		query.Set("before", before)
	}

	var page CursorPage[PlayHistory]
	if err := c.Do(ctx, http.MethodGet, "/me/player/recently-played", query, nil, token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PlaybackState fetches the current playback state. It returns (nil, nil)
// when nothing is playing (upstream answers 204).
func (c *Client) PlaybackState(ctx context.Context, token string) (*PlaybackState, error) {
	var state *PlaybackState
	if err := c.Do(ctx, http.MethodGet, "/me/player", nil, nil, token, &state); err != nil {
		return nil, err
	}
	return state, nil
}

// Pause pauses playback on a device.
func (c *Client) Pause(ctx context.Context, token, deviceID string) error {
	return c.Do(ctx, http.MethodPut, "/me/player/pause", deviceQuery(deviceID), nil, token, nil)
}

// Play starts or resumes playback on a device.
func (c *Client) Play(ctx context.Context, token, deviceID string, opts PlayOptions) error {
	var body any
	if !opts.IsZero() {
		body = opts
	}
	return c.Do(ctx, http.MethodPut, "/me/player/play", deviceQuery(deviceID), body, token, nil)
}

// SkipNext skips to the next item in the user's queue.
func (c *Client) SkipNext(ctx context.Context, token, deviceID string) error {
	return c.Do(ctx, http.MethodPost, "/me/player/next", deviceQuery(deviceID), nil, token, nil)
}

// SkipPrevious skips to the previous item in the user's queue.
func (c *Client) SkipPrevious(ctx context.Context, token, deviceID string) error {
	return c.Do(ctx, http.MethodPost, "/me/player/previous", deviceQuery(deviceID), nil, token, nil)
}

func deviceQuery(deviceID string) url.Values {
	if deviceID == "" {
		return nil
	}
	return url.Values{"device_id": {deviceID}}
}
