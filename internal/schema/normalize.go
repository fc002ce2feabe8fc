package schema

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/justestif/go-spotify-stats/internal/spotify"
)

// MalformedError reports an upstream object missing a field the canonical
// shape requires.
type MalformedError struct {
	Entity string
	Field  string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s: missing %s", e.Entity, e.Field)
}

func missing(entity, field string) error {
	return &MalformedError{Entity: entity, Field: field}
}

// NormalizeImage returns the first image of list, or nil when the list is empty.
func NormalizeImage(list []spotify.Image) (*Image, error) {
	if len(list) == 0 {
		return nil, nil
	}
	first := list[0]
	if first.URL == nil {
		return nil, missing("image", "url")
	}
	return &Image{
		URL:    *first.URL,
		Height: lo.FromPtr(first.Height),
		Width:  lo.FromPtr(first.Width),
	}, nil
}

// NormalizeArtist maps a simplified or full upstream artist.
func NormalizeArtist(a spotify.Artist) (Artist, error) {
	if a.Name == nil {
		return Artist{}, missing("artist", "name")
	}
	image, err := NormalizeImage(a.Images)
	if err != nil {
		return Artist{}, fmt.Errorf("artist image: %w", err)
	}

	out := Artist{
		ID:         lo.FromPtr(a.ID),
		Name:       *a.Name,
		Genres:     a.Genres,
		URI:        lo.FromPtr(a.URI),
		Popularity: a.Popularity,
		Image:      image,
	}
	if a.Followers != nil {
		out.Followers = a.Followers.Total
	}
	return out, nil
}

// NormalizeArtists maps every artist, failing on the first malformed entry.
func NormalizeArtists(list []spotify.Artist) ([]Artist, error) {
	if list == nil {
		return nil, nil
	}
	out := make([]Artist, 0, len(list))
	for i, a := range list {
		artist, err := NormalizeArtist(a)
		if err != nil {
			return nil, fmt.Errorf("artists[%d]: %w", i, err)
		}
		out = append(out, artist)
	}
	return out, nil
}

// NormalizeAlbum maps a simplified or full upstream album.
func NormalizeAlbum(a spotify.Album) (Album, error) {
	switch {
	case a.Name == nil:
		return Album{}, missing("album", "name")
	case a.AlbumType == nil:
		return Album{}, missing("album", "album_type")
	case a.ReleaseDate == nil:
		return Album{}, missing("album", "release_date")
	}

	cover, err := NormalizeImage(a.Images)
	if err != nil {
		return Album{}, fmt.Errorf("album cover: %w", err)
	}
	artists, err := NormalizeArtists(a.Artists)
	if err != nil {
		return Album{}, fmt.Errorf("album: %w", err)
	}

	return Album{
		ID:          lo.FromPtr(a.ID),
		Name:        *a.Name,
		AlbumType:   *a.AlbumType,
		ReleaseDate: *a.ReleaseDate,
		Cover:       cover,
		TotalTracks: a.TotalTracks,
		Genres:      a.Genres,
		Artists:     artists,
	}, nil
}

// NormalizeTrack maps a full or simplified upstream track. The album is only
// present on full tracks.
func NormalizeTrack(t spotify.Track) (Track, error) {
	switch {
	case t.Name == nil:
		return Track{}, missing("track", "name")
	case t.Explicit == nil:
		return Track{}, missing("track", "explicit")
	}

	artists, err := NormalizeArtists(t.Artists)
	if err != nil {
		return Track{}, fmt.Errorf("track: %w", err)
	}

	out := Track{
		ID:          lo.FromPtr(t.ID),
		Name:        *t.Name,
		Popularity:  t.Popularity,
		Artists:     artists,
		DurationMS:  t.DurationMS,
		Explicit:    *t.Explicit,
		DiscNumber:  t.DiscNumber,
		TrackNumber: t.TrackNumber,
	}
	if t.Album != nil {
		album, err := NormalizeAlbum(*t.Album)
		if err != nil {
			return Track{}, fmt.Errorf("track: %w", err)
		}
		out.Album = &album
	}
	return out, nil
}

// NormalizeTracks maps every track, failing on the first malformed entry.
func NormalizeTracks(list []spotify.Track) ([]Track, error) {
	out := make([]Track, 0, len(list))
	for i, t := range list {
		track, err := NormalizeTrack(t)
		if err != nil {
			return nil, fmt.Errorf("tracks[%d]: %w", i, err)
		}
		out = append(out, track)
	}
	return out, nil
}

// NormalizeUser maps the private user object. Only id is required; Spotify
// withholds email and country when the matching scopes are not granted.
func NormalizeUser(u spotify.User) (User, error) {
	if u.ID == nil {
		return User{}, missing("user", "id")
	}
	image, err := NormalizeImage(u.Images)
	if err != nil {
		return User{}, fmt.Errorf("user image: %w", err)
	}

	out := User{
		ID:          *u.ID,
		Email:       lo.FromPtr(u.Email),
		DisplayName: lo.FromPtr(u.DisplayName),
		Country:     lo.FromPtr(u.Country),
		Product:     lo.FromPtr(u.Product),
		Image:       image,
	}
	if u.Followers != nil {
		out.Followers = lo.FromPtr(u.Followers.Total)
	}
	return out, nil
}

// NormalizeDevice maps a Spotify Connect device.
func NormalizeDevice(d spotify.Device) (Device, error) {
	switch {
	case d.Name == nil:
		return Device{}, missing("device", "name")
	case d.Type == nil:
		return Device{}, missing("device", "type")
	}
	return Device{
		ID:               lo.FromPtr(d.ID),
		IsActive:         lo.FromPtr(d.IsActive),
		IsPrivateSession: lo.FromPtr(d.IsPrivateSession),
		IsRestricted:     lo.FromPtr(d.IsRestricted),
		Name:             *d.Name,
		Type:             *d.Type,
		VolumePercent:    lo.FromPtr(d.VolumePercent),
		SupportsVolume:   lo.FromPtr(d.SupportsVolume),
	}, nil
}

// NormalizeCursors passes continuation markers through untouched.
func NormalizeCursors(c *spotify.Cursors) Cursors {
	if c == nil {
		return Cursors{}
	}
	return Cursors{
		Before: lo.FromPtr(c.Before),
		After:  lo.FromPtr(c.After),
	}
}
