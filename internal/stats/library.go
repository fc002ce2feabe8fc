package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/justestif/go-spotify-stats/internal/schema"
)

// SavedAlbums returns a page of the albums in the user's library.
func (s *Service) SavedAlbums(ctx context.Context, token string, q PageQuery) (schema.SavedAlbums, error) {
	if err := q.validate(); err != nil {
		return schema.SavedAlbums{}, err
	}
	page, err := s.api.SavedAlbums(ctx, token, q.Limit, q.Offset)
	if err != nil {
		return schema.SavedAlbums{}, fmt.Errorf("fetching saved albums: %w", err)
	}
	return schema.NewSavedAlbums(page, schema.PageRequest(q))
}

// Album returns a single album.
func (s *Service) Album(ctx context.Context, token, albumID string) (schema.Album, error) {
	if err := validateID(albumID); err != nil {
		return schema.Album{}, err
	}
	album, err := s.api.Album(ctx, token, albumID)
	if err != nil {
		return schema.Album{}, fmt.Errorf("fetching album %s: %w", albumID, err)
	}
	return schema.NormalizeAlbum(*album)
}

// AlbumTracks returns a page of an album's tracks.
func (s *Service) AlbumTracks(ctx context.Context, token, albumID string, q PageQuery) (schema.AlbumTracks, error) {
	if err := validateID(albumID); err != nil {
		return schema.AlbumTracks{}, err
	}
	if err := q.validate(); err != nil {
		return schema.AlbumTracks{}, err
	}
	page, err := s.api.AlbumTracks(ctx, token, albumID, q.Limit, q.Offset)
	if err != nil {
		return schema.AlbumTracks{}, fmt.Errorf("fetching tracks of album %s: %w", albumID, err)
	}
	return schema.NewAlbumTracks(page, schema.PageRequest(q))
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidArgument)
	}
	return nil
}
