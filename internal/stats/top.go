package stats

import (
	"context"
	"fmt"

	"github.com/justestif/go-spotify-stats/internal/schema"
)

// Me returns the profile of the signed-in user.
func (s *Service) Me(ctx context.Context, token string) (schema.User, error) {
	user, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		return schema.User{}, fmt.Errorf("fetching current user: %w", err)
	}
	return schema.NormalizeUser(*user)
}

// TopArtists returns the user's most listened artists.
func (s *Service) TopArtists(ctx context.Context, token string, q TopQuery) (schema.TopArtists, error) {
	if err := q.validate(); err != nil {
		return schema.TopArtists{}, err
	}
	page, err := s.api.TopArtists(ctx, token, q.TimeRange, q.Limit, q.Offset)
	if err != nil {
		return schema.TopArtists{}, fmt.Errorf("fetching top artists: %w", err)
	}
	return schema.NewTopArtists(page, schema.PageRequest{Limit: q.Limit, Offset: q.Offset})
}

// TopTracks returns the user's most listened tracks.
func (s *Service) TopTracks(ctx context.Context, token string, q TopQuery) (schema.TopTracks, error) {
	if err := q.validate(); err != nil {
		return schema.TopTracks{}, err
	}
	page, err := s.api.TopTracks(ctx, token, q.TimeRange, q.Limit, q.Offset)
	if err != nil {
		return schema.TopTracks{}, fmt.Errorf("fetching top tracks: %w", err)
	}
	return schema.NewTopTracks(page, schema.PageRequest{Limit: q.Limit, Offset: q.Offset})
}

// FollowedArtists returns a page of the artists the user follows. after is
// the last artist id of the previous page, or empty for the first page.
func (s *Service) FollowedArtists(ctx context.Context, token string, limit int, after string) (schema.FollowedArtists, error) {
	if err := validateLimit(limit); err != nil {
		return schema.FollowedArtists{}, err
	}
	resp, err := s.api.FollowedArtists(ctx, token, limit, after)
	if err != nil {
		return schema.FollowedArtists{}, fmt.Errorf("fetching followed artists: %w", err)
	}
	return schema.NewFollowedArtists(resp, limit)
}
