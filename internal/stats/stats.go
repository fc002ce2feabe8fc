// Package stats serves the user's listening statistics, library and playback
// control. Each call validates its arguments, makes exactly one upstream
// request and normalizes the result.
package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/justestif/go-spotify-stats/internal/spotify"
)

// ErrInvalidArgument is returned for a bad query parameter. It is always
// wrapped with the offending parameter.
var ErrInvalidArgument = errors.New("invalid argument")

// maxLimit is the largest page Spotify serves.
const maxLimit = 50

// TimeRanges are the accepted time_range values, from roughly four weeks to
// several years of history.
var TimeRanges = []string{"short_term", "medium_term", "long_term"}

// Upstream is the subset of the Spotify client the service depends on.
type Upstream interface {
	CurrentUser(ctx context.Context, token string) (*spotify.User, error)
	TopArtists(ctx context.Context, token, timeRange string, limit, offset int) (*spotify.Page[spotify.Artist], error)
	TopTracks(ctx context.Context, token, timeRange string, limit, offset int) (*spotify.Page[spotify.Track], error)
	FollowedArtists(ctx context.Context, token string, limit int, after string) (*spotify.FollowedArtists, error)
	SavedAlbums(ctx context.Context, token string, limit, offset int) (*spotify.Page[spotify.SavedAlbum], error)
	Album(ctx context.Context, token, albumID string) (*spotify.Album, error)
	AlbumTracks(ctx context.Context, token, albumID string, limit, offset int) (*spotify.Page[spotify.Track], error)
	RecentlyPlayed(ctx context.Context, token string, limit int, after, before string) (*spotify.CursorPage[spotify.PlayHistory], error)
	PlaybackState(ctx context.Context, token string) (*spotify.PlaybackState, error)
	Pause(ctx context.Context, token, deviceID string) error
	Play(ctx context.Context, token, deviceID string, opts spotify.PlayOptions) error
	SkipNext(ctx context.Context, token, deviceID string) error
	SkipPrevious(ctx context.Context, token, deviceID string) error
}

// Service exposes the curated Spotify resources.
type Service struct {
	api Upstream
}

// New creates a Service.
func New(api Upstream) *Service {
	return &Service{api: api}
}

// PageQuery is an offset-paginated request.
type PageQuery struct {
	Limit  int
	Offset int
}

func (q PageQuery) validate() error {
	if err := validateLimit(q.Limit); err != nil {
		return err
	}
	if q.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidArgument)
	}
	return nil
}

func validateLimit(limit int) error {
	if limit < 1 || limit > maxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidArgument, maxLimit)
	}
	return nil
}

// TopQuery is a request for the user's top items.
type TopQuery struct {
	TimeRange string
	PageQuery
}

func (q TopQuery) validate() error {
	if !lo.Contains(TimeRanges, q.TimeRange) {
		return fmt.Errorf("%w: time_range must be one of %v", ErrInvalidArgument, TimeRanges)
	}
	return q.PageQuery.validate()
}
