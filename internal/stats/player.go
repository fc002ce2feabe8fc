package stats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/justestif/go-spotify-stats/internal/schema"
	"github.com/justestif/go-spotify-stats/internal/spotify"
)

// HistoryQuery is a request for the user's play history. After and Before
// are Unix timestamps in milliseconds; at most one may be set.
type HistoryQuery struct {
	Limit  int
	After  *int64
	Before *int64
}

func (q HistoryQuery) validate() error {
	if q.After != nil && q.Before != nil {
		return fmt.Errorf("%w: after and before are mutually exclusive", ErrInvalidArgument)
	}
	return validateLimit(q.Limit)
}

// PlayQuery selects what to play. A zero PlayQuery resumes playback.
type PlayQuery struct {
	ContextURI string
	// Position is the zero-based index of the item in the context to start at.
	Position   *int
	PositionMS *int
}

func (q PlayQuery) validate() error {
	if q.Position != nil && *q.Position < 0 {
		return fmt.Errorf("%w: position must not be negative", ErrInvalidArgument)
	}
	if q.PositionMS != nil && *q.PositionMS < 0 {
		return fmt.Errorf("%w: position_ms must not be negative", ErrInvalidArgument)
	}
	return nil
}

func (q PlayQuery) options() spotify.PlayOptions {
	var opts spotify.PlayOptions
	if q.ContextURI != "" {
		opts.ContextURI = &q.ContextURI
	}
	if q.Position != nil {
		opts.Offset = &spotify.PlayOffset{Position: *q.Position}
	}
	opts.PositionMS = q.PositionMS
	return opts
}

// RecentlyPlayed returns the user's recently played tracks.
func (s *Service) RecentlyPlayed(ctx context.Context, token string, q HistoryQuery) (schema.RecentlyPlayed, error) {
	if err := q.validate(); err != nil {
		return schema.RecentlyPlayed{}, err
	}
	page, err := s.api.RecentlyPlayed(ctx, token, q.Limit, formatCursor(q.After), formatCursor(q.Before))
	if err != nil {
		return schema.RecentlyPlayed{}, fmt.Errorf("fetching recently played: %w", err)
	}
	return schema.NewRecentlyPlayed(page, q.Limit)
}

func formatCursor(ms *int64) string {
	if ms == nil {
		return ""
	}
	return strconv.FormatInt(*ms, 10)
}

// PlaybackState returns the current playback state, or nil when nothing is
// playing.
func (s *Service) PlaybackState(ctx context.Context, token string) (*schema.PlaybackState, error) {
	state, err := s.api.PlaybackState(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetching playback state: %w", err)
	}
	return schema.NewPlaybackState(state)
}

// Pause pauses playback on deviceID.
func (s *Service) Pause(ctx context.Context, token, deviceID string) error {
	if err := s.api.Pause(ctx, token, deviceID); err != nil {
		return fmt.Errorf("pausing playback: %w", err)
	}
	return nil
}

// Play starts or resumes playback on deviceID.
func (s *Service) Play(ctx context.Context, token, deviceID string, q PlayQuery) error {
	if err := q.validate(); err != nil {
		return err
	}
	if err := s.api.Play(ctx, token, deviceID, q.options()); err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}
	return nil
}

// SkipNext skips to the next track on deviceID.
func (s *Service) SkipNext(ctx context.Context, token, deviceID string) error {
	if err := s.api.SkipNext(ctx, token, deviceID); err != nil {
		return fmt.Errorf("skipping to next: %w", err)
	}
	return nil
}

// SkipPrevious skips to the previous track on deviceID.
func (s *Service) SkipPrevious(ctx context.Context, token, deviceID string) error {
	if err := s.api.SkipPrevious(ctx, token, deviceID); err != nil {
		return fmt.Errorf("skipping to previous: %w", err)
	}
	return nil
}
