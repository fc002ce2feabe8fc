package schema

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/justestif/go-spotify-stats/internal/spotify"
)

// PageRequest carries the limit and offset a caller asked for. They stand in
// for page fields the upstream body leaves out.
type PageRequest struct {
	Limit  int
	Offset int
}

func (p PageRequest) fill(page pageMeta) (limit, offset, total int) {
	return lo.FromPtrOr(page.limit, p.Limit), lo.FromPtrOr(page.offset, p.Offset), lo.FromPtr(page.total)
}

type pageMeta struct {
	limit, offset, total *int
}

func metaOf[T any](p *spotify.Page[T]) pageMeta {
	return pageMeta{limit: p.Limit, offset: p.Offset, total: p.Total}
}

var errNilPage = &MalformedError{Entity: "page", Field: "body"}

// NewTopArtists builds the top artists envelope.
func NewTopArtists(page *spotify.Page[spotify.Artist], req PageRequest) (TopArtists, error) {
	if page == nil {
		return TopArtists{}, errNilPage
	}
	artists, err := NormalizeArtists(page.Items)
	if err != nil {
		return TopArtists{}, err
	}
	limit, offset, total := req.fill(metaOf(page))
	return TopArtists{
		Artists: lo.Ternary(artists == nil, []Artist{}, artists),
		Limit:   limit,
		Offset:  offset,
		Total:   total,
	}, nil
}

// NewTopTracks builds the top tracks envelope.
func NewTopTracks(page *spotify.Page[spotify.Track], req PageRequest) (TopTracks, error) {
	if page == nil {
		return TopTracks{}, errNilPage
	}
	tracks, err := NormalizeTracks(page.Items)
	if err != nil {
		return TopTracks{}, err
	}
	limit, offset, total := req.fill(metaOf(page))
	return TopTracks{Tracks: tracks, Limit: limit, Offset: offset, Total: total}, nil
}

// NewAlbumTracks builds the album tracks envelope. Tracks here are simplified
// and carry no album.
func NewAlbumTracks(page *spotify.Page[spotify.Track], req PageRequest) (AlbumTracks, error) {
	if page == nil {
		return AlbumTracks{}, errNilPage
	}
	tracks, err := NormalizeTracks(page.Items)
	if err != nil {
		return AlbumTracks{}, err
	}
	limit, offset, total := req.fill(metaOf(page))
	return AlbumTracks{Tracks: tracks, Limit: limit, Offset: offset, Total: total}, nil
}

// NewSavedAlbums builds the saved albums envelope.
func NewSavedAlbums(page *spotify.Page[spotify.SavedAlbum], req PageRequest) (SavedAlbums, error) {
	if page == nil {
		return SavedAlbums{}, errNilPage
	}
	albums := make([]SavedAlbum, 0, len(page.Items))
	for i, item := range page.Items {
		if item.Album == nil {
			return SavedAlbums{}, fmt.Errorf("albums[%d]: %w", i, missing("saved album", "album"))
		}
		album, err := NormalizeAlbum(*item.Album)
		if err != nil {
			return SavedAlbums{}, fmt.Errorf("albums[%d]: %w", i, err)
		}
		albums = append(albums, SavedAlbum{AddedAt: lo.FromPtr(item.AddedAt), Album: album})
	}
	limit, offset, total := req.fill(metaOf(page))
	return SavedAlbums{Albums: albums, Limit: limit, Offset: offset, Total: total}, nil
}

// NewFollowedArtists builds the followed artists envelope. Spotify nests the
// page under an "artists" key; its absence is a contract violation.
func NewFollowedArtists(resp *spotify.FollowedArtists, limit int) (FollowedArtists, error) {
	if resp == nil || resp.Artists == nil {
		return FollowedArtists{}, missing("followed artists", "artists")
	}
	page := resp.Artists
	artists, err := NormalizeArtists(page.Items)
	if err != nil {
		return FollowedArtists{}, err
	}
	return FollowedArtists{
		Artists: lo.Ternary(artists == nil, []Artist{}, artists),
		Limit:   lo.FromPtrOr(page.Limit, limit),
		Total:   lo.FromPtr(page.Total),
		Cursors: NormalizeCursors(page.Cursors),
	}, nil
}

// NewRecentlyPlayed builds the play history envelope.
func NewRecentlyPlayed(page *spotify.CursorPage[spotify.PlayHistory], limit int) (RecentlyPlayed, error) {
	if page == nil {
		return RecentlyPlayed{}, errNilPage
	}
	tracks := make([]PlayedTrack, 0, len(page.Items))
	for i, item := range page.Items {
		if item.Track == nil {
			return RecentlyPlayed{}, fmt.Errorf("tracks[%d]: %w", i, missing("play history", "track"))
		}
		track, err := NormalizeTrack(*item.Track)
		if err != nil {
			return RecentlyPlayed{}, fmt.Errorf("tracks[%d]: %w", i, err)
		}
		tracks = append(tracks, PlayedTrack{Track: track, PlayedAt: lo.FromPtr(item.PlayedAt)})
	}
	return RecentlyPlayed{
		Tracks:  tracks,
		Limit:   lo.FromPtrOr(page.Limit, limit),
		Cursors: NormalizeCursors(page.Cursors),
	}, nil
}

// NewPlaybackState builds the playback state body. A nil state (nothing
// playing) yields nil.
func NewPlaybackState(s *spotify.PlaybackState) (*PlaybackState, error) {
	if s == nil {
		return nil, nil
	}

	out := &PlaybackState{
		RepeatState:          lo.FromPtr(s.RepeatState),
		ShuffleState:         lo.FromPtr(s.ShuffleState),
		ProgressMS:           lo.FromPtr(s.ProgressMS),
		IsPlaying:            lo.FromPtr(s.IsPlaying),
		CurrentlyPlayingType: lo.FromPtr(s.CurrentlyPlayingType),
	}
	if s.Device != nil {
		device, err := NormalizeDevice(*s.Device)
		if err != nil {
			return nil, fmt.Errorf("playback state: %w", err)
		}
		out.Device = &device
	}
	// Item is null for ads and while switching context.
	if s.Item != nil {
		track, err := NormalizeTrack(*s.Item)
		if err != nil {
			return nil, fmt.Errorf("playback state: %w", err)
		}
		out.Track = &track
	}
	if a := s.Actions; a != nil {
		out.Actions = &PlaybackActions{
			InterruptingPlayback:  a.InterruptingPlayback,
			Pausing:               a.Pausing,
			Resuming:              a.Resuming,
			Seeking:               a.Seeking,
			SkippingNext:          a.SkippingNext,
			SkippingPrev:          a.SkippingPrev,
			TogglingRepeatContext: a.TogglingRepeatContext,
			TogglingShuffle:       a.TogglingShuffle,
			TogglingRepeatTrack:   a.TogglingRepeatTrack,
			TransferringPlayback:  a.TransferringPlayback,
		}
	}
	return out, nil
}
