package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/justestif/go-spotify-stats/internal/stats"
)

// Default page sizes per resource.
const (
	defaultTopLimit      = 20
	defaultFollowedLimit = 10
	defaultSavedLimit    = 10
	defaultTracksLimit   = 50
	defaultHistoryLimit  = 10
	defaultTimeRange     = "medium_term"
)

// Me returns the signed-in user's profile (GET /me).
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.stats.Me(r.Context(), accessToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, user)
}

func topParams(r *http.Request) (stats.TopQuery, error) {
	page, err := pageParams(r, defaultTopLimit)
	if err != nil {
		return stats.TopQuery{}, err
	}
	timeRange := r.URL.Query().Get("time_range")
	if timeRange == "" {
		timeRange = defaultTimeRange
	}
	return stats.TopQuery{TimeRange: timeRange, PageQuery: page}, nil
}

// TopArtists returns the user's top artists (GET /top/artists).
func (h *Handlers) TopArtists(w http.ResponseWriter, r *http.Request) {
	q, err := topParams(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	top, err := h.stats.TopArtists(r.Context(), accessToken(r.Context()), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, top)
}

// TopTracks returns the user's top tracks (GET /top/tracks).
func (h *Handlers) TopTracks(w http.ResponseWriter, r *http.Request) {
	q, err := topParams(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	top, err := h.stats.TopTracks(r.Context(), accessToken(r.Context()), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, top)
}

// FollowedArtists returns the artists the user follows (GET /following/artists).
func (h *Handlers) FollowedArtists(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", defaultFollowedLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	followed, err := h.stats.FollowedArtists(r.Context(), accessToken(r.Context()), limit, r.URL.Query().Get("after"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, followed)
}

// SavedAlbums returns the albums in the user's library (GET /albums/saved).
func (h *Handlers) SavedAlbums(w http.ResponseWriter, r *http.Request) {
	q, err := pageParams(r, defaultSavedLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	albums, err := h.stats.SavedAlbums(r.Context(), accessToken(r.Context()), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, albums)
}

// Album returns a single album (GET /albums/{id}).
func (h *Handlers) Album(w http.ResponseWriter, r *http.Request) {
	album, err := h.stats.Album(r.Context(), accessToken(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, album)
}

// AlbumTracks returns a page of an album's tracks (GET /albums/{id}/tracks).
func (h *Handlers) AlbumTracks(w http.ResponseWriter, r *http.Request) {
	q, err := pageParams(r, defaultTracksLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	tracks, err := h.stats.AlbumTracks(r.Context(), accessToken(r.Context()), chi.URLParam(r, "id"), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, tracks)
}

// RecentlyPlayed returns the user's play history (GET /player/recently_played).
func (h *Handlers) RecentlyPlayed(w http.ResponseWriter, r *http.Request) {
	q, err := historyParams(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	history, err := h.stats.RecentlyPlayed(r.Context(), accessToken(r.Context()), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, history)
}

func historyParams(r *http.Request) (stats.HistoryQuery, error) {
	limit, err := intParam(r, "limit", defaultHistoryLimit)
	if err != nil {
		return stats.HistoryQuery{}, err
	}
	after, err := optionalInt64(r, "after")
	if err != nil {
		return stats.HistoryQuery{}, err
	}
	before, err := optionalInt64(r, "before")
	if err != nil {
		return stats.HistoryQuery{}, err
	}
	return stats.HistoryQuery{Limit: limit, After: after, Before: before}, nil
}

// PlaybackState returns the current playback, or 204 when nothing plays
// (GET /player/playback_state).
func (h *Handlers) PlaybackState(w http.ResponseWriter, r *http.Request) {
	state, err := h.stats.PlaybackState(r.Context(), accessToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if state == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, r, http.StatusOK, state)
}

// Pause pauses playback (PUT /player/{device}/pause).
func (h *Handlers) Pause(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, h.stats.Pause)
}

// SkipNext skips forward (GET /player/{device}/skip_next).
func (h *Handlers) SkipNext(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, h.stats.SkipNext)
}

// SkipPrevious skips back (GET /player/{device}/skip_previous).
func (h *Handlers) SkipPrevious(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, h.stats.SkipPrevious)
}

// Play starts or resumes playback (PUT /player/{device}/play).
func (h *Handlers) Play(w http.ResponseWriter, r *http.Request) {
	q, err := playParams(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.control(w, r, func(ctx context.Context, token, device string) error {
		return h.stats.Play(ctx, token, device, q)
	})
}

func playParams(r *http.Request) (stats.PlayQuery, error) {
	position, err := optionalInt(r, "position")
	if err != nil {
		return stats.PlayQuery{}, err
	}
	positionMS, err := optionalInt(r, "position_ms")
	if err != nil {
		return stats.PlayQuery{}, err
	}
	return stats.PlayQuery{
		ContextURI: r.URL.Query().Get("context_uri"),
		Position:   position,
		PositionMS: positionMS,
	}, nil
}

// control runs a playback command against the {device} in the path and
// answers 204.
func (h *Handlers) control(w http.ResponseWriter, r *http.Request, command func(ctx context.Context, token, device string) error) {
	device := chi.URLParam(r, "device")
	if device == "" {
		h.fail(w, r, fmt.Errorf("%w: device must not be empty", stats.ErrInvalidArgument))
		return
	}
	if err := command(r.Context(), accessToken(r.Context()), device); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
