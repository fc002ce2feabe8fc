package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/justestif/go-spotify-stats/internal/stats"
)

// writeJSON encodes v as the response body with status. The status line is
// already sent when encoding fails, so the error is only logged.
func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Debug("writing response failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
}

// intParam parses the query parameter name, returning def when it is absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", stats.ErrInvalidArgument, name)
	}
	return v, nil
}

// optionalInt parses the query parameter name, returning nil when it is absent.
func optionalInt(r *http.Request, name string) (*int, error) {
	if r.URL.Query().Get(name) == "" {
		return nil, nil
	}
	v, err := intParam(r, name, 0)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a Unix timestamp in milliseconds", stats.ErrInvalidArgument, name)
	}
	return &v, nil
}

func pageParams(r *http.Request, defLimit int) (stats.PageQuery, error) {
	limit, err := intParam(r, "limit", defLimit)
	if err != nil {
		return stats.PageQuery{}, err
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		return stats.PageQuery{}, err
	}
	return stats.PageQuery{Limit: limit, Offset: offset}, nil
}
