package web

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justestif/go-spotify-stats/internal/auth"
	"github.com/justestif/go-spotify-stats/internal/schema"
	"github.com/justestif/go-spotify-stats/internal/spotify"
	"github.com/justestif/go-spotify-stats/internal/stats"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Incident string `json:"incident,omitempty"`
	// Detail carries the upstream body; it is dropped in production.
	Detail string `json:"detail,omitempty"`
}

type classified struct {
	status  int
	code    string
	message string
	detail  string
}

func classify(err error) classified {
	var (
		authErr      *auth.UpstreamAuthError
		requestErr   *spotify.RequestError
		malformedErr *schema.MalformedError
	)

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return classified{http.StatusForbidden, "unauthenticated", "sign in with Spotify first", ""}
	case errors.Is(err, stats.ErrInvalidArgument):
		return classified{http.StatusBadRequest, "invalid_argument", err.Error(), ""}
	case errors.Is(err, errStateMismatch):
		return classified{http.StatusBadRequest, "state_mismatch", "login state does not match, start the login again", ""}
	case errors.Is(err, errAuthorizationDenied):
		return classified{http.StatusBadRequest, "authorization_denied", err.Error(), ""}
	case errors.Is(err, errMissingCallbackParam):
		return classified{http.StatusInternalServerError, "callback_incomplete", "callback is missing code or state", ""}
	case errors.As(err, &authErr):
		return classified{http.StatusBadGateway, "upstream_auth_error", "Spotify rejected the token request", authErr.Body}
	case errors.As(err, &requestErr):
		status := requestErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return classified{status, "upstream_request_error", "Spotify rejected the request", requestErr.Body}
	case errors.As(err, &malformedErr):
		return classified{http.StatusBadGateway, "upstream_contract_violation", "upstream contract violation", err.Error()}
	default:
		return classified{http.StatusInternalServerError, "internal_error", "internal server error", ""}
	}
}

// fail writes the error response for err. Server errors are logged with the
// incident id returned to the client.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	c := classify(err)
	body := errorBody{
		Error:    c.code,
		Message:  c.message,
		Incident: uuid.NewString(),
	}
	if !h.production {
		body.Detail = c.detail
	}

	fields := []zap.Field{
		zap.String("incident", body.Incident),
		zap.Int("status", c.status),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
	if c.status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Debug("request rejected", fields...)
	}

	h.writeJSON(w, r, c.status, body)
}
