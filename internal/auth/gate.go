package auth

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// ErrUnauthenticated is returned when a request carries no usable tokens.
var ErrUnauthenticated = errors.New("unauthenticated")

// Refresher obtains a new access token from a refresh token.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

// Gate resolves the access token for a request, refreshing it when only the
// refresh cookie survives.
type Gate struct {
	store     *TokenStore
	refresher Refresher
	logger    *zap.Logger
}

// NewGate creates a Gate.
func NewGate(store *TokenStore, refresher Refresher, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{store: store, refresher: refresher, logger: logger}
}

// Resolve returns the access token to use for r. A present access cookie is
// returned as is. Otherwise the refresh cookie is exchanged once and the new
// tokens are written to w. A failed refresh is reported as
// ErrUnauthenticated.
func (g *Gate) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error) {
	tokens := g.store.Read(r)
	if tokens.Access != "" {
		return tokens.Access, nil
	}
	if tokens.Refresh == "" {
		return "", ErrUnauthenticated
	}

	pair, err := g.refresher.Refresh(ctx, tokens.Refresh)
	if err != nil {
		g.logger.Warn("refreshing access token", zap.Error(err))
		return "", ErrUnauthenticated
	}

	g.store.Write(w, pair)
	return pair.AccessToken, nil
}
