package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/models"
	"github.com/li812/face-bank/internal/services"
)

//go:generate mockgen -source=auth.go -destination=mock_auth_test.go -package=middlewares

// TokenExtractor pulls the session token out of a request.
type TokenExtractor interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// SessionResolver loads the live session a token refers to.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.Session, error)
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the session attached by AuthMiddleware.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*models.Session)
	return sess, ok && sess != nil
}

// AuthMiddleware rejects requests without a live session and attaches the session to the context.
func AuthMiddleware(tokens TokenExtractor, sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokens.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Warnw("authorization failed", "err", err)
				writeError(w, http.StatusUnauthorized, "session required")
				return
			}

			sess, err := sessions.Resolve(ctx, tokenString)
			if err != nil {
				if errors.Is(err, services.ErrSessionNotFound) {
					logger.Log.Warnw("authorization failed", "err", err)
					writeError(w, http.StatusUnauthorized, "session expired or invalid")
					return
				}
				logger.Log.Errorw("session lookup failed", "err", err)
				writeError(w, http.StatusServiceUnavailable, "session store unavailable")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
