package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/li812/face-bank/internal/jwt"
	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/models"
)

//go:generate mockgen -source=session.go -destination=mock_session_test.go -package=services

// KeepTTL asks a SessionStore to retain the expiry already set on a session.
const KeepTTL time.Duration = -1

// SessionStore persists sessions with an expiry.
type SessionStore interface {
	Save(ctx context.Context, sess *models.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*models.Session, error) // nil, nil when absent or expired
	Delete(ctx context.Context, id string) error
}

// TokenIssuer signs and parses session tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID uuid.UUID, sessionID string) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// SessionService owns the session lifecycle: created at login, updated on
// every change, destroyed at logout or when the TTL lapses. The lifetime is
// fixed at login so the stored session never outlives its token.
type SessionService struct {
	store  SessionStore
	tokens TokenIssuer
	ttl    time.Duration
}

// NewSessionService creates a new SessionService instance.
func NewSessionService(store SessionStore, tokens TokenIssuer, ttl time.Duration) *SessionService {
	return &SessionService{store: store, tokens: tokens, ttl: ttl}
}

// TTL returns how long a session lives after login.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Start assigns an id to sess, stores it and returns a token referencing it.
func (s *SessionService) Start(ctx context.Context, sess *models.Session) (string, error) {
	sess.ID = uuid.NewString()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}

	if err := s.store.Save(ctx, sess, s.ttl); err != nil {
		logger.Log.Errorw("failed to save session", "user_id", sess.UserID, "error", err)
		return "", err
	}

	token, err := s.tokens.Generate(ctx, sess.UserID, sess.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "user_id", sess.UserID, "error", err)
		_ = s.store.Delete(ctx, sess.ID)
		return "", err
	}

	return token, nil
}

// Resolve returns the live session referenced by token.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.tokens.GetClaims(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}

	sess, err := s.store.Get(ctx, claims.SessionID)
	if err != nil {
		logger.Log.Errorw("failed to load session", "session_id", claims.SessionID, "error", err)
		return nil, err
	}
	if sess == nil || sess.UserID != claims.UserID {
		return nil, ErrSessionNotFound
	}

	return sess, nil
}

// Save persists changes to sess without extending its lifetime.
func (s *SessionService) Save(ctx context.Context, sess *models.Session) error {
	return s.store.Save(ctx, sess, KeepTTL)
}

// End destroys sess.
func (s *SessionService) End(ctx context.Context, sess *models.Session) error {
	if err := s.store.Delete(ctx, sess.ID); err != nil {
		logger.Log.Errorw("failed to delete session", "session_id", sess.ID, "error", err)
		return err
	}
	logger.Log.Infow("session ended", "session_id", sess.ID, "display_name", sess.DisplayName)
	return nil
}
