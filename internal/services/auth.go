package services

import (
	"context"
	"time"

	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/models"
)

//go:generate mockgen -source=auth.go -destination=mock_auth_test.go -package=services

// BiometricVerifier scores a fresh image against a stored embedding.
type BiometricVerifier interface {
	Verify(ctx context.Context, stored models.FeatureVector, image []byte) (float64, error)
}

// AuthService handles face login for users and family members.
type AuthService struct {
	users    UserReader
	family   FamilyReader
	verifier BiometricVerifier
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(users UserReader, family FamilyReader, verifier BiometricVerifier) *AuthService {
	return &AuthService{
		users:    users,
		family:   family,
		verifier: verifier,
	}
}

// Login verifies a primary user's face and returns an unsaved session for them.
func (s *AuthService) Login(ctx context.Context, username string, image []byte) (*models.Session, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "username", username, "error", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Warnw("user does not exist", "username", username)
		return nil, ErrIdentityNotFound
	}

	similarity, err := s.verifier.Verify(ctx, user.Embedding, image)
	if err != nil {
		return nil, err
	}

	logger.Log.Infow("user logged in", "username", username, "similarity", similarity)
	return &models.Session{
		UserID:      user.ID,
		DisplayName: user.Username,
		IsPrimary:   true,
		CreatedAt:   time.Now(),
	}, nil
}

// FamilyLogin verifies a family member's face. The session acts for the
// owning user and is marked non-primary.
func (s *AuthService) FamilyLogin(ctx context.Context, username string, image []byte) (*models.Session, error) {
	member, err := s.family.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get family member", "username", username, "error", err)
		return nil, err
	}
	if member == nil {
		logger.Log.Warnw("family member does not exist", "username", username)
		return nil, ErrIdentityNotFound
	}

	similarity, err := s.verifier.Verify(ctx, member.Embedding, image)
	if err != nil {
		return nil, err
	}

	logger.Log.Infow("family member logged in", "username", username, "owner_id", member.OwnerUserID, "similarity", similarity)
	return &models.Session{
		UserID:      member.OwnerUserID,
		DisplayName: member.Username,
		IsPrimary:   false,
		CreatedAt:   time.Now(),
	}, nil
}

// VerifySession re-checks the face of whoever owns sess and marks the
// session as face-verified for the pending transaction.
func (s *AuthService) VerifySession(ctx context.Context, sess models.Session, image []byte) (models.Session, error) {
	var stored models.FeatureVector

	if sess.IsPrimary {
		user, err := s.users.GetByUsername(ctx, sess.DisplayName)
		if err != nil {
			return sess, err
		}
		if user == nil {
			return sess, ErrIdentityNotFound
		}
		stored = user.Embedding
	} else {
		member, err := s.family.GetByUsername(ctx, sess.DisplayName)
		if err != nil {
			return sess, err
		}
		if member == nil {
			return sess, ErrIdentityNotFound
		}
		stored = member.Embedding
	}

	if _, err := s.verifier.Verify(ctx, stored, image); err != nil {
		return sess, err
	}

	sess.FaceVerified = true
	return sess, nil
}
