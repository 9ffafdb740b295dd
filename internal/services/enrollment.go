package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/models"
)

//go:generate mockgen -source=enrollment.go -destination=mock_enrollment_test.go -package=services

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error) // nil, nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)          // nil, nil when absent
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Upsert(ctx context.Context, user *models.User) (created bool, err error)
}

// FamilyReader defines read-only operations for family members.
type FamilyReader interface {
	GetByUsername(ctx context.Context, username string) (*models.FamilyMember, error) // nil, nil when absent
	ExistsForOwner(ctx context.Context, ownerID uuid.UUID) (bool, error)
}

// FamilyWriter defines write operations for family members.
type FamilyWriter interface {
	Create(ctx context.Context, member *models.FamilyMember) error // ErrUsernameTaken on duplicate username
}

// Transactor runs fn as one database unit of work.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// FaceExtractor turns an image into an embedding.
type FaceExtractor interface {
	Extract(ctx context.Context, image []byte) (models.FeatureVector, error)
}

// EnrollmentService stores face embeddings for users and family members.
type EnrollmentService struct {
	users        UserReader
	userWriter   UserWriter
	family       FamilyReader
	familyWriter FamilyWriter
	extractor    FaceExtractor
	tx           Transactor
}

// NewEnrollmentService creates a new EnrollmentService instance.
func NewEnrollmentService(
	users UserReader,
	userWriter UserWriter,
	family FamilyReader,
	familyWriter FamilyWriter,
	extractor FaceExtractor,
	tx Transactor,
) *EnrollmentService {
	return &EnrollmentService{
		users:        users,
		userWriter:   userWriter,
		family:       family,
		familyWriter: familyWriter,
		extractor:    extractor,
		tx:           tx,
	}
}

// EnrollUser extracts an embedding from image and inserts the user, or
// overwrites profile and embedding of the user with the same username.
// It reports whether a new user was created.
func (s *EnrollmentService) EnrollUser(ctx context.Context, user models.User, image []byte) (bool, error) {
	user.Username = strings.TrimSpace(user.Username)

	vec, err := s.extractor.Extract(ctx, image)
	if err != nil {
		logger.Log.Errorw("failed to extract face for enrollment", "username", user.Username, "error", err)
		return false, err
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Gender == "" {
		user.Gender = "Male"
	}
	user.Embedding = vec

	created, err := s.userWriter.Upsert(ctx, &user)
	if err != nil {
		logger.Log.Errorw("failed to save user", "username", user.Username, "error", err)
		return false, err
	}

	logger.Log.Infow("user enrolled", "username", user.Username, "created", created)
	return created, nil
}

// EnrollFamilyMember adds the single family member an owner may have.
func (s *EnrollmentService) EnrollFamilyMember(ctx context.Context, ownerID uuid.UUID, member models.FamilyMember, image []byte) error {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		logger.Log.Errorw("failed to get family owner", "owner_id", ownerID, "error", err)
		return err
	}
	if owner == nil {
		return ErrIdentityNotFound
	}

	vec, err := s.extractor.Extract(ctx, image)
	if err != nil {
		logger.Log.Errorw("failed to extract face for family enrollment", "owner", owner.Username, "error", err)
		return err
	}

	member.ID = uuid.New()
	member.OwnerUserID = owner.ID
	member.Username = strings.TrimSpace(member.Username)
	member.Embedding = vec

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.family.ExistsForOwner(ctx, owner.ID)
		if err != nil {
			return err
		}
		if exists {
			logger.Log.Warnw("family member already registered", "owner", owner.Username)
			return ErrFamilyMemberExists
		}

		if err := s.familyWriter.Create(ctx, &member); err != nil {
			logger.Log.Errorw("failed to save family member", "username", member.Username, "error", err)
			return err
		}

		logger.Log.Infow("family member enrolled", "owner", owner.Username, "username", member.Username)
		return nil
	})
}
