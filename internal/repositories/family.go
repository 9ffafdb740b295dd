package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/li812/face-bank/internal/dbtx"
	"github.com/li812/face-bank/internal/models"
	"github.com/li812/face-bank/internal/services"
)

const uniqueViolation = "23505"

type FamilyReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewFamilyReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *FamilyReadRepository {
	return &FamilyReadRepository{db: db, txGetter: txGetter}
}

// GetByUsername returns nil, nil when no family member has that username.
func (r *FamilyReadRepository) GetByUsername(ctx context.Context, username string) (*models.FamilyMember, error) {
	const query = `
		SELECT id, owner_user_id, username, name, email, phone, relationship, embedding, created_at
		FROM family_members
		WHERE username = $1
	`

	var member models.FamilyMember
	err := sqlx.GetContext(ctx, dbtx.Executor(ctx, r.db, r.txGetter), &member, query, username)

	logQuery(query, []any{username}, member.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ExistsForOwner reports whether ownerID already has a family member. Inside a
// transaction the owner row stays locked until commit, so concurrent
// registrations for the same owner are serialized.
func (r *FamilyReadRepository) ExistsForOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	const query = `
		WITH owner AS (
			SELECT id FROM users WHERE id = $1 FOR UPDATE
		)
		SELECT EXISTS (
			SELECT 1 FROM family_members f JOIN owner o ON f.owner_user_id = o.id
		)
	`

	var exists bool
	err := sqlx.GetContext(ctx, dbtx.Executor(ctx, r.db, r.txGetter), &exists, query, ownerID)

	logQuery(query, []any{ownerID}, exists, err)

	return exists, err
}

type FamilyWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewFamilyWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *FamilyWriteRepository {
	return &FamilyWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts member. A duplicate username yields services.ErrUsernameTaken.
func (r *FamilyWriteRepository) Create(ctx context.Context, member *models.FamilyMember) error {
	query := `
		INSERT INTO family_members (id, owner_user_id, username, name, email, phone, relationship, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	args := []any{
		member.ID, member.OwnerUserID, member.Username, member.Name,
		member.Email, member.Phone, member.Relationship, member.Embedding,
	}

	res, err := dbtx.Executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args[:3], rowsAffected, err)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return services.ErrUsernameTaken
	}
	return err
}
