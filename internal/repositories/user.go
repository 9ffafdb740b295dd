package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/li812/face-bank/internal/models"
)

const userColumns = `id, username, first_name, last_name, gender, address, email, phone,
	city, state, country, embedding, created_at, updated_at`

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsername returns nil, nil when no user has that username.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.get(ctx, query, username)
}

// GetByID returns nil, nil when no user has that id.
func (r *UserReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *UserReadRepository) get(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, query, arg)

	logQuery(query, []any{arg}, user.Username, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Upsert inserts user or overwrites the profile and embedding of the user with
// the same username. user.ID is set to the stored id.
func (r *UserWriteRepository) Upsert(ctx context.Context, user *models.User) (bool, error) {
	query := `
		INSERT INTO users (id, username, first_name, last_name, gender, address, email, phone,
			city, state, country, embedding, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		ON CONFLICT (username) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    gender = EXCLUDED.gender,
		    address = EXCLUDED.address,
		    email = EXCLUDED.email,
		    phone = EXCLUDED.phone,
		    city = EXCLUDED.city,
		    state = EXCLUDED.state,
		    country = EXCLUDED.country,
		    embedding = EXCLUDED.embedding,
		    updated_at = NOW()
		RETURNING id, (xmax = 0) AS created
	`
	args := []any{
		user.ID, user.Username, user.FirstName, user.LastName, user.Gender, user.Address,
		user.Email, user.Phone, user.City, user.State, user.Country, user.Embedding,
	}

	var row struct {
		ID      uuid.UUID `db:"id"`
		Created bool      `db:"created"`
	}
	err := r.db.GetContext(ctx, &row, query, args...)

	logQuery(query, args[:2], row.Created, err)

	if err != nil {
		return false, err
	}
	user.ID = row.ID
	return row.Created, nil
}
