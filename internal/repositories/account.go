package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/li812/face-bank/internal/dbtx"
	"github.com/li812/face-bank/internal/models"
)

const accountColumns = `id, account_number, branch, owner_user_id, account_type, balance, ifsc_code, created_at`

// AccountReadRepository handles account read operations
type AccountReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewAccountReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *AccountReadRepository {
	return &AccountReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns nil, nil when the account does not exist.
func (r *AccountReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *AccountReadRepository) get(ctx context.Context, query string, arg any) (*models.Account, error) {
	var acc models.Account
	err := sqlx.GetContext(ctx, dbtx.Executor(ctx, r.db, r.txGetter), &acc, query, arg)

	logQuery(query, []any{arg}, acc.Balance, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// AccountWriteRepository handles balance mutations
type AccountWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewAccountWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *AccountWriteRepository {
	return &AccountWriteRepository{db: db, txGetter: txGetter}
}

// Withdraw decreases the balance in a single compare-and-subtract statement and
// returns the new one. sql.ErrNoRows means the balance does not cover amount,
// amount is not positive, or the account does not exist.
func (r *AccountWriteRepository) Withdraw(ctx context.Context, accountID uuid.UUID, amount int64) (int64, error) {
	const query = `
		UPDATE accounts
		SET balance = balance - $2
		WHERE id = $1 AND $2 > 0 AND balance >= $2
		RETURNING balance
	`
	return r.update(ctx, query, accountID, amount)
}

// CreditByNumber increases the balance of the account with that number.
// sql.ErrNoRows means no such account exists.
func (r *AccountWriteRepository) CreditByNumber(ctx context.Context, accountNumber int64, amount int64) (int64, error) {
	const query = `
		UPDATE accounts
		SET balance = balance + $2
		WHERE account_number = $1 AND $2 > 0
		RETURNING balance
	`
	return r.update(ctx, query, accountNumber, amount)
}

func (r *AccountWriteRepository) update(ctx context.Context, query string, key any, amount int64) (int64, error) {
	var balance int64
	err := sqlx.GetContext(ctx, dbtx.Executor(ctx, r.db, r.txGetter), &balance, query, key, amount)

	logQuery(query, []any{key, amount}, balance, err)

	return balance, err
}
