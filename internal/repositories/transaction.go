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

const transactionColumns = `id, sender_account_id, sender_user_id, sender_username, branch,
	receiver_account_number, receiver_name, amount, otp_hash, otp_attempts, status, created_at, verified_at`

// TransactionReadRepository handles transaction read operations
type TransactionReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionReadRepository {
	return &TransactionReadRepository{db: db, txGetter: txGetter}
}

// GetForUpdate loads a transaction and locks its row until the surrounding
// transaction ends. Returns nil, nil when it does not exist.
func (r *TransactionReadRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	var txn models.Transaction
	err := sqlx.GetContext(ctx, dbtx.Executor(ctx, r.db, r.txGetter), &txn, query, id)

	logQuery(query, []any{id}, txn.Status, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// ListBySender returns transfers initiated by userID, newest first.
func (r *TransactionReadRepository) ListBySender(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE sender_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	txns := []models.Transaction{}
	err := sqlx.SelectContext(ctx, dbtx.Executor(ctx, r.db, r.txGetter), &txns, query, userID, limit, offset)

	logQuery(query, []any{userID, limit, offset}, len(txns), err)

	return txns, err
}

// TransactionWriteRepository handles transaction writes
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a pending transaction.
func (r *TransactionWriteRepository) Create(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, sender_account_id, sender_user_id, sender_username, branch,
			receiver_account_number, receiver_name, amount, otp_hash, otp_attempts, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, NOW())
		RETURNING created_at
	`
	args := []any{
		txn.ID, txn.SenderAccountID, txn.SenderUserID, txn.SenderUsername, txn.Branch,
		txn.ReceiverAccountNumber, txn.ReceiverName, txn.Amount, txn.OTPHash, string(txn.Status),
	}

	err := sqlx.GetContext(ctx, dbtx.Executor(ctx, r.db, r.txGetter), &txn.CreatedAt, query, args...)

	// The OTP hash is left out of the log.
	logQuery(query, append(args[:8:8], string(txn.Status)), txn.ID, err)

	return err
}

// RecordFailedAttempt increments the wrong-OTP counter and returns its new value.
func (r *TransactionWriteRepository) RecordFailedAttempt(ctx context.Context, id uuid.UUID) (int, error) {
	const query = `
		UPDATE transactions
		SET otp_attempts = otp_attempts + 1
		WHERE id = $1
		RETURNING otp_attempts
	`

	var attempts int
	err := sqlx.GetContext(ctx, dbtx.Executor(ctx, r.db, r.txGetter), &attempts, query, id)

	logQuery(query, []any{id}, attempts, err)

	return attempts, err
}

// UpdateStatus moves a transaction to status, stamping verified_at when it is verified.
// sql.ErrNoRows means the transaction does not exist.
func (r *TransactionWriteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TransactionStatus) error {
	const query = `
		UPDATE transactions
		SET status = $2,
		    verified_at = CASE WHEN $2 = 'verified' THEN NOW() ELSE verified_at END
		WHERE id = $1
	`
	args := []any{id, string(status)}

	res, err := dbtx.Executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
