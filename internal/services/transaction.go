package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/metrics"
	"github.com/li812/face-bank/internal/models"
	"github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=transaction.go -destination=mock_transaction_test.go -package=services

const (
	otpSubject        = "OTP Verification code"
	defaultHistoryLen = 50
	maxHistoryLen     = 200
)

// AccountReader defines read-only account operations.
type AccountReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) // nil, nil when absent
}

// AccountWriter defines balance mutations. Both return sql.ErrNoRows when no
// row qualifies: insufficient balance for Withdraw, unknown number for CreditByNumber.
type AccountWriter interface {
	Withdraw(ctx context.Context, accountID uuid.UUID, amount int64) (int64, error)
	CreditByNumber(ctx context.Context, accountNumber int64, amount int64) (int64, error)
}

// TransactionReader defines read-only transaction operations.
type TransactionReader interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Transaction, error) // Locks the row inside a transaction
	ListBySender(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error)
}

// TransactionWriter defines transaction writes.
type TransactionWriter interface {
	Create(ctx context.Context, txn *models.Transaction) error
	RecordFailedAttempt(ctx context.Context, id uuid.UUID) (int, error) // Returns the new attempt count
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TransactionStatus) error
}

// Notifier delivers a message to a user. Delivery is best-effort and never fails the caller.
type Notifier interface {
	Send(ctx context.Context, subject, body, to string)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TransactionPolicy holds the tunable rules of the OTP workflow.
type TransactionPolicy struct {
	// MaxOTPAttempts locks a transaction after that many wrong OTPs. Zero keeps
	// the transaction pending however many wrong OTPs are tried.
	MaxOTPAttempts int
	// RequireFaceCheck makes Verify refuse until VerifySession succeeded for the pending transaction.
	RequireFaceCheck bool
	// PublishTimeout bounds post-commit Kafka publishing.
	PublishTimeout time.Duration
}

// DefaultTransactionPolicy returns the hardened defaults.
func DefaultTransactionPolicy() TransactionPolicy {
	return TransactionPolicy{
		MaxOTPAttempts: 5,
		PublishTimeout: 5 * time.Second,
	}
}

// InitiateRequest describes a transfer to create.
type InitiateRequest struct {
	SenderAccountID       uuid.UUID
	Branch                string
	Amount                int64
	ReceiverAccountNumber int64
	ReceiverName          string
}

// TransactionService runs the initiate / OTP verify / settle workflow.
type TransactionService struct {
	users         UserReader
	accounts      AccountReader
	accountWriter AccountWriter
	txnReader     TransactionReader
	txnWriter     TransactionWriter
	tx            Transactor
	notifier      Notifier
	kafkaWriter   KafkaWriter
	policy        TransactionPolicy

	otp     func() (string, error)
	otpCost int
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	users UserReader,
	accounts AccountReader,
	accountWriter AccountWriter,
	txnReader TransactionReader,
	txnWriter TransactionWriter,
	tx Transactor,
	notifier Notifier,
	kafkaWriter KafkaWriter,
	policy TransactionPolicy,
) *TransactionService {
	return &TransactionService{
		users:         users,
		accounts:      accounts,
		accountWriter: accountWriter,
		txnReader:     txnReader,
		txnWriter:     txnWriter,
		tx:            tx,
		notifier:      notifier,
		kafkaWriter:   kafkaWriter,
		policy:        policy,
		otp:           generateOTP,
		otpCost:       bcrypt.DefaultCost,
	}
}

// generateOTP returns a uniformly random six digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// normalizeOTP parses a submitted code so that it compares numerically.
func normalizeOTP(s string) (string, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return "", ErrInvalidOTP
	}
	return strconv.FormatUint(n, 10), nil
}

// Initiate creates a pending transfer and mails its OTP to the account owner.
// The sender is not debited until Verify succeeds, so concurrent pending
// transfers may add up to more than the balance.
func (s *TransactionService) Initiate(ctx context.Context, sess models.Session, req InitiateRequest) (*models.Transaction, models.Session, error) {
	if req.Amount <= 0 {
		return nil, sess, ErrInvalidAmount
	}

	account, err := s.accounts.GetByID(ctx, req.SenderAccountID)
	if err != nil {
		logger.Log.Errorw("failed to get sender account", "account_id", req.SenderAccountID, "error", err)
		return nil, sess, err
	}
	if account == nil || account.OwnerUserID != sess.UserID {
		return nil, sess, ErrAccountNotFound
	}
	if req.Branch != "" && req.Branch != account.Branch {
		return nil, sess, ErrBranchMismatch
	}
	if account.Balance < req.Amount {
		logger.Log.Warnw("insufficient balance", "account_id", account.ID, "balance", account.Balance, "amount", req.Amount)
		return nil, sess, ErrInsufficientFunds
	}

	owner, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get account owner", "user_id", sess.UserID, "error", err)
		return nil, sess, err
	}
	if owner == nil {
		return nil, sess, ErrIdentityNotFound
	}

	otp, err := s.otp()
	if err != nil {
		return nil, sess, fmt.Errorf("generate otp: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), s.otpCost)
	if err != nil {
		return nil, sess, fmt.Errorf("hash otp: %w", err)
	}

	txn := &models.Transaction{
		ID:                    uuid.New(),
		SenderAccountID:       account.ID,
		SenderUserID:          owner.ID,
		SenderUsername:        owner.Username,
		Branch:                account.Branch,
		ReceiverAccountNumber: req.ReceiverAccountNumber,
		ReceiverName:          req.ReceiverName,
		Amount:                req.Amount,
		OTPHash:               string(hash),
		Status:                models.TxnPending,
		CreatedAt:             time.Now(),
	}
	if err := s.txnWriter.Create(ctx, txn); err != nil {
		logger.Log.Errorw("failed to save transaction", "account_id", account.ID, "error", err)
		return nil, sess, err
	}
	metrics.TransactionsInitiated.Inc()

	s.notifier.Send(ctx, otpSubject, fmt.Sprintf("otp : %s", otp), owner.Email)

	id := txn.ID
	sess.PendingTransactionID = &id
	sess.FaceVerified = false

	logger.Log.Infow("transaction initiated", "transaction_id", txn.ID, "amount", txn.Amount, "by", sess.DisplayName)
	return txn, sess, nil
}

// Verify checks otp against the session's pending transaction and settles it
// on a match. Debit and credit happen in one database transaction with the
// transaction row locked, so a missing receiver or a balance that no longer
// covers the amount leaves every balance untouched.
func (s *TransactionService) Verify(ctx context.Context, sess models.Session, otp string) (*models.Transaction, models.Session, error) {
	if sess.PendingTransactionID == nil {
		return nil, sess, ErrNoPendingTransaction
	}
	if s.policy.RequireFaceCheck && !sess.FaceVerified {
		return nil, sess, ErrFaceVerificationRequired
	}

	code, err := normalizeOTP(otp)
	if err != nil {
		metrics.OTPFailures.WithLabelValues("mismatch").Inc()
		return nil, sess, err
	}

	txnID := *sess.PendingTransactionID
	var (
		settled   *models.Transaction
		rejection error
	)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		txn, err := s.txnReader.GetForUpdate(ctx, txnID)
		if err != nil {
			return err
		}
		if txn == nil || txn.SenderUserID != sess.UserID {
			return ErrTransactionNotFound
		}
		if txn.Status.IsTerminal() {
			return ErrTransactionClosed
		}

		if bcrypt.CompareHashAndPassword([]byte(txn.OTPHash), []byte(code)) != nil {
			attempts, err := s.txnWriter.RecordFailedAttempt(ctx, txn.ID)
			if err != nil {
				return err
			}
			if s.policy.MaxOTPAttempts > 0 && attempts >= s.policy.MaxOTPAttempts {
				if err := s.txnWriter.UpdateStatus(ctx, txn.ID, models.TxnLocked); err != nil {
					return err
				}
				rejection = ErrOTPAttemptsExceeded
			} else {
				rejection = ErrInvalidOTP
			}
			// Commit the attempt count.
			return nil
		}

		if _, err := s.accountWriter.Withdraw(ctx, txn.SenderAccountID, txn.Amount); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInsufficientFunds
			}
			return err
		}
		if _, err := s.accountWriter.CreditByNumber(ctx, txn.ReceiverAccountNumber, txn.Amount); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrReceiverNotFound
			}
			return err
		}
		if err := s.txnWriter.UpdateStatus(ctx, txn.ID, models.TxnVerified); err != nil {
			return err
		}

		now := time.Now()
		txn.Status = models.TxnVerified
		txn.VerifiedAt = &now
		settled = txn
		return nil
	})

	if err != nil {
		logger.Log.Warnw("transaction not settled", "transaction_id", txnID, "error", err)
		if errors.Is(err, ErrTransactionClosed) || errors.Is(err, ErrTransactionNotFound) {
			sess = clearPending(sess)
		}
		return nil, sess, err
	}

	if rejection != nil {
		if errors.Is(rejection, ErrOTPAttemptsExceeded) {
			metrics.OTPFailures.WithLabelValues("locked").Inc()
			logger.Log.Warnw("transaction locked after failed otp attempts", "transaction_id", txnID)
			sess = clearPending(sess)
		} else {
			metrics.OTPFailures.WithLabelValues("mismatch").Inc()
			logger.Log.Infow("invalid otp", "transaction_id", txnID)
		}
		return nil, sess, rejection
	}

	metrics.TransactionsSettled.Inc()
	logger.Log.Infow("transaction settled", "transaction_id", settled.ID, "amount", settled.Amount)
	s.publishTransaction(ctx, settled)

	return settled, clearPending(sess), nil
}

// History returns transfers sent from the session user's accounts, newest first.
func (s *TransactionService) History(ctx context.Context, sess models.Session, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLen
	}
	if limit > maxHistoryLen {
		limit = maxHistoryLen
	}
	if offset < 0 {
		offset = 0
	}

	txns, err := s.txnReader.ListBySender(ctx, sess.UserID, limit, offset)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "user_id", sess.UserID, "error", err)
		return nil, err
	}
	return txns, nil
}

func clearPending(sess models.Session) models.Session {
	sess.PendingTransactionID = nil
	sess.FaceVerified = false
	return sess
}

// publishTransaction publishes a settled transaction to Kafka.
func (s *TransactionService) publishTransaction(ctx context.Context, txn *models.Transaction) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", txn.ID)
		return
	}

	evt := models.TransactionEvent{
		TransactionID:         txn.ID.String(),
		Timestamp:             time.Now().Unix(),
		Amount:                txn.Amount,
		SenderAccountID:       txn.SenderAccountID.String(),
		ReceiverAccountNumber: txn.ReceiverAccountNumber,
		UserID:                txn.SenderUserID.String(),
		Operation:             "transaction.verified",
	}
	data, err := json.Marshal(evt)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction for Kafka", "transaction_id", evt.TransactionID, "error", err)
		return
	}

	timeout := s.policy.PublishTimeout
	if timeout <= 0 {
		timeout = DefaultTransactionPolicy().PublishTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(evt.TransactionID),
		Value: data,
	}
	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		metrics.PublishFailures.WithLabelValues("transactions").Inc()
		logger.Log.Errorw("Failed to publish transaction to Kafka", "transaction_id", evt.TransactionID, "error", err)
		return
	}
	logger.Log.Infow("Transaction published to Kafka", "transaction_id", evt.TransactionID, "amount", evt.Amount)
}
