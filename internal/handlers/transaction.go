package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/middlewares"
	"github.com/li812/face-bank/internal/models"
	"github.com/li812/face-bank/internal/services"
)

//go:generate mockgen -source=transaction.go -destination=mock_transaction_test.go -package=handlers

// TransactionInitiator creates pending transfers.
type TransactionInitiator interface {
	Initiate(ctx context.Context, sess models.Session, req services.InitiateRequest) (*models.Transaction, models.Session, error)
}

// TransactionVerifier settles the pending transfer of a session.
type TransactionVerifier interface {
	Verify(ctx context.Context, sess models.Session, otp string) (*models.Transaction, models.Session, error)
}

// TransactionLister lists transfers of the session user.
type TransactionLister interface {
	History(ctx context.Context, sess models.Session, limit, offset int) ([]models.Transaction, error)
}

// SessionFaceVerifier re-checks the face behind a session.
type SessionFaceVerifier interface {
	VerifySession(ctx context.Context, sess models.Session, image []byte) (models.Session, error)
}

// SessionSaver persists session changes.
type SessionSaver interface {
	Save(ctx context.Context, sess *models.Session) error
}

// InitiateRequest represents the body for creating a transfer
// swagger:model InitiateRequest
type InitiateRequest struct {
	// Sender account id
	// required: true
	SenderAccountID string `json:"sender_account_id"`

	// Branch of the sender account
	// default: Kochi
	Branch string `json:"branch"`

	// Amount in minor units
	// required: true
	// default: 400
	Amount int64 `json:"amount"`

	// Receiver account number
	// required: true
	ReceiverAccountNumber int64 `json:"receiver_account_number"`

	// Receiver name
	ReceiverName string `json:"receiver_name"`
}

// VerifyRequest carries the OTP for the pending transfer
// swagger:model VerifyRequest
type VerifyRequest struct {
	// One-time password sent by mail
	// required: true
	// default: 123456
	OTP string `json:"otp"`
}

// TransactionResponse describes a transfer
// swagger:model TransactionResponse
type TransactionResponse struct {
	Message               string     `json:"message"`
	TransactionID         string     `json:"transaction_id"`
	Status                string     `json:"status"`
	Amount                int64      `json:"amount"`
	ReceiverAccountNumber int64      `json:"receiver_account_number"`
	ReceiverName          string     `json:"receiver_name"`
	CreatedAt             time.Time  `json:"created_at"`
	VerifiedAt            *time.Time `json:"verified_at,omitempty"`
}

// HistoryResponse lists transfers
// swagger:model HistoryResponse
type HistoryResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

func toTransactionResponse(msg string, txn *models.Transaction) TransactionResponse {
	return TransactionResponse{
		Message:               msg,
		TransactionID:         txn.ID.String(),
		Status:                string(txn.Status),
		Amount:                txn.Amount,
		ReceiverAccountNumber: txn.ReceiverAccountNumber,
		ReceiverName:          txn.ReceiverName,
		CreatedAt:             txn.CreatedAt,
		VerifiedAt:            txn.VerifiedAt,
	}
}

// isJSON reports whether the request body is JSON rather than a form.
func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func decodeInitiate(r *http.Request) (InitiateRequest, error) {
	var req InitiateRequest
	if isJSON(r) {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.SenderAccountID = r.PostFormValue("sender_account_id")
	req.Branch = r.PostFormValue("branch")
	req.ReceiverName = r.PostFormValue("receiver_name")

	var err error
	if req.Amount, err = strconv.ParseInt(strings.TrimSpace(r.PostFormValue("amount")), 10, 64); err != nil {
		return req, errors.New("amount must be an integer")
	}
	if req.ReceiverAccountNumber, err = strconv.ParseInt(strings.TrimSpace(r.PostFormValue("receiver_account_number")), 10, 64); err != nil {
		return req, errors.New("receiver_account_number must be an integer")
	}
	return req, nil
}

func decodeVerify(r *http.Request) (VerifyRequest, error) {
	var req VerifyRequest
	if isJSON(r) {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.OTP = r.PostFormValue("otp")
	return req, nil
}

func sessionOrUnauthorized(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	sess, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		respond(w, r, http.StatusUnauthorized, "Error", ErrorResponse{Error: "session required"})
	}
	return sess, ok
}

// saveSession stores sess when it differs from the one the request started with.
func saveSession(ctx context.Context, sessions SessionSaver, before *models.Session, after models.Session) error {
	if sameSessionState(*before, after) {
		return nil
	}
	if err := sessions.Save(ctx, &after); err != nil {
		logger.Log.Errorw("failed to save session", "session_id", after.ID, "err", err)
		return err
	}
	return nil
}

func sameSessionState(a, b models.Session) bool {
	if a.FaceVerified != b.FaceVerified {
		return false
	}
	if a.PendingTransactionID == nil || b.PendingTransactionID == nil {
		return a.PendingTransactionID == nil && b.PendingTransactionID == nil
	}
	return *a.PendingTransactionID == *b.PendingTransactionID
}

// NewInitiateTransactionHandler returns an HTTP handler that creates a pending transfer.
// @Summary Initiate a transfer
// @Description Creates a pending transfer and mails an OTP to the account holder. Nothing is debited until the OTP is verified.
// @Tags transactions
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body handlers.InitiateRequest true "Transfer"
// @Success 201 {object} handlers.TransactionResponse "Pending transfer created"
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount or branch"
// @Failure 401 {object} handlers.ErrorResponse "No session"
// @Failure 404 {object} handlers.ErrorResponse "Sender account not found"
// @Failure 409 {object} handlers.ErrorResponse "Insufficient funds"
// @Router /transactions [post]
// @Security BearerAuth
func NewInitiateTransactionHandler(svc TransactionInitiator, sessions SessionSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOrUnauthorized(w, r)
		if !ok {
			return
		}

		req, err := decodeInitiate(r)
		if err != nil {
			badRequest(w, r, "invalid request body")
			return
		}
		accountID, err := uuid.Parse(req.SenderAccountID)
		if err != nil {
			badRequest(w, r, "sender_account_id must be a uuid")
			return
		}

		txn, updated, err := svc.Initiate(r.Context(), *sess, services.InitiateRequest{
			SenderAccountID:       accountID,
			Branch:                req.Branch,
			Amount:                req.Amount,
			ReceiverAccountNumber: req.ReceiverAccountNumber,
			ReceiverName:          req.ReceiverName,
		})
		if err != nil {
			respondError(w, r, err)
			return
		}

		if err := saveSession(r.Context(), sessions, sess, updated); err != nil {
			// The pending record stays in the store unreferenced; it is never settled.
			logger.Log.Errorw("pending transaction orphaned by failed session save",
				"transaction_id", txn.ID, "session_id", sess.ID, "error", err)
			respondError(w, r, err)
			return
		}

		respond(w, r, http.StatusCreated, "Transfer pending", toTransactionResponse("OTP sent to registered email", txn))
	}
}

// NewFaceVerificationHandler returns an HTTP handler that re-checks the face before OTP verification.
// @Summary Face check for the pending transfer
// @Description Verifies the face of whoever holds the session and marks the pending transfer as face-verified
// @Tags transactions
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Face image"
// @Success 200 {object} handlers.MessageResponse "Face verified"
// @Failure 400 {object} handlers.ErrorResponse "No pending transfer or no face in image"
// @Failure 401 {object} handlers.ErrorResponse "No session or face does not match"
// @Failure 503 {object} handlers.ErrorResponse "Biometric service unavailable"
// @Router /transactions/face-verification [post]
// @Security BearerAuth
func NewFaceVerificationHandler(svc SessionFaceVerifier, sessions SessionSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOrUnauthorized(w, r)
		if !ok {
			return
		}
		if sess.PendingTransactionID == nil {
			respondError(w, r, services.ErrNoPendingTransaction)
			return
		}

		image, err := readImage(w, r)
		if err != nil {
			badRequest(w, r, err.Error())
			return
		}

		updated, err := svc.VerifySession(r.Context(), *sess, image)
		if err != nil {
			respondError(w, r, err)
			return
		}

		if err := saveSession(r.Context(), sessions, sess, updated); err != nil {
			respondError(w, r, err)
			return
		}

		respond(w, r, http.StatusOK, "Face verified", MessageResponse{Message: "Face verified"})
	}
}

// NewVerifyTransactionHandler returns an HTTP handler that settles the pending transfer.
// @Summary Verify OTP
// @Description Checks the OTP of the pending transfer and settles it on a match
// @Tags transactions
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body handlers.VerifyRequest true "OTP"
// @Success 200 {object} handlers.TransactionResponse "Transfer settled"
// @Failure 400 {object} handlers.ErrorResponse "Invalid OTP or no pending transfer"
// @Failure 401 {object} handlers.ErrorResponse "No session"
// @Failure 403 {object} handlers.ErrorResponse "Face check required"
// @Failure 404 {object} handlers.ErrorResponse "Receiver account not found"
// @Failure 409 {object} handlers.ErrorResponse "Insufficient funds or transfer closed"
// @Failure 423 {object} handlers.ErrorResponse "Too many OTP attempts"
// @Router /transactions/verify [post]
// @Security BearerAuth
func NewVerifyTransactionHandler(svc TransactionVerifier, sessions SessionSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOrUnauthorized(w, r)
		if !ok {
			return
		}

		req, err := decodeVerify(r)
		if err != nil {
			badRequest(w, r, "invalid request body")
			return
		}

		txn, updated, verr := svc.Verify(r.Context(), *sess, req.OTP)

		// A lock or a closed transfer clears the pending reference even on failure.
		// A stale reference left by a failed save is cleared by the next attempt.
		_ = saveSession(r.Context(), sessions, sess, updated)

		if verr != nil {
			respondError(w, r, verr)
			return
		}

		respond(w, r, http.StatusOK, "Transfer complete", toTransactionResponse("Transaction successful", txn))
	}
}

// NewHistoryHandler returns an HTTP handler listing the user's transfers.
// @Summary Transfer history
// @Description Lists transfers sent from the user's accounts, newest first
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} handlers.HistoryResponse
// @Failure 401 {object} handlers.ErrorResponse "No session"
// @Router /transactions [get]
// @Security BearerAuth
func NewHistoryHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOrUnauthorized(w, r)
		if !ok {
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		txns, err := svc.History(r.Context(), *sess, limit, offset)
		if err != nil {
			respondError(w, r, err)
			return
		}
		if txns == nil {
			txns = []models.Transaction{}
		}

		respond(w, r, http.StatusOK, "Transaction history", HistoryResponse{Transactions: txns})
	}
}

// TransactionHandlers groups the transfer routes.
type TransactionHandlers struct {
	Initiate         http.HandlerFunc
	FaceVerification http.HandlerFunc
	Verify           http.HandlerFunc
	History          http.HandlerFunc
}

// RegisterTransactionHandlers registers the transfer routes
func RegisterTransactionHandlers(r chi.Router, h TransactionHandlers) {
	r.Post("/transactions", h.Initiate)
	r.Post("/transactions/face-verification", h.FaceVerification)
	r.Post("/transactions/verify", h.Verify)
	r.Get("/transactions", h.History)
}
