package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"zapshift/internal/domain"
	"zapshift/internal/redis"
	"zapshift/internal/repository"
)

// gatewayStatusPaid is the gateway's terminal status for a settled session.
const gatewayStatusPaid = "paid"

// CreateSessionParams carries everything the gateway needs to open a
// hosted checkout session. AmountMinor is in the processor's minor units.
type CreateSessionParams struct {
	ParcelID      string
	ParcelName    string
	CustomerEmail string
	AmountMinor   int64
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the resolved external state of a checkout session.
type CheckoutSession struct {
	ID            string
	PaymentStatus string
	TransactionID string
	AmountTotal   int64
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

// PaymentGateway is the interface to the external payment processor.
type PaymentGateway interface {
	// CreateCheckoutSession opens a hosted payment session and returns
	// its redirect URL.
	CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (string, error)

	// GetCheckoutSession resolves a session id to its current external state.
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// PaymentService opens checkout sessions and reconciles their confirmations.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	parcelRepo  repository.ParcelRepository
	gateway     PaymentGateway
	cacheStore  *redis.CacheStore
	siteDomain  string
}

// NewPaymentService creates a new PaymentService. cacheStore may be nil.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	parcelRepo repository.ParcelRepository,
	gateway PaymentGateway,
	cacheStore *redis.CacheStore,
	siteDomain string,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		parcelRepo:  parcelRepo,
		gateway:     gateway,
		cacheStore:  cacheStore,
		siteDomain:  siteDomain,
	}
}

// CheckoutRequest contains the parameters for opening a checkout session.
type CheckoutRequest struct {
	ParcelID    string
	ParcelName  string
	Cost        float64
	SenderEmail string
}

// CreateCheckoutSession validates the request and opens an external payment
// session bound to the parcel. Nothing is persisted locally; the parcel
// stays unpaid until the confirmation is reconciled.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	if req.ParcelID == "" {
		return "", ErrInvalidParcelID
	}

	if req.SenderEmail == "" {
		return "", ErrInvalidEmail
	}

	if req.Cost <= 0 || math.IsNaN(req.Cost) || math.IsInf(req.Cost, 0) {
		return "", ErrInvalidCost
	}

	url, err := s.gateway.CreateCheckoutSession(ctx, CreateSessionParams{
		ParcelID:      req.ParcelID,
		ParcelName:    req.ParcelName,
		CustomerEmail: req.SenderEmail,
		AmountMinor:   int64(math.Round(req.Cost * 100)),
		SuccessURL:    s.siteDomain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.siteDomain + "/dashboard/payment-cancelled",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	return url, nil
}

// ConfirmResult is the outcome of reconciling a payment confirmation.
type ConfirmResult struct {
	Success       bool
	TrackingID    string
	TransactionID string
	Payment       *domain.Payment
	Replayed      bool
}

// ConfirmPayment reconciles an inbound payment confirmation. It may be
// invoked any number of times for the same session (redirect retries,
// back-button navigation, processor redelivery) and records at most one
// payment per transaction id.
//
// The transaction id is the idempotency key. The fast-path lookup below
// only avoids minting tracking ids on ordinary replays; correctness under
// concurrent replays comes from the conditional insert, whose losers
// re-read the winner's committed record.
func (s *PaymentService) ConfirmPayment(ctx context.Context, sessionID string) (*ConfirmResult, error) {
	if sessionID == "" {
		return nil, ErrInvalidSessionID
	}

	sess, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentLookup, err)
	}

	// The payer never completed checkout; nothing to record.
	if sess.PaymentStatus != gatewayStatusPaid {
		return &ConfirmResult{Success: false}, nil
	}

	if sess.TransactionID == "" {
		return nil, fmt.Errorf("%w: session %s is paid but has no transaction id", ErrPaymentLookup, sessionID)
	}

	existing, err := s.paymentRepo.GetByTransactionID(ctx, sess.TransactionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return replayResult(existing), nil
	}

	payment := &domain.Payment{
		TransactionID: sess.TransactionID,
		Amount:        float64(sess.AmountTotal) / 100,
		Currency:      sess.Currency,
		CustomerEmail: sess.CustomerEmail,
		ParcelID:      sess.Metadata["parcelId"],
		ParcelName:    sess.Metadata["parcelName"],
		Status:        sess.PaymentStatus,
		TrackingID:    GenerateTrackingID(),
		PaidAt:        time.Now(),
	}

	created, err := s.paymentRepo.CreateIfAbsent(ctx, payment)
	if err != nil {
		return nil, err
	}

	if !created {
		// Lost a concurrent race; the winner's record is already
		// committed. Discard the minted tracking id and return the
		// winner's result.
		winner, err := s.paymentRepo.GetByTransactionID(ctx, sess.TransactionID)
		if err != nil {
			return nil, err
		}
		if winner == nil {
			return nil, fmt.Errorf("payment for transaction %s vanished after conflict", sess.TransactionID)
		}
		return replayResult(winner), nil
	}

	// First successful reconciliation for this transaction: cascade onto
	// the parcel.
	if err := s.parcelRepo.MarkPaid(ctx, payment.ParcelID, payment.TrackingID); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateParcel(ctx, payment.ParcelID)
	}

	return &ConfirmResult{
		Success:       true,
		TrackingID:    payment.TrackingID,
		TransactionID: payment.TransactionID,
		Payment:       payment,
	}, nil
}

// ListPayments retrieves payments, optionally filtered by customer email.
func (s *PaymentService) ListPayments(ctx context.Context, customerEmail string) ([]*domain.Payment, error) {
	return s.paymentRepo.List(ctx, customerEmail)
}

func replayResult(p *domain.Payment) *ConfirmResult {
	return &ConfirmResult{
		Success:       true,
		TrackingID:    p.TrackingID,
		TransactionID: p.TransactionID,
		Payment:       p,
		Replayed:      true,
	}
}
