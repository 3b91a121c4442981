package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zapshift/internal/domain"
	"zapshift/internal/middleware"
	"zapshift/internal/repository"
	"zapshift/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
	userRepo       repository.UserRepository
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService, userRepo repository.UserRepository) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		userRepo:       userRepo,
	}
}

// CheckoutSessionRequest is the HTTP request body for opening a checkout session.
type CheckoutSessionRequest struct {
	ParcelID    string  `json:"parcelId"`
	ParcelName  string  `json:"parcelName"`
	Cost        float64 `json:"cost"`
	SenderEmail string  `json:"senderEmail"`
}

// CreateCheckoutSession handles POST /v1/payments/checkout-session
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	// The session hint defaults to the verified caller.
	if req.SenderEmail == "" {
		req.SenderEmail = middleware.PrincipalEmail(c)
	}

	url, err := h.paymentService.CreateCheckoutSession(c.Request.Context(), service.CheckoutRequest{
		ParcelID:    req.ParcelID,
		ParcelName:  req.ParcelName,
		Cost:        req.Cost,
		SenderEmail: req.SenderEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"url": url})
}

// PaymentResponse is the HTTP response for payment data.
type PaymentResponse struct {
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CustomerEmail string    `json:"customerEmail"`
	ParcelID      string    `json:"parcelId"`
	ParcelName    string    `json:"parcelName"`
	Status        string    `json:"paymentStatus"`
	TrackingID    string    `json:"trackingId"`
	PaidAt        time.Time `json:"paidAt"`
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		CustomerEmail: p.CustomerEmail,
		ParcelID:      p.ParcelID,
		ParcelName:    p.ParcelName,
		Status:        p.Status,
		TrackingID:    p.TrackingID,
		PaidAt:        p.PaidAt,
	}
}

// ConfirmResponse is the envelope returned by payment confirmation.
type ConfirmResponse struct {
	Success       bool             `json:"success"`
	TrackingID    string           `json:"trackingId,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
	PaymentInfo   *PaymentResponse `json:"paymentInfo,omitempty"`
	Message       string           `json:"message,omitempty"`
}

// Confirm handles PATCH /v1/payments/confirm?session_id=
//
// Invoked by the payment processor's confirmation redirect, so it may run
// any number of times for one session; a replay returns the originally
// recorded tracking id and transaction id.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	result, err := h.paymentService.ConfirmPayment(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if !result.Success {
		respondJSON(c, http.StatusOK, ConfirmResponse{Success: false})
		return
	}

	response := ConfirmResponse{
		Success:       true,
		TrackingID:    result.TrackingID,
		TransactionID: result.TransactionID,
	}
	if result.Payment != nil {
		info := toPaymentResponse(result.Payment)
		response.PaymentInfo = &info
	}
	if result.Replayed {
		response.Message = "already exist"
	}

	respondJSON(c, http.StatusOK, response)
}

// List handles GET /v1/payments[?email=]
//
// Callers see their own payment history; only admins may request another
// principal's or the unfiltered listing.
func (h *PaymentHandler) List(c *gin.Context) {
	caller := middleware.PrincipalEmail(c)
	email := c.Query("email")

	if email == "" {
		email = caller
	}

	if email != caller && !h.callerCan(c, caller, domain.CapViewAnyPayment) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
		return
	}

	// Admins may pass email=all for the unfiltered listing.
	if email == "all" {
		email = ""
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		response = append(response, toPaymentResponse(p))
	}

	respondJSON(c, http.StatusOK, response)
}

func (h *PaymentHandler) callerCan(c *gin.Context, email string, cap domain.Capability) bool {
	user, err := h.userRepo.GetByEmail(c.Request.Context(), email)
	if err != nil {
		return false
	}
	return user.Role.Can(cap)
}
