package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zapshift/internal/domain"
	"zapshift/internal/service"
)

// ParcelHandler handles HTTP requests for parcels.
type ParcelHandler struct {
	parcelService *service.ParcelService
	riderService  *service.RiderService
}

// NewParcelHandler creates a new ParcelHandler.
func NewParcelHandler(parcelService *service.ParcelService, riderService *service.RiderService) *ParcelHandler {
	return &ParcelHandler{
		parcelService: parcelService,
		riderService:  riderService,
	}
}

// CreateParcelRequest is the HTTP request body for parcel creation.
type CreateParcelRequest struct {
	Name            string  `json:"name"`
	SenderEmail     string  `json:"senderEmail"`
	ReceiverName    string  `json:"receiverName"`
	ReceiverAddress string  `json:"receiverAddress"`
	Cost            float64 `json:"cost"`
}

// ParcelResponse is the HTTP response for parcel data.
type ParcelResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	SenderEmail     string    `json:"senderEmail"`
	ReceiverName    string    `json:"receiverName"`
	ReceiverAddress string    `json:"receiverAddress"`
	Cost            float64   `json:"cost"`
	PaymentStatus   string    `json:"paymentStatus"`
	DeliveryStatus  string    `json:"deliveryStatus"`
	TrackingID      string    `json:"trackingId,omitempty"`
	RiderID         string    `json:"riderId,omitempty"`
	RiderName       string    `json:"riderName,omitempty"`
	RiderEmail      string    `json:"riderEmail,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toParcelResponse(p *domain.Parcel) ParcelResponse {
	return ParcelResponse{
		ID:              p.ID,
		Name:            p.Name,
		SenderEmail:     p.SenderEmail,
		ReceiverName:    p.ReceiverName,
		ReceiverAddress: p.ReceiverAddress,
		Cost:            p.Cost,
		PaymentStatus:   string(p.PaymentStatus),
		DeliveryStatus:  string(p.DeliveryStatus),
		TrackingID:      p.TrackingID,
		RiderID:         p.RiderID,
		RiderName:       p.RiderName,
		RiderEmail:      p.RiderEmail,
		CreatedAt:       p.CreatedAt,
	}
}

// List handles GET /v1/parcels[?email=]
func (h *ParcelHandler) List(c *gin.Context) {
	parcels, err := h.parcelService.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ParcelResponse, 0, len(parcels))
	for _, p := range parcels {
		response = append(response, toParcelResponse(p))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/parcels/:id
func (h *ParcelHandler) Get(c *gin.Context) {
	parcel, err := h.parcelService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toParcelResponse(parcel))
}

// Create handles POST /v1/parcels
func (h *ParcelHandler) Create(c *gin.Context) {
	var req CreateParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	parcel, err := h.parcelService.Create(c.Request.Context(), service.CreateParcelRequest{
		Name:            req.Name,
		SenderEmail:     req.SenderEmail,
		ReceiverName:    req.ReceiverName,
		ReceiverAddress: req.ReceiverAddress,
		Cost:            req.Cost,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toParcelResponse(parcel))
}

// Delete handles DELETE /v1/parcels/:id
func (h *ParcelHandler) Delete(c *gin.Context) {
	if err := h.parcelService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"success": true})
}

// AssignRiderRequest is the HTTP request body for rider assignment.
type AssignRiderRequest struct {
	RiderID string `json:"riderId"`
}

// AssignRider handles PATCH /v1/parcels/:id/assign-rider (admin only)
func (h *ParcelHandler) AssignRider(c *gin.Context) {
	var req AssignRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	parcel, err := h.riderService.AssignParcel(c.Request.Context(), c.Param("id"), req.RiderID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toParcelResponse(parcel))
}
