package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zapshift/internal/domain"
	"zapshift/internal/repository"
	"zapshift/internal/service"
)

// RiderHandler handles HTTP requests for riders.
type RiderHandler struct {
	riderRepo    repository.RiderRepository
	riderService *service.RiderService
}

// NewRiderHandler creates a new RiderHandler.
func NewRiderHandler(riderRepo repository.RiderRepository, riderService *service.RiderService) *RiderHandler {
	return &RiderHandler{
		riderRepo:    riderRepo,
		riderService: riderService,
	}
}

// RiderApplicationRequest is the HTTP request body for a rider application.
type RiderApplicationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	District string `json:"district"`
}

// RiderResponse is the HTTP response for rider data.
type RiderResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	District   string    `json:"district"`
	Status     string    `json:"status"`
	WorkStatus string    `json:"workStatus"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toRiderResponse(r *domain.Rider) RiderResponse {
	return RiderResponse{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		District:   r.District,
		Status:     string(r.Status),
		WorkStatus: string(r.WorkStatus),
		CreatedAt:  r.CreatedAt,
	}
}

// List handles GET /v1/riders[?status=]
func (h *RiderHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !domain.ValidApplicationStatus(status) {
		respondError(c, service.ErrInvalidRiderStatus)
		return
	}

	riders, err := h.riderRepo.List(c.Request.Context(), domain.ApplicationStatus(status))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RiderResponse, 0, len(riders))
	for _, r := range riders {
		response = append(response, toRiderResponse(r))
	}

	respondJSON(c, http.StatusOK, response)
}

// Create handles POST /v1/riders
//
// Applications always start pending, with work status pending.
func (h *RiderHandler) Create(c *gin.Context) {
	var req RiderApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email is required"})
		return
	}

	rider := &domain.Rider{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Email:      req.Email,
		District:   req.District,
		Status:     domain.ApplicationPending,
		WorkStatus: domain.WorkPending,
		CreatedAt:  time.Now(),
	}

	if err := h.riderRepo.Create(c.Request.Context(), rider); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRiderResponse(rider))
}

// UpdateStatusRequest is the HTTP request body for a rider status update.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/riders/:id/status (admin only)
func (h *RiderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rider, err := h.riderService.UpdateStatus(c.Request.Context(), c.Param("id"), domain.ApplicationStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRiderResponse(rider))
}
