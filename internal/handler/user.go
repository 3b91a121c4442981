package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zapshift/internal/domain"
	"zapshift/internal/repository"
	"zapshift/internal/service"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userRepo repository.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// CreateUserRequest is the HTTP request body for user creation.
type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserResponse is the HTTP response for user data.
type UserResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// Create handles POST /v1/users
//
// New accounts always start with the user role; a repeated registration
// for an existing email returns the existing record unchanged.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email is required"})
		return
	}

	existing, err := h.userRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}

	if existing != nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "user exists",
			"user":    toUserResponse(existing),
		})
		return
	}

	user := &domain.User{
		Email:     req.Email,
		Name:      req.Name,
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
	}

	if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toUserResponse(user))
}

// GetAll handles GET /v1/users (admin only)
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.userRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, toUserResponse(u))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetRole handles GET /v1/users/:email/role (admin only)
func (h *UserHandler) GetRole(c *gin.Context) {
	email := c.Param("email")

	user, err := h.userRepo.GetByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"email": user.Email, "role": string(user.Role)})
}

// UpdateRoleRequest is the HTTP request body for a role update.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole handles PATCH /v1/users/:email/role (admin only)
func (h *UserHandler) UpdateRole(c *gin.Context) {
	email := c.Param("email")

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if !domain.ValidRole(req.Role) {
		respondError(c, service.ErrInvalidRole)
		return
	}

	if err := h.userRepo.UpdateRole(c.Request.Context(), email, domain.Role(req.Role)); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"email": email, "role": req.Role})
}
