package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"zapshift/internal/domain"
	"zapshift/internal/handler"
	"zapshift/internal/middleware"
	"zapshift/internal/service"
)

func newAccessFixture() (*gin.Engine, *MockPaymentRepository) {
	gin.SetMode(gin.TestMode)

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{Email: "admin@example.com", Role: domain.RoleAdmin})
	userRepo.AddUser(&domain.User{Email: "user@example.com", Role: domain.RoleUser})

	paymentRepo := NewMockPaymentRepository()
	parcelRepo := NewMockParcelRepository()
	paymentService := service.NewPaymentService(paymentRepo, parcelRepo, NewMockGateway(), nil, "https://zapshift.example.com")

	verifier := NewMockVerifier()
	verifier.Tokens["admin-token"] = "admin@example.com"
	verifier.Tokens["user-token"] = "user@example.com"

	userHandler := handler.NewUserHandler(userRepo)
	paymentHandler := handler.NewPaymentHandler(paymentService, userRepo)

	requireAuth := middleware.RequireAuth(verifier)
	requireAdmin := middleware.RequireCapability(userRepo, domain.CapManageUsers)

	router := gin.New()
	router.GET("/v1/users", requireAuth, requireAdmin, userHandler.GetAll)
	router.GET("/v1/payments", requireAuth, paymentHandler.List)

	return router, paymentRepo
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminEndpointRequiresCredentials(t *testing.T) {
	router, _ := newAccessFixture()

	w := doRequest(router, http.MethodGet, "/v1/users", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing credentials: expected 401, got %d", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/v1/users", "forged-token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("invalid credentials: expected 401, got %d", w.Code)
	}

	// Scheme other than Bearer.
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	req.Header.Set("Authorization", "Basic YWRtaW46cGFzcw==")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong scheme: expected 401, got %d", rec.Code)
	}
}

func TestAdminEndpointRejectsNonAdmin(t *testing.T) {
	router, _ := newAccessFixture()

	w := doRequest(router, http.MethodGet, "/v1/users", "user-token")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", w.Code)
	}
}

func TestAdminEndpointAllowsAdmin(t *testing.T) {
	router, _ := newAccessFixture()

	w := doRequest(router, http.MethodGet, "/v1/users", "admin-token")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", w.Code)
	}
}

func TestPaymentListScopedToCaller(t *testing.T) {
	router, paymentRepo := newAccessFixture()

	seedPayment(t, paymentRepo, "txn-1", "user@example.com")
	seedPayment(t, paymentRepo, "txn-2", "other@example.com")

	// Without an email filter the caller sees their own history.
	w := doRequest(router, http.MethodGet, "/v1/payments", "user-token")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payments []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payments); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}
	if payments[0]["transactionId"] != "txn-1" {
		t.Errorf("expected own payment txn-1, got %v", payments[0]["transactionId"])
	}

	// Another principal's history is admin-only.
	w = doRequest(router, http.MethodGet, "/v1/payments?email=other@example.com", "user-token")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for foreign history, got %d", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/v1/payments?email=other@example.com", "admin-token")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", w.Code)
	}

	// email=all gives admins the unfiltered listing.
	w = doRequest(router, http.MethodGet, "/v1/payments?email=all", "admin-token")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin listing, got %d", w.Code)
	}
	payments = nil
	if err := json.Unmarshal(w.Body.Bytes(), &payments); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payments) != 2 {
		t.Errorf("expected 2 payments in unfiltered listing, got %d", len(payments))
	}

	w = doRequest(router, http.MethodGet, "/v1/payments?email=all", "user-token")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin unfiltered listing, got %d", w.Code)
	}
}

func seedPayment(t *testing.T, repo *MockPaymentRepository, transactionID, email string) {
	t.Helper()
	created, err := repo.CreateIfAbsent(context.Background(), &domain.Payment{
		TransactionID: transactionID,
		CustomerEmail: email,
		Amount:        10,
		Currency:      "usd",
		Status:        "paid",
	})
	if err != nil || !created {
		t.Fatalf("failed to seed payment %s", transactionID)
	}
}
