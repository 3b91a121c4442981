package tests

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"zapshift/internal/service"
)

func TestCreateCheckoutSessionReturnsRedirectURL(t *testing.T) {
	svc, _, _, gateway := newPaymentFixture()

	url, err := svc.CreateCheckoutSession(context.Background(), service.CheckoutRequest{
		ParcelID:    "parcel-1",
		ParcelName:  "Box of books",
		Cost:        12.50,
		SenderEmail: "sender@example.com",
	})
	if err != nil {
		t.Fatalf("CreateCheckoutSession failed: %v", err)
	}

	if url != gateway.CheckoutURL {
		t.Errorf("expected %s, got %s", gateway.CheckoutURL, url)
	}

	if len(gateway.CreatedParams) != 1 {
		t.Fatalf("expected 1 session create, got %d", len(gateway.CreatedParams))
	}

	params := gateway.CreatedParams[0]
	if params.AmountMinor != 1250 {
		t.Errorf("expected 1250 minor units, got %d", params.AmountMinor)
	}
	if params.ParcelID != "parcel-1" {
		t.Errorf("expected parcel id parcel-1, got %s", params.ParcelID)
	}
	if params.CustomerEmail != "sender@example.com" {
		t.Errorf("expected sender email, got %s", params.CustomerEmail)
	}
	if !strings.Contains(params.SuccessURL, "{CHECKOUT_SESSION_ID}") {
		t.Errorf("success URL must carry the session id placeholder, got %s", params.SuccessURL)
	}
}

func TestCreateCheckoutSessionValidation(t *testing.T) {
	valid := service.CheckoutRequest{
		ParcelID:    "parcel-1",
		ParcelName:  "Box of books",
		Cost:        12.50,
		SenderEmail: "sender@example.com",
	}

	tests := []struct {
		name    string
		mutate  func(*service.CheckoutRequest)
		wantErr error
	}{
		{"empty parcel id", func(r *service.CheckoutRequest) { r.ParcelID = "" }, service.ErrInvalidParcelID},
		{"empty email", func(r *service.CheckoutRequest) { r.SenderEmail = "" }, service.ErrInvalidEmail},
		{"zero cost", func(r *service.CheckoutRequest) { r.Cost = 0 }, service.ErrInvalidCost},
		{"negative cost", func(r *service.CheckoutRequest) { r.Cost = -5 }, service.ErrInvalidCost},
		{"NaN cost", func(r *service.CheckoutRequest) { r.Cost = math.NaN() }, service.ErrInvalidCost},
		{"infinite cost", func(r *service.CheckoutRequest) { r.Cost = math.Inf(1) }, service.ErrInvalidCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, gateway := newPaymentFixture()

			req := valid
			tt.mutate(&req)

			_, err := svc.CreateCheckoutSession(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if len(gateway.CreatedParams) != 0 {
				t.Error("no session should be opened for an invalid request")
			}
		})
	}
}

func TestCreateCheckoutSessionGatewayError(t *testing.T) {
	svc, _, _, gateway := newPaymentFixture()
	gateway.CreateError = errors.New("card network down")

	_, err := svc.CreateCheckoutSession(context.Background(), service.CheckoutRequest{
		ParcelID:    "parcel-1",
		Cost:        12.50,
		SenderEmail: "sender@example.com",
	})
	if !errors.Is(err, service.ErrPaymentGateway) {
		t.Errorf("expected ErrPaymentGateway, got %v", err)
	}
}
