package tests

import (
	"context"
	"errors"
	"testing"

	"zapshift/internal/domain"
	"zapshift/internal/service"
)

func newRiderFixture() (*service.RiderService, *MockRiderRepository, *MockUserRepository, *MockParcelRepository) {
	riderRepo := NewMockRiderRepository()
	userRepo := NewMockUserRepository()
	parcelRepo := NewMockParcelRepository()
	svc := service.NewRiderService(nil, riderRepo, userRepo, parcelRepo, nil)
	return svc, riderRepo, userRepo, parcelRepo
}

func pendingRider(id string) *domain.Rider {
	return &domain.Rider{
		ID:         id,
		Name:       "Karim",
		Email:      "karim@example.com",
		District:   "Dhaka",
		Status:     domain.ApplicationPending,
		WorkStatus: domain.WorkPending,
	}
}

func TestApproveRiderPromotesUserRole(t *testing.T) {
	svc, riderRepo, userRepo, _ := newRiderFixture()

	riderRepo.AddRider(pendingRider("rider-1"))
	userRepo.AddUser(&domain.User{Email: "karim@example.com", Role: domain.RoleUser})

	rider, err := svc.UpdateStatus(context.Background(), "rider-1", domain.ApplicationApproved)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	if rider.Status != domain.ApplicationApproved {
		t.Errorf("expected approved, got %s", rider.Status)
	}
	if rider.WorkStatus != domain.WorkAvailable {
		t.Errorf("expected available, got %s", rider.WorkStatus)
	}

	stored := riderRepo.GetRider("rider-1")
	if stored.Status != domain.ApplicationApproved || stored.WorkStatus != domain.WorkAvailable {
		t.Errorf("stored rider not updated: %s/%s", stored.Status, stored.WorkStatus)
	}

	user, err := userRepo.GetByEmail(context.Background(), "karim@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if user.Role != domain.RoleRider {
		t.Errorf("expected user promoted to rider role, got %s", user.Role)
	}
}

func TestApproveRiderWithoutUserAccount(t *testing.T) {
	svc, riderRepo, _, _ := newRiderFixture()

	// The applicant never registered an account; approval still succeeds.
	riderRepo.AddRider(pendingRider("rider-1"))

	rider, err := svc.UpdateStatus(context.Background(), "rider-1", domain.ApplicationApproved)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if rider.Status != domain.ApplicationApproved {
		t.Errorf("expected approved, got %s", rider.Status)
	}
}

func TestRejectRiderLeavesUserRole(t *testing.T) {
	svc, riderRepo, userRepo, _ := newRiderFixture()

	riderRepo.AddRider(pendingRider("rider-1"))
	userRepo.AddUser(&domain.User{Email: "karim@example.com", Role: domain.RoleUser})

	rider, err := svc.UpdateStatus(context.Background(), "rider-1", domain.ApplicationRejected)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	if rider.Status != domain.ApplicationRejected {
		t.Errorf("expected rejected, got %s", rider.Status)
	}
	if rider.WorkStatus != domain.WorkPending {
		t.Errorf("expected pending work status, got %s", rider.WorkStatus)
	}

	user, _ := userRepo.GetByEmail(context.Background(), "karim@example.com")
	if user.Role != domain.RoleUser {
		t.Errorf("rejection must not touch the user role, got %s", user.Role)
	}
	if n := userRepo.UpdateRoleCallCount; n != 0 {
		t.Errorf("expected no role updates, got %d", n)
	}
}

func TestUpdateRiderStatusValidation(t *testing.T) {
	svc, riderRepo, _, _ := newRiderFixture()
	riderRepo.AddRider(pendingRider("rider-1"))

	if _, err := svc.UpdateStatus(context.Background(), "rider-1", "Approved"); !errors.Is(err, service.ErrInvalidRiderStatus) {
		t.Errorf("expected ErrInvalidRiderStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), "", domain.ApplicationApproved); !errors.Is(err, service.ErrInvalidRiderID) {
		t.Errorf("expected ErrInvalidRiderID, got %v", err)
	}
}

func TestAssignParcelBindsRiderAndParcel(t *testing.T) {
	svc, riderRepo, _, parcelRepo := newRiderFixture()

	rider := pendingRider("rider-1")
	rider.Status = domain.ApplicationApproved
	rider.WorkStatus = domain.WorkAvailable
	riderRepo.AddRider(rider)

	parcel := unpaidParcel("parcel-1")
	parcel.PaymentStatus = domain.ParcelPaid
	parcel.DeliveryStatus = domain.DeliveryPendingPickup
	parcel.TrackingID = "PKG-20260828-AB12CD"
	parcelRepo.AddParcel(parcel)

	updated, err := svc.AssignParcel(context.Background(), "parcel-1", "rider-1")
	if err != nil {
		t.Fatalf("AssignParcel failed: %v", err)
	}

	if updated.DeliveryStatus != domain.DeliveryRiderAssigned {
		t.Errorf("expected rider-assigned, got %s", updated.DeliveryStatus)
	}
	if updated.RiderID != "rider-1" || updated.RiderEmail != "karim@example.com" {
		t.Errorf("parcel missing rider identity: %s/%s", updated.RiderID, updated.RiderEmail)
	}

	stored := parcelRepo.GetParcel("parcel-1")
	if stored.DeliveryStatus != domain.DeliveryRiderAssigned {
		t.Errorf("stored parcel not updated: %s", stored.DeliveryStatus)
	}
	if stored.TrackingID != "PKG-20260828-AB12CD" {
		t.Errorf("tracking id must survive assignment, got %s", stored.TrackingID)
	}

	storedRider := riderRepo.GetRider("rider-1")
	if storedRider.WorkStatus != domain.WorkOnDelivery {
		t.Errorf("expected rider on-delivery, got %s", storedRider.WorkStatus)
	}
}

func TestAssignParcelRejectsUnpaidParcel(t *testing.T) {
	svc, riderRepo, _, parcelRepo := newRiderFixture()

	rider := pendingRider("rider-1")
	rider.Status = domain.ApplicationApproved
	riderRepo.AddRider(rider)
	parcelRepo.AddParcel(unpaidParcel("parcel-1"))

	_, err := svc.AssignParcel(context.Background(), "parcel-1", "rider-1")
	if !errors.Is(err, service.ErrParcelNotPaid) {
		t.Errorf("expected ErrParcelNotPaid, got %v", err)
	}
	if n := parcelRepo.AssignRiderCallCount; n != 0 {
		t.Errorf("expected no assignment writes, got %d", n)
	}
	if n := riderRepo.UpdateWorkStatusCallCount; n != 0 {
		t.Errorf("expected no work status writes, got %d", n)
	}
}

func TestAssignParcelRejectsUnapprovedRider(t *testing.T) {
	svc, riderRepo, _, parcelRepo := newRiderFixture()

	riderRepo.AddRider(pendingRider("rider-1"))

	parcel := unpaidParcel("parcel-1")
	parcel.PaymentStatus = domain.ParcelPaid
	parcelRepo.AddParcel(parcel)

	_, err := svc.AssignParcel(context.Background(), "parcel-1", "rider-1")
	if !errors.Is(err, service.ErrRiderNotApproved) {
		t.Errorf("expected ErrRiderNotApproved, got %v", err)
	}
	if n := parcelRepo.AssignRiderCallCount; n != 0 {
		t.Errorf("expected no assignment writes, got %d", n)
	}
}
