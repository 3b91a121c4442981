package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"zapshift/internal/domain"
	"zapshift/internal/service"
)

func newPaymentFixture() (*service.PaymentService, *MockPaymentRepository, *MockParcelRepository, *MockGateway) {
	paymentRepo := NewMockPaymentRepository()
	parcelRepo := NewMockParcelRepository()
	gateway := NewMockGateway()
	svc := service.NewPaymentService(paymentRepo, parcelRepo, gateway, nil, "https://zapshift.example.com")
	return svc, paymentRepo, parcelRepo, gateway
}

func paidSession(id, transactionID, parcelID string) *service.CheckoutSession {
	return &service.CheckoutSession{
		ID:            id,
		PaymentStatus: "paid",
		TransactionID: transactionID,
		AmountTotal:   1250,
		Currency:      "usd",
		CustomerEmail: "sender@example.com",
		Metadata: map[string]string{
			"parcelId":   parcelID,
			"parcelName": "Box of books",
		},
	}
}

func unpaidParcel(id string) *domain.Parcel {
	return &domain.Parcel{
		ID:             id,
		Name:           "Box of books",
		SenderEmail:    "sender@example.com",
		Cost:           12.50,
		PaymentStatus:  domain.ParcelUnpaid,
		DeliveryStatus: domain.DeliveryCreated,
	}
}

func TestConfirmPaymentRecordsPaymentAndMarksParcel(t *testing.T) {
	svc, paymentRepo, parcelRepo, gateway := newPaymentFixture()

	parcelRepo.AddParcel(unpaidParcel("parcel-1"))
	gateway.AddSession(paidSession("sess-1", "txn-1", "parcel-1"))

	result, err := svc.ConfirmPayment(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("ConfirmPayment failed: %v", err)
	}

	if !result.Success {
		t.Fatal("expected success")
	}
	if result.Replayed {
		t.Error("first confirmation should not be a replay")
	}
	if result.TransactionID != "txn-1" {
		t.Errorf("expected transaction id txn-1, got %s", result.TransactionID)
	}
	if result.TrackingID == "" {
		t.Error("expected a tracking id")
	}
	if result.Payment == nil {
		t.Fatal("expected payment info")
	}
	if result.Payment.Amount != 12.50 {
		t.Errorf("expected amount 12.50, got %v", result.Payment.Amount)
	}
	if result.Payment.ParcelID != "parcel-1" {
		t.Errorf("expected parcel id parcel-1, got %s", result.Payment.ParcelID)
	}

	if paymentRepo.PaymentCount() != 1 {
		t.Errorf("expected 1 payment record, got %d", paymentRepo.PaymentCount())
	}

	parcel := parcelRepo.GetParcel("parcel-1")
	if parcel.PaymentStatus != domain.ParcelPaid {
		t.Errorf("expected parcel paid, got %s", parcel.PaymentStatus)
	}
	if parcel.DeliveryStatus != domain.DeliveryPendingPickup {
		t.Errorf("expected parcel pending-pickup, got %s", parcel.DeliveryStatus)
	}
	if parcel.TrackingID != result.TrackingID {
		t.Errorf("parcel tracking id %s does not match result %s", parcel.TrackingID, result.TrackingID)
	}
}

func TestConfirmPaymentReplayReturnsOriginalRecord(t *testing.T) {
	svc, paymentRepo, parcelRepo, gateway := newPaymentFixture()

	parcelRepo.AddParcel(unpaidParcel("parcel-1"))
	gateway.AddSession(paidSession("sess-1", "txn-1", "parcel-1"))

	first, err := svc.ConfirmPayment(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("first ConfirmPayment failed: %v", err)
	}

	// The payer hits the confirmation endpoint again (refresh, back
	// button, processor redelivery).
	for i := 0; i < 5; i++ {
		replay, err := svc.ConfirmPayment(context.Background(), "sess-1")
		if err != nil {
			t.Fatalf("replay %d failed: %v", i, err)
		}
		if !replay.Success {
			t.Fatalf("replay %d: expected success", i)
		}
		if !replay.Replayed {
			t.Errorf("replay %d: expected replay flag", i)
		}
		if replay.TrackingID != first.TrackingID {
			t.Errorf("replay %d: tracking id %s differs from original %s", i, replay.TrackingID, first.TrackingID)
		}
	}

	if paymentRepo.PaymentCount() != 1 {
		t.Errorf("expected 1 payment record after replays, got %d", paymentRepo.PaymentCount())
	}
	if n := paymentRepo.CreateIfAbsentCallCount; n != 1 {
		t.Errorf("expected 1 insert attempt (replays take the lookup fast path), got %d", n)
	}
	if n := parcelRepo.MarkPaidCallCount; n != 1 {
		t.Errorf("expected the parcel to be marked paid once, got %d calls", n)
	}
}

func TestConfirmPaymentConcurrentReplaysRecordOnce(t *testing.T) {
	svc, paymentRepo, parcelRepo, gateway := newPaymentFixture()

	parcelRepo.AddParcel(unpaidParcel("parcel-1"))
	gateway.AddSession(paidSession("sess-1", "txn-1", "parcel-1"))

	const workers = 20

	var wg sync.WaitGroup
	results := make([]*service.ConfirmResult, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.ConfirmPayment(context.Background(), "sess-1")
		}(i)
	}
	wg.Wait()

	tracking := ""
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d failed: %v", i, errs[i])
		}
		if !results[i].Success {
			t.Fatalf("worker %d: expected success", i)
		}
		if tracking == "" {
			tracking = results[i].TrackingID
		}
		if results[i].TrackingID != tracking {
			t.Errorf("worker %d: tracking id %s differs from %s", i, results[i].TrackingID, tracking)
		}
	}

	if paymentRepo.PaymentCount() != 1 {
		t.Errorf("expected exactly 1 payment record, got %d", paymentRepo.PaymentCount())
	}
	if n := parcelRepo.MarkPaidCallCount; n != 1 {
		t.Errorf("expected the parcel to be marked paid exactly once, got %d calls", n)
	}
}

func TestConfirmPaymentUnpaidSessionMutatesNothing(t *testing.T) {
	svc, paymentRepo, parcelRepo, gateway := newPaymentFixture()

	parcelRepo.AddParcel(unpaidParcel("parcel-1"))
	sess := paidSession("sess-1", "txn-1", "parcel-1")
	sess.PaymentStatus = "unpaid"
	gateway.AddSession(sess)

	result, err := svc.ConfirmPayment(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("ConfirmPayment failed: %v", err)
	}

	if result.Success {
		t.Error("expected failure for an unsettled session")
	}
	if paymentRepo.PaymentCount() != 0 {
		t.Errorf("expected no payment records, got %d", paymentRepo.PaymentCount())
	}

	parcel := parcelRepo.GetParcel("parcel-1")
	if parcel.PaymentStatus != domain.ParcelUnpaid {
		t.Errorf("parcel should remain unpaid, got %s", parcel.PaymentStatus)
	}
	if parcel.TrackingID != "" {
		t.Errorf("parcel should have no tracking id, got %s", parcel.TrackingID)
	}
}

func TestConfirmPaymentSessionLookupFailure(t *testing.T) {
	svc, _, _, gateway := newPaymentFixture()
	gateway.GetError = errors.New("gateway down")

	_, err := svc.ConfirmPayment(context.Background(), "sess-1")
	if !errors.Is(err, service.ErrPaymentLookup) {
		t.Errorf("expected ErrPaymentLookup, got %v", err)
	}
}

func TestConfirmPaymentEmptySessionID(t *testing.T) {
	svc, _, _, _ := newPaymentFixture()

	_, err := svc.ConfirmPayment(context.Background(), "")
	if !errors.Is(err, service.ErrInvalidSessionID) {
		t.Errorf("expected ErrInvalidSessionID, got %v", err)
	}
}

func TestConfirmPaymentPaidSessionWithoutTransactionID(t *testing.T) {
	svc, paymentRepo, _, gateway := newPaymentFixture()

	sess := paidSession("sess-1", "", "parcel-1")
	gateway.AddSession(sess)

	_, err := svc.ConfirmPayment(context.Background(), "sess-1")
	if !errors.Is(err, service.ErrPaymentLookup) {
		t.Errorf("expected ErrPaymentLookup, got %v", err)
	}
	if paymentRepo.PaymentCount() != 0 {
		t.Errorf("expected no payment records, got %d", paymentRepo.PaymentCount())
	}
}
