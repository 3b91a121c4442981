package tests

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"zapshift/internal/domain"
	"zapshift/internal/repository"
	"zapshift/internal/service"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount     int32
	UpdateRoleCallCount int32

	// Error injection
	CreateError     error
	GetByEmailError error
	UpdateRoleError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		users = append(users, &copy)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, email string, role domain.Role) error {
	atomic.AddInt32(&m.UpdateRoleCallCount, 1)
	if m.UpdateRoleError != nil {
		return m.UpdateRoleError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	user.Role = role
	return nil
}

// ──────────────────────────────────────────────
// MOCK PARCEL REPOSITORY
// ──────────────────────────────────────────────

// MockParcelRepository is a mock implementation of ParcelRepository.
type MockParcelRepository struct {
	mu      sync.RWMutex
	parcels map[string]*domain.Parcel

	// Counters for verification
	MarkPaidCallCount    int32
	AssignRiderCallCount int32

	// Error injection
	CreateError      error
	GetByIDError     error
	MarkPaidError    error
	AssignRiderError error
}

// NewMockParcelRepository creates a new mock parcel repository.
func NewMockParcelRepository() *MockParcelRepository {
	return &MockParcelRepository{
		parcels: make(map[string]*domain.Parcel),
	}
}

// AddParcel adds a parcel to the mock repository.
func (m *MockParcelRepository) AddParcel(parcel *domain.Parcel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parcels[parcel.ID] = parcel
}

// GetParcel returns the stored parcel or nil.
func (m *MockParcelRepository) GetParcel(id string) *domain.Parcel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	parcel, ok := m.parcels[id]
	if !ok {
		return nil
	}
	copy := *parcel
	return &copy
}

func (m *MockParcelRepository) Create(ctx context.Context, parcel *domain.Parcel) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parcels[parcel.ID] = parcel
	return nil
}

func (m *MockParcelRepository) GetByID(ctx context.Context, id string) (*domain.Parcel, error) {
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	parcel, ok := m.parcels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *parcel
	return &copy, nil
}

func (m *MockParcelRepository) List(ctx context.Context, senderEmail string) ([]*domain.Parcel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	parcels := make([]*domain.Parcel, 0, len(m.parcels))
	for _, p := range m.parcels {
		if senderEmail != "" && p.SenderEmail != senderEmail {
			continue
		}
		copy := *p
		parcels = append(parcels, &copy)
	}
	sort.Slice(parcels, func(i, j int) bool {
		return parcels[i].CreatedAt.After(parcels[j].CreatedAt)
	})
	return parcels, nil
}

func (m *MockParcelRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.parcels[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.parcels, id)
	return nil
}

func (m *MockParcelRepository) MarkPaid(ctx context.Context, id, trackingID string) error {
	atomic.AddInt32(&m.MarkPaidCallCount, 1)
	if m.MarkPaidError != nil {
		return m.MarkPaidError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	parcel, ok := m.parcels[id]
	if !ok {
		return repository.ErrNotFound
	}
	// A tracking id already on the parcel is never overwritten.
	if parcel.TrackingID != "" {
		return nil
	}
	parcel.PaymentStatus = domain.ParcelPaid
	parcel.DeliveryStatus = domain.DeliveryPendingPickup
	parcel.TrackingID = trackingID
	return nil
}

func (m *MockParcelRepository) AssignRider(ctx context.Context, id string, rider *domain.Rider) error {
	atomic.AddInt32(&m.AssignRiderCallCount, 1)
	if m.AssignRiderError != nil {
		return m.AssignRiderError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	parcel, ok := m.parcels[id]
	if !ok {
		return repository.ErrNotFound
	}
	parcel.DeliveryStatus = domain.DeliveryRiderAssigned
	parcel.RiderID = rider.ID
	parcel.RiderName = rider.Name
	parcel.RiderEmail = rider.Email
	return nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
// CreateIfAbsent is atomic under the repository mutex, mirroring the
// conditional insert of the real store.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	// Counters for verification
	CreateIfAbsentCallCount int32

	// Error injection
	CreateIfAbsentError     error
	GetByTransactionIDError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

// PaymentCount returns the number of stored payments.
func (m *MockPaymentRepository) PaymentCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

func (m *MockPaymentRepository) CreateIfAbsent(ctx context.Context, payment *domain.Payment) (bool, error) {
	atomic.AddInt32(&m.CreateIfAbsentCallCount, 1)
	if m.CreateIfAbsentError != nil {
		return false, m.CreateIfAbsentError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[payment.TransactionID]; ok {
		return false, nil
	}
	copy := *payment
	m.payments[payment.TransactionID] = &copy
	return true, nil
}

func (m *MockPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	if m.GetByTransactionIDError != nil {
		return nil, m.GetByTransactionIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[transactionID]
	if !ok {
		return nil, nil
	}
	copy := *payment
	return &copy, nil
}

func (m *MockPaymentRepository) List(ctx context.Context, customerEmail string) ([]*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payments := make([]*domain.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		if customerEmail != "" && p.CustomerEmail != customerEmail {
			continue
		}
		copy := *p
		payments = append(payments, &copy)
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].PaidAt.After(payments[j].PaidAt)
	})
	return payments, nil
}

// ──────────────────────────────────────────────
// MOCK RIDER REPOSITORY
// ──────────────────────────────────────────────

// MockRiderRepository is a mock implementation of RiderRepository.
type MockRiderRepository struct {
	mu     sync.RWMutex
	riders map[string]*domain.Rider

	// Counters for verification
	UpdateApplicationCallCount int32
	UpdateWorkStatusCallCount  int32

	// Error injection
	GetByIDError           error
	UpdateApplicationError error
	UpdateWorkStatusError  error
}

// NewMockRiderRepository creates a new mock rider repository.
func NewMockRiderRepository() *MockRiderRepository {
	return &MockRiderRepository{
		riders: make(map[string]*domain.Rider),
	}
}

// AddRider adds a rider to the mock repository.
func (m *MockRiderRepository) AddRider(rider *domain.Rider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.riders[rider.ID] = rider
}

// GetRider returns the stored rider or nil.
func (m *MockRiderRepository) GetRider(id string) *domain.Rider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rider, ok := m.riders[id]
	if !ok {
		return nil
	}
	copy := *rider
	return &copy
}

func (m *MockRiderRepository) Create(ctx context.Context, rider *domain.Rider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.riders[rider.ID] = rider
	return nil
}

func (m *MockRiderRepository) GetByID(ctx context.Context, id string) (*domain.Rider, error) {
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rider, ok := m.riders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *rider
	return &copy, nil
}

func (m *MockRiderRepository) List(ctx context.Context, status domain.ApplicationStatus) ([]*domain.Rider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	riders := make([]*domain.Rider, 0, len(m.riders))
	for _, r := range m.riders {
		if status != "" && r.Status != status {
			continue
		}
		copy := *r
		riders = append(riders, &copy)
	}
	sort.Slice(riders, func(i, j int) bool {
		return riders[i].CreatedAt.After(riders[j].CreatedAt)
	})
	return riders, nil
}

func (m *MockRiderRepository) UpdateApplication(ctx context.Context, id string, status domain.ApplicationStatus, work domain.WorkStatus) error {
	atomic.AddInt32(&m.UpdateApplicationCallCount, 1)
	if m.UpdateApplicationError != nil {
		return m.UpdateApplicationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rider, ok := m.riders[id]
	if !ok {
		return repository.ErrNotFound
	}
	rider.Status = status
	rider.WorkStatus = work
	return nil
}

func (m *MockRiderRepository) UpdateWorkStatus(ctx context.Context, id string, work domain.WorkStatus) error {
	atomic.AddInt32(&m.UpdateWorkStatusCallCount, 1)
	if m.UpdateWorkStatusError != nil {
		return m.UpdateWorkStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rider, ok := m.riders[id]
	if !ok {
		return repository.ErrNotFound
	}
	rider.WorkStatus = work
	return nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// MockGateway is a mock implementation of the payment gateway.
type MockGateway struct {
	mu       sync.RWMutex
	sessions map[string]*service.CheckoutSession

	// Params of every created session, for verification.
	CreatedParams []service.CreateSessionParams

	// CheckoutURL is returned from CreateCheckoutSession.
	CheckoutURL string

	// Error injection
	CreateError error
	GetError    error
}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		sessions:    make(map[string]*service.CheckoutSession),
		CheckoutURL: "https://checkout.example.com/session/mock",
	}
}

// AddSession registers a resolvable checkout session.
func (m *MockGateway) AddSession(sess *service.CheckoutSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, params service.CreateSessionParams) (string, error) {
	if m.CreateError != nil {
		return "", m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatedParams = append(m.CreatedParams, params)
	return m.CheckoutURL, nil
}

func (m *MockGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*service.CheckoutSession, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session: %s", sessionID)
	}
	copy := *sess
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK TOKEN VERIFIER
// ──────────────────────────────────────────────

// MockVerifier resolves fixed tokens to principal emails.
type MockVerifier struct {
	// Tokens maps accepted token strings to verified emails.
	Tokens map[string]string
}

// NewMockVerifier creates a new mock verifier.
func NewMockVerifier() *MockVerifier {
	return &MockVerifier{Tokens: make(map[string]string)}
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (string, error) {
	email, ok := m.Tokens[token]
	if !ok {
		return "", fmt.Errorf("invalid token")
	}
	return email, nil
}
