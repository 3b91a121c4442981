package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"zapshift/internal/domain"
	"zapshift/internal/redis"
	"zapshift/internal/repository"
)

// ParcelService handles parcel CRUD with cache-aside reads.
type ParcelService struct {
	parcelRepo repository.ParcelRepository
	cacheStore *redis.CacheStore
}

// NewParcelService creates a new ParcelService. cacheStore may be nil.
func NewParcelService(parcelRepo repository.ParcelRepository, cacheStore *redis.CacheStore) *ParcelService {
	return &ParcelService{
		parcelRepo: parcelRepo,
		cacheStore: cacheStore,
	}
}

// CreateParcelRequest contains the parameters for creating a parcel.
type CreateParcelRequest struct {
	Name            string
	SenderEmail     string
	ReceiverName    string
	ReceiverAddress string
	Cost            float64
}

// Create persists a new parcel. Initial lifecycle state is forced
// server-side: unpaid, created, no tracking id.
func (s *ParcelService) Create(ctx context.Context, req CreateParcelRequest) (*domain.Parcel, error) {
	if req.SenderEmail == "" {
		return nil, ErrInvalidEmail
	}

	if req.Cost <= 0 {
		return nil, ErrInvalidCost
	}

	parcel := &domain.Parcel{
		ID:              uuid.New().String(),
		Name:            req.Name,
		SenderEmail:     req.SenderEmail,
		ReceiverName:    req.ReceiverName,
		ReceiverAddress: req.ReceiverAddress,
		Cost:            req.Cost,
		PaymentStatus:   domain.ParcelUnpaid,
		DeliveryStatus:  domain.DeliveryCreated,
		CreatedAt:       time.Now(),
	}

	if err := s.parcelRepo.Create(ctx, parcel); err != nil {
		return nil, err
	}

	return parcel, nil
}

// Get retrieves a parcel by ID, serving from cache when possible.
func (s *ParcelService) Get(ctx context.Context, id string) (*domain.Parcel, error) {
	if id == "" {
		return nil, ErrInvalidParcelID
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetParcel(ctx, id)
		if err == nil && cached != nil {
			return parcelFromCache(cached), nil
		}
	}

	parcel, err := s.parcelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetParcel(ctx, parcelToCache(parcel))
	}

	return parcel, nil
}

// List retrieves parcels newest first, optionally filtered by sender email.
func (s *ParcelService) List(ctx context.Context, senderEmail string) ([]*domain.Parcel, error) {
	return s.parcelRepo.List(ctx, senderEmail)
}

// Delete removes a parcel.
func (s *ParcelService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidParcelID
	}

	if err := s.parcelRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateParcel(ctx, id)
	}

	return nil
}

func parcelToCache(p *domain.Parcel) *redis.CachedParcel {
	return &redis.CachedParcel{
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

func parcelFromCache(c *redis.CachedParcel) *domain.Parcel {
	return &domain.Parcel{
		ID:              c.ID,
		Name:            c.Name,
		SenderEmail:     c.SenderEmail,
		ReceiverName:    c.ReceiverName,
		ReceiverAddress: c.ReceiverAddress,
		Cost:            c.Cost,
		PaymentStatus:   domain.ParcelPaymentStatus(c.PaymentStatus),
		DeliveryStatus:  domain.DeliveryStatus(c.DeliveryStatus),
		TrackingID:      c.TrackingID,
		RiderID:         c.RiderID,
		RiderName:       c.RiderName,
		RiderEmail:      c.RiderEmail,
		CreatedAt:       c.CreatedAt,
	}
}
