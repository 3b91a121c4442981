package service

import (
	"context"
	"database/sql"
	"errors"

	"zapshift/internal/domain"
	"zapshift/internal/redis"
	"zapshift/internal/repository"
	"zapshift/internal/repository/postgres"
)

// RiderService handles the rider approval workflow and rider assignment.
//
// Both workflows cascade across two records (rider+user, parcel+rider).
// With a database handle the two writes share one transaction; when
// constructed without one (tests with mock repositories) they run as two
// sequential writes.
type RiderService struct {
	db         *sql.DB
	riderRepo  repository.RiderRepository
	userRepo   repository.UserRepository
	parcelRepo repository.ParcelRepository
	cacheStore *redis.CacheStore
}

// NewRiderService creates a new RiderService. db and cacheStore may be nil.
func NewRiderService(
	db *sql.DB,
	riderRepo repository.RiderRepository,
	userRepo repository.UserRepository,
	parcelRepo repository.ParcelRepository,
	cacheStore *redis.CacheStore,
) *RiderService {
	return &RiderService{
		db:         db,
		riderRepo:  riderRepo,
		userRepo:   userRepo,
		parcelRepo: parcelRepo,
		cacheStore: cacheStore,
	}
}

// UpdateStatus moves a rider application to the given status. Approval
// also makes the rider available for work and promotes the matching user
// account to the rider role; any other status resets work status to
// pending and leaves the user role untouched.
func (s *RiderService) UpdateStatus(ctx context.Context, riderID string, status domain.ApplicationStatus) (*domain.Rider, error) {
	if riderID == "" {
		return nil, ErrInvalidRiderID
	}

	if !domain.ValidApplicationStatus(string(status)) {
		return nil, ErrInvalidRiderStatus
	}

	rider, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		return nil, err
	}

	work := domain.WorkPending
	if status == domain.ApplicationApproved {
		work = domain.WorkAvailable
	}

	apply := func(riders repository.RiderRepository, users repository.UserRepository) error {
		if err := riders.UpdateApplication(ctx, riderID, status, work); err != nil {
			return err
		}
		if status == domain.ApplicationApproved {
			// The applicant may not have a user account yet; the
			// promotion then simply has nothing to cascade onto.
			if err := users.UpdateRole(ctx, rider.Email, domain.RoleRider); err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}
		return nil
	}

	if err := s.inTransaction(ctx, func(tx *sql.Tx) error {
		return apply(postgres.NewRiderRepositoryWithTx(tx), postgres.NewUserRepositoryWithTx(tx))
	}, func() error {
		return apply(s.riderRepo, s.userRepo)
	}); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		if work == domain.WorkAvailable {
			_ = s.cacheStore.AddAvailableRider(ctx, riderID)
		} else {
			_ = s.cacheStore.RemoveAvailableRider(ctx, riderID)
		}
	}

	rider.Status = status
	rider.WorkStatus = work
	return rider, nil
}

// AssignParcel binds an approved rider to a paid parcel: the parcel moves
// to rider-assigned and carries the rider's id/name/email, the rider moves
// to on-delivery.
func (s *RiderService) AssignParcel(ctx context.Context, parcelID, riderID string) (*domain.Parcel, error) {
	if parcelID == "" {
		return nil, ErrInvalidParcelID
	}

	if riderID == "" {
		return nil, ErrInvalidRiderID
	}

	parcel, err := s.parcelRepo.GetByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	// A parcel can only move to rider-assigned once it is paid.
	if parcel.PaymentStatus != domain.ParcelPaid {
		return nil, ErrParcelNotPaid
	}

	rider, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		return nil, err
	}

	if rider.Status != domain.ApplicationApproved {
		return nil, ErrRiderNotApproved
	}

	apply := func(parcels repository.ParcelRepository, riders repository.RiderRepository) error {
		if err := parcels.AssignRider(ctx, parcelID, rider); err != nil {
			return err
		}
		return riders.UpdateWorkStatus(ctx, riderID, domain.WorkOnDelivery)
	}

	if err := s.inTransaction(ctx, func(tx *sql.Tx) error {
		return apply(postgres.NewParcelRepositoryWithTx(tx), postgres.NewRiderRepositoryWithTx(tx))
	}, func() error {
		return apply(s.parcelRepo, s.riderRepo)
	}); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateParcel(ctx, parcelID)
		_ = s.cacheStore.RemoveAvailableRider(ctx, riderID)
	}

	parcel.DeliveryStatus = domain.DeliveryRiderAssigned
	parcel.RiderID = rider.ID
	parcel.RiderName = rider.Name
	parcel.RiderEmail = rider.Email

	rider.WorkStatus = domain.WorkOnDelivery

	return parcel, nil
}

// inTransaction runs withTx inside a database transaction when a handle is
// present, and falls back to direct otherwise.
func (s *RiderService) inTransaction(ctx context.Context, withTx func(*sql.Tx) error, direct func() error) error {
	if s.db == nil {
		return direct()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := withTx(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
