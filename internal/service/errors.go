package service

import "errors"

var (
	// ErrInvalidParcelID is returned when parcel ID is empty.
	ErrInvalidParcelID = errors.New("invalid parcel id")

	// ErrInvalidRiderID is returned when rider ID is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidSessionID is returned when a checkout session ID is empty.
	ErrInvalidSessionID = errors.New("invalid checkout session id")

	// ErrInvalidCost is returned when a parcel cost is not a positive amount.
	ErrInvalidCost = errors.New("cost must be a positive amount")

	// ErrInvalidEmail is returned when a required email is empty.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidRole is returned when a role name is unknown.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidRiderStatus is returned when an application status is unknown.
	ErrInvalidRiderStatus = errors.New("invalid rider application status")

	// ErrParcelNotPaid is returned when assigning a rider to an unpaid parcel.
	ErrParcelNotPaid = errors.New("parcel has not been paid for")

	// ErrRiderNotApproved is returned when assigning a rider whose application is not approved.
	ErrRiderNotApproved = errors.New("rider application not approved")

	// ErrPaymentGateway is returned when the payment gateway rejects a session create.
	ErrPaymentGateway = errors.New("payment gateway error")

	// ErrPaymentLookup is returned when a checkout session cannot be resolved.
	ErrPaymentLookup = errors.New("payment session lookup failed")
)
