package domain

import "time"

// ParcelPaymentStatus represents whether a parcel has been paid for.
type ParcelPaymentStatus string

const (
	ParcelUnpaid ParcelPaymentStatus = "unpaid"
	ParcelPaid   ParcelPaymentStatus = "paid"
)

// DeliveryStatus represents where a parcel is in its delivery lifecycle.
type DeliveryStatus string

const (
	DeliveryCreated       DeliveryStatus = "created"
	DeliveryPendingPickup DeliveryStatus = "pending-pickup"
	DeliveryRiderAssigned DeliveryStatus = "rider-assigned"
	DeliveryInTransit     DeliveryStatus = "in-transit"
	DeliveryDelivered     DeliveryStatus = "delivered"
)

// Parcel represents a shipment request.
//
// TrackingID is empty until the parcel is paid for; it is set exactly once
// by the payment reconciler and never overwritten. The rider fields are
// empty until a rider is assigned.
type Parcel struct {
	ID              string
	Name            string
	SenderEmail     string
	ReceiverName    string
	ReceiverAddress string
	Cost            float64
	PaymentStatus   ParcelPaymentStatus
	DeliveryStatus  DeliveryStatus
	TrackingID      string
	RiderID         string
	RiderName       string
	RiderEmail      string
	CreatedAt       time.Time
}
