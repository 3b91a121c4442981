package domain

import "time"

// Payment is the record of one confirmed gateway transaction.
//
// TransactionID is the identity key: the store enforces at most one
// Payment per transaction id, which is what makes reconciliation replays
// safe. Amount is in major currency units. A Payment is written once by
// the reconciler and never mutated.
type Payment struct {
	TransactionID string
	Amount        float64
	Currency      string
	CustomerEmail string
	ParcelID      string
	ParcelName    string
	Status        string
	TrackingID    string
	PaidAt        time.Time
}
