package domain

import "time"

// ApplicationStatus represents the state of a rider application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// WorkStatus represents a rider's availability for deliveries.
type WorkStatus string

const (
	WorkPending    WorkStatus = "pending"
	WorkAvailable  WorkStatus = "available"
	WorkOnDelivery WorkStatus = "on-delivery"
)

// Rider represents a courier applicant or active courier.
//
// WorkStatus is "available" only once the application is approved, and
// "on-delivery" only while the rider is bound to an active parcel.
type Rider struct {
	ID         string
	Name       string
	Email      string
	District   string
	Status     ApplicationStatus
	WorkStatus WorkStatus
	CreatedAt  time.Time
}

// ValidApplicationStatus reports whether s names a known application status.
func ValidApplicationStatus(s string) bool {
	switch ApplicationStatus(s) {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}
