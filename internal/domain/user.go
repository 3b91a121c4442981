package domain

import "time"

// User represents an account on the platform, keyed by email.
type User struct {
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
}
