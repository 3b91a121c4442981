package domain

// Role is the permission level attached to a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

// Capability names a privileged action an endpoint can demand.
type Capability string

const (
	CapManageRiders   Capability = "riders:manage"
	CapManageUsers    Capability = "users:manage"
	CapAssignRider    Capability = "parcels:assign-rider"
	CapViewAnyPayment Capability = "payments:view-any"
)

// roleCapabilities is the single place role checks are defined; endpoints
// must not compare role strings inline.
var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapManageRiders:   true,
		CapManageUsers:    true,
		CapAssignRider:    true,
		CapViewAnyPayment: true,
	},
	RoleRider: {},
	RoleUser:  {},
}

// Can reports whether the role grants the capability.
func (r Role) Can(cap Capability) bool {
	return roleCapabilities[r][cap]
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleUser, RoleRider, RoleAdmin:
		return true
	}
	return false
}
