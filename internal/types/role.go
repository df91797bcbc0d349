package types

// Role is a coarse access tag carried on a profile. A profile holds a set of
// roles; ADMIN grants organization-scoped elevated access.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// HasAdmin reports whether the role set carries the ADMIN tag.
func HasAdmin(roles []Role) bool {
	for _, r := range roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// ValidateRoles rejects role sets containing unrecognized tags.
func ValidateRoles(roles []Role) bool {
	for _, r := range roles {
		if !r.Valid() {
			return false
		}
	}
	return true
}
