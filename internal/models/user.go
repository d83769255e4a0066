// internal/models/user.go
package models

type Role string

const (
	RoleDefault Role = "default"
	RoleGuide   Role = "guide"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDefault, RoleGuide, RoleAdmin:
		return true
	}
	return false
}

// users are opaque profile documents keyed by email; only email and role are interpreted
const (
	UserEmailField = "email"
	UserRoleField  = "role"
)

// ProfileFields is what a client may write to its own profile. Role changes go
// through the admin endpoint only.
func ProfileFields(d Document) Document {
	out := Fields(d)
	delete(out, UserRoleField)
	return out
}
