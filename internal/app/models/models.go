package models

// Role defines the user role
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role is faculty or admin.
func (r Role) IsStaff() bool {
	return r == RoleFaculty || r == RoleAdmin
}

// Actor is the authenticated entity issuing a request. A zero Actor
// (ID == 0) represents an anonymous caller on optional-auth read paths.
type Actor struct {
	ID    int64
	Role  Role
	Email string
}

// Anonymous reports whether the actor is unauthenticated.
func (a Actor) Anonymous() bool {
	return a.ID == 0
}
