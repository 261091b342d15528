package domain

import "time"

// Role enumerates the access levels a user can hold. Permission checks
// match against these constants, never free text.
type Role string

const (
	RoleRequester  Role = "requester"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
	RoleScheduler  Role = "scheduler"
)

// Valid reports whether the role is a recognized value.
func (r Role) Valid() bool {
	switch r {
	case RoleRequester, RoleManager, RoleTechnician, RoleScheduler:
		return true
	}
	return false
}

// User is the domain model for everyone who signs in: requesters,
// managers, technicians and schedule operators.
type User struct {
	ID            string
	Name          string
	ServiceNumber string
	PasswordHash  string
	Role          Role
	Section       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
