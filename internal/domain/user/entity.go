package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin" // Center owner - full access
	RoleAdmin      Role = "admin"       // Reviews leave, marks attendance, manages master data
	RoleTrainer    Role = "trainer"     // Marks attendance for own batches
	RoleStudent    Role = "student"     // Applies for leave, views own records
)

type User struct {
	ID           string
	FullName     string
	Email        string
	Phone        *string
	PasswordHash *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	StudentID *string
}

// IsSuperAdmin checks if user owns the center
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// IsAdmin checks if user is admin or super admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// CanReviewLeave checks if user can approve or reject leave applications
func (u *User) CanReviewLeave() bool {
	return u.IsAdmin()
}

// CanMarkAttendance checks if user can mark batch attendance
func (u *User) CanMarkAttendance() bool {
	return u.IsAdmin() || u.Role == RoleTrainer
}

// Actor is the identity every core operation receives explicitly. It is
// resolved from the verified token at the handler boundary and passed down;
// services never read identity out of ambient state.
type Actor struct {
	UserID    string
	StudentID *string
	Role      Role
}

// IsAdmin checks if the actor is admin or super admin
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}

// CanMarkAttendance checks if the actor can mark batch attendance
func (a Actor) CanMarkAttendance() bool {
	return a.IsAdmin() || a.Role == RoleTrainer
}
