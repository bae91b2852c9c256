package student

import "time"

// Student entity - profile of an enrolled learner, linked 1:1 to a user account
type Student struct {
	ID          string
	UserID      string
	AdmissionNo string
	DateOfBirth *time.Time
	Address     *string
	Guardian    *string
	PhotoPath   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	FullName  *string
	Email     *string
	Phone     *string
	BatchID   *string
	BatchName *string
}
