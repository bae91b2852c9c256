package batch

import (
	"time"

	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
)

// Batch entity - one cohort of a course with its own leave allowances.
// Allowance columns are nullable day caps; nil means the type is offered
// without a cap.
type Batch struct {
	ID       string
	CourseID string
	Name     string

	StartDate time.Time
	EndDate   *time.Time

	PersonalLeaves    *int
	MedicalLeaves     *int
	EducationalLeaves *int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	CourseName *string
}

// Allowance column names recognised by AllowanceFor. A leave type outside
// this set is not offered by any batch.
const (
	TypeNamePersonal    = "Personal Leave"
	TypeNameMedical     = "Medical Leave"
	TypeNameEducational = "Educational Leave"
)

// AllowanceFor maps a leave type name to the batch's policy for it.
func (b *Batch) AllowanceFor(typeName string) leave.Allowance {
	var days *int
	switch typeName {
	case TypeNamePersonal:
		days = b.PersonalLeaves
	case TypeNameMedical:
		days = b.MedicalLeaves
	case TypeNameEducational:
		days = b.EducationalLeaves
	default:
		return leave.Allowance{}
	}

	if days == nil {
		return leave.Allowance{Offered: true, Unlimited: true}
	}
	return leave.Allowance{Offered: true, MaxDays: *days}
}

type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "ACTIVE"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentStatusDropped   EnrollmentStatus = "DROPPED"
)

// Enrollment entity - membership of a student in a batch
type Enrollment struct {
	ID         string
	StudentID  string
	BatchID    string
	Status     EnrollmentStatus
	EnrolledAt time.Time

	// Relationships (for responses)
	BatchName *string
}

// BatchStudent is the roster view used by attendance marking.
type BatchStudent struct {
	StudentID   string
	AdmissionNo string
	FullName    string
	UserID      string
}
