package leave

import "time"

// LeaveType entity - catalog of absence categories
type LeaveType struct {
	ID          string
	Name        string
	Description *string

	// Catalog-wide fallback cap. Nil means unlimited.
	DefaultMaxDays *int

	// Inactive types are hidden from the catalog and reject new
	// applications. Retiring a type that applications reference is a
	// deactivation, never a hard delete.
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Allowance is the per-batch policy for one leave type. The batch stores a
// nullable day count per offered type; nil means offered without a cap.
type Allowance struct {
	Offered   bool
	Unlimited bool
	MaxDays   int
}

// Capped reports whether submissions of this type count against a cap.
func (a Allowance) Capped() bool {
	return a.Offered && !a.Unlimited
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// LeaveApplication entity
type LeaveApplication struct {
	ID          string
	StudentID   string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time

	Reason       string
	DocumentPath *string

	Status          ApplicationStatus // 'pending', 'approved', 'rejected'
	AppliedAt       time.Time
	ReviewedBy      *string
	ReviewedAt      *time.Time
	ReviewerComment *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	StudentName   *string
	AdmissionNo   *string
	LeaveTypeName *string
	ReviewerName  *string
	BatchName     *string
}

// Days returns the inclusive day count of the requested range.
func (a *LeaveApplication) Days() int {
	return DaysBetween(a.StartDate, a.EndDate)
}

// DaysBetween counts calendar days in [start, end], both inclusive.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Balance entity - one row per (student, leave type)
type Balance struct {
	StudentID   string
	LeaveTypeID string

	// Live available days. Seeded from the batch allowance (catalog default
	// as fallback) and decremented on approval. Nil means uncapped.
	AvailableDays *int

	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
}

// BalanceSeed is the initial available value for one (student, type) row.
type BalanceSeed struct {
	LeaveTypeID   string
	AvailableDays *int
}

// BalanceSummary is the reporting view of one balance row. AvailableDays
// already nets out approved usage, so for capped types the remaining figure
// subtracts only pending days. Uncapped types report days taken instead.
type BalanceSummary struct {
	StudentID   string
	StudentName string
	BatchName   string

	LeaveTypeID   string
	LeaveTypeName string

	Capped        bool
	AvailableDays *int
	UsedDays      int
	PendingDays   int
	RemainingDays int
}

// AuditLogEntry entity - append-only record of one status transition
type AuditLogEntry struct {
	ID             string
	ApplicationID  string
	PreviousStatus ApplicationStatus
	NewStatus      ApplicationStatus
	ActionBy       string
	Comment        *string
	CreatedAt      time.Time

	// Relationships (for responses)
	ActorName *string
}
