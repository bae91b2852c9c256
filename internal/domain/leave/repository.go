package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	ListActive(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) error
	Delete(ctx context.Context, id string) error
	// HasApplications reports whether any leave application references the
	// type; referenced types must be deactivated instead of deleted.
	HasApplications(ctx context.Context, id string) (bool, error)
}

// LeaveBalanceRepository - interface for student_leave_balances table
type LeaveBalanceRepository interface {
	// EnsureRows inserts the given seeds for rows that do not exist yet.
	// Existing rows are left untouched.
	EnsureRows(ctx context.Context, studentID string, seeds []BalanceSeed) error
	GetByStudent(ctx context.Context, studentID string) ([]Balance, error)
	GetByStudentAndType(ctx context.Context, studentID, leaveTypeID string) (Balance, error)
	// UsedAndPendingDays sums (end-start+1) over the student's approved and
	// pending applications of the given type.
	UsedAndPendingDays(ctx context.Context, studentID, leaveTypeID string) (used int, pending int, err error)
	DecrementAvailable(ctx context.Context, studentID, leaveTypeID string, days int) error
}

// LeaveApplicationRepository - interface for leave_applications table
type LeaveApplicationRepository interface {
	Create(ctx context.Context, application LeaveApplication) (LeaveApplication, error)
	GetByID(ctx context.Context, id string) (LeaveApplication, error)
	ListByStudent(ctx context.Context, studentID string) ([]LeaveApplication, error)
	ListPending(ctx context.Context) ([]LeaveApplication, error)
	ListAll(ctx context.Context) ([]LeaveApplication, error)
	// UpdateStatusIfPending transitions the application out of pending.
	// Returns false when the row was not in pending anymore, so concurrent
	// reviewers cannot both win.
	UpdateStatusIfPending(ctx context.Context, id string, status ApplicationStatus, reviewedBy string, comment *string) (bool, error)
	// ApprovedStudentIDsOn returns students with an approved application
	// whose inclusive date range contains the given date.
	ApprovedStudentIDsOn(ctx context.Context, date time.Time) ([]string, error)
}

// LeaveAuditLogRepository - interface for leave_application_logs table
type LeaveAuditLogRepository interface {
	Append(ctx context.Context, entry AuditLogEntry) (AuditLogEntry, error)
	ListByApplication(ctx context.Context, applicationID string) ([]AuditLogEntry, error)
}
