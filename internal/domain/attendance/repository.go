package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Upsert inserts the record or overwrites status, remarks, marker and
	// timestamp when a row for (student, batch, date) already exists.
	Upsert(ctx context.Context, record Attendance) error

	// ListByBatchAndDate retrieves all marks for one batch on one date
	ListByBatchAndDate(ctx context.Context, batchID string, date time.Time) ([]Attendance, error)

	// ListByStudent retrieves a student's full attendance history, newest first
	ListByStudent(ctx context.Context, studentID string) ([]Attendance, error)

	// SummaryByStudent aggregates present/absent counts for a student
	SummaryByStudent(ctx context.Context, studentID string) (Summary, error)

	// AppendLog records a bulk-marking action
	AppendLog(ctx context.Context, entry LogEntry) error
}
