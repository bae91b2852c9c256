package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
)

// Attendance entity - exactly one row per (student, batch, date).
// Re-marking overwrites the row in place.
type Attendance struct {
	ID        string
	StudentID string
	BatchID   string
	Date      time.Time
	Status    Status
	Remarks   *string
	MarkedBy  *string
	MarkedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	StudentName *string
	AdmissionNo *string
	BatchName   *string
	MarkerName  *string
}

// SheetEntry is one roster line on the marking page for a (batch, date).
// Existing marks are carried over; students on approved leave get ABSENT
// pre-filled. The pre-fill is advisory, a marker may still override it.
type SheetEntry struct {
	StudentID       string
	AdmissionNo     string
	FullName        string
	Status          *Status
	Remarks         *string
	OnApprovedLeave bool
}

// Summary aggregates a student's attendance history.
type Summary struct {
	TotalDays   int
	PresentDays int
	AbsentDays  int
	Percentage  float64
}

// LogEntry records one bulk-marking action for traceability.
type LogEntry struct {
	ID        string
	BatchID   string
	Date      time.Time
	Action    string
	ActionBy  string
	Count     int
	CreatedAt time.Time
}

const LogActionMarkBulk = "MARK_BULK"
