package attendance

import (
	"time"

	"github.com/traindesk/tcms-backend-go/internal/pkg/validator"
)

type MarkInput struct {
	StudentID string  `json:"student_id"`
	Status    string  `json:"status"` // PRESENT or ABSENT
	Remarks   *string `json:"remarks,omitempty"`
}

type MarkBulkRequest struct {
	BatchID string      `json:"batch_id"`
	Date    string      `json:"date"` // YYYY-MM-DD
	Marks   []MarkInput `json:"marks"`
}

func (r *MarkBulkRequest) Validate() error {
	var errs validator.ValidationErrors

	// Batch id
	if validator.IsEmpty(r.BatchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "batch_id",
			Message: "batch_id is required",
		})
	}

	// Date
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	// Marks
	if len(r.Marks) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "marks",
			Message: "marks must not be empty",
		})
	}
	for _, m := range r.Marks {
		if validator.IsEmpty(m.StudentID) {
			errs = append(errs, validator.ValidationError{
				Field:   "marks",
				Message: "every mark requires a student_id",
			})
			break
		}
	}
	for _, m := range r.Marks {
		if !validator.IsInSlice(m.Status, []string{string(StatusPresent), string(StatusAbsent)}) {
			errs = append(errs, validator.ValidationError{
				Field:   "marks",
				Message: "status must be either PRESENT or ABSENT",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID          string  `json:"id"`
	StudentID   string  `json:"student_id"`
	StudentName *string `json:"student_name,omitempty"`
	AdmissionNo *string `json:"admission_no,omitempty"`
	BatchID     string  `json:"batch_id"`
	BatchName   *string `json:"batch_name,omitempty"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	Remarks     *string `json:"remarks,omitempty"`
	MarkedBy    *string `json:"marked_by,omitempty"`
	MarkerName  *string `json:"marker_name,omitempty"`
	MarkedAt    string  `json:"marked_at"`
}

type SheetEntryResponse struct {
	StudentID       string  `json:"student_id"`
	AdmissionNo     string  `json:"admission_no"`
	FullName        string  `json:"full_name"`
	Status          *string `json:"status,omitempty"`
	Remarks         *string `json:"remarks,omitempty"`
	OnApprovedLeave bool    `json:"on_approved_leave"`
}

type SummaryResponse struct {
	TotalDays   int     `json:"total_days"`
	PresentDays int     `json:"present_days"`
	AbsentDays  int     `json:"absent_days"`
	Percentage  float64 `json:"percentage"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:          a.ID,
		StudentID:   a.StudentID,
		StudentName: a.StudentName,
		AdmissionNo: a.AdmissionNo,
		BatchID:     a.BatchID,
		BatchName:   a.BatchName,
		Date:        a.Date.Format("2006-01-02"),
		Status:      string(a.Status),
		Remarks:     a.Remarks,
		MarkedBy:    a.MarkedBy,
		MarkerName:  a.MarkerName,
		MarkedAt:    a.MarkedAt.Format(time.RFC3339),
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, NewAttendanceResponse(a))
	}
	return responses
}

func NewSheetEntryResponses(entries []SheetEntry) []SheetEntryResponse {
	responses := make([]SheetEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := SheetEntryResponse{
			StudentID:       e.StudentID,
			AdmissionNo:     e.AdmissionNo,
			FullName:        e.FullName,
			Remarks:         e.Remarks,
			OnApprovedLeave: e.OnApprovedLeave,
		}
		if e.Status != nil {
			status := string(*e.Status)
			resp.Status = &status
		}
		responses = append(responses, resp)
	}
	return responses
}

func NewSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		TotalDays:   s.TotalDays,
		PresentDays: s.PresentDays,
		AbsentDays:  s.AbsentDays,
		Percentage:  s.Percentage,
	}
}
