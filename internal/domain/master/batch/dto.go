package batch

import (
	"time"

	"github.com/traindesk/tcms-backend-go/internal/pkg/validator"
)

type BatchResponse struct {
	ID                string  `json:"id"`
	CourseID          string  `json:"course_id"`
	CourseName        *string `json:"course_name,omitempty"`
	Name              string  `json:"name"`
	StartDate         string  `json:"start_date"`
	EndDate           *string `json:"end_date,omitempty"`
	PersonalLeaves    *int    `json:"personal_leaves"`
	MedicalLeaves     *int    `json:"medical_leaves"`
	EducationalLeaves *int    `json:"educational_leaves"`
}

type CreateBatchRequest struct {
	CourseID          string  `json:"course_id"`
	Name              string  `json:"name"`
	StartDate         string  `json:"start_date"` // YYYY-MM-DD
	EndDate           *string `json:"end_date,omitempty"`
	PersonalLeaves    *int    `json:"personal_leaves,omitempty"`
	MedicalLeaves     *int    `json:"medical_leaves,omitempty"`
	EducationalLeaves *int    `json:"educational_leaves,omitempty"`
}

func (r *CreateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	// Course id
	if validator.IsEmpty(r.CourseID) {
		errs = append(errs, validator.ValidationError{
			Field:   "course_id",
			Message: "course_id is required",
		})
	}

	// Name
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	// Start date
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	// End date
	if r.EndDate != nil && !validator.IsValidDate(*r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	// Allowances
	for field, v := range map[string]*int{
		"personal_leaves":    r.PersonalLeaves,
		"medical_leaves":     r.MedicalLeaves,
		"educational_leaves": r.EducationalLeaves,
	} {
		if v != nil && *v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateBatchRequest struct {
	ID                string  `json:"id"`
	Name              *string `json:"name,omitempty"`
	EndDate           *string `json:"end_date,omitempty"`
	PersonalLeaves    *int    `json:"personal_leaves,omitempty"`
	MedicalLeaves     *int    `json:"medical_leaves,omitempty"`
	EducationalLeaves *int    `json:"educational_leaves,omitempty"`
}

func (r *UpdateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	// ID
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	// Name
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	// End date
	if r.EndDate != nil && !validator.IsValidDate(*r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EnrollStudentRequest struct {
	StudentID string `json:"student_id"`
	BatchID   string `json:"batch_id"`
}

func (r *EnrollStudentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StudentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "student_id",
			Message: "student_id is required",
		})
	}

	if validator.IsEmpty(r.BatchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "batch_id",
			Message: "batch_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func NewBatchResponse(b Batch) BatchResponse {
	resp := BatchResponse{
		ID:                b.ID,
		CourseID:          b.CourseID,
		CourseName:        b.CourseName,
		Name:              b.Name,
		StartDate:         b.StartDate.Format("2006-01-02"),
		PersonalLeaves:    b.PersonalLeaves,
		MedicalLeaves:     b.MedicalLeaves,
		EducationalLeaves: b.EducationalLeaves,
	}
	if b.EndDate != nil {
		endDate := b.EndDate.Format("2006-01-02")
		resp.EndDate = &endDate
	}
	return resp
}

func NewBatchResponses(batches []Batch) []BatchResponse {
	responses := make([]BatchResponse, 0, len(batches))
	for _, b := range batches {
		responses = append(responses, NewBatchResponse(b))
	}
	return responses
}

type EnrollmentResponse struct {
	ID         string  `json:"id"`
	StudentID  string  `json:"student_id"`
	BatchID    string  `json:"batch_id"`
	BatchName  *string `json:"batch_name,omitempty"`
	Status     string  `json:"status"`
	EnrolledAt string  `json:"enrolled_at"`
}

func NewEnrollmentResponse(e Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:         e.ID,
		StudentID:  e.StudentID,
		BatchID:    e.BatchID,
		BatchName:  e.BatchName,
		Status:     string(e.Status),
		EnrolledAt: e.EnrolledAt.Format(time.RFC3339),
	}
}

type RosterEntryResponse struct {
	StudentID   string `json:"student_id"`
	AdmissionNo string `json:"admission_no"`
	FullName    string `json:"full_name"`
}

func NewRosterResponses(roster []BatchStudent) []RosterEntryResponse {
	responses := make([]RosterEntryResponse, 0, len(roster))
	for _, st := range roster {
		responses = append(responses, RosterEntryResponse{
			StudentID:   st.StudentID,
			AdmissionNo: st.AdmissionNo,
			FullName:    st.FullName,
		})
	}
	return responses
}
