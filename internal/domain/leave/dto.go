package leave

import (
	"time"

	"github.com/traindesk/tcms-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	LeaveTypeID  string  `json:"leave_type_id"`
	StartDate    string  `json:"start_date"` // YYYY-MM-DD
	EndDate      string  `json:"end_date"`   // YYYY-MM-DD
	Reason       string  `json:"reason"`
	DocumentPath *string `json:"document_path,omitempty"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	// Leave type id
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
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
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewLeaveRequest struct {
	ApplicationID string  `json:"application_id"`
	Decision      string  `json:"decision"` // 'approved' or 'rejected'
	Comment       *string `json:"comment,omitempty"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	// Application id
	if validator.IsEmpty(r.ApplicationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "application_id",
			Message: "application_id is required",
		})
	}

	// Decision
	if !validator.IsInSlice(r.Decision, []string{string(ApplicationStatusApproved), string(ApplicationStatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be either 'approved' or 'rejected'",
		})
	}

	// Comment
	if r.Comment != nil && len(*r.Comment) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateLeaveTypeRequest struct {
	Name           string  `json:"leave_type_name"`
	Description    *string `json:"leave_type_description,omitempty"`
	DefaultMaxDays *int    `json:"default_max_days,omitempty"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	// Leave type name
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_name",
			Message: "leave_type_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_name",
			Message: "leave_type_name must not exceed 255 characters",
		})
	}

	// Default max days
	if r.DefaultMaxDays != nil && *r.DefaultMaxDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_max_days",
			Message: "default_max_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveTypeRequest struct {
	ID             string  `json:"leave_type_id"`
	Name           *string `json:"leave_type_name,omitempty"`
	Description    *string `json:"leave_type_description,omitempty"`
	DefaultMaxDays *int    `json:"default_max_days,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	// Leave type id
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	// Leave type name
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type_name",
				Message: "leave_type_name must not be empty",
			})
		}
		if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type_name",
				Message: "leave_type_name must not exceed 255 characters",
			})
		}
	}

	// Default max days
	if r.DefaultMaxDays != nil && *r.DefaultMaxDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_max_days",
			Message: "default_max_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveTypeResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	DefaultMaxDays *int    `json:"default_max_days"`
	IsActive       bool    `json:"is_active"`
}

func NewLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:             lt.ID,
		Name:           lt.Name,
		Description:    lt.Description,
		DefaultMaxDays: lt.DefaultMaxDays,
		IsActive:       lt.IsActive,
	}
}

type ApplicationResponse struct {
	ID              string  `json:"id"`
	StudentID       string  `json:"student_id"`
	StudentName     *string `json:"student_name,omitempty"`
	AdmissionNo     *string `json:"admission_no,omitempty"`
	BatchName       *string `json:"batch_name,omitempty"`
	LeaveTypeID     string  `json:"leave_type_id"`
	LeaveTypeName   *string `json:"leave_type_name,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Days            int     `json:"days"`
	Reason          string  `json:"reason"`
	DocumentPath    *string `json:"document_path,omitempty"`
	Status          string  `json:"status"`
	AppliedAt       string  `json:"applied_at"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewerName    *string `json:"reviewer_name,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	ReviewerComment *string `json:"reviewer_comment,omitempty"`
}

func NewApplicationResponse(a LeaveApplication) ApplicationResponse {
	resp := ApplicationResponse{
		ID:              a.ID,
		StudentID:       a.StudentID,
		StudentName:     a.StudentName,
		AdmissionNo:     a.AdmissionNo,
		BatchName:       a.BatchName,
		LeaveTypeID:     a.LeaveTypeID,
		LeaveTypeName:   a.LeaveTypeName,
		StartDate:       a.StartDate.Format("2006-01-02"),
		EndDate:         a.EndDate.Format("2006-01-02"),
		Days:            a.Days(),
		Reason:          a.Reason,
		DocumentPath:    a.DocumentPath,
		Status:          string(a.Status),
		AppliedAt:       a.AppliedAt.Format(time.RFC3339),
		ReviewedBy:      a.ReviewedBy,
		ReviewerName:    a.ReviewerName,
		ReviewerComment: a.ReviewerComment,
	}
	if a.ReviewedAt != nil {
		reviewedAt := a.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewedAt
	}
	return resp
}

func NewApplicationResponses(applications []LeaveApplication) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		responses = append(responses, NewApplicationResponse(a))
	}
	return responses
}

type BalanceSummaryResponse struct {
	StudentID     string `json:"student_id"`
	StudentName   string `json:"student_name,omitempty"`
	BatchName     string `json:"batch_name,omitempty"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	Capped        bool   `json:"capped"`
	AvailableDays *int   `json:"available_days"`
	UsedDays      int    `json:"used_days"`
	PendingDays   int    `json:"pending_days"`
	RemainingDays int    `json:"remaining_days"`
}

func NewBalanceSummaryResponses(summaries []BalanceSummary) []BalanceSummaryResponse {
	responses := make([]BalanceSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		responses = append(responses, BalanceSummaryResponse{
			StudentID:     s.StudentID,
			StudentName:   s.StudentName,
			BatchName:     s.BatchName,
			LeaveTypeID:   s.LeaveTypeID,
			LeaveTypeName: s.LeaveTypeName,
			Capped:        s.Capped,
			AvailableDays: s.AvailableDays,
			UsedDays:      s.UsedDays,
			PendingDays:   s.PendingDays,
			RemainingDays: s.RemainingDays,
		})
	}
	return responses
}

type AuditLogResponse struct {
	ID             string  `json:"id"`
	ApplicationID  string  `json:"application_id"`
	PreviousStatus string  `json:"previous_status"`
	NewStatus      string  `json:"new_status"`
	ActionBy       string  `json:"action_by"`
	ActorName      *string `json:"actor_name,omitempty"`
	Comment        *string `json:"comment,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

func NewAuditLogResponses(entries []AuditLogEntry) []AuditLogResponse {
	responses := make([]AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, AuditLogResponse{
			ID:             e.ID,
			ApplicationID:  e.ApplicationID,
			PreviousStatus: string(e.PreviousStatus),
			NewStatus:      string(e.NewStatus),
			ActionBy:       e.ActionBy,
			ActorName:      e.ActorName,
			Comment:        e.Comment,
			CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		})
	}
	return responses
}
