package course

import "github.com/traindesk/tcms-backend-go/internal/pkg/validator"

type CourseResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	DurationWeeks *int    `json:"duration_weeks,omitempty"`
}

type CreateCourseRequest struct {
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	DurationWeeks *int    `json:"duration_weeks,omitempty"`
}

func (r *CreateCourseRequest) Validate() error {
	var errs validator.ValidationErrors

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

	// Duration
	if r.DurationWeeks != nil && *r.DurationWeeks <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_weeks",
			Message: "duration_weeks must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateCourseRequest struct {
	ID            string  `json:"id"`
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	DurationWeeks *int    `json:"duration_weeks,omitempty"`
}

func (r *UpdateCourseRequest) Validate() error {
	var errs validator.ValidationErrors

	// ID
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	// Name
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		}
		if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 255 characters",
			})
		}
	}

	// Duration
	if r.DurationWeeks != nil && *r.DurationWeeks <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_weeks",
			Message: "duration_weeks must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func NewCourseResponse(c Course) CourseResponse {
	return CourseResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		DurationWeeks: c.DurationWeeks,
	}
}

func NewCourseResponses(courses []Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, NewCourseResponse(c))
	}
	return responses
}
