package student

import "github.com/traindesk/tcms-backend-go/internal/pkg/validator"

type CreateStudentRequest struct {
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Phone       *string `json:"phone,omitempty"`
	AdmissionNo string  `json:"admission_no"`
	DateOfBirth *string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Address     *string `json:"address,omitempty"`
	Guardian    *string `json:"guardian,omitempty"`
	BatchID     string  `json:"batch_id"`
}

func (r *CreateStudentRequest) Validate() error {
	var errs validator.ValidationErrors

	// Full name
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	// Password
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	// Admission number
	if validator.IsEmpty(r.AdmissionNo) {
		errs = append(errs, validator.ValidationError{
			Field:   "admission_no",
			Message: "admission_no is required",
		})
	} else if !validator.IsValidAdmissionNo(r.AdmissionNo) {
		errs = append(errs, validator.ValidationError{
			Field:   "admission_no",
			Message: "admission_no must match the ADM-XXXX format",
		})
	}

	// Date of birth
	if r.DateOfBirth != nil && !validator.IsValidDate(*r.DateOfBirth) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_birth",
			Message: "date_of_birth must be in YYYY-MM-DD format",
		})
	}

	// Batch
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

type UpdateStudentRequest struct {
	ID          string  `json:"student_id"`
	FullName    *string `json:"full_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Address     *string `json:"address,omitempty"`
	Guardian    *string `json:"guardian,omitempty"`
	PhotoPath   *string `json:"photo_path,omitempty"`
}

func (r *UpdateStudentRequest) Validate() error {
	var errs validator.ValidationErrors

	// Student id
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "student_id",
			Message: "student_id is required",
		})
	}

	// Full name
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	// Date of birth
	if r.DateOfBirth != nil && !validator.IsValidDate(*r.DateOfBirth) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_birth",
			Message: "date_of_birth must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StudentResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	AdmissionNo string  `json:"admission_no"`
	FullName    *string `json:"full_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Address     *string `json:"address,omitempty"`
	Guardian    *string `json:"guardian,omitempty"`
	PhotoPath   *string `json:"photo_path,omitempty"`
	BatchID     *string `json:"batch_id,omitempty"`
	BatchName   *string `json:"batch_name,omitempty"`
}

func NewStudentResponse(s Student) StudentResponse {
	resp := StudentResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		AdmissionNo: s.AdmissionNo,
		FullName:    s.FullName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		Guardian:    s.Guardian,
		PhotoPath:   s.PhotoPath,
		BatchID:     s.BatchID,
		BatchName:   s.BatchName,
	}
	if s.DateOfBirth != nil {
		dob := s.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	return resp
}

func NewStudentResponses(students []Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		responses = append(responses, NewStudentResponse(s))
	}
	return responses
}
