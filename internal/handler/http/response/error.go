package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/traindesk/tcms-backend-go/internal/domain/attendance"
	"github.com/traindesk/tcms-backend-go/internal/domain/auth"
	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/course"
	"github.com/traindesk/tcms-backend-go/internal/domain/notification"
	"github.com/traindesk/tcms-backend-go/internal/domain/student"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
	"github.com/traindesk/tcms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrEmailTaken):
		Conflict(w, "Email already registered")

	// Access errors
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrMarkerAccessRequired),
		errors.Is(err, user.ErrStudentAccessRequired):
		Forbidden(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrTypeNotOffered):
		BadRequest(w, "Leave type not offered for this batch", nil)
	case errors.Is(err, leave.ErrLeaveTypeInactive):
		BadRequest(w, "Leave type is no longer active", nil)
	case errors.Is(err, leave.ErrAlreadyReviewed):
		Conflict(w, "Leave application already reviewed")

	// Student domain errors
	case errors.Is(err, student.ErrStudentNotFound):
		NotFound(w, "Student not found")
	case errors.Is(err, student.ErrNoActiveEnrollment):
		BadRequest(w, "Student has no active enrollment", nil)
	case errors.Is(err, student.ErrAdmissionNoConflict):
		Conflict(w, "Admission number already in use")

	// Master data errors
	case errors.Is(err, course.ErrCourseNotFound):
		NotFound(w, "Course not found")
	case errors.Is(err, course.ErrCourseInUse):
		Conflict(w, "Course still has batches attached")
	case errors.Is(err, batch.ErrBatchNotFound):
		NotFound(w, "Batch not found")
	case errors.Is(err, batch.ErrEnrollmentNotFound):
		NotFound(w, "Enrollment not found")
	case errors.Is(err, batch.ErrAlreadyEnrolled):
		Conflict(w, "Student already enrolled in this batch")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Attendance status must be PRESENT or ABSENT", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default. The services wrap persistence failures with the operation
	// and ids involved, so the one log line here carries that context.
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
