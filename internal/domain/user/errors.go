package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrAdminAccessRequired   = errors.New("admin access required")
	ErrMarkerAccessRequired  = errors.New("trainer or admin access required")
	ErrStudentAccessRequired = errors.New("student access required")
)
