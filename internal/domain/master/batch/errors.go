package batch

import "errors"

var (
	ErrBatchNotFound      = errors.New("Batch not found")
	ErrEnrollmentNotFound = errors.New("Enrollment not found")
	ErrAlreadyEnrolled    = errors.New("Student already enrolled in this batch")
)
