package student

import "errors"

var (
	ErrStudentNotFound     = errors.New("Student not found")
	ErrNoActiveEnrollment  = errors.New("Student has no active enrollment")
	ErrAdmissionNoConflict = errors.New("Admission number already in use")
)
