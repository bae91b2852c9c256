package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("Attendance record not found")
	ErrInvalidStatus      = errors.New("Attendance status must be PRESENT or ABSENT")
)
