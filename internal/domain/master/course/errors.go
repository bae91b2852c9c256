package course

import "errors"

var (
	ErrCourseNotFound = errors.New("Course not found")
	ErrCourseInUse    = errors.New("Course still has batches attached")
)
