package course

import "time"

// Course entity - a program of study that batches are scheduled against
type Course struct {
	ID            string
	Name          string
	Description   *string
	DurationWeeks *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
