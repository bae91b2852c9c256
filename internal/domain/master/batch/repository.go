package batch

import "context"

type BatchRepository interface {
	Create(ctx context.Context, b Batch) (Batch, error)
	GetByID(ctx context.Context, id string) (Batch, error)
	List(ctx context.Context) ([]Batch, error)
	Update(ctx context.Context, b Batch) error
	Delete(ctx context.Context, id string) error
	// ListStudents returns the roster of actively enrolled students.
	ListStudents(ctx context.Context, batchID string) ([]BatchStudent, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, e Enrollment) (Enrollment, error)
	// GetActiveByStudent returns the student's single ACTIVE enrollment.
	GetActiveByStudent(ctx context.Context, studentID string) (Enrollment, error)
	UpdateStatus(ctx context.Context, id string, status EnrollmentStatus) error
}
