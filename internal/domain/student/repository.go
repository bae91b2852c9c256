package student

import "context"

// StudentRepository - interface for students table
type StudentRepository interface {
	Create(ctx context.Context, s Student) (Student, error)
	GetByID(ctx context.Context, id string) (Student, error)
	GetByUserID(ctx context.Context, userID string) (Student, error)
	List(ctx context.Context) ([]Student, error)
	Update(ctx context.Context, s Student) error
}
