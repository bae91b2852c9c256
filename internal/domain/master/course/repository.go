package course

import "context"

type CourseRepository interface {
	Create(ctx context.Context, c Course) (Course, error)
	GetByID(ctx context.Context, id string) (Course, error)
	List(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, c Course) error
	Delete(ctx context.Context, id string) error
}
