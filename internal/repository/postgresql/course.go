package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/course"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
)

type courseRepositoryImpl struct {
	db *database.DB
}

func NewCourseRepository(db *database.DB) course.CourseRepository {
	return &courseRepositoryImpl{db: db}
}

// Create implements course.CourseRepository.
func (r *courseRepositoryImpl) Create(ctx context.Context, c course.Course) (course.Course, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO courses (id, name, description, duration_weeks, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, c.Name, c.Description, c.DurationWeeks).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return course.Course{}, err
	}

	return c, nil
}

// GetByID implements course.CourseRepository.
func (r *courseRepositoryImpl) GetByID(ctx context.Context, id string) (course.Course, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, duration_weeks, created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	var c course.Course
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.DurationWeeks, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return course.Course{}, course.ErrCourseNotFound
		}
		return course.Course{}, err
	}
	return c, nil
}

// List implements course.CourseRepository.
func (r *courseRepositoryImpl) List(ctx context.Context) ([]course.Course, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, duration_weeks, created_at, updated_at
		FROM courses
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]course.Course, 0)
	for rows.Next() {
		var c course.Course
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.DurationWeeks, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, nil
}

// Update implements course.CourseRepository.
func (r *courseRepositoryImpl) Update(ctx context.Context, c course.Course) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE courses
		SET name = $1, description = $2, duration_weeks = $3, updated_at = NOW()
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, c.Name, c.Description, c.DurationWeeks, c.ID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return course.ErrCourseNotFound
	}
	return nil
}

// Delete implements course.CourseRepository.
func (r *courseRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return course.ErrCourseNotFound
	}
	return nil
}
