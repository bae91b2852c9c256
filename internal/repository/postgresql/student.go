package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/traindesk/tcms-backend-go/internal/domain/student"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
)

type studentRepositoryImpl struct {
	db *database.DB
}

func NewStudentRepository(db *database.DB) student.StudentRepository {
	return &studentRepositoryImpl{db: db}
}

const studentSelect = `
	SELECT s.id, s.user_id, s.admission_no, s.date_of_birth, s.address, s.guardian,
	       s.photo_path, s.created_at, s.updated_at,
	       u.full_name, u.email, u.phone,
	       b.id AS batch_id, b.name AS batch_name
	FROM students s
	JOIN users u ON s.user_id = u.id
	LEFT JOIN enrollments e ON e.student_id = s.id AND e.status = 'ACTIVE'
	LEFT JOIN batches b ON e.batch_id = b.id
`

func scanStudent(row pgx.Row) (student.Student, error) {
	var s student.Student
	err := row.Scan(
		&s.ID, &s.UserID, &s.AdmissionNo, &s.DateOfBirth, &s.Address, &s.Guardian,
		&s.PhotoPath, &s.CreatedAt, &s.UpdatedAt,
		&s.FullName, &s.Email, &s.Phone,
		&s.BatchID, &s.BatchName,
	)
	return s, err
}

// Create implements student.StudentRepository.
func (r *studentRepositoryImpl) Create(ctx context.Context, s student.Student) (student.Student, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO students (id, user_id, admission_no, date_of_birth, address, guardian, photo_path, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.UserID, s.AdmissionNo, s.DateOfBirth, s.Address, s.Guardian, s.PhotoPath,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return student.Student{}, err
	}

	return s, nil
}

// GetByID implements student.StudentRepository.
func (r *studentRepositoryImpl) GetByID(ctx context.Context, id string) (student.Student, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanStudent(q.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return student.Student{}, student.ErrStudentNotFound
		}
		return student.Student{}, err
	}
	return s, nil
}

// GetByUserID implements student.StudentRepository.
func (r *studentRepositoryImpl) GetByUserID(ctx context.Context, userID string) (student.Student, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanStudent(q.QueryRow(ctx, studentSelect+` WHERE s.user_id = $1`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return student.Student{}, student.ErrStudentNotFound
		}
		return student.Student{}, err
	}
	return s, nil
}

// List implements student.StudentRepository.
func (r *studentRepositoryImpl) List(ctx context.Context) ([]student.Student, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, studentSelect+` ORDER BY s.admission_no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]student.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, nil
}

// Update implements student.StudentRepository.
func (r *studentRepositoryImpl) Update(ctx context.Context, s student.Student) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE students
		SET date_of_birth = $1, address = $2, guardian = $3, photo_path = $4, updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, s.DateOfBirth, s.Address, s.Guardian, s.PhotoPath, s.ID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return student.ErrStudentNotFound
	}
	return nil
}
