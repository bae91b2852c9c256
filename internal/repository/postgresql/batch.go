package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
)

type batchRepositoryImpl struct {
	db *database.DB
}

func NewBatchRepository(db *database.DB) batch.BatchRepository {
	return &batchRepositoryImpl{db: db}
}

const batchSelect = `
	SELECT b.id, b.course_id, b.name, b.start_date, b.end_date,
	       b.personal_leaves, b.medical_leaves, b.educational_leaves,
	       b.created_at, b.updated_at,
	       c.name AS course_name
	FROM batches b
	JOIN courses c ON b.course_id = c.id
`

func scanBatch(row pgx.Row) (batch.Batch, error) {
	var b batch.Batch
	err := row.Scan(
		&b.ID, &b.CourseID, &b.Name, &b.StartDate, &b.EndDate,
		&b.PersonalLeaves, &b.MedicalLeaves, &b.EducationalLeaves,
		&b.CreatedAt, &b.UpdatedAt,
		&b.CourseName,
	)
	return b, err
}

// Create implements batch.BatchRepository.
func (r *batchRepositoryImpl) Create(ctx context.Context, b batch.Batch) (batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO batches (id, course_id, name, start_date, end_date,
			personal_leaves, medical_leaves, educational_leaves, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		b.CourseID, b.Name, b.StartDate, b.EndDate,
		b.PersonalLeaves, b.MedicalLeaves, b.EducationalLeaves,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return batch.Batch{}, err
	}

	return b, nil
}

// GetByID implements batch.BatchRepository.
func (r *batchRepositoryImpl) GetByID(ctx context.Context, id string) (batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBatch(q.QueryRow(ctx, batchSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return batch.Batch{}, batch.ErrBatchNotFound
		}
		return batch.Batch{}, err
	}
	return b, nil
}

// List implements batch.BatchRepository.
func (r *batchRepositoryImpl) List(ctx context.Context) ([]batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, batchSelect+` ORDER BY b.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := make([]batch.Batch, 0)
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return batches, nil
}

// Update implements batch.BatchRepository.
func (r *batchRepositoryImpl) Update(ctx context.Context, b batch.Batch) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE batches
		SET name = $1, end_date = $2,
			personal_leaves = $3, medical_leaves = $4, educational_leaves = $5,
			updated_at = NOW()
		WHERE id = $6
	`

	commandTag, err := q.Exec(ctx, query,
		b.Name, b.EndDate, b.PersonalLeaves, b.MedicalLeaves, b.EducationalLeaves, b.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return batch.ErrBatchNotFound
	}
	return nil
}

// Delete implements batch.BatchRepository.
func (r *batchRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return batch.ErrBatchNotFound
	}
	return nil
}

// ListStudents implements batch.BatchRepository.
func (r *batchRepositoryImpl) ListStudents(ctx context.Context, batchID string) ([]batch.BatchStudent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.admission_no, u.full_name, u.id AS user_id
		FROM enrollments e
		JOIN students s ON e.student_id = s.id
		JOIN users u ON s.user_id = u.id
		WHERE e.batch_id = $1 AND e.status = 'ACTIVE'
		ORDER BY s.admission_no
	`

	rows, err := q.Query(ctx, query, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]batch.BatchStudent, 0)
	for rows.Next() {
		var s batch.BatchStudent
		if err := rows.Scan(&s.StudentID, &s.AdmissionNo, &s.FullName, &s.UserID); err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, nil
}

type enrollmentRepositoryImpl struct {
	db *database.DB
}

func NewEnrollmentRepository(db *database.DB) batch.EnrollmentRepository {
	return &enrollmentRepositoryImpl{db: db}
}

// Create implements batch.EnrollmentRepository.
func (r *enrollmentRepositoryImpl) Create(ctx context.Context, e batch.Enrollment) (batch.Enrollment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO enrollments (id, student_id, batch_id, status, enrolled_at)
		VALUES (uuidv7(), $1, $2, 'ACTIVE', NOW())
		RETURNING id, status, enrolled_at
	`

	err := q.QueryRow(ctx, query, e.StudentID, e.BatchID).
		Scan(&e.ID, &e.Status, &e.EnrolledAt)
	if err != nil {
		return batch.Enrollment{}, err
	}

	return e, nil
}

// GetActiveByStudent implements batch.EnrollmentRepository.
func (r *enrollmentRepositoryImpl) GetActiveByStudent(ctx context.Context, studentID string) (batch.Enrollment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.student_id, e.batch_id, e.status, e.enrolled_at, b.name AS batch_name
		FROM enrollments e
		JOIN batches b ON e.batch_id = b.id
		WHERE e.student_id = $1 AND e.status = 'ACTIVE'
	`

	var e batch.Enrollment
	err := q.QueryRow(ctx, query, studentID).Scan(
		&e.ID, &e.StudentID, &e.BatchID, &e.Status, &e.EnrolledAt, &e.BatchName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return batch.Enrollment{}, batch.ErrEnrollmentNotFound
		}
		return batch.Enrollment{}, err
	}
	return e, nil
}

// UpdateStatus implements batch.EnrollmentRepository.
func (r *enrollmentRepositoryImpl) UpdateStatus(ctx context.Context, id string, status batch.EnrollmentStatus) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE enrollments SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return batch.ErrEnrollmentNotFound
	}
	return nil
}
