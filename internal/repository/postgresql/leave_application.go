package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
)

type leaveApplicationRepositoryImpl struct {
	db *database.DB
}

func NewLeaveApplicationRepository(db *database.DB) leave.LeaveApplicationRepository {
	return &leaveApplicationRepositoryImpl{db: db}
}

const applicationSelect = `
	SELECT la.id, la.student_id, la.leave_type_id, la.start_date, la.end_date,
	       la.reason, la.document_path, la.status, la.applied_at,
	       la.reviewed_by, la.reviewed_at, la.reviewer_comment,
	       la.created_at, la.updated_at,
	       u.full_name AS student_name, s.admission_no,
	       lt.name AS leave_type_name,
	       rv.full_name AS reviewer_name,
	       b.name AS batch_name
	FROM leave_applications la
	JOIN students s ON la.student_id = s.id
	JOIN users u ON s.user_id = u.id
	JOIN leave_types lt ON la.leave_type_id = lt.id
	LEFT JOIN users rv ON la.reviewed_by = rv.id
	LEFT JOIN enrollments e ON e.student_id = s.id AND e.status = 'ACTIVE'
	LEFT JOIN batches b ON e.batch_id = b.id
`

func scanApplication(row pgx.Row) (leave.LeaveApplication, error) {
	var a leave.LeaveApplication
	err := row.Scan(
		&a.ID, &a.StudentID, &a.LeaveTypeID, &a.StartDate, &a.EndDate,
		&a.Reason, &a.DocumentPath, &a.Status, &a.AppliedAt,
		&a.ReviewedBy, &a.ReviewedAt, &a.ReviewerComment,
		&a.CreatedAt, &a.UpdatedAt,
		&a.StudentName, &a.AdmissionNo,
		&a.LeaveTypeName,
		&a.ReviewerName,
		&a.BatchName,
	)
	return a, err
}

// Create implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) Create(ctx context.Context, application leave.LeaveApplication) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications (
			id, student_id, leave_type_id, start_date, end_date,
			reason, document_path, status, applied_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, 'pending', NOW(), NOW(), NOW()
		) RETURNING id, status, applied_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		application.StudentID, application.LeaveTypeID,
		application.StartDate, application.EndDate,
		application.Reason, application.DocumentPath,
	).Scan(&application.ID, &application.Status, &application.AppliedAt,
		&application.CreatedAt, &application.UpdatedAt)
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	return application, nil
}

// GetByID implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanApplication(q.QueryRow(ctx, applicationSelect+` WHERE la.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveApplication{}, leave.ErrApplicationNotFound
		}
		return leave.LeaveApplication{}, err
	}
	return a, nil
}

func (r *leaveApplicationRepositoryImpl) queryApplications(ctx context.Context, where string, args ...interface{}) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, applicationSelect+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := make([]leave.LeaveApplication, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}

	return applications, nil
}

// ListByStudent implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ListByStudent(ctx context.Context, studentID string) ([]leave.LeaveApplication, error) {
	return r.queryApplications(ctx, ` WHERE la.student_id = $1 ORDER BY la.applied_at DESC`, studentID)
}

// ListPending implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ListPending(ctx context.Context) ([]leave.LeaveApplication, error) {
	return r.queryApplications(ctx, ` WHERE la.status = 'pending' ORDER BY la.applied_at DESC`)
}

// ListAll implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveApplication, error) {
	return r.queryApplications(ctx, ` ORDER BY la.applied_at DESC`)
}

// UpdateStatusIfPending implements leave.LeaveApplicationRepository.
// The status predicate doubles as the concurrency guard: of two racing
// reviewers only one update matches a pending row.
func (r *leaveApplicationRepositoryImpl) UpdateStatusIfPending(ctx context.Context, id string, status leave.ApplicationStatus, reviewedBy string, comment *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), reviewer_comment = $3, updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query, status, reviewedBy, comment, id)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}

// ApprovedStudentIDsOn implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ApprovedStudentIDsOn(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT student_id
		FROM leave_applications
		WHERE status = 'approved' AND start_date <= $1 AND end_date >= $1
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
