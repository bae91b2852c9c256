package postgresql

import (
	"context"
	"time"

	"github.com/traindesk/tcms-backend-go/internal/domain/attendance"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Upsert implements attendance.AttendanceRepository. The unique constraint
// on (student_id, batch_id, date) guarantees one row per day; re-marking
// overwrites in place.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, record attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (id, student_id, batch_id, date, status, remarks, marked_by, marked_at, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW(), NOW())
		ON CONFLICT (student_id, batch_id, date) DO UPDATE
		SET status = EXCLUDED.status,
			remarks = EXCLUDED.remarks,
			marked_by = EXCLUDED.marked_by,
			marked_at = NOW(),
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		record.StudentID, record.BatchID, record.Date,
		record.Status, record.Remarks, record.MarkedBy,
	)
	return err
}

// ListByBatchAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByBatchAndDate(ctx context.Context, batchID string, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.student_id, a.batch_id, a.date, a.status, a.remarks,
		       a.marked_by, a.marked_at, a.created_at, a.updated_at,
		       u.full_name AS student_name, s.admission_no
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		JOIN users u ON s.user_id = u.id
		WHERE a.batch_id = $1 AND a.date = $2
		ORDER BY s.admission_no
	`

	rows, err := q.Query(ctx, query, batchID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.BatchID, &a.Date, &a.Status, &a.Remarks,
			&a.MarkedBy, &a.MarkedAt, &a.CreatedAt, &a.UpdatedAt,
			&a.StudentName, &a.AdmissionNo,
		); err != nil {
			return nil, err
		}
		records = append(records, a)
	}

	return records, nil
}

// ListByStudent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByStudent(ctx context.Context, studentID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.student_id, a.batch_id, a.date, a.status, a.remarks,
		       a.marked_by, a.marked_at, a.created_at, a.updated_at,
		       b.name AS batch_name, mk.full_name AS marker_name
		FROM attendance a
		JOIN batches b ON a.batch_id = b.id
		LEFT JOIN users mk ON a.marked_by = mk.id
		WHERE a.student_id = $1
		ORDER BY a.date DESC
	`

	rows, err := q.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.BatchID, &a.Date, &a.Status, &a.Remarks,
			&a.MarkedBy, &a.MarkedAt, &a.CreatedAt, &a.UpdatedAt,
			&a.BatchName, &a.MarkerName,
		); err != nil {
			return nil, err
		}
		records = append(records, a)
	}

	return records, nil
}

// SummaryByStudent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SummaryByStudent(ctx context.Context, studentID string) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) AS total_days,
		       COALESCE(SUM(CASE WHEN status = 'PRESENT' THEN 1 ELSE 0 END), 0) AS present_days,
		       COALESCE(SUM(CASE WHEN status = 'ABSENT' THEN 1 ELSE 0 END), 0) AS absent_days
		FROM attendance
		WHERE student_id = $1
	`

	var s attendance.Summary
	if err := q.QueryRow(ctx, query, studentID).Scan(&s.TotalDays, &s.PresentDays, &s.AbsentDays); err != nil {
		return attendance.Summary{}, err
	}

	if s.TotalDays > 0 {
		s.Percentage = float64(s.PresentDays) / float64(s.TotalDays) * 100
	}
	return s, nil
}

// AppendLog implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) AppendLog(ctx context.Context, entry attendance.LogEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_logs (id, batch_id, date, action, action_by, count, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW())
	`

	_, err := q.Exec(ctx, query, entry.BatchID, entry.Date, entry.Action, entry.ActionBy, entry.Count)
	return err
}
