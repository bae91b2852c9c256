package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// EnsureRows implements leave.LeaveBalanceRepository.
// The unique constraint on (student_id, leave_type_id) makes repeated calls
// a no-op for rows that already exist.
func (r *leaveBalanceRepositoryImpl) EnsureRows(ctx context.Context, studentID string, seeds []leave.BalanceSeed) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO student_leave_balances (student_id, leave_type_id, available_days, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (student_id, leave_type_id) DO NOTHING
	`

	for _, seed := range seeds {
		if _, err := q.Exec(ctx, query, studentID, seed.LeaveTypeID, seed.AvailableDays); err != nil {
			return err
		}
	}
	return nil
}

// GetByStudent implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByStudent(ctx context.Context, studentID string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT slb.student_id, slb.leave_type_id, slb.available_days, slb.updated_at,
		       lt.name AS leave_type_name
		FROM student_leave_balances slb
		JOIN leave_types lt ON slb.leave_type_id = lt.id
		WHERE slb.student_id = $1
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.Balance, 0)
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(
			&b.StudentID, &b.LeaveTypeID, &b.AvailableDays, &b.UpdatedAt, &b.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, nil
}

// GetByStudentAndType implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByStudentAndType(ctx context.Context, studentID, leaveTypeID string) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT slb.student_id, slb.leave_type_id, slb.available_days, slb.updated_at,
		       lt.name AS leave_type_name
		FROM student_leave_balances slb
		JOIN leave_types lt ON slb.leave_type_id = lt.id
		WHERE slb.student_id = $1 AND slb.leave_type_id = $2
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, studentID, leaveTypeID).Scan(
		&b.StudentID, &b.LeaveTypeID, &b.AvailableDays, &b.UpdatedAt, &b.LeaveTypeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}
	return b, nil
}

// UsedAndPendingDays implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) UsedAndPendingDays(ctx context.Context, studentID, leaveTypeID string) (int, int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'approved' THEN (end_date - start_date) + 1 ELSE 0 END), 0) AS used_days,
			COALESCE(SUM(CASE WHEN status = 'pending'  THEN (end_date - start_date) + 1 ELSE 0 END), 0) AS pending_days
		FROM leave_applications
		WHERE student_id = $1 AND leave_type_id = $2
	`

	var used, pending int
	if err := q.QueryRow(ctx, query, studentID, leaveTypeID).Scan(&used, &pending); err != nil {
		return 0, 0, err
	}
	return used, pending, nil
}

// DecrementAvailable implements leave.LeaveBalanceRepository.
// Uncapped rows store NULL and stay NULL; the arithmetic only applies to
// capped balances.
func (r *leaveBalanceRepositoryImpl) DecrementAvailable(ctx context.Context, studentID, leaveTypeID string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE student_leave_balances
		SET available_days = available_days - $1, updated_at = NOW()
		WHERE student_id = $2 AND leave_type_id = $3
	`

	commandTag, err := q.Exec(ctx, query, days, studentID, leaveTypeID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}
