package postgresql

import (
	"context"

	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
)

type leaveAuditLogRepositoryImpl struct {
	db *database.DB
}

func NewLeaveAuditLogRepository(db *database.DB) leave.LeaveAuditLogRepository {
	return &leaveAuditLogRepositoryImpl{db: db}
}

// Append implements leave.LeaveAuditLogRepository. Entries are insert-only,
// there is no update or delete path.
func (r *leaveAuditLogRepositoryImpl) Append(ctx context.Context, entry leave.AuditLogEntry) (leave.AuditLogEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_application_logs (id, application_id, previous_status, new_status, action_by, comment, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ApplicationID, entry.PreviousStatus, entry.NewStatus, entry.ActionBy, entry.Comment,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return leave.AuditLogEntry{}, err
	}

	return entry, nil
}

// ListByApplication implements leave.LeaveAuditLogRepository.
func (r *leaveAuditLogRepositoryImpl) ListByApplication(ctx context.Context, applicationID string) ([]leave.AuditLogEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.application_id, l.previous_status, l.new_status, l.action_by, l.comment, l.created_at,
		       u.full_name AS actor_name
		FROM leave_application_logs l
		JOIN users u ON l.action_by = u.id
		WHERE l.application_id = $1
		ORDER BY l.created_at
	`

	rows, err := q.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]leave.AuditLogEntry, 0)
	for rows.Next() {
		var e leave.AuditLogEntry
		if err := rows.Scan(
			&e.ID, &e.ApplicationID, &e.PreviousStatus, &e.NewStatus, &e.ActionBy, &e.Comment, &e.CreatedAt,
			&e.ActorName,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
