package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/traindesk/tcms-backend-go/internal/domain/attendance"
	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
)

// Service reconciles daily attendance marking with approved leave. Marking is
// an upsert per (student, batch, date); students on approved leave get ABSENT
// pre-filled on the sheet but a marker may still override it at save time.
type Service struct {
	db              database.TxRunner
	attendanceRepo  attendance.AttendanceRepository
	applicationRepo leave.LeaveApplicationRepository
	batchRepo       batch.BatchRepository
}

func NewService(
	db database.TxRunner,
	attendanceRepo attendance.AttendanceRepository,
	applicationRepo leave.LeaveApplicationRepository,
	batchRepo batch.BatchRepository,
) *Service {
	return &Service{
		db:              db,
		attendanceRepo:  attendanceRepo,
		applicationRepo: applicationRepo,
		batchRepo:       batchRepo,
	}
}

// MarkBulk upserts one record per supplied mark for students on the batch
// roster. Marks for students outside the roster are ignored. Returns the
// number of records written.
func (s *Service) MarkBulk(ctx context.Context, actor user.Actor, req attendance.MarkBulkRequest) (int, error) {
	if !actor.CanMarkAttendance() {
		return 0, user.ErrMarkerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return 0, fmt.Errorf("failed to parse date: %w", err)
	}

	if _, err := s.batchRepo.GetByID(ctx, req.BatchID); err != nil {
		return 0, err
	}

	roster, err := s.batchRepo.ListStudents(ctx, req.BatchID)
	if err != nil {
		return 0, fmt.Errorf("failed to list batch students: %w", err)
	}
	enrolled := make(map[string]struct{}, len(roster))
	for _, st := range roster {
		enrolled[st.StudentID] = struct{}{}
	}

	count := 0
	err = s.db.RunInTx(ctx, func(ctx context.Context) error {
		for _, mark := range req.Marks {
			if _, ok := enrolled[mark.StudentID]; !ok {
				continue
			}

			if err := s.attendanceRepo.Upsert(ctx, attendance.Attendance{
				StudentID: mark.StudentID,
				BatchID:   req.BatchID,
				Date:      date,
				Status:    attendance.Status(mark.Status),
				Remarks:   mark.Remarks,
				MarkedBy:  &actor.UserID,
			}); err != nil {
				return fmt.Errorf("failed to upsert attendance: %w", err)
			}
			count++
		}

		return s.attendanceRepo.AppendLog(ctx, attendance.LogEntry{
			BatchID:  req.BatchID,
			Date:     date,
			Action:   attendance.LogActionMarkBulk,
			ActionBy: actor.UserID,
			Count:    count,
		})
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// MarkingSheet composes the roster for one (batch, date) with any existing
// marks carried over. Students inside an approved leave range are shown
// ABSENT whatever was stored; this is the advisory pre-fill, not a hard
// server-side override.
func (s *Service) MarkingSheet(ctx context.Context, actor user.Actor, batchID string, dateStr string) ([]attendance.SheetEntry, error) {
	if !actor.CanMarkAttendance() {
		return nil, user.ErrMarkerAccessRequired
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	roster, err := s.batchRepo.ListStudents(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch students: %w", err)
	}

	existing, err := s.attendanceRepo.ListByBatchAndDate(ctx, batchID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	marked := make(map[string]attendance.Attendance, len(existing))
	for _, record := range existing {
		marked[record.StudentID] = record
	}

	onLeave, err := s.ApprovedLeaveStudents(ctx, date)
	if err != nil {
		return nil, err
	}

	entries := make([]attendance.SheetEntry, 0, len(roster))
	for _, st := range roster {
		entry := attendance.SheetEntry{
			StudentID:   st.StudentID,
			AdmissionNo: st.AdmissionNo,
			FullName:    st.FullName,
		}

		if record, ok := marked[st.StudentID]; ok {
			status := record.Status
			entry.Status = &status
			entry.Remarks = record.Remarks
		}

		if _, ok := onLeave[st.StudentID]; ok {
			absent := attendance.StatusAbsent
			entry.Status = &absent
			entry.OnApprovedLeave = true
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// ApprovedLeaveStudents returns the set of students with an approved leave
// application covering the given date.
func (s *Service) ApprovedLeaveStudents(ctx context.Context, date time.Time) (map[string]struct{}, error) {
	ids, err := s.applicationRepo.ApprovedStudentIDsOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve approved leave: %w", err)
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// History returns a student's attendance records and summary. Students can
// only read their own history; markers and admins can read anyone's.
func (s *Service) History(ctx context.Context, actor user.Actor, studentID string) ([]attendance.Attendance, attendance.Summary, error) {
	if !actor.CanMarkAttendance() {
		if actor.StudentID == nil || *actor.StudentID != studentID {
			return nil, attendance.Summary{}, user.ErrStudentAccessRequired
		}
	}

	records, err := s.attendanceRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, attendance.Summary{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	summary, err := s.attendanceRepo.SummaryByStudent(ctx, studentID)
	if err != nil {
		return nil, attendance.Summary{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	return records, summary, nil
}
