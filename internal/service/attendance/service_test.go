package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traindesk/tcms-backend-go/internal/domain/attendance"
	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
)

type passthroughTxRunner struct{}

func (passthroughTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	logs    []attendance.LogEntry
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func recordKey(studentID, batchID string, date time.Time) string {
	return studentID + "|" + batchID + "|" + date.Format("2006-01-02")
}

func (r *fakeAttendanceRepo) Upsert(ctx context.Context, record attendance.Attendance) error {
	record.MarkedAt = time.Now()
	r.records[recordKey(record.StudentID, record.BatchID, record.Date)] = record
	return nil
}

func (r *fakeAttendanceRepo) ListByBatchAndDate(ctx context.Context, batchID string, date time.Time) ([]attendance.Attendance, error) {
	out := make([]attendance.Attendance, 0)
	for _, rec := range r.records {
		if rec.BatchID == batchID && rec.Date.Equal(date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListByStudent(ctx context.Context, studentID string) ([]attendance.Attendance, error) {
	out := make([]attendance.Attendance, 0)
	for _, rec := range r.records {
		if rec.StudentID == studentID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) SummaryByStudent(ctx context.Context, studentID string) (attendance.Summary, error) {
	var summary attendance.Summary
	for _, rec := range r.records {
		if rec.StudentID != studentID {
			continue
		}
		summary.TotalDays++
		if rec.Status == attendance.StatusPresent {
			summary.PresentDays++
		} else {
			summary.AbsentDays++
		}
	}
	if summary.TotalDays > 0 {
		summary.Percentage = float64(summary.PresentDays) / float64(summary.TotalDays) * 100
	}
	return summary, nil
}

func (r *fakeAttendanceRepo) AppendLog(ctx context.Context, entry attendance.LogEntry) error {
	r.logs = append(r.logs, entry)
	return nil
}

type fakeApplicationRepo struct {
	approved map[string][2]time.Time // studentID -> approved [start, end]
}

func (r *fakeApplicationRepo) Create(ctx context.Context, a leave.LeaveApplication) (leave.LeaveApplication, error) {
	return a, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	return leave.LeaveApplication{}, leave.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID string) ([]leave.LeaveApplication, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) ListPending(ctx context.Context) ([]leave.LeaveApplication, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) ListAll(ctx context.Context) ([]leave.LeaveApplication, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) UpdateStatusIfPending(ctx context.Context, id string, status leave.ApplicationStatus, reviewedBy string, comment *string) (bool, error) {
	return false, nil
}

func (r *fakeApplicationRepo) ApprovedStudentIDsOn(ctx context.Context, date time.Time) ([]string, error) {
	out := make([]string, 0)
	for studentID, span := range r.approved {
		if !date.Before(span[0]) && !date.After(span[1]) {
			out = append(out, studentID)
		}
	}
	return out, nil
}

type fakeBatchRepo struct {
	batches map[string]batch.Batch
	roster  map[string][]batch.BatchStudent
}

func (r *fakeBatchRepo) Create(ctx context.Context, b batch.Batch) (batch.Batch, error) {
	return b, nil
}

func (r *fakeBatchRepo) GetByID(ctx context.Context, id string) (batch.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return batch.Batch{}, batch.ErrBatchNotFound
	}
	return b, nil
}

func (r *fakeBatchRepo) List(ctx context.Context) ([]batch.Batch, error) {
	return nil, nil
}

func (r *fakeBatchRepo) Update(ctx context.Context, b batch.Batch) error {
	return nil
}

func (r *fakeBatchRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (r *fakeBatchRepo) ListStudents(ctx context.Context, batchID string) ([]batch.BatchStudent, error) {
	return r.roster[batchID], nil
}

func newTestService() (*Service, *fakeAttendanceRepo, *fakeApplicationRepo) {
	attendanceRepo := newFakeAttendanceRepo()
	applicationRepo := &fakeApplicationRepo{approved: make(map[string][2]time.Time)}
	batchRepo := &fakeBatchRepo{
		batches: map[string]batch.Batch{
			"batch-1": {ID: "batch-1", Name: "Batch 2026-A"},
		},
		roster: map[string][]batch.BatchStudent{
			"batch-1": {
				{StudentID: "stu-1", AdmissionNo: "ADM-1001", FullName: "Asha Iyer"},
				{StudentID: "stu-2", AdmissionNo: "ADM-1002", FullName: "Rahul Nair"},
			},
		},
	}

	svc := NewService(passthroughTxRunner{}, attendanceRepo, applicationRepo, batchRepo)
	return svc, attendanceRepo, applicationRepo
}

func trainerActor() user.Actor {
	return user.Actor{UserID: "trainer-1", Role: user.RoleTrainer}
}

func TestMarkBulkUpsertsRosterStudentsOnly(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	count, err := svc.MarkBulk(ctx, trainerActor(), attendance.MarkBulkRequest{
		BatchID: "batch-1",
		Date:    "2026-03-02",
		Marks: []attendance.MarkInput{
			{StudentID: "stu-1", Status: "PRESENT"},
			{StudentID: "stu-2", Status: "ABSENT"},
			{StudentID: "stu-intruder", Status: "PRESENT"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, repo.records, 2)

	require.Len(t, repo.logs, 1)
	assert.Equal(t, attendance.LogActionMarkBulk, repo.logs[0].Action)
	assert.Equal(t, 2, repo.logs[0].Count)
	assert.Equal(t, "trainer-1", repo.logs[0].ActionBy)
}

func TestMarkBulkOverwritesOnRemark(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.MarkBulk(ctx, trainerActor(), attendance.MarkBulkRequest{
		BatchID: "batch-1",
		Date:    "2026-03-02",
		Marks:   []attendance.MarkInput{{StudentID: "stu-1", Status: "ABSENT"}},
	})
	require.NoError(t, err)

	_, err = svc.MarkBulk(ctx, trainerActor(), attendance.MarkBulkRequest{
		BatchID: "batch-1",
		Date:    "2026-03-02",
		Marks:   []attendance.MarkInput{{StudentID: "stu-1", Status: "PRESENT"}},
	})
	require.NoError(t, err)

	assert.Len(t, repo.records, 1)
	date, _ := time.Parse("2006-01-02", "2026-03-02")
	rec := repo.records[recordKey("stu-1", "batch-1", date)]
	assert.Equal(t, attendance.StatusPresent, rec.Status)
}

func TestMarkBulkRejectsStudents(t *testing.T) {
	svc, _, _ := newTestService()

	studentActor := user.Actor{UserID: "user-stu-1", Role: user.RoleStudent}
	_, err := svc.MarkBulk(context.Background(), studentActor, attendance.MarkBulkRequest{
		BatchID: "batch-1",
		Date:    "2026-03-02",
		Marks:   []attendance.MarkInput{{StudentID: "stu-1", Status: "PRESENT"}},
	})
	assert.ErrorIs(t, err, user.ErrMarkerAccessRequired)
}

func TestMarkingSheetPrefillsApprovedLeave(t *testing.T) {
	svc, _, applicationRepo := newTestService()
	ctx := context.Background()

	start, _ := time.Parse("2006-01-02", "2026-03-02")
	end, _ := time.Parse("2006-01-02", "2026-03-04")
	applicationRepo.approved["stu-2"] = [2]time.Time{start, end}

	entries, err := svc.MarkingSheet(ctx, trainerActor(), "batch-1", "2026-03-03")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byID := make(map[string]attendance.SheetEntry, len(entries))
	for _, e := range entries {
		byID[e.StudentID] = e
	}

	assert.Nil(t, byID["stu-1"].Status)
	assert.False(t, byID["stu-1"].OnApprovedLeave)

	require.NotNil(t, byID["stu-2"].Status)
	assert.Equal(t, attendance.StatusAbsent, *byID["stu-2"].Status)
	assert.True(t, byID["stu-2"].OnApprovedLeave)
}

func TestMarkingSheetIgnoresLeaveOutsideRange(t *testing.T) {
	svc, _, applicationRepo := newTestService()
	ctx := context.Background()

	start, _ := time.Parse("2006-01-02", "2026-03-02")
	end, _ := time.Parse("2006-01-02", "2026-03-04")
	applicationRepo.approved["stu-2"] = [2]time.Time{start, end}

	entries, err := svc.MarkingSheet(ctx, trainerActor(), "batch-1", "2026-03-05")
	require.NoError(t, err)

	for _, e := range entries {
		assert.False(t, e.OnApprovedLeave)
	}
}

func TestMarkingSheetCarriesExistingMarks(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.MarkBulk(ctx, trainerActor(), attendance.MarkBulkRequest{
		BatchID: "batch-1",
		Date:    "2026-03-02",
		Marks:   []attendance.MarkInput{{StudentID: "stu-1", Status: "PRESENT"}},
	})
	require.NoError(t, err)

	entries, err := svc.MarkingSheet(ctx, trainerActor(), "batch-1", "2026-03-02")
	require.NoError(t, err)

	for _, e := range entries {
		if e.StudentID == "stu-1" {
			require.NotNil(t, e.Status)
			assert.Equal(t, attendance.StatusPresent, *e.Status)
		}
	}
}

func TestHistoryAccessControl(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.MarkBulk(ctx, trainerActor(), attendance.MarkBulkRequest{
		BatchID: "batch-1",
		Date:    "2026-03-02",
		Marks: []attendance.MarkInput{
			{StudentID: "stu-1", Status: "PRESENT"},
		},
	})
	require.NoError(t, err)

	self := "stu-1"
	studentActor := user.Actor{UserID: "user-stu-1", StudentID: &self, Role: user.RoleStudent}

	records, summary, err := svc.History(ctx, studentActor, "stu-1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, summary.PresentDays)

	_, _, err = svc.History(ctx, studentActor, "stu-2")
	assert.ErrorIs(t, err, user.ErrStudentAccessRequired)
}
