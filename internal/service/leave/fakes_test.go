package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/domain/student"
)

// passthroughTxRunner runs the callback on the same context; the fakes have
// no transaction semantics to join.
type passthroughTxRunner struct{}

func (passthroughTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTypeRepo struct {
	types map[string]leave.LeaveType
	apps  *fakeApplicationRepo
}

func newFakeTypeRepo(apps *fakeApplicationRepo) *fakeTypeRepo {
	return &fakeTypeRepo{types: make(map[string]leave.LeaveType), apps: apps}
}

func (r *fakeTypeRepo) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	if lt.ID == "" {
		lt.ID = fmt.Sprintf("lt-%d", len(r.types)+1)
	}
	r.types[lt.ID] = lt
	return lt, nil
}

func (r *fakeTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, ok := r.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r *fakeTypeRepo) List(ctx context.Context) ([]leave.LeaveType, error) {
	out := make([]leave.LeaveType, 0, len(r.types))
	for _, lt := range r.types {
		out = append(out, lt)
	}
	return out, nil
}

func (r *fakeTypeRepo) ListActive(ctx context.Context) ([]leave.LeaveType, error) {
	out := make([]leave.LeaveType, 0, len(r.types))
	for _, lt := range r.types {
		if lt.IsActive {
			out = append(out, lt)
		}
	}
	return out, nil
}

func (r *fakeTypeRepo) Update(ctx context.Context, lt leave.LeaveType) error {
	if _, ok := r.types[lt.ID]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	r.types[lt.ID] = lt
	return nil
}

func (r *fakeTypeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.types[id]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	delete(r.types, id)
	return nil
}

func (r *fakeTypeRepo) HasApplications(ctx context.Context, id string) (bool, error) {
	for _, a := range r.apps.apps {
		if a.LeaveTypeID == id {
			return true, nil
		}
	}
	return false, nil
}

type fakeApplicationRepo struct {
	seq  int
	apps map[string]*leave.LeaveApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*leave.LeaveApplication)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, a leave.LeaveApplication) (leave.LeaveApplication, error) {
	r.seq++
	a.ID = fmt.Sprintf("app-%d", r.seq)
	a.Status = leave.ApplicationStatusPending
	a.AppliedAt = time.Now()
	stored := a
	r.apps[a.ID] = &stored
	return a, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	a, ok := r.apps[id]
	if !ok {
		return leave.LeaveApplication{}, leave.ErrApplicationNotFound
	}
	return *a, nil
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID string) ([]leave.LeaveApplication, error) {
	out := make([]leave.LeaveApplication, 0)
	for _, a := range r.apps {
		if a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListPending(ctx context.Context) ([]leave.LeaveApplication, error) {
	out := make([]leave.LeaveApplication, 0)
	for _, a := range r.apps {
		if a.Status == leave.ApplicationStatusPending {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListAll(ctx context.Context) ([]leave.LeaveApplication, error) {
	out := make([]leave.LeaveApplication, 0, len(r.apps))
	for _, a := range r.apps {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatusIfPending(ctx context.Context, id string, status leave.ApplicationStatus, reviewedBy string, comment *string) (bool, error) {
	a, ok := r.apps[id]
	if !ok || a.Status != leave.ApplicationStatusPending {
		return false, nil
	}
	now := time.Now()
	a.Status = status
	a.ReviewedBy = &reviewedBy
	a.ReviewedAt = &now
	a.ReviewerComment = comment
	return true, nil
}

func (r *fakeApplicationRepo) ApprovedStudentIDsOn(ctx context.Context, date time.Time) ([]string, error) {
	out := make([]string, 0)
	for _, a := range r.apps {
		if a.Status == leave.ApplicationStatusApproved && !date.Before(a.StartDate) && !date.After(a.EndDate) {
			out = append(out, a.StudentID)
		}
	}
	return out, nil
}

type fakeBalanceRepo struct {
	rows map[string]*leave.Balance
	apps *fakeApplicationRepo
}

func newFakeBalanceRepo(apps *fakeApplicationRepo) *fakeBalanceRepo {
	return &fakeBalanceRepo{rows: make(map[string]*leave.Balance), apps: apps}
}

func balanceKey(studentID, leaveTypeID string) string {
	return studentID + "|" + leaveTypeID
}

func (r *fakeBalanceRepo) EnsureRows(ctx context.Context, studentID string, seeds []leave.BalanceSeed) error {
	for _, seed := range seeds {
		key := balanceKey(studentID, seed.LeaveTypeID)
		if _, ok := r.rows[key]; ok {
			continue
		}
		var available *int
		if seed.AvailableDays != nil {
			v := *seed.AvailableDays
			available = &v
		}
		r.rows[key] = &leave.Balance{
			StudentID:     studentID,
			LeaveTypeID:   seed.LeaveTypeID,
			AvailableDays: available,
		}
	}
	return nil
}

func (r *fakeBalanceRepo) GetByStudent(ctx context.Context, studentID string) ([]leave.Balance, error) {
	out := make([]leave.Balance, 0)
	for _, b := range r.rows {
		if b.StudentID == studentID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBalanceRepo) GetByStudentAndType(ctx context.Context, studentID, leaveTypeID string) (leave.Balance, error) {
	b, ok := r.rows[balanceKey(studentID, leaveTypeID)]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return *b, nil
}

func (r *fakeBalanceRepo) UsedAndPendingDays(ctx context.Context, studentID, leaveTypeID string) (int, int, error) {
	used, pending := 0, 0
	for _, a := range r.apps.apps {
		if a.StudentID != studentID || a.LeaveTypeID != leaveTypeID {
			continue
		}
		switch a.Status {
		case leave.ApplicationStatusApproved:
			used += a.Days()
		case leave.ApplicationStatusPending:
			pending += a.Days()
		}
	}
	return used, pending, nil
}

func (r *fakeBalanceRepo) DecrementAvailable(ctx context.Context, studentID, leaveTypeID string, days int) error {
	b, ok := r.rows[balanceKey(studentID, leaveTypeID)]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	if b.AvailableDays != nil {
		v := *b.AvailableDays - days
		b.AvailableDays = &v
	}
	return nil
}

type fakeAuditRepo struct {
	entries []leave.AuditLogEntry
}

func (r *fakeAuditRepo) Append(ctx context.Context, entry leave.AuditLogEntry) (leave.AuditLogEntry, error) {
	entry.ID = fmt.Sprintf("log-%d", len(r.entries)+1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *fakeAuditRepo) ListByApplication(ctx context.Context, applicationID string) ([]leave.AuditLogEntry, error) {
	out := make([]leave.AuditLogEntry, 0)
	for _, e := range r.entries {
		if e.ApplicationID == applicationID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeBatchRepo struct {
	batches map[string]batch.Batch
	roster  map[string][]batch.BatchStudent
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{
		batches: make(map[string]batch.Batch),
		roster:  make(map[string][]batch.BatchStudent),
	}
}

func (r *fakeBatchRepo) Create(ctx context.Context, b batch.Batch) (batch.Batch, error) {
	if b.ID == "" {
		b.ID = fmt.Sprintf("batch-%d", len(r.batches)+1)
	}
	r.batches[b.ID] = b
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
	out := make([]batch.Batch, 0, len(r.batches))
	for _, b := range r.batches {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBatchRepo) Update(ctx context.Context, b batch.Batch) error {
	if _, ok := r.batches[b.ID]; !ok {
		return batch.ErrBatchNotFound
	}
	r.batches[b.ID] = b
	return nil
}

func (r *fakeBatchRepo) Delete(ctx context.Context, id string) error {
	delete(r.batches, id)
	return nil
}

func (r *fakeBatchRepo) ListStudents(ctx context.Context, batchID string) ([]batch.BatchStudent, error) {
	return r.roster[batchID], nil
}

type fakeEnrollmentRepo struct {
	active map[string]batch.Enrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{active: make(map[string]batch.Enrollment)}
}

func (r *fakeEnrollmentRepo) Create(ctx context.Context, e batch.Enrollment) (batch.Enrollment, error) {
	e.ID = fmt.Sprintf("enr-%d", len(r.active)+1)
	e.Status = batch.EnrollmentStatusActive
	e.EnrolledAt = time.Now()
	r.active[e.StudentID] = e
	return e, nil
}

func (r *fakeEnrollmentRepo) GetActiveByStudent(ctx context.Context, studentID string) (batch.Enrollment, error) {
	e, ok := r.active[studentID]
	if !ok {
		return batch.Enrollment{}, batch.ErrEnrollmentNotFound
	}
	return e, nil
}

func (r *fakeEnrollmentRepo) UpdateStatus(ctx context.Context, id string, status batch.EnrollmentStatus) error {
	for studentID, e := range r.active {
		if e.ID == id {
			if status != batch.EnrollmentStatusActive {
				delete(r.active, studentID)
			}
			return nil
		}
	}
	return batch.ErrEnrollmentNotFound
}

type fakeStudentRepo struct {
	students map[string]student.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]student.Student)}
}

func (r *fakeStudentRepo) Create(ctx context.Context, s student.Student) (student.Student, error) {
	if s.ID == "" {
		s.ID = fmt.Sprintf("stu-%d", len(r.students)+1)
	}
	r.students[s.ID] = s
	return s, nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id string) (student.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return student.Student{}, student.ErrStudentNotFound
	}
	return s, nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID string) (student.Student, error) {
	for _, s := range r.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return student.Student{}, student.ErrStudentNotFound
}

func (r *fakeStudentRepo) List(ctx context.Context) ([]student.Student, error) {
	out := make([]student.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, s student.Student) error {
	if _, ok := r.students[s.ID]; !ok {
		return student.ErrStudentNotFound
	}
	r.students[s.ID] = s
	return nil
}

// fixture wires a Service over the fakes with one capped type, one uncapped
// type, a batch and an enrolled student.
type fixture struct {
	service  *Service
	typeRepo *fakeTypeRepo
	appRepo  *fakeApplicationRepo
	balRepo  *fakeBalanceRepo
	audit    *fakeAuditRepo
}

const (
	testStudentID = "stu-1"
	testBatchID   = "batch-1"
	testPersonal  = "lt-personal"
	testMedical   = "lt-medical"
)

func newFixture() *fixture {
	appRepo := newFakeApplicationRepo()
	typeRepo := newFakeTypeRepo(appRepo)
	balRepo := newFakeBalanceRepo(appRepo)
	audit := &fakeAuditRepo{}
	batchRepo := newFakeBatchRepo()
	enrollmentRepo := newFakeEnrollmentRepo()
	studentRepo := newFakeStudentRepo()

	typeRepo.types[testPersonal] = leave.LeaveType{ID: testPersonal, Name: batch.TypeNamePersonal, IsActive: true}
	typeRepo.types[testMedical] = leave.LeaveType{ID: testMedical, Name: batch.TypeNameMedical, IsActive: true}

	personalCap := 5
	batchRepo.batches[testBatchID] = batch.Batch{
		ID:             testBatchID,
		Name:           "Batch 2026-A",
		CourseID:       "course-1",
		PersonalLeaves: &personalCap,
		// MedicalLeaves nil: offered without a cap
	}

	fullName := "Asha Iyer"
	studentRepo.students[testStudentID] = student.Student{
		ID:          testStudentID,
		UserID:      "user-stu-1",
		AdmissionNo: "ADM-1001",
		FullName:    &fullName,
		BatchID:     strPtr(testBatchID),
	}
	enrollmentRepo.active[testStudentID] = batch.Enrollment{
		ID:        "enr-1",
		StudentID: testStudentID,
		BatchID:   testBatchID,
		Status:    batch.EnrollmentStatusActive,
	}

	svc := NewService(
		passthroughTxRunner{},
		typeRepo,
		balRepo,
		appRepo,
		audit,
		batchRepo,
		enrollmentRepo,
		studentRepo,
		nil,
	)

	return &fixture{
		service:  svc,
		typeRepo: typeRepo,
		appRepo:  appRepo,
		balRepo:  balRepo,
		audit:    audit,
	}
}

func strPtr(s string) *string {
	return &s
}
