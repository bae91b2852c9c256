package leave

import (
	"context"
	"fmt"

	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/domain/student"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
)

// BalanceService is the single computation path for leave balances. Used and
// pending day counts are always recomputed from applications; only the
// available column is stored, seeded lazily and decremented on approval.
type BalanceService struct {
	typeRepo       leave.LeaveTypeRepository
	balanceRepo    leave.LeaveBalanceRepository
	batchRepo      batch.BatchRepository
	enrollmentRepo batch.EnrollmentRepository
	studentRepo    student.StudentRepository
}

func NewBalanceService(
	typeRepo leave.LeaveTypeRepository,
	balanceRepo leave.LeaveBalanceRepository,
	batchRepo batch.BatchRepository,
	enrollmentRepo batch.EnrollmentRepository,
	studentRepo student.StudentRepository,
) *BalanceService {
	return &BalanceService{
		typeRepo:       typeRepo,
		balanceRepo:    balanceRepo,
		batchRepo:      batchRepo,
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
	}
}

// seedsFor derives the initial available value per catalog type. The batch
// allowance takes precedence over the catalog default; an uncapped allowance
// seeds NULL.
func (s *BalanceService) seedsFor(ctx context.Context, b batch.Batch) ([]leave.BalanceSeed, error) {
	types, err := s.typeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	seeds := make([]leave.BalanceSeed, 0, len(types))
	for _, lt := range types {
		seed := leave.BalanceSeed{LeaveTypeID: lt.ID}

		allowance := b.AllowanceFor(lt.Name)
		switch {
		case allowance.Capped():
			maxDays := allowance.MaxDays
			seed.AvailableDays = &maxDays
		case allowance.Offered:
			// Offered without a cap, keep NULL
		default:
			seed.AvailableDays = lt.DefaultMaxDays
		}

		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// EnsureBalanceRows lazily materializes one row per (student, catalog type).
// Safe to call repeatedly; existing rows keep their value.
func (s *BalanceService) EnsureBalanceRows(ctx context.Context, studentID string) error {
	enrollment, err := s.enrollmentRepo.GetActiveByStudent(ctx, studentID)
	if err != nil {
		return err
	}

	b, err := s.batchRepo.GetByID(ctx, enrollment.BatchID)
	if err != nil {
		return err
	}

	return s.EnsureBalanceRowsForBatch(ctx, studentID, b)
}

// EnsureBalanceRowsForBatch is EnsureBalanceRows with the batch already
// resolved by the caller.
func (s *BalanceService) EnsureBalanceRowsForBatch(ctx context.Context, studentID string, b batch.Batch) error {
	seeds, err := s.seedsFor(ctx, b)
	if err != nil {
		return err
	}

	if err := s.balanceRepo.EnsureRows(ctx, studentID, seeds); err != nil {
		return fmt.Errorf("failed to ensure balance rows: %w", err)
	}
	return nil
}

// Remaining computes the balance for one (student, type) under the given
// allowance. For capped types the stored available figure already nets out
// approved usage, so only pending days are subtracted. Uncapped types report
// days taken instead.
func (s *BalanceService) Remaining(ctx context.Context, studentID string, lt leave.LeaveType, allowance leave.Allowance) (remaining, used, pending int, err error) {
	used, pending, err = s.balanceRepo.UsedAndPendingDays(ctx, studentID, lt.ID)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to sum application days: %w", err)
	}

	if !allowance.Capped() {
		return used, used, pending, nil
	}

	bal, err := s.balanceRepo.GetByStudentAndType(ctx, studentID, lt.ID)
	if err != nil {
		return 0, 0, 0, err
	}

	if bal.AvailableDays != nil {
		return *bal.AvailableDays - pending, used, pending, nil
	}
	// Row was seeded before the batch introduced a cap.
	return allowance.MaxDays - used - pending, used, pending, nil
}

// StudentSummaries reports every catalog type for one student.
func (s *BalanceService) StudentSummaries(ctx context.Context, studentID string) ([]leave.BalanceSummary, error) {
	enrollment, err := s.enrollmentRepo.GetActiveByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	b, err := s.batchRepo.GetByID(ctx, enrollment.BatchID)
	if err != nil {
		return nil, err
	}

	if err := s.EnsureBalanceRowsForBatch(ctx, studentID, b); err != nil {
		return nil, err
	}

	types, err := s.typeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	summaries := make([]leave.BalanceSummary, 0, len(types))
	for _, lt := range types {
		allowance := b.AllowanceFor(lt.Name)

		remaining, used, pending, err := s.Remaining(ctx, studentID, lt, allowance)
		if err != nil {
			return nil, err
		}

		bal, err := s.balanceRepo.GetByStudentAndType(ctx, studentID, lt.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, leave.BalanceSummary{
			StudentID:     studentID,
			BatchName:     derefString(enrollment.BatchName),
			LeaveTypeID:   lt.ID,
			LeaveTypeName: lt.Name,
			Capped:        allowance.Capped(),
			AvailableDays: bal.AvailableDays,
			UsedDays:      used,
			PendingDays:   pending,
			RemainingDays: remaining,
		})
	}

	return summaries, nil
}

// AllSummaries is the admin-wide balance report across every student with an
// active enrollment.
func (s *BalanceService) AllSummaries(ctx context.Context, actor user.Actor) ([]leave.BalanceSummary, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminAccessRequired
	}

	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	all := make([]leave.BalanceSummary, 0)
	for _, st := range students {
		if st.BatchID == nil {
			continue
		}

		summaries, err := s.StudentSummaries(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		for i := range summaries {
			summaries[i].StudentName = derefString(st.FullName)
		}
		all = append(all, summaries...)
	}

	return all, nil
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
