package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
)

// ApplicationService drives the leave application lifecycle. The only valid
// transitions are pending to approved and pending to rejected; both are
// terminal. Every transition appends an audit entry, and approval is the one
// place the balance ledger is decremented.
type ApplicationService struct {
	db              database.TxRunner
	applicationRepo leave.LeaveApplicationRepository
	typeRepo        leave.LeaveTypeRepository
	balanceRepo     leave.LeaveBalanceRepository
	auditRepo       leave.LeaveAuditLogRepository
	batchRepo       batch.BatchRepository
	enrollmentRepo  batch.EnrollmentRepository
	balances        *BalanceService
	notifier        DecisionNotifier
}

func NewApplicationService(
	db database.TxRunner,
	applicationRepo leave.LeaveApplicationRepository,
	typeRepo leave.LeaveTypeRepository,
	balanceRepo leave.LeaveBalanceRepository,
	auditRepo leave.LeaveAuditLogRepository,
	batchRepo batch.BatchRepository,
	enrollmentRepo batch.EnrollmentRepository,
	balances *BalanceService,
	notifier DecisionNotifier,
) *ApplicationService {
	return &ApplicationService{
		db:              db,
		applicationRepo: applicationRepo,
		typeRepo:        typeRepo,
		balanceRepo:     balanceRepo,
		auditRepo:       auditRepo,
		batchRepo:       batchRepo,
		enrollmentRepo:  enrollmentRepo,
		balances:        balances,
		notifier:        notifier,
	}
}

// Submit validates and creates a pending application for the acting student.
// Capped types are checked against the remaining balance before any write, so
// a submission can never push a balance below zero.
func (s *ApplicationService) Submit(ctx context.Context, actor user.Actor, req leave.SubmitLeaveRequest) (leave.LeaveApplication, error) {
	if actor.StudentID == nil {
		return leave.LeaveApplication{}, user.ErrStudentAccessRequired
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveApplication{}, err
	}
	studentID := *actor.StudentID

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveApplication{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveApplication{}, fmt.Errorf("failed to parse end date: %w", err)
	}
	if endDate.Before(startDate) {
		return leave.LeaveApplication{}, leave.ErrInvalidDateRange
	}
	days := leave.DaysBetween(startDate, endDate)

	leaveType, err := s.typeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	if !leaveType.IsActive {
		return leave.LeaveApplication{}, leave.ErrLeaveTypeInactive
	}

	enrollment, err := s.enrollmentRepo.GetActiveByStudent(ctx, studentID)
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	b, err := s.batchRepo.GetByID(ctx, enrollment.BatchID)
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	allowance := b.AllowanceFor(leaveType.Name)
	if !allowance.Offered {
		return leave.LeaveApplication{}, leave.ErrTypeNotOffered
	}

	var created leave.LeaveApplication
	err = s.db.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.balances.EnsureBalanceRowsForBatch(ctx, studentID, b); err != nil {
			return err
		}

		if allowance.Capped() {
			remaining, _, _, err := s.balances.Remaining(ctx, studentID, leaveType, allowance)
			if err != nil {
				return err
			}
			if remaining < days {
				return fmt.Errorf("%w: only %d %s day(s) remaining", leave.ErrInsufficientBalance, remaining, leaveType.Name)
			}
		}

		created, err = s.applicationRepo.Create(ctx, leave.LeaveApplication{
			StudentID:    studentID,
			LeaveTypeID:  leaveType.ID,
			StartDate:    startDate,
			EndDate:      endDate,
			Reason:       req.Reason,
			DocumentPath: req.DocumentPath,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave application: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	created.LeaveTypeName = &leaveType.Name
	if s.notifier != nil {
		go s.notifier.LeaveSubmitted(created)
	}

	return created, nil
}

// Review transitions a pending application to approved or rejected. The
// conditional update serializes concurrent reviewers; the loser gets
// ErrAlreadyReviewed and the ledger is decremented at most once.
func (s *ApplicationService) Review(ctx context.Context, actor user.Actor, req leave.ReviewLeaveRequest) (leave.LeaveApplication, error) {
	if !actor.IsAdmin() {
		return leave.LeaveApplication{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveApplication{}, err
	}
	decision := leave.ApplicationStatus(req.Decision)

	var reviewed leave.LeaveApplication
	err := s.db.RunInTx(ctx, func(ctx context.Context) error {
		application, err := s.applicationRepo.GetByID(ctx, req.ApplicationID)
		if err != nil {
			return err
		}
		if application.Status != leave.ApplicationStatusPending {
			return leave.ErrAlreadyReviewed
		}

		ok, err := s.applicationRepo.UpdateStatusIfPending(ctx, application.ID, decision, actor.UserID, req.Comment)
		if err != nil {
			return fmt.Errorf("failed to update application status: %w", err)
		}
		if !ok {
			// Lost the race to another reviewer.
			return leave.ErrAlreadyReviewed
		}

		if _, err := s.auditRepo.Append(ctx, leave.AuditLogEntry{
			ApplicationID:  application.ID,
			PreviousStatus: leave.ApplicationStatusPending,
			NewStatus:      decision,
			ActionBy:       actor.UserID,
			Comment:        req.Comment,
		}); err != nil {
			return fmt.Errorf("failed to append audit log: %w", err)
		}

		if decision == leave.ApplicationStatusApproved {
			if err := s.balanceRepo.DecrementAvailable(ctx, application.StudentID, application.LeaveTypeID, application.Days()); err != nil {
				return fmt.Errorf("failed to decrement balance: %w", err)
			}
		}

		now := time.Now()
		application.Status = decision
		application.ReviewedBy = &actor.UserID
		application.ReviewedAt = &now
		application.ReviewerComment = req.Comment
		reviewed = application
		return nil
	})
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	if s.notifier != nil {
		go s.notifier.LeaveDecided(reviewed)
	}

	return reviewed, nil
}

// MyApplications lists the acting student's own applications, newest first.
func (s *ApplicationService) MyApplications(ctx context.Context, actor user.Actor) ([]leave.LeaveApplication, error) {
	if actor.StudentID == nil {
		return nil, user.ErrStudentAccessRequired
	}
	return s.applicationRepo.ListByStudent(ctx, *actor.StudentID)
}

// PendingApplications lists every application awaiting review.
func (s *ApplicationService) PendingApplications(ctx context.Context, actor user.Actor) ([]leave.LeaveApplication, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminAccessRequired
	}
	return s.applicationRepo.ListPending(ctx)
}

// History lists all applications regardless of status.
func (s *ApplicationService) History(ctx context.Context, actor user.Actor) ([]leave.LeaveApplication, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminAccessRequired
	}
	return s.applicationRepo.ListAll(ctx)
}

// AuditTrail returns the transition log of one application.
func (s *ApplicationService) AuditTrail(ctx context.Context, actor user.Actor, applicationID string) ([]leave.AuditLogEntry, error) {
	if !actor.IsAdmin() {
		if actor.StudentID == nil {
			return nil, user.ErrAdminAccessRequired
		}
		application, err := s.applicationRepo.GetByID(ctx, applicationID)
		if err != nil {
			return nil, err
		}
		if application.StudentID != *actor.StudentID {
			return nil, user.ErrAdminAccessRequired
		}
	}
	return s.auditRepo.ListByApplication(ctx, applicationID)
}
