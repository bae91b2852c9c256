package leave

import (
	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/domain/student"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
)

// DecisionNotifier is the post-commit hook for leave lifecycle events.
// Implementations must be non-blocking for the caller; delivery failures are
// logged, never propagated back into the reviewing transaction.
type DecisionNotifier interface {
	LeaveSubmitted(application leave.LeaveApplication)
	LeaveDecided(application leave.LeaveApplication)
}

// Service bundles the leave subsystem: the type catalog, the balance ledger
// and the application state machine.
type Service struct {
	Catalog      *CatalogService
	Balances     *BalanceService
	Applications *ApplicationService
}

func NewService(
	db database.TxRunner,
	typeRepo leave.LeaveTypeRepository,
	balanceRepo leave.LeaveBalanceRepository,
	applicationRepo leave.LeaveApplicationRepository,
	auditRepo leave.LeaveAuditLogRepository,
	batchRepo batch.BatchRepository,
	enrollmentRepo batch.EnrollmentRepository,
	studentRepo student.StudentRepository,
	notifier DecisionNotifier,
) *Service {
	balances := NewBalanceService(typeRepo, balanceRepo, batchRepo, enrollmentRepo, studentRepo)
	return &Service{
		Catalog:      NewCatalogService(typeRepo),
		Balances:     balances,
		Applications: NewApplicationService(db, applicationRepo, typeRepo, balanceRepo, auditRepo, batchRepo, enrollmentRepo, balances, notifier),
	}
}
