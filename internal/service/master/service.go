package master

import (
	"context"
	"fmt"
	"time"

	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/course"
	"github.com/traindesk/tcms-backend-go/internal/domain/student"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
	leaveservice "github.com/traindesk/tcms-backend-go/internal/service/leave"
)

// Service covers the master data: courses, batches and enrollments. All
// mutations are admin only.
type Service struct {
	db             database.TxRunner
	courseRepo     course.CourseRepository
	batchRepo      batch.BatchRepository
	enrollmentRepo batch.EnrollmentRepository
	studentRepo    student.StudentRepository
	balances       *leaveservice.BalanceService
}

func NewService(
	db database.TxRunner,
	courseRepo course.CourseRepository,
	batchRepo batch.BatchRepository,
	enrollmentRepo batch.EnrollmentRepository,
	studentRepo student.StudentRepository,
	balances *leaveservice.BalanceService,
) *Service {
	return &Service{
		db:             db,
		courseRepo:     courseRepo,
		batchRepo:      batchRepo,
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		balances:       balances,
	}
}

func (s *Service) ListCourses(ctx context.Context) ([]course.Course, error) {
	return s.courseRepo.List(ctx)
}

func (s *Service) GetCourse(ctx context.Context, id string) (course.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

func (s *Service) CreateCourse(ctx context.Context, actor user.Actor, req course.CreateCourseRequest) (course.Course, error) {
	if !actor.IsAdmin() {
		return course.Course{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return course.Course{}, err
	}

	return s.courseRepo.Create(ctx, course.Course{
		Name:          req.Name,
		Description:   req.Description,
		DurationWeeks: req.DurationWeeks,
	})
}

func (s *Service) UpdateCourse(ctx context.Context, actor user.Actor, req course.UpdateCourseRequest) (course.Course, error) {
	if !actor.IsAdmin() {
		return course.Course{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return course.Course{}, err
	}

	existing, err := s.courseRepo.GetByID(ctx, req.ID)
	if err != nil {
		return course.Course{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.DurationWeeks != nil {
		existing.DurationWeeks = req.DurationWeeks
	}

	if err := s.courseRepo.Update(ctx, existing); err != nil {
		return course.Course{}, err
	}
	return existing, nil
}

func (s *Service) DeleteCourse(ctx context.Context, actor user.Actor, id string) error {
	if !actor.IsAdmin() {
		return user.ErrAdminAccessRequired
	}
	return s.courseRepo.Delete(ctx, id)
}

func (s *Service) ListBatches(ctx context.Context) ([]batch.Batch, error) {
	return s.batchRepo.List(ctx)
}

func (s *Service) GetBatch(ctx context.Context, id string) (batch.Batch, error) {
	return s.batchRepo.GetByID(ctx, id)
}

// CreateBatch creates a cohort with its leave allowances. A nil allowance
// means the type is offered without a day cap.
func (s *Service) CreateBatch(ctx context.Context, actor user.Actor, req batch.CreateBatchRequest) (batch.Batch, error) {
	if !actor.IsAdmin() {
		return batch.Batch{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return batch.Batch{}, err
	}

	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return batch.Batch{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return batch.Batch{}, fmt.Errorf("failed to parse start date: %w", err)
	}

	b := batch.Batch{
		CourseID:          req.CourseID,
		Name:              req.Name,
		StartDate:         startDate,
		PersonalLeaves:    req.PersonalLeaves,
		MedicalLeaves:     req.MedicalLeaves,
		EducationalLeaves: req.EducationalLeaves,
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return batch.Batch{}, fmt.Errorf("failed to parse end date: %w", err)
		}
		b.EndDate = &endDate
	}

	return s.batchRepo.Create(ctx, b)
}

// UpdateBatch edits a batch. Allowance changes only affect balances seeded
// after the change; already seeded rows keep their caps.
func (s *Service) UpdateBatch(ctx context.Context, actor user.Actor, req batch.UpdateBatchRequest) (batch.Batch, error) {
	if !actor.IsAdmin() {
		return batch.Batch{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return batch.Batch{}, err
	}

	existing, err := s.batchRepo.GetByID(ctx, req.ID)
	if err != nil {
		return batch.Batch{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return batch.Batch{}, fmt.Errorf("failed to parse end date: %w", err)
		}
		existing.EndDate = &endDate
	}
	if req.PersonalLeaves != nil {
		existing.PersonalLeaves = req.PersonalLeaves
	}
	if req.MedicalLeaves != nil {
		existing.MedicalLeaves = req.MedicalLeaves
	}
	if req.EducationalLeaves != nil {
		existing.EducationalLeaves = req.EducationalLeaves
	}

	if err := s.batchRepo.Update(ctx, existing); err != nil {
		return batch.Batch{}, err
	}
	return existing, nil
}

func (s *Service) DeleteBatch(ctx context.Context, actor user.Actor, id string) error {
	if !actor.IsAdmin() {
		return user.ErrAdminAccessRequired
	}
	return s.batchRepo.Delete(ctx, id)
}

// BatchRoster returns the actively enrolled students of a batch.
func (s *Service) BatchRoster(ctx context.Context, actor user.Actor, batchID string) ([]batch.BatchStudent, error) {
	if actor.Role == user.RoleStudent {
		return nil, user.ErrAdminAccessRequired
	}
	return s.batchRepo.ListStudents(ctx, batchID)
}

// EnrollStudent moves a student into a batch. Any existing active enrollment
// is completed first, and leave balance rows are seeded for the new batch's
// allowances. The whole move is one transaction.
func (s *Service) EnrollStudent(ctx context.Context, actor user.Actor, req batch.EnrollStudentRequest) (batch.Enrollment, error) {
	if !actor.IsAdmin() {
		return batch.Enrollment{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return batch.Enrollment{}, err
	}

	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return batch.Enrollment{}, err
	}
	b, err := s.batchRepo.GetByID(ctx, req.BatchID)
	if err != nil {
		return batch.Enrollment{}, err
	}

	var enrollment batch.Enrollment
	err = s.db.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.enrollmentRepo.GetActiveByStudent(ctx, req.StudentID)
		if err == nil {
			if current.BatchID == req.BatchID {
				enrollment = current
				return nil
			}
			if err := s.enrollmentRepo.UpdateStatus(ctx, current.ID, batch.EnrollmentStatusCompleted); err != nil {
				return fmt.Errorf("failed to close previous enrollment: %w", err)
			}
		} else if err != batch.ErrEnrollmentNotFound {
			return err
		}

		enrollment, err = s.enrollmentRepo.Create(ctx, batch.Enrollment{
			StudentID: req.StudentID,
			BatchID:   req.BatchID,
		})
		if err != nil {
			return fmt.Errorf("failed to enroll student: %w", err)
		}

		return s.balances.EnsureBalanceRowsForBatch(ctx, req.StudentID, b)
	})
	if err != nil {
		return batch.Enrollment{}, err
	}

	return enrollment, nil
}
