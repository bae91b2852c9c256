package student

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/domain/student"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
	"github.com/traindesk/tcms-backend-go/internal/pkg/email"
	leaveservice "github.com/traindesk/tcms-backend-go/internal/service/leave"
	"golang.org/x/crypto/bcrypt"
)

// Service manages student accounts. Creating a student is one transaction:
// the user account, the profile, the batch enrollment and the seeded leave
// balance rows all land together or not at all.
type Service struct {
	db             database.TxRunner
	userRepo       user.UserRepository
	studentRepo    student.StudentRepository
	enrollmentRepo batch.EnrollmentRepository
	batchRepo      batch.BatchRepository
	balances       *leaveservice.BalanceService
	emailService   email.EmailService
	appBaseURL     string
}

func NewService(
	db database.TxRunner,
	userRepo user.UserRepository,
	studentRepo student.StudentRepository,
	enrollmentRepo batch.EnrollmentRepository,
	batchRepo batch.BatchRepository,
	balances *leaveservice.BalanceService,
	emailService email.EmailService,
	appBaseURL string,
) *Service {
	return &Service{
		db:             db,
		userRepo:       userRepo,
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
		batchRepo:      batchRepo,
		balances:       balances,
		emailService:   emailService,
		appBaseURL:     appBaseURL,
	}
}

// Create registers a student account, enrolls it in a batch and seeds the
// leave balance rows.
func (s *Service) Create(ctx context.Context, actor user.Actor, req student.CreateStudentRequest) (student.Student, error) {
	if !actor.IsAdmin() {
		return student.Student{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return student.Student{}, err
	}

	taken, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return student.Student{}, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return student.Student{}, fmt.Errorf("email %s is already registered", req.Email)
	}

	b, err := s.batchRepo.GetByID(ctx, req.BatchID)
	if err != nil {
		return student.Student{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return student.Student{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	var created student.Student
	err = s.db.RunInTx(ctx, func(ctx context.Context) error {
		u, err := s.userRepo.Create(ctx, user.User{
			FullName:     req.FullName,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: &passwordHash,
			Role:         user.RoleStudent,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		profile := student.Student{
			UserID:      u.ID,
			AdmissionNo: req.AdmissionNo,
			Address:     req.Address,
			Guardian:    req.Guardian,
		}
		if req.DateOfBirth != nil {
			dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				return fmt.Errorf("failed to parse date of birth: %w", err)
			}
			profile.DateOfBirth = &dob
		}

		created, err = s.studentRepo.Create(ctx, profile)
		if err != nil {
			return fmt.Errorf("failed to create student: %w", err)
		}

		if _, err := s.enrollmentRepo.Create(ctx, batch.Enrollment{
			StudentID: created.ID,
			BatchID:   req.BatchID,
		}); err != nil {
			return fmt.Errorf("failed to enroll student: %w", err)
		}

		if err := s.balances.EnsureBalanceRowsForBatch(ctx, created.ID, b); err != nil {
			return err
		}

		created.FullName = &u.FullName
		created.Email = &u.Email
		created.Phone = u.Phone
		created.BatchID = &b.ID
		created.BatchName = &b.Name
		return nil
	})
	if err != nil {
		return student.Student{}, err
	}

	go func() {
		if err := s.emailService.SendWelcome(req.Email, req.FullName, b.Name, s.appBaseURL); err != nil {
			slog.Error("Failed to send welcome email", "recipient", req.Email, "error", err)
		}
	}()

	return created, nil
}

// Update edits a student profile. Admins can edit anyone; a student can only
// edit their own profile.
func (s *Service) Update(ctx context.Context, actor user.Actor, req student.UpdateStudentRequest) (student.Student, error) {
	if err := req.Validate(); err != nil {
		return student.Student{}, err
	}
	if !actor.IsAdmin() {
		if actor.StudentID == nil || *actor.StudentID != req.ID {
			return student.Student{}, user.ErrStudentAccessRequired
		}
	}

	existing, err := s.studentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return student.Student{}, err
	}

	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return student.Student{}, fmt.Errorf("failed to parse date of birth: %w", err)
		}
		existing.DateOfBirth = &dob
	}
	if req.Address != nil {
		existing.Address = req.Address
	}
	if req.Guardian != nil {
		existing.Guardian = req.Guardian
	}
	if req.PhotoPath != nil {
		existing.PhotoPath = req.PhotoPath
	}

	if err := s.studentRepo.Update(ctx, existing); err != nil {
		return student.Student{}, err
	}

	if req.FullName != nil || req.Phone != nil {
		u, err := s.userRepo.GetByID(ctx, existing.UserID)
		if err != nil {
			return student.Student{}, err
		}
		if req.FullName != nil {
			u.FullName = *req.FullName
		}
		if req.Phone != nil {
			u.Phone = req.Phone
		}
		if err := s.userRepo.Update(ctx, u); err != nil {
			return student.Student{}, err
		}
	}

	return s.studentRepo.GetByID(ctx, req.ID)
}

// List returns every student with their active batch.
func (s *Service) List(ctx context.Context, actor user.Actor) ([]student.Student, error) {
	if actor.Role == user.RoleStudent {
		return nil, user.ErrAdminAccessRequired
	}
	return s.studentRepo.List(ctx)
}

// Get returns one student by id.
func (s *Service) Get(ctx context.Context, actor user.Actor, id string) (student.Student, error) {
	if !actor.IsAdmin() && actor.Role != user.RoleTrainer {
		if actor.StudentID == nil || *actor.StudentID != id {
			return student.Student{}, user.ErrStudentAccessRequired
		}
	}
	return s.studentRepo.GetByID(ctx, id)
}

// MyProfile resolves the acting user's own student profile.
func (s *Service) MyProfile(ctx context.Context, actor user.Actor) (student.Student, error) {
	return s.studentRepo.GetByUserID(ctx, actor.UserID)
}
