package leave

import (
	"context"
	"fmt"

	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
)

// CatalogService manages the leave type catalog. Read paths are open to any
// authenticated user; mutations require an admin actor.
type CatalogService struct {
	typeRepo leave.LeaveTypeRepository
}

func NewCatalogService(typeRepo leave.LeaveTypeRepository) *CatalogService {
	return &CatalogService{typeRepo: typeRepo}
}

// ListTypes returns the active catalog. Admin callers may ask for retired
// types too.
func (s *CatalogService) ListTypes(ctx context.Context, includeInactive bool) ([]leave.LeaveType, error) {
	var (
		types []leave.LeaveType
		err   error
	)
	if includeInactive {
		types, err = s.typeRepo.List(ctx)
	} else {
		types, err = s.typeRepo.ListActive(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	return types, nil
}

func (s *CatalogService) GetType(ctx context.Context, id string) (leave.LeaveType, error) {
	return s.typeRepo.GetByID(ctx, id)
}

func (s *CatalogService) CreateType(ctx context.Context, actor user.Actor, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if !actor.IsAdmin() {
		return leave.LeaveType{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	created, err := s.typeRepo.Create(ctx, leave.LeaveType{
		Name:           req.Name,
		Description:    req.Description,
		DefaultMaxDays: req.DefaultMaxDays,
		IsActive:       true,
	})
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return created, nil
}

func (s *CatalogService) UpdateType(ctx context.Context, actor user.Actor, req leave.UpdateLeaveTypeRequest) (leave.LeaveType, error) {
	if !actor.IsAdmin() {
		return leave.LeaveType{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	existing, err := s.typeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveType{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.DefaultMaxDays != nil {
		existing.DefaultMaxDays = req.DefaultMaxDays
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.typeRepo.Update(ctx, existing); err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to update leave type: %w", err)
	}
	return existing, nil
}

// DeleteType retires a leave type. A type that applications reference is
// deactivated so the history keeps resolving; only an unreferenced type is
// removed outright.
func (s *CatalogService) DeleteType(ctx context.Context, actor user.Actor, id string) error {
	if !actor.IsAdmin() {
		return user.ErrAdminAccessRequired
	}

	referenced, err := s.typeRepo.HasApplications(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check leave type references: %w", err)
	}
	if referenced {
		existing, err := s.typeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		existing.IsActive = false
		return s.typeRepo.Update(ctx, existing)
	}

	return s.typeRepo.Delete(ctx, id)
}
