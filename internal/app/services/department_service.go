package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/validation"
)

// DepartmentService handles department-related operations
type DepartmentService struct {
	departmentRepo repositories.DepartmentStore
	log            zerolog.Logger
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo repositories.DepartmentStore, log zerolog.Logger) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		log:            log.With().Str("service", "department").Logger(),
	}
}

// validateDepartment validates department data before database operations
func (s *DepartmentService) validateDepartment(department *models.Department) error {
	if department == nil {
		return apperrors.NewValidationError("department", "department is nil")
	}

	var errs []error
	if !validation.IsValidDepartmentName(department.Name) {
		errs = append(errs, apperrors.NewValidationError("name",
			fmt.Sprintf("name must be %d to %d letters or digits", validation.DepartmentNameMinLength, validation.DepartmentNameMaxLength)))
	}
	if !validation.IsValidDepartmentCode(department.Code) {
		errs = append(errs, apperrors.NewValidationError("code", "code must be exactly 6 letters or digits"))
	}
	return errors.Join(errs...)
}

// Create validates and stores a new department
func (s *DepartmentService) Create(ctx context.Context, department *models.Department) error {
	if department != nil {
		department.Code = strings.TrimSpace(department.Code)
		department.Name = strings.TrimSpace(department.Name)
	}
	if err := s.validateDepartment(department); err != nil {
		return err
	}

	exists, err := s.departmentRepo.Exists(ctx, department.Code)
	if err != nil {
		return fmt.Errorf("error checking department: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", apperrors.ErrDepartmentAlreadyExists, department.Code)
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			return fmt.Errorf("%w: %s", apperrors.ErrDepartmentAlreadyExists, department.Code)
		}
		return fmt.Errorf("error creating department: %w", err)
	}

	s.log.Info().Str("code", department.Code).Msg("Department created")
	return nil
}

// CreateDepartment reports whether the department passed every rule and was stored
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) (bool, error) {
	return outcome(s.log, "CreateDepartment", s.Create(ctx, department))
}

// GetDepartment retrieves a department by code
func (s *DepartmentService) GetDepartment(ctx context.Context, code string) (*models.Department, error) {
	return s.departmentRepo.GetByCode(ctx, strings.TrimSpace(code))
}

// ListDepartments retrieves all departments
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

// GetLectures retrieves the lectures a department offers
func (s *DepartmentService) GetLectures(ctx context.Context, code string) ([]*models.Lecture, error) {
	code = strings.TrimSpace(code)
	exists, err := s.departmentRepo.Exists(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("error checking department: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDepartmentNotFound, code)
	}
	return s.departmentRepo.GetLectures(ctx, code)
}
