package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/validation"
)

// StudentService handles student registration, transfers and enrollment
type StudentService struct {
	studentRepo    repositories.StudentStore
	departmentRepo repositories.DepartmentStore
	lectureRepo    repositories.LectureStore
	rules          Rules
	log            zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo repositories.StudentStore,
	departmentRepo repositories.DepartmentStore,
	lectureRepo repositories.LectureStore,
	rules Rules,
	log zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		departmentRepo: departmentRepo,
		lectureRepo:    lectureRepo,
		rules:          rules,
		log:            log.With().Str("service", "student").Logger(),
	}
}

func (s *StudentService) validateStudent(student *models.Student) error {
	if student == nil {
		return apperrors.NewValidationError("student", "student is nil")
	}

	var errs []error
	nameMsg := fmt.Sprintf("must be %d to %d letters", s.nameMin(), s.nameMax())
	if !validation.IsValidPersonName(student.FirstName, s.rules.NameMinLength, s.rules.NameMaxLength) {
		errs = append(errs, apperrors.NewValidationError("firstName", "first name "+nameMsg))
	}
	if !validation.IsValidPersonName(student.LastName, s.rules.NameMinLength, s.rules.NameMaxLength) {
		errs = append(errs, apperrors.NewValidationError("lastName", "last name "+nameMsg))
	}
	if !validation.IsValidStudentNumber(student.Number) {
		errs = append(errs, apperrors.NewValidationError("number", apperrors.ErrInvalidStudentID.Error()+": exactly 8 digits required"))
	}
	if !validation.IsValidEmail(student.Email) {
		errs = append(errs, apperrors.NewValidationError("email", apperrors.ErrInvalidEmail.Error()+": expected local@domain.tld"))
	}
	if student.DepartmentCode == "" {
		errs = append(errs, apperrors.NewValidationError("departmentCode", "department code is required"))
	}
	return errors.Join(errs...)
}

func (s *StudentService) nameMin() int {
	if s.rules.NameMinLength > 0 {
		return s.rules.NameMinLength
	}
	return validation.NameMinLength
}

func (s *StudentService) nameMax() int {
	if s.rules.NameMaxLength > 0 {
		return s.rules.NameMaxLength
	}
	return validation.NameMaxLength
}

// Register validates and stores a new student
func (s *StudentService) Register(ctx context.Context, student *models.Student) error {
	if student != nil {
		student.Number = strings.TrimSpace(student.Number)
		student.FirstName = strings.TrimSpace(student.FirstName)
		student.LastName = strings.TrimSpace(student.LastName)
		student.Email = strings.TrimSpace(student.Email)
		student.DepartmentCode = strings.TrimSpace(student.DepartmentCode)
	}
	if err := s.validateStudent(student); err != nil {
		return err
	}

	departmentExists, err := s.departmentRepo.Exists(ctx, student.DepartmentCode)
	if err != nil {
		return fmt.Errorf("error checking department: %w", err)
	}
	if !departmentExists {
		return fmt.Errorf("%w: %s", apperrors.ErrDepartmentNotFound, student.DepartmentCode)
	}

	numberTaken, err := s.studentRepo.ExistsByNumber(ctx, student.Number)
	if err != nil {
		return fmt.Errorf("error checking student number: %w", err)
	}
	if numberTaken {
		return fmt.Errorf("%w: %s", apperrors.ErrStudentIDAlreadyExists, student.Number)
	}

	if !s.rules.AllowDuplicateEmail {
		emailTaken, err := s.studentRepo.ExistsByEmail(ctx, student.Email)
		if err != nil {
			return fmt.Errorf("error checking student email: %w", err)
		}
		if emailTaken {
			return fmt.Errorf("%w: %s", apperrors.ErrEmailAlreadyExists, student.Email)
		}
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if IsRuleViolation(err) {
			return fmt.Errorf("%w: %s", err, student.Number)
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	s.log.Info().Str("number", student.Number).Str("department", student.DepartmentCode).Msg("Student registered")
	return nil
}

// CreateStudent reports whether the student passed every rule and was stored
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) (bool, error) {
	return outcome(s.log, "CreateStudent", s.Register(ctx, student))
}

// TransferStudent moves a student to another existing department.
// Enrollments in lectures the new department does not offer are dropped.
func (s *StudentService) TransferStudent(ctx context.Context, number, departmentCode string) error {
	number = strings.TrimSpace(number)
	departmentCode = strings.TrimSpace(departmentCode)
	if departmentCode == "" {
		return apperrors.NewValidationError("departmentCode", "department code is required")
	}

	student, err := s.studentRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, number)
		}
		return fmt.Errorf("error loading student: %w", err)
	}

	exists, err := s.departmentRepo.Exists(ctx, departmentCode)
	if err != nil {
		return fmt.Errorf("error checking department: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", apperrors.ErrDepartmentNotFound, departmentCode)
	}

	if student.DepartmentCode == departmentCode {
		return nil
	}

	if err := s.studentRepo.UpdateDepartment(ctx, number, departmentCode); err != nil {
		if IsRuleViolation(err) {
			return err
		}
		return fmt.Errorf("error transferring student: %w", err)
	}

	s.log.Info().
		Str("number", number).
		Str("from", student.DepartmentCode).
		Str("to", departmentCode).
		Msg("Student transferred")
	return nil
}

// AddDepartmentToStudent reports whether the student could be moved to the department
func (s *StudentService) AddDepartmentToStudent(ctx context.Context, number, departmentCode string) (bool, error) {
	return outcome(s.log, "AddDepartmentToStudent", s.TransferStudent(ctx, number, departmentCode))
}

// EnrollStudent links a student to a lecture offered by the student's department
func (s *StudentService) EnrollStudent(ctx context.Context, number, lectureName string) error {
	number = strings.TrimSpace(number)
	lectureName = strings.TrimSpace(lectureName)

	student, err := s.studentRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, number)
		}
		return fmt.Errorf("error loading student: %w", err)
	}

	lecture, err := s.lectureRepo.GetByName(ctx, lectureName)
	if err != nil {
		if errors.Is(err, apperrors.ErrLectureNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrLectureNotFound, lectureName)
		}
		return fmt.Errorf("error loading lecture: %w", err)
	}

	if !slices.Contains(lecture.DepartmentCodes, student.DepartmentCode) {
		return fmt.Errorf("%w: %s is not offered by %s", apperrors.ErrLectureNotInDepartment, lecture.Name, student.DepartmentCode)
	}
	if slices.Contains(student.LectureNames, lecture.Name) {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyEnrolled, lecture.Name)
	}

	if err := s.studentRepo.AddLecture(ctx, number, lecture.Name); err != nil {
		if IsRuleViolation(err) {
			return err
		}
		return fmt.Errorf("error enrolling student: %w", err)
	}

	s.log.Info().Str("number", number).Str("lecture", lecture.Name).Msg("Student enrolled")
	return nil
}

// AddLectureToStudent reports whether the student could be enrolled in the lecture
func (s *StudentService) AddLectureToStudent(ctx context.Context, number, lectureName string) (bool, error) {
	return outcome(s.log, "AddLectureToStudent", s.EnrollStudent(ctx, number, lectureName))
}

// GetStudent retrieves a student by number
func (s *StudentService) GetStudent(ctx context.Context, number string) (*models.Student, error) {
	return s.studentRepo.GetByNumber(ctx, strings.TrimSpace(number))
}

// ListStudents retrieves one page of students, optionally of a single department
func (s *StudentService) ListStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, int64, error) {
	filter.DepartmentCode = strings.TrimSpace(filter.DepartmentCode)
	return s.studentRepo.GetAll(ctx, filter)
}
