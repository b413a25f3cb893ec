package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// Rules holds the tunable parts of the student validation rules
type Rules struct {
	AllowDuplicateEmail bool
	NameMinLength       int
	NameMaxLength       int
}

// Services bundles the validation services over one set of repositories
type Services struct {
	DepartmentService *DepartmentService
	LectureService    *LectureService
	StudentService    *StudentService
}

// NewServices wires every service to the given repositories
func NewServices(repos *repositories.Repositories, rules Rules, log zerolog.Logger) *Services {
	return &Services{
		DepartmentService: NewDepartmentService(repos.DepartmentRepository, log),
		LectureService:    NewLectureService(repos.LectureRepository, repos.DepartmentRepository, log),
		StudentService:    NewStudentService(repos.StudentRepository, repos.DepartmentRepository, repos.LectureRepository, rules, log),
	}
}

// ruleViolations are the outcomes a boolean operation reports as false
var ruleViolations = []error{
	apperrors.ErrResourceNotFound,
	apperrors.ErrDepartmentNotFound,
	apperrors.ErrDepartmentAlreadyExists,
	apperrors.ErrStudentNotFound,
	apperrors.ErrStudentIDAlreadyExists,
	apperrors.ErrEmailAlreadyExists,
	apperrors.ErrAlreadyEnrolled,
	apperrors.ErrLectureNotFound,
	apperrors.ErrLectureAlreadyExists,
	apperrors.ErrLectureAlreadyAssigned,
	apperrors.ErrLectureOverlap,
	apperrors.ErrLectureNotInDepartment,
}

// IsRuleViolation reports whether err means the request broke a record rule rather than storage failing
func IsRuleViolation(err error) bool {
	return apperrors.Is(err, apperrors.ErrValidationFailed, ruleViolations...)
}

// outcome collapses a rule violation into false and passes storage faults through
func outcome(log zerolog.Logger, op string, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case IsRuleViolation(err):
		log.Debug().Err(err).Str("operation", op).Msg("Rejected by validation rules")
		return false, nil
	default:
		log.Error().Err(err).Str("operation", op).Msg("Storage failure")
		return false, err
	}
}
