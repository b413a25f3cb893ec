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

// LectureService handles lecture scheduling and department offerings
type LectureService struct {
	lectureRepo    repositories.LectureStore
	departmentRepo repositories.DepartmentStore
	log            zerolog.Logger
}

// NewLectureService creates a new lecture service instance
func NewLectureService(lectureRepo repositories.LectureStore, departmentRepo repositories.DepartmentStore, log zerolog.Logger) *LectureService {
	return &LectureService{
		lectureRepo:    lectureRepo,
		departmentRepo: departmentRepo,
		log:            log.With().Str("service", "lecture").Logger(),
	}
}

// validateLecture checks the lecture fields, canonicalizes the weekday and returns the parsed time range
func (s *LectureService) validateLecture(lecture *models.Lecture) (validation.TimeRange, error) {
	if lecture == nil {
		return validation.TimeRange{}, apperrors.NewValidationError("lecture", "lecture is nil")
	}

	var errs []error
	if !validation.IsValidLectureName(lecture.Name) {
		errs = append(errs, apperrors.NewValidationError("name",
			fmt.Sprintf("name must be %d to %d characters", validation.LectureNameMinLength, validation.LectureNameMaxLength)))
	}

	timeRange, err := validation.ParseTimeRange(lecture.Time)
	if err != nil {
		errs = append(errs, apperrors.NewValidationError("time", err.Error()))
	}

	if lecture.Weekday != nil {
		day, ok := validation.NormalizeWeekday(string(*lecture.Weekday))
		if !ok {
			errs = append(errs, apperrors.NewValidationError("weekday",
				fmt.Sprintf("weekday %q must be one of Monday to Friday", *lecture.Weekday)))
		} else {
			canonical := models.Weekday(day)
			lecture.Weekday = &canonical
		}
	}

	return timeRange, errors.Join(errs...)
}

// checkFitsDepartment rejects a lecture the department already offers or one that overlaps its timetable
func (s *LectureService) checkFitsDepartment(ctx context.Context, code string, lecture *models.Lecture, timeRange validation.TimeRange) error {
	exists, err := s.departmentRepo.Exists(ctx, code)
	if err != nil {
		return fmt.Errorf("error checking department: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", apperrors.ErrDepartmentNotFound, code)
	}

	offered, err := s.departmentRepo.GetLectures(ctx, code)
	if err != nil {
		return fmt.Errorf("error loading department lectures: %w", err)
	}

	for _, other := range offered {
		if other.Name == lecture.Name {
			return fmt.Errorf("%w: %s in %s", apperrors.ErrLectureAlreadyAssigned, lecture.Name, code)
		}
		otherRange, err := validation.ParseTimeRange(other.Time)
		if err != nil {
			s.log.Warn().Err(err).Str("lecture", other.Name).Msg("Stored lecture has an unreadable time")
			continue
		}
		if validation.SharesWeekday(lecture.WeekdayString(), other.WeekdayString()) && timeRange.Overlaps(otherRange) {
			return fmt.Errorf("%w: %s %s clashes with %s %s in %s",
				apperrors.ErrLectureOverlap, lecture.Name, lecture.Time, other.Name, other.Time, code)
		}
	}
	return nil
}

// Create validates and stores a lecture together with its department offerings
func (s *LectureService) Create(ctx context.Context, lecture *models.Lecture) error {
	if lecture != nil {
		lecture.Name = strings.TrimSpace(lecture.Name)
		lecture.Time = strings.TrimSpace(lecture.Time)
	}
	timeRange, err := s.validateLecture(lecture)
	if err != nil {
		return err
	}

	exists, err := s.lectureRepo.Exists(ctx, lecture.Name)
	if err != nil {
		return fmt.Errorf("error checking lecture: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", apperrors.ErrLectureAlreadyExists, lecture.Name)
	}

	codes := make([]string, 0, len(lecture.DepartmentCodes))
	for _, code := range lecture.DepartmentCodes {
		codes = append(codes, strings.TrimSpace(code))
	}
	slices.Sort(codes)
	lecture.DepartmentCodes = slices.Compact(codes)

	for _, code := range lecture.DepartmentCodes {
		if err := s.checkFitsDepartment(ctx, code, lecture, timeRange); err != nil {
			return err
		}
	}

	if err := s.lectureRepo.Create(ctx, lecture); err != nil {
		if IsRuleViolation(err) {
			return fmt.Errorf("%w: %s", err, lecture.Name)
		}
		return fmt.Errorf("error creating lecture: %w", err)
	}

	s.log.Info().Str("lecture", lecture.Name).Strs("departments", lecture.DepartmentCodes).Msg("Lecture created")
	return nil
}

// CreateLecture reports whether the lecture passed every rule and was stored
func (s *LectureService) CreateLecture(ctx context.Context, lecture *models.Lecture) (bool, error) {
	return outcome(s.log, "CreateLecture", s.Create(ctx, lecture))
}

// AssignDepartment adds an existing lecture to a department's offerings
func (s *LectureService) AssignDepartment(ctx context.Context, lectureName, departmentCode string) error {
	lectureName = strings.TrimSpace(lectureName)
	departmentCode = strings.TrimSpace(departmentCode)

	lecture, err := s.lectureRepo.GetByName(ctx, lectureName)
	if err != nil {
		if errors.Is(err, apperrors.ErrLectureNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrLectureNotFound, lectureName)
		}
		return fmt.Errorf("error loading lecture: %w", err)
	}

	timeRange, err := validation.ParseTimeRange(lecture.Time)
	if err != nil {
		return fmt.Errorf("stored lecture %s: %w", lecture.Name, err)
	}

	if err := s.checkFitsDepartment(ctx, departmentCode, lecture, timeRange); err != nil {
		return err
	}

	if err := s.departmentRepo.AddLecture(ctx, departmentCode, lecture.Name); err != nil {
		if IsRuleViolation(err) {
			return err
		}
		return fmt.Errorf("error assigning lecture: %w", err)
	}

	s.log.Info().Str("lecture", lecture.Name).Str("department", departmentCode).Msg("Lecture assigned to department")
	return nil
}

// AddLectureToDepartment reports whether the lecture could be offered by the department
func (s *LectureService) AddLectureToDepartment(ctx context.Context, lectureName, departmentCode string) (bool, error) {
	return outcome(s.log, "AddLectureToDepartment", s.AssignDepartment(ctx, lectureName, departmentCode))
}

// GetLecture retrieves a lecture by name
func (s *LectureService) GetLecture(ctx context.Context, name string) (*models.Lecture, error) {
	return s.lectureRepo.GetByName(ctx, strings.TrimSpace(name))
}

// ListLectures retrieves all lectures, or only those of one department when departmentCode is set
func (s *LectureService) ListLectures(ctx context.Context, departmentCode string) ([]*models.Lecture, error) {
	departmentCode = strings.TrimSpace(departmentCode)
	if departmentCode != "" {
		exists, err := s.departmentRepo.Exists(ctx, departmentCode)
		if err != nil {
			return nil, fmt.Errorf("error checking department: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDepartmentNotFound, departmentCode)
		}
	}
	return s.lectureRepo.GetAll(ctx, departmentCode)
}
