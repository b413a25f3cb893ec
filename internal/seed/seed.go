package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// Report counts what Apply did
type Report struct {
	Departments        int `json:"departments"`
	Lectures           int `json:"lectures"`
	Students           int `json:"students"`
	DepartmentLectures int `json:"departmentLectures"`
	StudentLectures    int `json:"studentLectures"`
	Skipped            int `json:"skipped"`
	Rejected           int `json:"rejected"`
}

// isAlreadyPresent reports outcomes that mean the record was seeded before
func isAlreadyPresent(err error) bool {
	return apperrors.Is(err, apperrors.ErrDepartmentAlreadyExists,
		apperrors.ErrLectureAlreadyExists,
		apperrors.ErrStudentIDAlreadyExists,
		apperrors.ErrLectureAlreadyAssigned,
		apperrors.ErrAlreadyEnrolled,
	)
}

// Apply writes the dataset through the validation services: departments, lectures,
// department offerings, students, then enrollments. Records that already exist are skipped,
// and every other failure is collected without stopping the run.
func Apply(ctx context.Context, ds *Dataset, svc *services.Services, lgr zerolog.Logger) (Report, error) {
	var (
		report Report
		errs   []error
	)

	record := func(kind, key string, err error, created *int) {
		switch {
		case err == nil:
			*created++
		case isAlreadyPresent(err):
			report.Skipped++
			lgr.Debug().Str("kind", kind).Str("key", key).Msg("Already present, skipping")
		default:
			if services.IsRuleViolation(err) {
				report.Rejected++
			}
			lgr.Error().Err(err).Str("kind", kind).Str("key", key).Msg("Error seeding record")
			errs = append(errs, fmt.Errorf("%s %s: %w", kind, key, err))
		}
	}

	lgr.Info().Msg("Seeding departments, lectures and students...")

	for i := range ds.Departments {
		department := ds.Departments[i]
		record("department", department.Code, svc.DepartmentService.Create(ctx, &department), &report.Departments)
	}

	for i := range ds.Lectures {
		lecture := ds.Lectures[i]
		lecture.DepartmentCodes = nil
		record("lecture", lecture.Name, svc.LectureService.Create(ctx, &lecture), &report.Lectures)
	}

	for _, link := range ds.DepartmentLectures {
		err := svc.LectureService.AssignDepartment(ctx, link.LectureName, link.DepartmentCode)
		record("department lecture", link.DepartmentCode+"/"+link.LectureName, err, &report.DepartmentLectures)
	}

	for i := range ds.Students {
		student := ds.Students[i]
		record("student", student.Number, svc.StudentService.Register(ctx, &student), &report.Students)
	}

	for _, link := range ds.StudentLectures {
		err := svc.StudentService.EnrollStudent(ctx, link.StudentNumber, link.LectureName)
		record("student lecture", link.StudentNumber+"/"+link.LectureName, err, &report.StudentLectures)
	}

	lgr.Info().
		Int("departments", report.Departments).
		Int("lectures", report.Lectures).
		Int("students", report.Students).
		Int("skipped", report.Skipped).
		Int("rejected", report.Rejected).
		Msg("Seeding finished.")
	return report, errors.Join(errs...)
}
