package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/app/repositories/memory"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// ── test helpers ──

func newTestServices(t *testing.T, rules Rules) (*Services, *repositories.Repositories) {
	t.Helper()
	repos := memory.NewRepositories()
	return NewServices(repos, rules, zerolog.Nop()), repos
}

func weekday(day models.Weekday) *models.Weekday {
	return &day
}

// seedUniversity loads the two-department fixture used across the service tests
func seedUniversity(t *testing.T, svc *Services) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, svc.DepartmentService.Create(ctx, &models.Department{Code: "CS1234", Name: "ComputerScience"}))
	require.NoError(t, svc.DepartmentService.Create(ctx, &models.Department{Code: "MTH567", Name: "Mathematics"}))

	require.NoError(t, svc.LectureService.Create(ctx, &models.Lecture{Name: "Algorithms", Time: "10:00-11:30", DepartmentCodes: []string{"CS1234"}}))
	require.NoError(t, svc.LectureService.Create(ctx, &models.Lecture{Name: "Calculus", Time: "12:00-13:30", DepartmentCodes: []string{"MTH567"}}))
	require.NoError(t, svc.LectureService.Create(ctx, &models.Lecture{Name: "DataStructures", Time: "14:00-15:30", DepartmentCodes: []string{"CS1234"}}))

	require.NoError(t, svc.StudentService.Register(ctx, johnSmith()))
	require.NoError(t, svc.StudentService.Register(ctx, &models.Student{
		Number: "87654321", FirstName: "Alice", LastName: "Johnson",
		Email: "alice.johnson@example.com", DepartmentCode: "MTH567",
	}))

	require.NoError(t, svc.StudentService.EnrollStudent(ctx, "12345678", "Algorithms"))
	require.NoError(t, svc.StudentService.EnrollStudent(ctx, "12345678", "DataStructures"))
	require.NoError(t, svc.StudentService.EnrollStudent(ctx, "87654321", "Calculus"))
}

func johnSmith() *models.Student {
	return &models.Student{
		Number:         "12345678",
		FirstName:      "John",
		LastName:       "Smith",
		Email:          "john.smith@example.com",
		DepartmentCode: "CS1234",
	}
}

// failingStore reports a storage fault on every call
type failingStore struct {
	repositories.DepartmentStore
	err error
}

func (f failingStore) Exists(context.Context, string) (bool, error) {
	return false, f.err
}

func TestIsRuleViolation(t *testing.T) {
	assert.True(t, IsRuleViolation(apperrors.NewValidationError("name", "bad")))
	assert.True(t, IsRuleViolation(errors.Join(apperrors.ErrLectureOverlap)))
	assert.False(t, IsRuleViolation(errors.New("connection refused")))
	assert.False(t, IsRuleViolation(nil))
}

func TestOutcome_StorageFaultPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewDepartmentService(failingStore{err: boom}, zerolog.Nop())

	ok, err := svc.CreateDepartment(context.Background(), &models.Department{Code: "CS1234", Name: "ComputerScience"})

	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}
