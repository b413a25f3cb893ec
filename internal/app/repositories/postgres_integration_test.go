//go:build integration

package repositories_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/db/testdb"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/seed"
)

var pg *testdb.PostgresContainer

func TestMain(m *testing.M) {
	ctx := context.Background()
	var err error
	pg, err = testdb.Start(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := m.Run()
	pg.Terminate(ctx)
	os.Exit(code)
}

func setup(t *testing.T) *repositories.Repositories {
	t.Helper()
	pg.CleanupTables(t)
	return repositories.NewRepositories(pg.DB)
}

func TestPostgres_DepartmentsAndLectures(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()
	monday := models.Monday

	require.NoError(t, repos.DepartmentRepository.Create(ctx, &models.Department{Code: "CS1234", Name: "ComputerScience"}))
	err := repos.DepartmentRepository.Create(ctx, &models.Department{Code: "CS1234", Name: "Again"})
	assert.ErrorIs(t, err, apperrors.ErrDepartmentAlreadyExists)

	require.NoError(t, repos.LectureRepository.Create(ctx, &models.Lecture{
		Name: "Algorithms", Time: "10:00-11:30", Weekday: &monday, DepartmentCodes: []string{"CS1234"},
	}))

	lecture, err := repos.LectureRepository.GetByName(ctx, "Algorithms")
	require.NoError(t, err)
	assert.Equal(t, "Monday", lecture.WeekdayString())
	assert.Equal(t, []string{"CS1234"}, lecture.DepartmentCodes)

	err = repos.LectureRepository.Create(ctx, &models.Lecture{Name: "Calculus", Time: "09:00-10:00", DepartmentCodes: []string{"CS1234", "ENG999"}})
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
	exists, err := repos.LectureRepository.Exists(ctx, "Calculus")
	require.NoError(t, err)
	assert.False(t, exists, "failed create must leave no lecture behind")

	assert.ErrorIs(t, repos.DepartmentRepository.AddLecture(ctx, "CS1234", "Algorithms"), apperrors.ErrLectureAlreadyAssigned)

	lectures, err := repos.DepartmentRepository.GetLectures(ctx, "CS1234")
	require.NoError(t, err)
	require.Len(t, lectures, 1)

	_, err = repos.DepartmentRepository.GetByCode(ctx, "ENG999")
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

func TestPostgres_StudentsTransferPrunesEnrollments(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	require.NoError(t, repos.DepartmentRepository.Create(ctx, &models.Department{Code: "CS1234", Name: "ComputerScience"}))
	require.NoError(t, repos.DepartmentRepository.Create(ctx, &models.Department{Code: "MTH567", Name: "Mathematics"}))
	require.NoError(t, repos.LectureRepository.Create(ctx, &models.Lecture{Name: "Algorithms", Time: "10:00-11:30", DepartmentCodes: []string{"CS1234"}}))
	require.NoError(t, repos.LectureRepository.Create(ctx, &models.Lecture{Name: "Discrete", Time: "13:00-14:00", DepartmentCodes: []string{"CS1234", "MTH567"}}))

	student := &models.Student{Number: "12345678", FirstName: "John", LastName: "Smith", Email: "John.Smith@example.com", DepartmentCode: "CS1234"}
	require.NoError(t, repos.StudentRepository.Create(ctx, student))
	assert.ErrorIs(t, repos.StudentRepository.Create(ctx, student), apperrors.ErrStudentIDAlreadyExists)

	taken, err := repos.StudentRepository.ExistsByEmail(ctx, "john.smith@EXAMPLE.com")
	require.NoError(t, err)
	assert.True(t, taken)

	require.NoError(t, repos.StudentRepository.AddLecture(ctx, "12345678", "Algorithms"))
	require.NoError(t, repos.StudentRepository.AddLecture(ctx, "12345678", "Discrete"))
	assert.ErrorIs(t, repos.StudentRepository.AddLecture(ctx, "12345678", "Discrete"), apperrors.ErrAlreadyEnrolled)

	require.NoError(t, repos.StudentRepository.UpdateDepartment(ctx, "12345678", "MTH567"))

	moved, err := repos.StudentRepository.GetByNumber(ctx, "12345678")
	require.NoError(t, err)
	assert.Equal(t, "MTH567", moved.DepartmentCode)
	assert.Equal(t, []string{"Discrete"}, moved.LectureNames)

	page, total, err := repos.StudentRepository.GetAll(ctx, repositories.StudentFilter{DepartmentCode: "MTH567", Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, page, 1)
}

func TestPostgres_SeedThroughServices(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	ds, err := seed.Default()
	require.NoError(t, err)
	svc := services.NewServices(repos, services.Rules{}, zerolog.Nop())

	report, err := seed.Apply(ctx, ds, svc, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Students)

	ok, err := svc.StudentService.AddLectureToStudent(ctx, "12345678", "Calculus")
	require.NoError(t, err)
	assert.False(t, ok)
}
