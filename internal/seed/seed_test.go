package seed

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/app/repositories/memory"
	"github.com/yigit/studentrecords/internal/app/services"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	require.Len(t, ds.Departments, 2)
	assert.Equal(t, models.Department{Code: "CS1234", Name: "ComputerScience"}, ds.Departments[0])
	assert.Equal(t, models.Department{Code: "MTH567", Name: "Mathematics"}, ds.Departments[1])

	require.Len(t, ds.Lectures, 3)
	assert.Equal(t, "Algorithms", ds.Lectures[0].Name)
	assert.Equal(t, "10:00-11:30", ds.Lectures[0].Time)
	assert.Nil(t, ds.Lectures[0].Weekday)

	require.Len(t, ds.Students, 2)
	assert.Equal(t, models.Student{
		Number: "12345678", FirstName: "John", LastName: "Smith",
		Email: "john.smith@example.com", DepartmentCode: "CS1234",
	}, ds.Students[0])

	assert.Len(t, ds.DepartmentLectures, 3)
	assert.Contains(t, ds.StudentLectures, models.StudentLecture{StudentNumber: "87654321", LectureName: "Calculus"})
}

func TestLoad_HeaderColumnsByName(t *testing.T) {
	fsys := fstest.MapFS{
		DepartmentsFile: {Data: []byte("\ufeffDepartmentName,DepartmentCode\nPhysics,PHY101\n")},
		LecturesFile:    {Data: []byte("LectureName,LectureTime,Weekday\nMechanics,08:00-09:30,tuesday\n")},
		StudentsFile:    {Data: []byte("StudentNumber,FirstName,LastName,Email,DepartmentCode\n")},
	}

	ds, err := Load(fsys)
	require.NoError(t, err)

	require.Len(t, ds.Departments, 1)
	assert.Equal(t, "PHY101", ds.Departments[0].Code)
	assert.Equal(t, "Physics", ds.Departments[0].Name)
	require.NotNil(t, ds.Lectures[0].Weekday)
	assert.Equal(t, models.Weekday("tuesday"), *ds.Lectures[0].Weekday)
	assert.Empty(t, ds.Students)
	assert.Empty(t, ds.DepartmentLectures)
	assert.Empty(t, ds.StudentLectures)
}

func TestLoad_Errors(t *testing.T) {
	valid := fstest.MapFS{
		DepartmentsFile: {Data: []byte("DepartmentCode,DepartmentName\nCS1234,ComputerScience\n")},
		LecturesFile:    {Data: []byte("LectureName,LectureTime,Weekday\n")},
		StudentsFile:    {Data: []byte("StudentNumber,FirstName,LastName,Email,DepartmentCode\n")},
	}
	with := func(name, content string) fstest.MapFS {
		fsys := fstest.MapFS{}
		for k, v := range valid {
			fsys[k] = v
		}
		if content == "" {
			delete(fsys, name)
		} else {
			fsys[name] = &fstest.MapFile{Data: []byte(content)}
		}
		return fsys
	}

	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr string
	}{
		{"missing required file", with(StudentsFile, ""), StudentsFile},
		{"missing header column", with(DepartmentsFile, "Code,Name\nCS1234,ComputerScience\n"), "missing column DepartmentCode"},
		{"empty file", with(LecturesFile, " "), LecturesFile},
		{"wrong field count", with(DepartmentsFile, "DepartmentCode,DepartmentName\nCS1234\n"), "departments.csv line 2"},
		{"blank association key", with(StudentLecturesFile, "StudentNumber,LectureName\n12345678,\n"), "student_lectures.csv line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fsys)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func newServices() (*services.Services, *repositories.Repositories) {
	repos := memory.NewRepositories()
	return services.NewServices(repos, services.Rules{}, zerolog.Nop()), repos
}

func TestApply_DefaultDataset(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)
	svc, repos := newServices()
	ctx := context.Background()

	report, err := Apply(ctx, ds, svc, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Report{Departments: 2, Lectures: 3, Students: 2, DepartmentLectures: 3, StudentLectures: 3}, report)

	john, err := repos.StudentRepository.GetByNumber(ctx, "12345678")
	require.NoError(t, err)
	assert.Equal(t, []string{"Algorithms", "DataStructures"}, john.LectureNames)

	cs, err := repos.DepartmentRepository.GetByCode(ctx, "CS1234")
	require.NoError(t, err)
	assert.Equal(t, []string{"Algorithms", "DataStructures"}, cs.LectureNames)

	t.Run("second run skips everything", func(t *testing.T) {
		report, err := Apply(ctx, ds, svc, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, Report{Skipped: 13}, report)
	})
}

func TestApply_CollectsRejections(t *testing.T) {
	ds := &Dataset{
		Departments: []models.Department{{Code: "CS1234", Name: "ComputerScience"}, {Code: "CS12", Name: "Broken"}},
		Lectures: []models.Lecture{
			{Name: "Algorithms", Time: "10:00-11:30"},
			{Name: "DataStructures", Time: "11:00-12:30"},
		},
		DepartmentLectures: []models.DepartmentLecture{
			{DepartmentCode: "CS1234", LectureName: "Algorithms"},
			{DepartmentCode: "CS1234", LectureName: "DataStructures"},
		},
		Students: []models.Student{
			{Number: "12345678", FirstName: "John", LastName: "Smith", Email: "john.smith@example.com", DepartmentCode: "CS1234"},
			{Number: "1234567", FirstName: "Jo1n", LastName: "Smith", Email: "bad", DepartmentCode: "CS1234"},
		},
	}
	svc, _ := newServices()

	report, err := Apply(context.Background(), ds, svc, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "department CS12")
	assert.Contains(t, err.Error(), "department lecture CS1234/DataStructures")
	assert.Contains(t, err.Error(), "student 1234567")
	assert.Equal(t, 3, report.Rejected)
	assert.Equal(t, 1, report.Departments)
	assert.Equal(t, 2, report.Lectures)
	assert.Equal(t, 1, report.DepartmentLectures)
	assert.Equal(t, 1, report.Students)
}
