package repositories

import (
	"context"

	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/db"
)

// DepartmentStore is the persistence boundary for departments and their lecture links
type DepartmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByCode(ctx context.Context, code string) (*models.Department, error)
	Exists(ctx context.Context, code string) (bool, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	AddLecture(ctx context.Context, code, lectureName string) error
	GetLectures(ctx context.Context, code string) ([]*models.Lecture, error)
}

// LectureStore is the persistence boundary for lectures
type LectureStore interface {
	// Create stores the lecture and links it to every department in DepartmentCodes
	Create(ctx context.Context, lecture *models.Lecture) error
	GetByName(ctx context.Context, name string) (*models.Lecture, error)
	Exists(ctx context.Context, name string) (bool, error)
	GetAll(ctx context.Context, departmentCode string) ([]*models.Lecture, error)
}

// StudentFilter narrows a student listing
type StudentFilter struct {
	DepartmentCode string
	Page           int
	Size           int
}

// StudentStore is the persistence boundary for students and their enrollments
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByNumber(ctx context.Context, number string) (*models.Student, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context, filter StudentFilter) ([]*models.Student, int64, error)
	// UpdateDepartment moves the student and drops enrollments the new department does not offer
	UpdateDepartment(ctx context.Context, number, departmentCode string) error
	AddLecture(ctx context.Context, number, lectureName string) error
}

// Repositories holds all the repository instances
type Repositories struct {
	DepartmentRepository DepartmentStore
	LectureRepository    LectureStore
	StudentRepository    StudentStore
}

// NewRepositories initializes all repositories
func NewRepositories(pg *db.PostgresDB) *Repositories {
	return &Repositories{
		DepartmentRepository: NewDepartmentRepository(pg),
		LectureRepository:    NewLectureRepository(pg),
		StudentRepository:    NewStudentRepository(pg),
	}
}
