// Package memory keeps records in process memory. It backs tests and dry-run imports.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
)

// Store holds every table behind one lock so multi-table writes stay atomic
type Store struct {
	mu sync.RWMutex

	departments map[string]models.Department
	lectures    map[string]models.Lecture
	students    map[string]models.Student

	departmentLectures map[models.DepartmentLecture]struct{}
	studentLectures    map[models.StudentLecture]struct{}
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		departments:        make(map[string]models.Department),
		lectures:           make(map[string]models.Lecture),
		students:           make(map[string]models.Student),
		departmentLectures: make(map[models.DepartmentLecture]struct{}),
		studentLectures:    make(map[models.StudentLecture]struct{}),
	}
}

// NewRepositories returns repositories backed by a fresh store
func NewRepositories() *repositories.Repositories {
	return NewStore().Repositories()
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		DepartmentRepository: &departmentRepository{s},
		LectureRepository:    &lectureRepository{s},
		StudentRepository:    &studentRepository{s},
	}
}

func (s *Store) lecturesOf(code string) []string {
	var names []string
	for link := range s.departmentLectures {
		if link.DepartmentCode == code {
			names = append(names, link.LectureName)
		}
	}
	sort.Strings(names)
	return names
}

func (s *Store) departmentsOf(lectureName string) []string {
	var codes []string
	for link := range s.departmentLectures {
		if link.LectureName == lectureName {
			codes = append(codes, link.DepartmentCode)
		}
	}
	sort.Strings(codes)
	return codes
}

func (s *Store) enrollmentsOf(number string) []string {
	var names []string
	for link := range s.studentLectures {
		if link.StudentNumber == number {
			names = append(names, link.LectureName)
		}
	}
	sort.Strings(names)
	return names
}

func (s *Store) lecture(name string) *models.Lecture {
	lecture := s.lectures[name]
	if lecture.Weekday != nil {
		day := *lecture.Weekday
		lecture.Weekday = &day
	}
	lecture.DepartmentCodes = s.departmentsOf(name)
	return &lecture
}

type departmentRepository struct{ s *Store }

func (r *departmentRepository) Create(_ context.Context, department *models.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.departments[department.Code]; ok {
		return apperrors.ErrDepartmentAlreadyExists
	}
	r.s.departments[department.Code] = models.Department{Code: department.Code, Name: department.Name}
	return nil
}

func (r *departmentRepository) GetByCode(_ context.Context, code string) (*models.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	department, ok := r.s.departments[code]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	department.LectureNames = r.s.lecturesOf(code)
	return &department, nil
}

func (r *departmentRepository) Exists(_ context.Context, code string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.departments[code]
	return ok, nil
}

func (r *departmentRepository) GetAll(_ context.Context) ([]*models.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	departments := make([]*models.Department, 0, len(r.s.departments))
	for code, department := range r.s.departments {
		department.LectureNames = r.s.lecturesOf(code)
		departments = append(departments, &department)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Code < departments[j].Code })
	return departments, nil
}

func (r *departmentRepository) AddLecture(_ context.Context, code, lectureName string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.departments[code]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	if _, ok := r.s.lectures[lectureName]; !ok {
		return apperrors.ErrLectureNotFound
	}
	link := models.DepartmentLecture{DepartmentCode: code, LectureName: lectureName}
	if _, ok := r.s.departmentLectures[link]; ok {
		return apperrors.ErrLectureAlreadyAssigned
	}
	r.s.departmentLectures[link] = struct{}{}
	return nil
}

func (r *departmentRepository) GetLectures(_ context.Context, code string) ([]*models.Lecture, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	names := r.s.lecturesOf(code)
	lectures := make([]*models.Lecture, 0, len(names))
	for _, name := range names {
		lectures = append(lectures, r.s.lecture(name))
	}
	return lectures, nil
}

type lectureRepository struct{ s *Store }

func (r *lectureRepository) Create(_ context.Context, lecture *models.Lecture) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.lectures[lecture.Name]; ok {
		return apperrors.ErrLectureAlreadyExists
	}
	for _, code := range lecture.DepartmentCodes {
		if _, ok := r.s.departments[code]; !ok {
			return apperrors.ErrDepartmentNotFound
		}
	}

	stored := models.Lecture{Name: lecture.Name, Time: lecture.Time}
	if lecture.Weekday != nil {
		day := *lecture.Weekday
		stored.Weekday = &day
	}
	r.s.lectures[lecture.Name] = stored
	for _, code := range lecture.DepartmentCodes {
		r.s.departmentLectures[models.DepartmentLecture{DepartmentCode: code, LectureName: lecture.Name}] = struct{}{}
	}
	return nil
}

func (r *lectureRepository) GetByName(_ context.Context, name string) (*models.Lecture, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.lectures[name]; !ok {
		return nil, apperrors.ErrLectureNotFound
	}
	return r.s.lecture(name), nil
}

func (r *lectureRepository) Exists(_ context.Context, name string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.lectures[name]
	return ok, nil
}

func (r *lectureRepository) GetAll(_ context.Context, departmentCode string) ([]*models.Lecture, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var names []string
	if departmentCode != "" {
		names = r.s.lecturesOf(departmentCode)
	} else {
		for name := range r.s.lectures {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	lectures := make([]*models.Lecture, 0, len(names))
	for _, name := range names {
		lectures = append(lectures, r.s.lecture(name))
	}
	return lectures, nil
}

type studentRepository struct{ s *Store }

func (r *studentRepository) Create(_ context.Context, student *models.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.students[student.Number]; ok {
		return apperrors.ErrStudentIDAlreadyExists
	}
	if _, ok := r.s.departments[student.DepartmentCode]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	stored := *student
	stored.LectureNames = nil
	r.s.students[student.Number] = stored
	return nil
}

func (r *studentRepository) GetByNumber(_ context.Context, number string) (*models.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	student, ok := r.s.students[number]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	student.LectureNames = r.s.enrollmentsOf(number)
	return &student, nil
}

func (r *studentRepository) ExistsByNumber(_ context.Context, number string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.students[number]
	return ok, nil
}

func (r *studentRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, student := range r.s.students {
		if strings.EqualFold(student.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *studentRepository) GetAll(_ context.Context, filter repositories.StudentFilter) ([]*models.Student, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.Student
	for number, student := range r.s.students {
		if filter.DepartmentCode != "" && student.DepartmentCode != filter.DepartmentCode {
			continue
		}
		student.LectureNames = r.s.enrollmentsOf(number)
		matched = append(matched, &student)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Number < matched[j].Number })

	_, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	start, end := helpers.CalculateSliceIndices(filter.Page, limit, len(matched))
	return slices.Clone(matched[start:end]), int64(len(matched)), nil
}

func (r *studentRepository) UpdateDepartment(_ context.Context, number, departmentCode string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	student, ok := r.s.students[number]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if _, ok := r.s.departments[departmentCode]; !ok {
		return apperrors.ErrDepartmentNotFound
	}

	student.DepartmentCode = departmentCode
	r.s.students[number] = student
	for link := range r.s.studentLectures {
		if link.StudentNumber != number {
			continue
		}
		offered := models.DepartmentLecture{DepartmentCode: departmentCode, LectureName: link.LectureName}
		if _, ok := r.s.departmentLectures[offered]; !ok {
			delete(r.s.studentLectures, link)
		}
	}
	return nil
}

func (r *studentRepository) AddLecture(_ context.Context, number, lectureName string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.students[number]; !ok {
		return apperrors.ErrStudentNotFound
	}
	if _, ok := r.s.lectures[lectureName]; !ok {
		return apperrors.ErrLectureNotFound
	}
	link := models.StudentLecture{StudentNumber: number, LectureName: lectureName}
	if _, ok := r.s.studentLectures[link]; ok {
		return apperrors.ErrAlreadyEnrolled
	}
	r.s.studentLectures[link] = struct{}{}
	return nil
}
