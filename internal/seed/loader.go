package seed

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/yigit/studentrecords/internal/app/models"
)

// CSV file names inside a seed directory
const (
	DepartmentsFile        = "departments.csv"
	LecturesFile           = "lectures.csv"
	StudentsFile           = "students.csv"
	DepartmentLecturesFile = "department_lectures.csv"
	StudentLecturesFile    = "student_lectures.csv"
)

//go:embed data/*.csv
var defaultData embed.FS

// Dataset is the content of one seed directory
type Dataset struct {
	Departments        []models.Department
	Lectures           []models.Lecture
	Students           []models.Student
	DepartmentLectures []models.DepartmentLecture
	StudentLectures    []models.StudentLecture
}

// Default loads the bundled sample university
func Default() (*Dataset, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads the five seed files from fsys. Entity files are required; a missing association file is empty.
func Load(fsys fs.FS) (*Dataset, error) {
	var ds Dataset

	err := readCSV(fsys, DepartmentsFile, true, []string{"DepartmentCode", "DepartmentName"}, func(get getter) error {
		ds.Departments = append(ds.Departments, models.Department{
			Code: get("DepartmentCode"),
			Name: get("DepartmentName"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = readCSV(fsys, LecturesFile, true, []string{"LectureName", "LectureTime"}, func(get getter) error {
		lecture := models.Lecture{Name: get("LectureName"), Time: get("LectureTime")}
		if day := get("Weekday"); day != "" {
			weekday := models.Weekday(day)
			lecture.Weekday = &weekday
		}
		ds.Lectures = append(ds.Lectures, lecture)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = readCSV(fsys, StudentsFile, true, []string{"StudentNumber", "FirstName", "LastName", "Email", "DepartmentCode"}, func(get getter) error {
		ds.Students = append(ds.Students, models.Student{
			Number:         get("StudentNumber"),
			FirstName:      get("FirstName"),
			LastName:       get("LastName"),
			Email:          get("Email"),
			DepartmentCode: get("DepartmentCode"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = readCSV(fsys, DepartmentLecturesFile, false, []string{"DepartmentCode", "LectureName"}, func(get getter) error {
		link := models.DepartmentLecture{DepartmentCode: get("DepartmentCode"), LectureName: get("LectureName")}
		if link.DepartmentCode == "" || link.LectureName == "" {
			return errors.New("DepartmentCode and LectureName are required")
		}
		ds.DepartmentLectures = append(ds.DepartmentLectures, link)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = readCSV(fsys, StudentLecturesFile, false, []string{"StudentNumber", "LectureName"}, func(get getter) error {
		link := models.StudentLecture{StudentNumber: get("StudentNumber"), LectureName: get("LectureName")}
		if link.StudentNumber == "" || link.LectureName == "" {
			return errors.New("StudentNumber and LectureName are required")
		}
		ds.StudentLectures = append(ds.StudentLectures, link)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ds, nil
}

// getter returns the trimmed value of a named column in the current record
type getter func(column string) string

// readCSV reads a headed CSV file and calls fn for each non-empty record
func readCSV(fsys fs.FS, name string, required bool, columns []string, fn func(get getter) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: missing header row", name)
		}
		return fmt.Errorf("%s: header: %w", name, err)
	}
	idx := headerIndex(header)
	for _, column := range columns {
		if _, ok := idx[strings.ToLower(column)]; !ok {
			return fmt.Errorf("%s: header is missing column %s", name, column)
		}
	}

	line := 1
	for {
		line++
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%s line %d: %w", name, line, err)
		}
		if isBlank(rec) {
			continue
		}

		get := func(column string) string {
			i, ok := idx[strings.ToLower(column)]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if err := fn(get); err != nil {
			return fmt.Errorf("%s line %d: %w", name, line, err)
		}
	}
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, column := range header {
		column = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(column, "\ufeff")))
		idx[column] = i
	}
	return idx
}

func isBlank(rec []string) bool {
	for _, field := range rec {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
