package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/db"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/dberrors"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

const (
	studentsPkey        = "students_pkey"
	studentLecturesPkey = "student_lectures_pkey"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	pg *db.PostgresDB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(pg *db.PostgresDB) *StudentRepository {
	return &StudentRepository{pg: pg}
}

func selectStudentsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"s.number", "s.first_name", "s.last_name", "s.email", "s.department_code",
		"COALESCE((SELECT array_agg(x.lecture_name ORDER BY x.lecture_name) FROM student_lectures x WHERE x.student_number = s.number), '{}') AS lectures",
	).From("students s").
		PlaceholderFormat(squirrel.Dollar)
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.Number, &student.FirstName, &student.LastName,
		&student.Email, &student.DepartmentCode, &student.LectureNames,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sqlStr, args, err := squirrel.Insert("students").
		Columns("number", "first_name", "last_name", "email", "department_code").
		Values(student.Number, student.FirstName, student.LastName, student.Email, student.DepartmentCode).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building create student SQL: %w", err)
	}

	if _, err := r.pg.Pool.Exec(ctx, sqlStr, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentsPkey) {
			return apperrors.ErrStudentIDAlreadyExists
		}
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Str("number", student.Number).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByNumber retrieves a student with their lecture names
func (r *StudentRepository) GetByNumber(ctx context.Context, number string) (*models.Student, error) {
	sqlStr, args, err := selectStudentsQuery().Where(squirrel.Eq{"s.number": number}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building get student SQL: %w", err)
	}

	student, err := scanStudent(r.pg.Pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// ExistsByNumber checks if a student number is taken
func (r *StudentRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// ExistsByEmail checks if an email is taken, ignoring case
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE LOWER(email) = $1)`,
		strings.ToLower(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student email: %w", err)
	}
	return exists, nil
}

// GetAll retrieves one page of students and the total count matching the filter
func (r *StudentRepository) GetAll(ctx context.Context, filter StudentFilter) ([]*models.Student, int64, error) {
	builder := selectStudentsQuery().OrderBy("s.number")
	countBuilder := squirrel.Select("count(*)").From("students s").PlaceholderFormat(squirrel.Dollar)
	if filter.DepartmentCode != "" {
		builder = builder.Where(squirrel.Eq{"s.department_code": filter.DepartmentCode})
		countBuilder = countBuilder.Where(squirrel.Eq{"s.department_code": filter.DepartmentCode})
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count students SQL: %w", err)
	}
	var total int64
	if err := r.pg.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	sqlStr, args, err := builder.Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building list students SQL: %w", err)
	}

	rows, err := r.pg.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0, limit)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// UpdateDepartment moves the student to another department and drops enrollments
// in lectures the new department does not offer, in one transaction
func (r *StudentRepository) UpdateDepartment(ctx context.Context, number, departmentCode string) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE students SET department_code = $1 WHERE number = $2`, departmentCode, number)
		if err != nil {
			if dberrors.IsForeignKeyError(err) {
				return apperrors.ErrDepartmentNotFound
			}
			return fmt.Errorf("error updating student department: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM student_lectures sl
			WHERE sl.student_number = $1
			AND NOT EXISTS (
				SELECT 1 FROM department_lectures dl
				WHERE dl.department_code = $2 AND dl.lecture_name = sl.lecture_name
			)`, number, departmentCode)
		if err != nil {
			return fmt.Errorf("error pruning student lectures: %w", err)
		}
		return nil
	})
}

// AddLecture enrolls the student in a lecture
func (r *StudentRepository) AddLecture(ctx context.Context, number, lectureName string) error {
	sqlStr, args, err := squirrel.Insert("student_lectures").
		Columns("student_number", "lecture_name").
		Values(number, lectureName).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building enroll student SQL: %w", err)
	}

	if _, err := r.pg.Pool.Exec(ctx, sqlStr, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentLecturesPkey) {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyError(err) {
			return fmt.Errorf("%w: student %s or lecture %s", apperrors.ErrResourceNotFound, number, lectureName)
		}
		return fmt.Errorf("error enrolling student: %w", err)
	}
	return nil
}
