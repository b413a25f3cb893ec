package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/db"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/dberrors"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

const (
	departmentsPkey        = "departments_pkey"
	departmentLecturesPkey = "department_lectures_pkey"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	pg *db.PostgresDB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(pg *db.PostgresDB) *DepartmentRepository {
	return &DepartmentRepository{
		pg: pg,
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	sql, args, err := squirrel.Insert("departments").
		Columns("code", "name").
		Values(department.Code, department.Name).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building create department SQL: %w", err)
	}

	if _, err := r.pg.Pool.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, departmentsPkey) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		logger.Error().Err(err).Str("code", department.Code).Msg("Error executing create department query")
		return fmt.Errorf("error creating department: %w", err)
	}

	return nil
}

// GetByCode retrieves a department with the names of its lectures
func (r *DepartmentRepository) GetByCode(ctx context.Context, code string) (*models.Department, error) {
	sql, args, err := squirrel.Select("code", "name").
		From("departments").
		Where(squirrel.Eq{"code": code}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building get department SQL: %w", err)
	}

	var department models.Department
	err = r.pg.Pool.QueryRow(ctx, sql, args...).Scan(&department.Code, &department.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	names, err := r.lectureNames(ctx, code)
	if err != nil {
		return nil, err
	}
	department.LectureNames = names

	return &department, nil
}

func (r *DepartmentRepository) lectureNames(ctx context.Context, code string) ([]string, error) {
	sql, args, err := squirrel.Select("lecture_name").
		From("department_lectures").
		Where(squirrel.Eq{"department_code": code}).
		OrderBy("lecture_name").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building department lectures SQL: %w", err)
	}

	rows, err := r.pg.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying department lectures: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error scanning department lectures: %w", err)
	}
	return names, nil
}

// Exists checks if a department with the code exists
func (r *DepartmentRepository) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM departments WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves all departments ordered by code
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	rows, err := r.pg.Pool.Query(ctx, `
		SELECT d.code, d.name, COALESCE(array_agg(dl.lecture_name ORDER BY dl.lecture_name) FILTER (WHERE dl.lecture_name IS NOT NULL), '{}')
		FROM departments d
		LEFT JOIN department_lectures dl ON dl.department_code = d.code
		GROUP BY d.code, d.name
		ORDER BY d.code
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying departments: %w", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.Code, &department.Name, &department.LectureNames); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// AddLecture links an existing lecture to the department
func (r *DepartmentRepository) AddLecture(ctx context.Context, code, lectureName string) error {
	sql, args, err := squirrel.Insert("department_lectures").
		Columns("department_code", "lecture_name").
		Values(code, lectureName).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building department lecture SQL: %w", err)
	}

	if _, err := r.pg.Pool.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, departmentLecturesPkey) {
			return apperrors.ErrLectureAlreadyAssigned
		}
		if dberrors.IsForeignKeyError(err) {
			return fmt.Errorf("%w: department %s or lecture %s", apperrors.ErrResourceNotFound, code, lectureName)
		}
		return fmt.Errorf("error linking lecture to department: %w", err)
	}

	return nil
}

// GetLectures retrieves the lectures offered by the department
func (r *DepartmentRepository) GetLectures(ctx context.Context, code string) ([]*models.Lecture, error) {
	builder := selectLecturesQuery().
		Join("department_lectures dl ON dl.lecture_name = l.name").
		Where(squirrel.Eq{"dl.department_code": code})

	return queryLectures(ctx, r.pg.Pool, builder)
}
