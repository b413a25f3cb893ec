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
	"github.com/yigit/studentrecords/internal/pkg/helpers"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

const lecturesPkey = "lectures_pkey"

// querier is satisfied by both the pool and a transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LectureRepository handles database operations for lectures
type LectureRepository struct {
	pg *db.PostgresDB
}

// NewLectureRepository creates a new lecture repository
func NewLectureRepository(pg *db.PostgresDB) *LectureRepository {
	return &LectureRepository{pg: pg}
}

// Common select query builder for lectures with their department codes
func selectLecturesQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"l.name", "l.time_range", "l.weekday",
		"COALESCE((SELECT array_agg(x.department_code ORDER BY x.department_code) FROM department_lectures x WHERE x.lecture_name = l.name), '{}') AS departments",
	).From("lectures l").
		OrderBy("l.name").
		PlaceholderFormat(squirrel.Dollar)
}

// scanLecture scans a row produced by selectLecturesQuery
func scanLecture(row pgx.Row) (*models.Lecture, error) {
	var (
		lecture models.Lecture
		weekday *string
	)
	if err := row.Scan(&lecture.Name, &lecture.Time, &weekday, &lecture.DepartmentCodes); err != nil {
		return nil, err
	}
	if weekday != nil {
		day := models.Weekday(*weekday)
		lecture.Weekday = &day
	}
	return &lecture, nil
}

func queryLectures(ctx context.Context, q querier, builder squirrel.SelectBuilder) ([]*models.Lecture, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building lectures SQL: %w", err)
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying lectures: %w", err)
	}
	defer rows.Close()

	lectures := make([]*models.Lecture, 0)
	for rows.Next() {
		lecture, err := scanLecture(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning lecture")
			return nil, err
		}
		lectures = append(lectures, lecture)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lectures, nil
}

// Create inserts the lecture and its department links in one transaction
func (r *LectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	var weekday *string
	if lecture.Weekday != nil {
		day := string(*lecture.Weekday)
		weekday = &day
	}

	insertLecture, args, err := squirrel.Insert("lectures").
		Columns("name", "time_range", "weekday").
		Values(lecture.Name, lecture.Time, helpers.GetNullString(weekday)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building create lecture SQL: %w", err)
	}

	err = r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertLecture, args...); err != nil {
			return err
		}
		if len(lecture.DepartmentCodes) == 0 {
			return nil
		}

		links := squirrel.Insert("department_lectures").
			Columns("department_code", "lecture_name").
			PlaceholderFormat(squirrel.Dollar)
		for _, code := range lecture.DepartmentCodes {
			links = links.Values(code, lecture.Name)
		}
		linkSQL, linkArgs, err := links.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, linkSQL, linkArgs...)
		return err
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, lecturesPkey) {
			return apperrors.ErrLectureAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, departmentLecturesPkey) {
			return apperrors.ErrLectureAlreadyAssigned
		}
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Str("lecture", lecture.Name).Msg("Error creating lecture")
		return fmt.Errorf("error creating lecture: %w", err)
	}

	return nil
}

// GetByName retrieves a lecture by its name
func (r *LectureRepository) GetByName(ctx context.Context, name string) (*models.Lecture, error) {
	sqlStr, args, err := selectLecturesQuery().Where(squirrel.Eq{"l.name": name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building get lecture SQL: %w", err)
	}

	lecture, err := scanLecture(r.pg.Pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLectureNotFound
		}
		return nil, fmt.Errorf("error retrieving lecture: %w", err)
	}
	return lecture, nil
}

// Exists checks if a lecture with the name exists
func (r *LectureRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM lectures WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking lecture existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves lectures, optionally only those offered by one department
func (r *LectureRepository) GetAll(ctx context.Context, departmentCode string) ([]*models.Lecture, error) {
	builder := selectLecturesQuery()
	if departmentCode != "" {
		builder = builder.
			Join("department_lectures dl ON dl.lecture_name = l.name").
			Where(squirrel.Eq{"dl.department_code": departmentCode})
	}
	return queryLectures(ctx, r.pg.Pool, builder)
}
