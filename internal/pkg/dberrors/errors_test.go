package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "students_pkey"}
	wrapped := fmt.Errorf("insert student: %w", pgErr)

	assert.True(t, IsDuplicateConstraintError(wrapped, "students_pkey"))
	assert.True(t, IsDuplicateConstraintError(wrapped, ""))
	assert.False(t, IsDuplicateConstraintError(wrapped, "departments_pkey"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), ""))
}

func TestIsForeignKeyError(t *testing.T) {
	assert.True(t, IsForeignKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyError(nil))
}
