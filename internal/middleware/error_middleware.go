package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// errorMappings is checked in order; the first sentinel found in the chain wins
var errorMappings = []errorMapping{
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},
	{apperrors.ErrLectureOverlap, http.StatusBadRequest, dto.ErrorCodeLectureOverlap, "Lecture time overlaps another lecture of the department"},
	{apperrors.ErrLectureNotInDepartment, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Lecture is not offered by the student's department"},
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrDepartmentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Department not found"},
	{apperrors.ErrLectureNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Lecture not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrStudentIDAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student number already exists"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrDepartmentAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Department already exists"},
	{apperrors.ErrLectureAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Lecture already exists"},
	{apperrors.ErrLectureAlreadyAssigned, http.StatusConflict, dto.ErrorCodeConflict, "Lecture is already offered by this department"},
	{apperrors.ErrAlreadyEnrolled, http.StatusConflict, dto.ErrorCodeConflict, "Student already attends this lecture"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		detail := dto.NewErrorDetail(m.code, m.message)
		if fields := fieldErrors(err); len(fields) > 0 {
			detail.WithDetails(fields)
			if len(fields) == 1 {
				detail.WithField(fields[0].Field)
			}
		} else {
			detail.WithDetails(err.Error())
		}
		c.AbortWithStatusJSON(m.status, dto.NewErrorResponse(detail))
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
}

// fieldErrors collects every field-level validation failure in the error tree
func fieldErrors(err error) []dto.FieldError {
	var out []dto.FieldError
	var walk func(error)
	walk = func(e error) {
		switch x := e.(type) {
		case nil:
		case *apperrors.CustomError:
			if field, ok := x.Details["field"].(string); ok && errors.Is(x.Err, apperrors.ErrValidationFailed) {
				out = append(out, dto.FieldError{Field: field, Message: x.Message})
			}
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}
	walk(err)
	return out
}
