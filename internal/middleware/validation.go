package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/pkg/validation"
)

// customValidations are the record rules exposed as binding tags
var customValidations = map[string]validator.Func{
	"studentnumber": func(fl validator.FieldLevel) bool {
		return validation.IsValidStudentNumber(fl.Field().String())
	},
	"deptcode": func(fl validator.FieldLevel) bool {
		return validation.IsValidDepartmentCode(fl.Field().String())
	},
	"lecturetime": func(fl validator.FieldLevel) bool {
		return validation.IsValidLectureTime(fl.Field().String())
	},
	"weekday": func(fl validator.FieldLevel) bool {
		_, ok := validation.NormalizeWeekday(fl.Field().String())
		return ok
	},
}

// RegisterValidators adds the custom tags to gin's binding validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	for tag, fn := range customValidations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return nil
}

// BindJSON binds the request body into obj and writes a 400 response when it does not validate
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// BindQuery binds query parameters into obj and writes a 400 response when they do not validate
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
