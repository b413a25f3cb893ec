package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/controllers"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/models/dto/enums"
	"github.com/yigit/studentrecords/internal/middleware"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

// Controllers groups the HTTP handlers the router mounts
type Controllers struct {
	Department *controllers.DepartmentController
	Lecture    *controllers.LectureController
	Student    *controllers.StudentController

	// Ready reports whether the backing store is reachable; nil means always ready
	Ready func(ctx context.Context) error
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		if ctrl.Ready != nil {
			if err := ctrl.Ready(c); err != nil {
				logger.Warn().Err(err).Msg("Health check failed")
				c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeUnavailable, "Storage unavailable")))
				return
			}
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok", "time": time.Now().UTC()}))
	})

	// --- Public read routes ---
	departments := v1.Group("/departments")
	{
		departments.GET("", ctrl.Department.GetAllDepartments)
		departments.GET("/:code", ctrl.Department.GetDepartment)
		departments.GET("/:code/lectures", ctrl.Department.GetDepartmentLectures)
		departments.GET("/:code/timetable.ics", ctrl.Department.GetTimetable)
	}

	lectures := v1.Group("/lectures")
	{
		lectures.GET("", ctrl.Lecture.GetAllLectures)
		lectures.GET("/:name", ctrl.Lecture.GetLecture)
	}

	students := v1.Group("/students")
	{
		students.GET("", ctrl.Student.GetAllStudents)
		students.GET("/:number", ctrl.Student.GetStudent)
	}

	// --- Registrar routes ---
	registrar := v1.Group("")
	registrar.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(enums.RoleRegistrar))
	{
		registrar.POST("/departments", ctrl.Department.CreateDepartment)
		registrar.PUT("/departments/:code/lectures/:name", ctrl.Department.AddLecture)

		registrar.POST("/lectures", ctrl.Lecture.CreateLecture)

		registrar.POST("/students", ctrl.Student.CreateStudent)
		registrar.PUT("/students/:number/department", ctrl.Student.TransferStudent)
		registrar.PUT("/students/:number/lectures/:name", ctrl.Student.EnrollStudent)
	}
}
