package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/middleware"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// CreateStudent registers a student in an existing department
// @Summary Register a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.APIResponse "Invalid student data"
// @Failure 404 {object} dto.APIResponse "Department not found"
// @Failure 409 {object} dto.APIResponse "Student number or email already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student := req.ToModel()
	if err := c.studentService.Register(ctx, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromStudent(student)))
}

// GetStudent retrieves a student by number
// @Summary Get student by number
// @Tags students
// @Produce json
// @Param number path string true "Student number"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /students/{number} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudent(ctx, ctx.Param("number"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromStudent(student)))
}

// GetAllStudents lists students page by page
// @Summary List students
// @Tags students
// @Produce json
// @Param department query string false "Filter by department code"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse}
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	var req dto.StudentFilterRequest
	if !middleware.BindQuery(ctx, &req) {
		return
	}

	students, total, err := c.studentService.ListStudents(ctx, repositories.StudentFilter{
		DepartmentCode: req.Department,
		Page:           req.Page,
		Size:           req.Size,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.StudentListResponse{
		Students:   dto.FromStudents(students),
		Pagination: helpers.NewPaginationInfo(total, req.Page, req.Size),
	}))
}

// TransferStudent moves a student to another department
// @Summary Transfer a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param number path string true "Student number"
// @Param request body dto.TransferStudentRequest true "Target department"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 404 {object} dto.APIResponse "Student or department not found"
// @Router /students/{number}/department [put]
func (c *StudentController) TransferStudent(ctx *gin.Context) {
	var req dto.TransferStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	number := ctx.Param("number")
	if err := c.studentService.TransferStudent(ctx, number, req.DepartmentCode); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.respondWithStudent(ctx, number)
}

// EnrollStudent adds a lecture of the student's department to the student
// @Summary Enroll a student in a lecture
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param number path string true "Student number"
// @Param name path string true "Lecture name"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.APIResponse "Lecture not offered by the student's department"
// @Failure 404 {object} dto.APIResponse "Student or lecture not found"
// @Failure 409 {object} dto.APIResponse "Already enrolled"
// @Router /students/{number}/lectures/{name} [put]
func (c *StudentController) EnrollStudent(ctx *gin.Context) {
	number := ctx.Param("number")
	if err := c.studentService.EnrollStudent(ctx, number, ctx.Param("name")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.respondWithStudent(ctx, number)
}

func (c *StudentController) respondWithStudent(ctx *gin.Context, number string) {
	student, err := c.studentService.GetStudent(ctx, number)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromStudent(student)))
}
