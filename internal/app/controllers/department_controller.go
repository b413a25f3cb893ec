package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/middleware"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/calendar"
)

// DepartmentController handles department-related operations
type DepartmentController struct {
	departmentService *services.DepartmentService
	lectureService    *services.LectureService
	now               func() time.Time
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService *services.DepartmentService, lectureService *services.LectureService) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
		lectureService:    lectureService,
		now:               time.Now,
	}
}

// CreateDepartment handles department creation
// @Summary Create a new department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDepartmentRequest true "Department information"
// @Success 201 {object} dto.APIResponse{data=dto.DepartmentResponse} "Department created successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 409 {object} dto.APIResponse "Department already exists"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	department := req.ToModel()
	if err := c.departmentService.Create(ctx, department); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromDepartment(department)))
}

// GetDepartment retrieves a department by code
// @Summary Get department by code
// @Tags departments
// @Produce json
// @Param code path string true "Department code"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentResponse}
// @Failure 404 {object} dto.APIResponse "Department not found"
// @Router /departments/{code} [get]
func (c *DepartmentController) GetDepartment(ctx *gin.Context) {
	department, err := c.departmentService.GetDepartment(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromDepartment(department)))
}

// GetAllDepartments retrieves all departments
// @Summary Get all departments
// @Tags departments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.DepartmentResponse}
// @Router /departments [get]
func (c *DepartmentController) GetAllDepartments(ctx *gin.Context) {
	departments, err := c.departmentService.ListDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromDepartments(departments)))
}

// GetDepartmentLectures lists the lectures a department offers
// @Summary List department lectures
// @Tags departments
// @Produce json
// @Param code path string true "Department code"
// @Success 200 {object} dto.APIResponse{data=[]dto.LectureResponse}
// @Failure 404 {object} dto.APIResponse "Department not found"
// @Router /departments/{code}/lectures [get]
func (c *DepartmentController) GetDepartmentLectures(ctx *gin.Context) {
	lectures, err := c.departmentService.GetLectures(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromLectures(lectures)))
}

// AddLecture makes an existing lecture part of the department's offering
// @Summary Offer a lecture in a department
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param code path string true "Department code"
// @Param name path string true "Lecture name"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentResponse}
// @Failure 400 {object} dto.APIResponse "Lecture overlaps the department timetable"
// @Failure 404 {object} dto.APIResponse "Department or lecture not found"
// @Failure 409 {object} dto.APIResponse "Lecture already offered"
// @Router /departments/{code}/lectures/{name} [put]
func (c *DepartmentController) AddLecture(ctx *gin.Context) {
	code := ctx.Param("code")
	if err := c.lectureService.AssignDepartment(ctx, ctx.Param("name"), code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	department, err := c.departmentService.GetDepartment(ctx, code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromDepartment(department)))
}

// GetTimetable exports the department's lectures as an iCalendar feed
// @Summary Department timetable
// @Tags departments
// @Produce text/calendar
// @Param code path string true "Department code"
// @Param week query string false "Any date of the first week, YYYY-MM-DD (defaults to today)"
// @Success 200 {string} string "iCalendar document"
// @Failure 400 {object} dto.APIResponse "Invalid week"
// @Failure 404 {object} dto.APIResponse "Department not found"
// @Router /departments/{code}/timetable.ics [get]
func (c *DepartmentController) GetTimetable(ctx *gin.Context) {
	from := c.now()
	if week := ctx.Query("week"); week != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, week, from.Location())
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("week must be a date in YYYY-MM-DD format"))
			return
		}
		from = parsed
	}

	department, err := c.departmentService.GetDepartment(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	lectures, err := c.departmentService.GetLectures(ctx, department.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	feed, err := calendar.Render(department, lectures, from)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+department.Code+`.ics"`)
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
