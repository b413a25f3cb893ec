package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/middleware"
)

// LectureController handles lecture-related operations
type LectureController struct {
	lectureService *services.LectureService
}

// NewLectureController creates a new LectureController
func NewLectureController(lectureService *services.LectureService) *LectureController {
	return &LectureController{
		lectureService: lectureService,
	}
}

// CreateLecture handles lecture creation, optionally offering it in departments right away
// @Summary Create a new lecture
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLectureRequest true "Lecture information"
// @Success 201 {object} dto.APIResponse{data=dto.LectureResponse}
// @Failure 400 {object} dto.APIResponse "Invalid lecture or timetable overlap"
// @Failure 404 {object} dto.APIResponse "Department not found"
// @Failure 409 {object} dto.APIResponse "Lecture already exists"
// @Router /lectures [post]
func (c *LectureController) CreateLecture(ctx *gin.Context) {
	var req dto.CreateLectureRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lecture := req.ToModel()
	if err := c.lectureService.Create(ctx, lecture); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromLecture(lecture)))
}

// GetLecture retrieves a lecture by name
// @Summary Get lecture by name
// @Tags lectures
// @Produce json
// @Param name path string true "Lecture name"
// @Success 200 {object} dto.APIResponse{data=dto.LectureResponse}
// @Failure 404 {object} dto.APIResponse "Lecture not found"
// @Router /lectures/{name} [get]
func (c *LectureController) GetLecture(ctx *gin.Context) {
	lecture, err := c.lectureService.GetLecture(ctx, ctx.Param("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromLecture(lecture)))
}

// GetAllLectures lists lectures, optionally those of one department
// @Summary List lectures
// @Tags lectures
// @Produce json
// @Param department query string false "Filter by department code"
// @Success 200 {object} dto.APIResponse{data=[]dto.LectureResponse}
// @Failure 404 {object} dto.APIResponse "Department not found"
// @Router /lectures [get]
func (c *LectureController) GetAllLectures(ctx *gin.Context) {
	lectures, err := c.lectureService.ListLectures(ctx, ctx.Query("department"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromLectures(lectures)))
}
