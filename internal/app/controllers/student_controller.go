package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/services"
	"github.com/yigit/hostel/internal/middleware"
)

// StudentController handles student endpoints
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// ListStudents lists students, optionally filtered by name or ID
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or ID substring"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.studentService.ListStudents(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		c.logger.Error().Err(err).Msg("Returning empty student list")
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewStudentResponses(students)))
}

// ListStudentOptions lists id and name pairs for pickers
func (c *StudentController) ListStudentOptions(ctx *gin.Context) {
	options, err := c.studentService.ListStudentOptions(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Returning empty student option list")
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(options))
}

// GetStudent returns one student
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewStudentResponse(student)))
}

// CreateStudent adds a student and assigns the requested room
// @Summary Add a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Student"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 409 {object} dto.ErrorResponse "Student ID exists or room unavailable"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.AddStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Student added successfully.", dto.NewStudentResponse(student)))
}

// UpdateStudent rewrites the student stored under the path ID
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Current student ID"
// @Param request body dto.StudentRequest true "Student"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student updated successfully.", dto.NewStudentResponse(student)))
}

// DeleteStudent removes a student without payment records
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Student has payment records"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student deleted successfully.", nil))
}
