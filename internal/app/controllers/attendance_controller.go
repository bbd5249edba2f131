package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/services"
	"github.com/yigit/hostel/internal/middleware"
	"github.com/yigit/hostel/internal/pkg/apperrors"
)

// AttendanceController handles daily attendance
type AttendanceController struct {
	attendanceService *services.AttendanceService
	logger            zerolog.Logger
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService, logger zerolog.Logger) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// GetSheet returns every student with their status for one day
// @Summary Attendance sheet
// @Description Lists all students with the status recorded for the date, null when unmarked. Defaults to today.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {object} dto.APIResponse{data=[]models.AttendanceSheetRow}
// @Router /attendance [get]
func (c *AttendanceController) GetSheet(ctx *gin.Context) {
	rows, err := c.attendanceService.AttendanceForDate(ctx.Request.Context(), ctx.Query("date"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidationFailed) {
			middleware.HandleAPIError(ctx, err)
			return
		}
		c.logger.Error().Err(err).Msg("Returning empty attendance sheet")
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(rows))
}

// Mark sets one student's status for a day
// @Summary Mark attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkAttendanceRequest true "Attendance"
// @Success 200 {object} dto.APIResponse
// @Router /attendance [put]
func (c *AttendanceController) Mark(ctx *gin.Context) {
	var req dto.MarkAttendanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.attendanceService.MarkAttendance(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Attendance marked.", nil))
}

// MarkAllPresent marks every student present for a day
// @Summary Mark all present
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkAllPresentRequest true "Date"
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /attendance/mark-all [post]
func (c *AttendanceController) MarkAllPresent(ctx *gin.Context) {
	var req dto.MarkAllPresentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	marked, err := c.attendanceService.MarkAllPresent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("All students marked present.", dto.CountResponse{Count: marked}))
}
