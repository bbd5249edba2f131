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

// ReportController serves the dashboard, summary reports and exports
type ReportController struct {
	reportService *services.ReportService
	exportService *services.ExportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService, exportService *services.ExportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		exportService: exportService,
		logger:        logger,
	}
}

// Dashboard returns the dashboard counters. A failing query leaves the
// remaining counters at zero; the response is still 200.
// @Summary Dashboard statistics
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.DashboardStats}
// @Router /dashboard [get]
func (c *ReportController) Dashboard(ctx *gin.Context) {
	stats, err := c.reportService.DashboardStats(ctx.Request.Context())
	if err != nil {
		c.logger.Warn().Err(err).Msg("Serving partial dashboard statistics")
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(stats))
}

// DueSummary returns this month's dues
// @Summary Monthly due summary
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.DueSummaryRow}
// @Router /payments/dues [get]
func (c *ReportController) DueSummary(ctx *gin.Context) {
	rows, err := c.reportService.DueSummary(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Returning empty due summary")
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(rows))
}

// AttendanceReport returns records between two dates
// @Summary Attendance report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start query string true "YYYY-MM-DD"
// @Param end query string true "YYYY-MM-DD"
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendanceReportResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid date range"
// @Router /reports/attendance [get]
func (c *ReportController) AttendanceReport(ctx *gin.Context) {
	rows, err := c.reportService.AttendanceReport(ctx.Request.Context(), ctx.Query("start"), ctx.Query("end"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidationFailed) {
			middleware.HandleAPIError(ctx, err)
			return
		}
		c.logger.Error().Err(err).Msg("Returning empty attendance report")
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewAttendanceReportResponses(rows)))
}

// Export writes a report to a spreadsheet on the server
// @Summary Export a report
// @Description kind is one of students, rooms, payments, dues, occupancy, attendance. start and end apply to attendance only.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Report kind"
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Success 200 {object} dto.APIResponse{data=dto.ExportResponse}
// @Failure 404 {object} dto.ErrorResponse "No data to export"
// @Router /reports/{kind}/export [get]
func (c *ReportController) Export(ctx *gin.Context) {
	kind := services.ReportKind(ctx.Param("kind"))

	resp, err := c.exportService.Export(ctx.Request.Context(), kind, ctx.Query("start"), ctx.Query("end"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Exported to "+resp.FileName, resp))
}
