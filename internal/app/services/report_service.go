package services

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/repositories"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/helpers"
)

// ReportService computes dashboard counters and summary reports.
// Nothing is cached; every call queries the database again.
type ReportService struct {
	reportRepo     *repositories.ReportRepository
	attendanceRepo *repositories.AttendanceRepository
	clock          clockwork.Clock
	logger         zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo *repositories.ReportRepository,
	attendanceRepo *repositories.AttendanceRepository,
	clock clockwork.Clock,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		reportRepo:     reportRepo,
		attendanceRepo: attendanceRepo,
		clock:          clock,
		logger:         logger,
	}
}

type statStep struct {
	name string
	run  func(ctx context.Context) error
}

// DashboardStats gathers the dashboard counters in a fixed order. On the
// first failing query it stops, logs the failure, and returns the counters
// gathered so far together with the error.
func (s *ReportService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	today := helpers.DateOnly(s.clock.Now())
	monthStart, monthEnd := helpers.MonthBounds(today)

	count := func(dst *int64, fn func(context.Context) (int64, error)) func(context.Context) error {
		return func(ctx context.Context) (err error) {
			*dst, err = fn(ctx)
			return err
		}
	}
	byStatus := func(status models.RoomStatus) func(context.Context) (int64, error) {
		return func(ctx context.Context) (int64, error) {
			return s.reportRepo.CountRoomsByStatus(ctx, status)
		}
	}
	attendance := func(status models.AttendanceStatus) func(context.Context) (int64, error) {
		return func(ctx context.Context) (int64, error) {
			return s.reportRepo.CountAttendance(ctx, today, status)
		}
	}

	steps := []statStep{
		{"total students", count(&stats.TotalStudents, s.reportRepo.CountStudents)},
		{"total staff", count(&stats.TotalStaff, s.reportRepo.CountStaff)},
		{"total rooms", count(&stats.TotalRooms, s.reportRepo.CountRooms)},
		{"occupied rooms", count(&stats.OccupiedRooms, s.reportRepo.CountOccupiedRooms)},
		{"available rooms", count(&stats.AvailableRooms, byStatus(models.RoomStatusAvailable))},
		{"full rooms", count(&stats.FullRooms, byStatus(models.RoomStatusFull))},
		{"maintenance rooms", count(&stats.MaintenanceRooms, byStatus(models.RoomStatusMaintenance))},
		{"total revenue", func(ctx context.Context) (err error) {
			stats.TotalRevenue, err = s.reportRepo.TotalRevenue(ctx)
			return err
		}},
		{"monthly revenue", func(ctx context.Context) (err error) {
			stats.MonthlyRevenue, err = s.reportRepo.RevenueBetween(ctx, monthStart, monthEnd)
			return err
		}},
		{"present today", count(&stats.PresentToday, attendance(models.AttendancePresent))},
		{"absent today", count(&stats.AbsentToday, attendance(models.AttendanceAbsent))},
	}

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			s.logger.Error().Err(err).Str("statistic", step.name).Msg("Dashboard statistics incomplete")
			return stats, err
		}
	}
	return stats, nil
}

// DueSummary returns this month's balance for every student with a room,
// largest due first
func (s *ReportService) DueSummary(ctx context.Context) ([]*models.DueSummaryRow, error) {
	from, to := helpers.MonthBounds(helpers.DateOnly(s.clock.Now()))

	rows, err := s.reportRepo.DueSummary(ctx, from, to)
	if err != nil {
		s.logger.Error().Err(err).Time("month", from).Msg("Error computing due summary")
		return []*models.DueSummaryRow{}, err
	}
	return rows, nil
}

// AttendanceReport returns stored records between start and end inclusive,
// both YYYY-MM-DD
func (s *ReportService) AttendanceReport(ctx context.Context, start, end string) ([]*models.AttendanceReportRow, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return []*models.AttendanceReportRow{}, err
	}

	rows, err := s.attendanceRepo.Range(ctx, from, to)
	if err != nil {
		s.logger.Error().Err(err).Str("start", start).Str("end", end).Msg("Error loading attendance report")
		return []*models.AttendanceReportRow{}, err
	}
	return rows, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	from, err := helpers.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("start: " + err.Error())
	}
	to, err := helpers.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("end: " + err.Error())
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("Start date must not be after end date.")
	}
	return from, to, nil
}
