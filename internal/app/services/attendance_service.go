package services

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/repositories"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/helpers"
	"github.com/yigit/hostel/internal/pkg/validation"
)

// AttendanceService records daily attendance
type AttendanceService struct {
	attendanceRepo *repositories.AttendanceRepository
	clock          clockwork.Clock
	logger         zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(attendanceRepo *repositories.AttendanceRepository, clock clockwork.Clock, logger zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		clock:          clock,
		logger:         logger,
	}
}

// Today returns the current calendar date
func (s *AttendanceService) Today() time.Time {
	return helpers.DateOnly(s.clock.Now())
}

// MarkAttendance stores one student's status for a day. Marking the same
// student and day again replaces the earlier status.
func (s *AttendanceService) MarkAttendance(ctx context.Context, req *dto.MarkAttendanceRequest) error {
	req.StudentID = strings.TrimSpace(req.StudentID)
	if err := validation.Struct(req); err != nil {
		return err
	}
	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	if err := s.attendanceRepo.Upsert(ctx, req.StudentID, date, req.Status); err != nil {
		s.logger.Warn().Err(err).Str("studentID", req.StudentID).Str("date", req.Date).Msg("Attendance not marked")
		return err
	}

	s.logger.Debug().Str("studentID", req.StudentID).Str("date", req.Date).Str("status", string(req.Status)).Msg("Attendance marked")
	return nil
}

// MarkAllPresent marks every student Present for the day and returns how
// many were marked. With no students it succeeds with zero.
func (s *AttendanceService) MarkAllPresent(ctx context.Context, req *dto.MarkAllPresentRequest) (int64, error) {
	if err := validation.Struct(req); err != nil {
		return 0, err
	}
	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return 0, apperrors.NewValidationError(err.Error())
	}

	marked, err := s.attendanceRepo.MarkAllPresent(ctx, date)
	if err != nil {
		s.logger.Warn().Err(err).Str("date", req.Date).Msg("Bulk attendance not marked")
		return 0, err
	}

	s.logger.Info().Str("date", req.Date).Int64("marked", marked).Msg("Marked all students present")
	return marked, nil
}

// AttendanceForDate returns the sheet for a YYYY-MM-DD date, or for today
// when date is empty
func (s *AttendanceService) AttendanceForDate(ctx context.Context, date string) ([]*models.AttendanceSheetRow, error) {
	day := s.Today()
	if strings.TrimSpace(date) != "" {
		parsed, err := helpers.ParseDate(date)
		if err != nil {
			return []*models.AttendanceSheetRow{}, apperrors.NewValidationError(err.Error())
		}
		day = parsed
	}

	rows, err := s.attendanceRepo.ForDate(ctx, day)
	if err != nil {
		s.logger.Error().Err(err).Time("date", day).Msg("Error loading attendance sheet")
		return []*models.AttendanceSheetRow{}, err
	}
	return rows, nil
}
