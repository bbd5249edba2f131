package dto

import (
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/pkg/helpers"
)

// MarkAttendanceRequest sets one student's status for one day
type MarkAttendanceRequest struct {
	StudentID string                  `json:"studentId" validate:"required"`
	Date      string                  `json:"date" validate:"required,datetime=2006-01-02"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=Present Absent"`
}

// MarkAllPresentRequest marks every student present for a day
type MarkAllPresentRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// AttendanceReportResponse is one stored record in a date-range report
type AttendanceReportResponse struct {
	StudentID      string                  `json:"studentId"`
	Name           string                  `json:"name"`
	RoomNo         *string                 `json:"roomNo"`
	AttendanceDate string                  `json:"attendanceDate"`
	Status         models.AttendanceStatus `json:"status"`
}

// NewAttendanceReportResponses maps report rows, never returning nil
func NewAttendanceReportResponses(rows []*models.AttendanceReportRow) []AttendanceReportResponse {
	out := make([]AttendanceReportResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, AttendanceReportResponse{
			StudentID:      r.StudentID,
			Name:           r.Name,
			RoomNo:         r.RoomNo,
			AttendanceDate: helpers.FormatDate(r.AttendanceDate),
			Status:         r.Status,
		})
	}
	return out
}
