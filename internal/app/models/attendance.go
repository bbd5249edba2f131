package models

import "time"

// AttendanceStatus enumerates attendance.status
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"

	// AttendanceNotMarked is never stored; it is reported for students
	// without a record on the requested day.
	AttendanceNotMarked AttendanceStatus = "Not Marked"
)

// Valid reports whether s can be stored.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// Attendance defines the model based on the 'attendance' table.
// (student_id, attendance_date) is unique.
type Attendance struct {
	ID             int64            `json:"attendanceId" db:"attendance_id"`
	StudentID      string           `json:"studentId" db:"student_id"`
	AttendanceDate time.Time        `json:"attendanceDate" db:"attendance_date"`
	Status         AttendanceStatus `json:"status" db:"status"`
}

// AttendanceSheetRow is one student's line on a single day's sheet
type AttendanceSheetRow struct {
	StudentID string           `json:"studentId"`
	Name      string           `json:"name"`
	RoomNo    *string          `json:"roomNo"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceReportRow is one stored record in a date-range report
type AttendanceReportRow struct {
	StudentID      string           `json:"studentId"`
	Name           string           `json:"name"`
	RoomNo         *string          `json:"roomNo"`
	AttendanceDate time.Time        `json:"attendanceDate"`
	Status         AttendanceStatus `json:"status"`
}
