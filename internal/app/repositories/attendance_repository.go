package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/dberrors"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// AttendanceRepository handles attendance database operations
type AttendanceRepository struct {
	db db.Querier
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(q db.Querier) *AttendanceRepository {
	return &AttendanceRepository{
		db: q,
	}
}

// WithTx returns a copy bound to tx
func (r *AttendanceRepository) WithTx(tx pgx.Tx) *AttendanceRepository {
	return &AttendanceRepository{db: tx}
}

// Upsert records status for one student and day, replacing any earlier mark
func (r *AttendanceRepository) Upsert(ctx context.Context, studentID string, date time.Time, status models.AttendanceStatus) error {
	query := `
		INSERT INTO attendance (student_id, attendance_date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, attendance_date) DO UPDATE SET status = EXCLUDED.status
	`

	_, err := r.db.Exec(ctx, query, studentID, date, status)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID).Time("date", date).Msg("Error marking attendance")
		return wrapError("mark attendance", err)
	}
	return nil
}

// MarkAllPresent marks every student Present for date in one statement,
// overwriting earlier marks, and returns how many students were marked
func (r *AttendanceRepository) MarkAllPresent(ctx context.Context, date time.Time) (int64, error) {
	query := `
		INSERT INTO attendance (student_id, attendance_date, status)
		SELECT student_id, $1::date, $2::varchar FROM students
		ON CONFLICT (student_id, attendance_date) DO UPDATE SET status = EXCLUDED.status
	`

	cmdTag, err := r.db.Exec(ctx, query, date, models.AttendancePresent)
	if err != nil {
		logger.Error().Err(err).Time("date", date).Msg("Error marking all students present")
		return 0, wrapError("mark all present", err)
	}
	return cmdTag.RowsAffected(), nil
}

// ForDate lists every student with that day's status, ordered by room then
// name. Students without a record are reported as Not Marked.
func (r *AttendanceRepository) ForDate(ctx context.Context, date time.Time) ([]*models.AttendanceSheetRow, error) {
	query := `
		SELECT s.student_id, s.name, s.room_no, COALESCE(a.status, $2)
		FROM students s
		LEFT JOIN attendance a ON s.student_id = a.student_id AND a.attendance_date = $1
		ORDER BY s.room_no NULLS LAST, s.name
	`

	rows, err := r.db.Query(ctx, query, date, models.AttendanceNotMarked)
	if err != nil {
		return nil, wrapError("attendance for date", err)
	}
	defer rows.Close()

	sheet := make([]*models.AttendanceSheetRow, 0)
	for rows.Next() {
		var row models.AttendanceSheetRow
		if err := rows.Scan(&row.StudentID, &row.Name, &row.RoomNo, &row.Status); err != nil {
			return nil, wrapError("scan attendance row", err)
		}
		sheet = append(sheet, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate attendance", err)
	}
	return sheet, nil
}

// Range lists stored records between start and end inclusive, ordered by
// date then name
func (r *AttendanceRepository) Range(ctx context.Context, start, end time.Time) ([]*models.AttendanceReportRow, error) {
	query := `
		SELECT s.student_id, s.name, s.room_no, a.attendance_date, a.status
		FROM attendance a
		JOIN students s ON s.student_id = a.student_id
		WHERE a.attendance_date BETWEEN $1 AND $2
		ORDER BY a.attendance_date, s.name
	`

	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, wrapError("attendance report", err)
	}
	defer rows.Close()

	report := make([]*models.AttendanceReportRow, 0)
	for rows.Next() {
		var row models.AttendanceReportRow
		if err := rows.Scan(&row.StudentID, &row.Name, &row.RoomNo, &row.AttendanceDate, &row.Status); err != nil {
			return nil, wrapError("scan attendance report row", err)
		}
		report = append(report, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate attendance report", err)
	}
	return report, nil
}

// ExistsForStudent reports whether any attendance record references the student
func (r *AttendanceRepository) ExistsForStudent(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM attendance WHERE student_id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, wrapError("check student attendance", err)
	}
	return exists, nil
}
