package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/db"
)

// ReportRepository runs the read-only cross-table aggregate queries. It
// never writes and caches nothing.
type ReportRepository struct {
	db db.Querier
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(q db.Querier) *ReportRepository {
	return &ReportRepository{
		db: q,
	}
}

func (r *ReportRepository) scalarInt(ctx context.Context, op, query string, args ...any) (int64, error) {
	var v int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&v); err != nil {
		return 0, wrapError(op, err)
	}
	return v, nil
}

func (r *ReportRepository) scalarFloat(ctx context.Context, op, query string, args ...any) (float64, error) {
	var v float64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&v); err != nil {
		return 0, wrapError(op, err)
	}
	return v, nil
}

// CountStudents counts all students
func (r *ReportRepository) CountStudents(ctx context.Context) (int64, error) {
	return r.scalarInt(ctx, "count students", `SELECT COUNT(*) FROM students`)
}

// CountStaff counts users with the staff role
func (r *ReportRepository) CountStaff(ctx context.Context) (int64, error) {
	return r.scalarInt(ctx, "count staff", `SELECT COUNT(*) FROM users WHERE role = $1`, models.RoleStaff)
}

// CountRooms counts all rooms
func (r *ReportRepository) CountRooms(ctx context.Context) (int64, error) {
	return r.scalarInt(ctx, "count rooms", `SELECT COUNT(*) FROM rooms`)
}

// CountOccupiedRooms counts rooms with at least one student
func (r *ReportRepository) CountOccupiedRooms(ctx context.Context) (int64, error) {
	return r.scalarInt(ctx, "count occupied rooms", `SELECT COUNT(*) FROM rooms WHERE occupied > 0`)
}

// CountRoomsByStatus counts rooms in status
func (r *ReportRepository) CountRoomsByStatus(ctx context.Context, status models.RoomStatus) (int64, error) {
	return r.scalarInt(ctx, "count rooms by status", `SELECT COUNT(*) FROM rooms WHERE status = $1`, status)
}

// TotalRevenue sums every payment ever recorded
func (r *ReportRepository) TotalRevenue(ctx context.Context) (float64, error) {
	return r.scalarFloat(ctx, "total revenue", `SELECT COALESCE(SUM(amount), 0) FROM payments`)
}

// RevenueBetween sums payments dated in [from, to)
func (r *ReportRepository) RevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return r.scalarFloat(ctx, "revenue between",
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_date >= $1 AND payment_date < $2`,
		from, to)
}

// CountAttendance counts records with status on date
func (r *ReportRepository) CountAttendance(ctx context.Context, date time.Time, status models.AttendanceStatus) (int64, error) {
	return r.scalarInt(ctx, "count attendance",
		`SELECT COUNT(*) FROM attendance WHERE attendance_date = $1 AND status = $2`,
		date, status)
}

// DueSummary lists, for every student with a room, the rent, what was paid
// in [from, to) and the balance, ordered by balance descending then name
func (r *ReportRepository) DueSummary(ctx context.Context, from, to time.Time) ([]*models.DueSummaryRow, error) {
	query := `
		SELECT s.student_id, s.name, s.email, r.room_no, r.rent,
			COALESCE(SUM(p.amount), 0) AS total_paid,
			r.rent - COALESCE(SUM(p.amount), 0) AS due_amount
		FROM students s
		JOIN rooms r ON s.room_no = r.room_no
		LEFT JOIN payments p ON s.student_id = p.student_id
			AND p.payment_date >= $1 AND p.payment_date < $2
		GROUP BY s.student_id, s.name, s.email, r.room_no, r.rent
		ORDER BY due_amount DESC, s.name
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, wrapError("due summary", err)
	}
	return collectDueRows(rows)
}

func collectDueRows(rows pgx.Rows) ([]*models.DueSummaryRow, error) {
	defer rows.Close()

	dues := make([]*models.DueSummaryRow, 0)
	for rows.Next() {
		var d models.DueSummaryRow
		if err := rows.Scan(&d.StudentID, &d.Name, &d.Email, &d.RoomNo, &d.Rent, &d.TotalPaid, &d.DueAmount); err != nil {
			return nil, wrapError("scan due row", err)
		}
		dues = append(dues, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate due summary", err)
	}
	return dues, nil
}
