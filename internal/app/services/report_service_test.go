package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/repositories"
	"github.com/yigit/hostel/internal/pkg/apperrors"
)

var fixedNow = time.Date(2024, time.May, 15, 18, 30, 0, 0, time.UTC)

func countRows(n int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"count"}).AddRow(n)
}

func sumRows(v float64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"sum"}).AddRow(v)
}

func newReportService(mock pgxmock.PgxPoolIface) *ReportService {
	return NewReportService(
		repositories.NewReportRepository(mock),
		repositories.NewAttendanceRepository(mock),
		clockwork.NewFakeClockAt(fixedNow),
		zerolog.Nop(),
	)
}

func TestDashboardStats(t *testing.T) {
	_, mock := newTestDB(t)
	svc := newReportService(mock)

	today := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM students").WillReturnRows(countRows(12))
	mock.ExpectQuery("FROM users WHERE role").WithArgs(models.RoleStaff).WillReturnRows(countRows(3))
	mock.ExpectQuery("FROM rooms").WillReturnRows(countRows(8))
	mock.ExpectQuery("FROM rooms WHERE occupied").WillReturnRows(countRows(6))
	mock.ExpectQuery("FROM rooms WHERE status").WithArgs(models.RoomStatusAvailable).WillReturnRows(countRows(4))
	mock.ExpectQuery("FROM rooms WHERE status").WithArgs(models.RoomStatusFull).WillReturnRows(countRows(3))
	mock.ExpectQuery("FROM rooms WHERE status").WithArgs(models.RoomStatusMaintenance).WillReturnRows(countRows(1))
	mock.ExpectQuery("FROM payments").WillReturnRows(sumRows(91000))
	mock.ExpectQuery("FROM payments WHERE payment_date").WithArgs(monthStart, monthEnd).WillReturnRows(sumRows(15000))
	mock.ExpectQuery("FROM attendance").WithArgs(today, models.AttendancePresent).WillReturnRows(countRows(10))
	mock.ExpectQuery("FROM attendance").WithArgs(today, models.AttendanceAbsent).WillReturnRows(countRows(2))

	stats, err := svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.DashboardStats{
		TotalStudents: 12, TotalStaff: 3, TotalRooms: 8, OccupiedRooms: 6,
		AvailableRooms: 4, FullRooms: 3, MaintenanceRooms: 1,
		TotalRevenue: 91000, MonthlyRevenue: 15000,
		PresentToday: 10, AbsentToday: 2,
	}
	if *stats != want {
		t.Errorf("got %+v, want %+v", *stats, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDashboardStatsPartialFailure(t *testing.T) {
	_, mock := newTestDB(t)
	svc := newReportService(mock)

	boom := errors.New("relation rooms does not exist")
	mock.ExpectQuery("FROM students").WillReturnRows(countRows(12))
	mock.ExpectQuery("FROM users WHERE role").WithArgs(models.RoleStaff).WillReturnRows(countRows(3))
	mock.ExpectQuery("FROM rooms").WillReturnError(boom)

	stats, err := svc.DashboardStats(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected the failing query's error, got %v", err)
	}
	if stats.TotalStudents != 12 || stats.TotalStaff != 3 {
		t.Errorf("gathered counters lost: %+v", *stats)
	}
	if stats.TotalRooms != 0 || stats.TotalRevenue != 0 || stats.PresentToday != 0 {
		t.Errorf("counters after the failure must stay zero: %+v", *stats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("later queries must not run: %v", err)
	}
}

func TestDueSummaryUsesCurrentMonth(t *testing.T) {
	_, mock := newTestDB(t)
	svc := newReportService(mock)

	monthStart := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("GROUP BY s.student_id").
		WithArgs(monthStart, monthEnd).
		WillReturnRows(pgxmock.NewRows([]string{"student_id", "name", "email", "room_no", "rent", "total_paid", "due_amount"}).
			AddRow("S2", "Bela", nil, "R1", 5000.0, 0.0, 5000.0).
			AddRow("S1", "Asha", strPtr("asha@student.local"), "R1", 5000.0, 3000.0, 2000.0))

	rows, err := svc.DueSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].StudentID != "S2" || rows[0].DueAmount != 5000 {
		t.Errorf("first row %+v, want S2 owing 5000", *rows[0])
	}
	if rows[1].TotalPaid != 3000 || rows[1].DueAmount != 2000 {
		t.Errorf("second row %+v, want 3000 paid and 2000 due", *rows[1])
	}
}

func TestAttendanceReportRejectsInvertedRange(t *testing.T) {
	_, mock := newTestDB(t)
	svc := newReportService(mock)

	rows, err := svc.AttendanceReport(context.Background(), "2024-05-10", "2024-05-01")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected a validation failure, got %v", err)
	}
	if rows == nil {
		t.Error("expected an empty non-nil slice")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no statement may be issued: %v", err)
	}
}

func TestAttendanceReportRange(t *testing.T) {
	_, mock := newTestDB(t)
	svc := newReportService(mock)

	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("BETWEEN").
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows([]string{"student_id", "name", "room_no", "attendance_date", "status"}).
			AddRow("S1", "Asha", strPtr("R1"), start, models.AttendancePresent).
			AddRow("S1", "Asha", strPtr("R1"), end, models.AttendanceAbsent))

	rows, err := svc.AttendanceReport(context.Background(), "2024-05-01", "2024-05-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[1].Status != models.AttendanceAbsent {
		t.Errorf("unexpected rows %+v", rows)
	}
}

func newAttendanceService(mock pgxmock.PgxPoolIface) *AttendanceService {
	return NewAttendanceService(repositories.NewAttendanceRepository(mock), clockwork.NewFakeClockAt(fixedNow), zerolog.Nop())
}

func TestAttendanceForDateDefaultsToToday(t *testing.T) {
	_, mock := newTestDB(t)
	svc := newAttendanceService(mock)

	today := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("LEFT JOIN attendance").
		WithArgs(today, models.AttendanceNotMarked).
		WillReturnRows(pgxmock.NewRows([]string{"student_id", "name", "room_no", "status"}).
			AddRow("S1", "Asha", strPtr("R1"), models.AttendancePresent).
			AddRow("S2", "Bela", nil, models.AttendanceNotMarked))

	rows, err := svc.AttendanceForDate(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[1].Status != models.AttendanceNotMarked {
		t.Errorf("unexpected rows %+v", rows)
	}
}

func TestMarkAttendanceValidatesStatus(t *testing.T) {
	_, mock := newTestDB(t)
	svc := newAttendanceService(mock)

	err := svc.MarkAttendance(context.Background(), &dto.MarkAttendanceRequest{
		StudentID: "S1", Date: "2024-05-15", Status: models.AttendanceNotMarked,
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected a validation failure, got %v", err)
	}
}

func TestMarkAttendanceUpserts(t *testing.T) {
	_, mock := newTestDB(t)
	svc := newAttendanceService(mock)

	day := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("ON CONFLICT").
		WithArgs("S1", day, models.AttendanceAbsent).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := svc.MarkAttendance(context.Background(), &dto.MarkAttendanceRequest{
		StudentID: "S1", Date: "2024-05-15", Status: models.AttendanceAbsent,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkAllPresentWithoutStudents(t *testing.T) {
	_, mock := newTestDB(t)
	svc := newAttendanceService(mock)

	mock.ExpectExec("INSERT INTO attendance").
		WithArgs(time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC), models.AttendancePresent).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	marked, err := svc.MarkAllPresent(context.Background(), &dto.MarkAllPresentRequest{Date: "2024-05-15"})
	if err != nil || marked != 0 {
		t.Fatalf("expected a successful no-op, got %d, %v", marked, err)
	}
}

func TestAddPaymentUnknownStudent(t *testing.T) {
	_, mock := newTestDB(t)
	svc := NewPaymentService(repositories.NewPaymentRepository(mock), repositories.NewStudentRepository(mock), zerolog.Nop())

	mock.ExpectQuery("SELECT EXISTS").WithArgs("S404").WillReturnRows(existsRows(false))

	_, err := svc.AddPayment(context.Background(), &dto.CreatePaymentRequest{StudentID: "S404", Amount: 100, PaymentDate: "2024-05-15"})
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestAddPaymentReturnsID(t *testing.T) {
	_, mock := newTestDB(t)
	svc := NewPaymentService(repositories.NewPaymentRepository(mock), repositories.NewStudentRepository(mock), zerolog.Nop())

	mock.ExpectQuery("SELECT EXISTS").WithArgs("S1").WillReturnRows(existsRows(true))
	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(pgxmock.AnyArg(), 3000.0, time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC), models.PaymentCash).
		WillReturnRows(pgxmock.NewRows([]string{"payment_id"}).AddRow(int64(42)))

	id, err := svc.AddPayment(context.Background(), &dto.CreatePaymentRequest{StudentID: "S1", Amount: 3000, PaymentDate: "2024-05-15"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("got id %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddPaymentRejectsNonPositiveAmount(t *testing.T) {
	_, mock := newTestDB(t)
	svc := NewPaymentService(repositories.NewPaymentRepository(mock), repositories.NewStudentRepository(mock), zerolog.Nop())

	_, err := svc.AddPayment(context.Background(), &dto.CreatePaymentRequest{StudentID: "S1", Amount: -5, PaymentDate: "2024-05-15"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected a validation failure, got %v", err)
	}
}
