package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/dberrors"
)

func strPtr(s string) *string { return &s }

func TestRoomDeleteOccupied(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM rooms").
		WithArgs("R1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("R1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	err := NewRoomRepository(mock).Delete(context.Background(), "R1")
	if !errors.Is(err, apperrors.ErrRoomOccupied) {
		t.Fatalf("expected ErrRoomOccupied, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRoomDeleteMissing(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM rooms").
		WithArgs("R9").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("R9").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	err := NewRoomRepository(mock).Delete(context.Background(), "R9")
	if !errors.Is(err, apperrors.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestRoomCreateDuplicate(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("INSERT INTO rooms").
		WithArgs("R1", "Single", 1, 3000.0, models.RoomStatusAvailable).
		WillReturnError(&pgconn.PgError{Code: dberrors.CodeUniqueViolation, ConstraintName: "rooms_pkey"})

	err := NewRoomRepository(mock).Create(context.Background(), &models.Room{
		RoomNo: "R1", RoomType: "Single", Capacity: 1, Rent: 3000, Status: models.RoomStatusAvailable,
	})
	if !errors.Is(err, apperrors.ErrRoomAlreadyExists) {
		t.Fatalf("expected ErrRoomAlreadyExists, got %v", err)
	}
}

func TestRoomListFiltersByType(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM rooms WHERE room_type").
		WithArgs("Single").
		WillReturnRows(roomRows("A1", 1, 0, models.RoomStatusAvailable))

	rooms, err := NewRoomRepository(mock).List(context.Background(), "Single")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rooms) != 1 || rooms[0].RoomNo != "A1" {
		t.Errorf("unexpected rooms %+v", rooms)
	}
}

func TestRoomListAllSkipsFilter(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM rooms ORDER BY room_no").
		WillReturnRows(pgxmock.NewRows([]string{"room_no", "room_type", "capacity", "occupied", "rent", "status"}))

	rooms, err := NewRoomRepository(mock).List(context.Background(), AllRoomTypes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rooms == nil || len(rooms) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", rooms)
	}
}

func TestStudentWriteErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"duplicate id", &pgconn.PgError{Code: dberrors.CodeUniqueViolation, ConstraintName: "students_pkey"}, apperrors.ErrStudentIDAlreadyExists},
		{"duplicate email", &pgconn.PgError{Code: dberrors.CodeUniqueViolation, ConstraintName: "students_email_key"}, apperrors.ErrStudentEmailExists},
		{"unknown room", &pgconn.PgError{Code: dberrors.CodeForeignKeyViolation, ConstraintName: "students_room_no_fkey"}, apperrors.ErrRoomNotFound},
		{"referenced id", &pgconn.PgError{Code: dberrors.CodeForeignKeyViolation, ConstraintName: "payments_student_id_fkey"}, apperrors.ErrStudentReferenced},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapStudentWriteError("op", tc.err); !errors.Is(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStudentDeleteForeignKey(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM students").
		WithArgs("S1").
		WillReturnError(&pgconn.PgError{Code: dberrors.CodeForeignKeyViolation})

	err := NewStudentRepository(mock).Delete(context.Background(), "S1")
	if !errors.Is(err, apperrors.ErrStudentHasPayments) {
		t.Fatalf("expected ErrStudentHasPayments, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrReferentialIntegrity) {
		t.Error("error must carry the referential-integrity kind")
	}
}

func TestStudentListSearch(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM students WHERE").
		WithArgs("%ann%", "%ann%").
		WillReturnRows(pgxmock.NewRows([]string{"student_id", "name", "gender", "age", "email", "contact", "admission_date", "room_no"}).
			AddRow("S1", "Anna", (*string)(nil), (*int)(nil), (*string)(nil), (*string)(nil), (*time.Time)(nil), strPtr("R1")))

	students, err := NewStudentRepository(mock).List(context.Background(), " ann ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(students) != 1 || students[0].Room() != "R1" {
		t.Errorf("unexpected students %+v", students)
	}
}

func TestUserCreateDuplicate(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("desk", "desk@hostel.local", "x", models.RoleStaff).
		WillReturnError(&pgconn.PgError{Code: dberrors.CodeUniqueViolation, ConstraintName: "users_username_key"})

	err := NewUserRepository(mock).Create(context.Background(), &models.User{
		Username: "desk", Email: "desk@hostel.local", Password: "x", Role: models.RoleStaff,
	})
	if !errors.Is(err, apperrors.ErrUsernameOrEmailExists) {
		t.Fatalf("expected ErrUsernameOrEmailExists, got %v", err)
	}
}

func TestUserDeleteMissing(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := NewUserRepository(mock).Delete(context.Background(), 42); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPaymentHistoryKeepsOrphans(t *testing.T) {
	mock := newMock(t)
	day := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("LEFT JOIN students").
		WillReturnRows(pgxmock.NewRows([]string{"payment_id", "student_id", "name", "amount", "payment_date", "method"}).
			AddRow(int64(2), strPtr("S1"), strPtr("Anna"), 3000.0, day, models.PaymentUPI).
			AddRow(int64(1), (*string)(nil), (*string)(nil), 1500.0, day, models.PaymentCash))

	entries, err := NewPaymentRepository(mock).ListHistory(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].StudentID != nil || entries[1].StudentName != nil {
		t.Errorf("orphaned payment should have no student, got %+v", entries[1])
	}
}

func TestPaymentCreateUnknownStudent(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(pgxmock.AnyArg(), 10.0, pgxmock.AnyArg(), models.PaymentCash).
		WillReturnError(&pgconn.PgError{Code: dberrors.CodeForeignKeyViolation})

	err := NewPaymentRepository(mock).Create(context.Background(), &models.Payment{
		StudentID: strPtr("nobody"), Amount: 10, PaymentDate: time.Now(), Method: models.PaymentCash,
	})
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestAttendanceMarkAllPresent(t *testing.T) {
	mock := newMock(t)
	day := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO attendance").
		WithArgs(day, models.AttendancePresent).
		WillReturnResult(pgxmock.NewResult("INSERT", 3))

	n, err := NewAttendanceRepository(mock).MarkAllPresent(context.Background(), day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 students marked, got %d", n)
	}
}

func TestAttendanceForDateNotMarked(t *testing.T) {
	mock := newMock(t)
	day := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("LEFT JOIN attendance").
		WithArgs(day, models.AttendanceNotMarked).
		WillReturnRows(pgxmock.NewRows([]string{"student_id", "name", "room_no", "status"}).
			AddRow("S1", "Anna", strPtr("R1"), models.AttendancePresent).
			AddRow("S2", "Binh", strPtr("R1"), models.AttendanceNotMarked))

	sheet, err := NewAttendanceRepository(mock).ForDate(context.Background(), day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet) != 2 || sheet[1].Status != models.AttendanceNotMarked {
		t.Errorf("unexpected sheet %+v", sheet)
	}
}

func TestDueSummary(t *testing.T) {
	mock := newMock(t)
	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	mock.ExpectQuery("GROUP BY s.student_id").
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"student_id", "name", "email", "room_no", "rent", "total_paid", "due_amount"}).
			AddRow("S2", "Binh", (*string)(nil), "R1", 5000.0, 0.0, 5000.0).
			AddRow("S1", "Anna", strPtr("anna@x.io"), "R1", 5000.0, 3000.0, 2000.0))

	dues, err := NewReportRepository(mock).DueSummary(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dues) != 2 || dues[0].DueAmount != 5000 || dues[1].DueAmount != 2000 {
		t.Errorf("unexpected dues %+v", dues)
	}
}

func TestWrapErrorConnectionClass(t *testing.T) {
	err := wrapError("count rooms", &pgconn.PgError{Code: "08006"})
	if !errors.Is(err, apperrors.ErrConnectionFailed) {
		t.Errorf("expected connection kind, got %v", err)
	}
	if errors.Is(wrapError("x", errors.New("syntax")), apperrors.ErrConnectionFailed) {
		t.Error("plain errors must not be connection failures")
	}
}
