package services

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/repositories"
	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func newTestDB(t *testing.T) (*db.PostgresDB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return db.New(mock), mock
}

func newStudentService(database *db.PostgresDB, mock pgxmock.PgxPoolIface) *StudentService {
	return NewStudentService(
		database,
		repositories.NewStudentRepository(mock),
		repositories.NewRoomRepository(mock),
		repositories.NewPaymentRepository(mock),
		repositories.NewAttendanceRepository(mock),
		zerolog.Nop(),
	)
}

func existsRows(v bool) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"exists"}).AddRow(v)
}

func studentRows(id, name string, roomNo *string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"student_id", "name", "gender", "age", "email", "contact", "admission_date", "room_no"}).
		AddRow(id, name, nil, nil, nil, nil, nil, roomNo)
}

func lockedRoom(roomNo string, capacity, occupied int, status models.RoomStatus) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"room_no", "room_type", "capacity", "occupied", "rent", "status"}).
		AddRow(roomNo, "Double", capacity, occupied, 5000.0, status)
}

// studentWriteArgs matches the student write statements, which bind the
// (new) student id first and, for updates, the old id last.
func studentWriteArgs(id string, oldID ...string) []interface{} {
	args := []interface{}{id}
	for i := 0; i < 7; i++ {
		args = append(args, pgxmock.AnyArg())
	}
	for _, old := range oldID {
		args = append(args, old)
	}
	return args
}

func expectAddStudent(mock pgxmock.PgxPoolIface, id, roomNo string, capacity, occupied int, status models.RoomStatus, wantOcc int, wantStatus models.RoomStatus) {
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WithArgs(id).WillReturnRows(existsRows(false))
	mock.ExpectExec("INSERT INTO students").WithArgs(studentWriteArgs(id)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("FROM rooms WHERE room_no = .1 FOR UPDATE").
		WithArgs(roomNo).
		WillReturnRows(lockedRoom(roomNo, capacity, occupied, status))
	mock.ExpectExec("UPDATE rooms SET occupied").
		WithArgs(wantOcc, wantStatus, roomNo).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
}

func TestOccupancyFollowsStudents(t *testing.T) {
	database, mock := newTestDB(t)
	svc := newStudentService(database, mock)
	ctx := context.Background()

	// S1 takes the first bed of R1
	expectAddStudent(mock, "S1", "R1", 2, 0, models.RoomStatusAvailable, 1, models.RoomStatusAvailable)
	if _, err := svc.AddStudent(ctx, &dto.StudentRequest{StudentID: "S1", Name: "Asha", RoomNo: strPtr("R1")}); err != nil {
		t.Fatalf("add S1: %v", err)
	}

	// S2 fills it
	expectAddStudent(mock, "S2", "R1", 2, 1, models.RoomStatusAvailable, 2, models.RoomStatusFull)
	if _, err := svc.AddStudent(ctx, &dto.StudentRequest{StudentID: "S2", Name: "Bela", RoomNo: strPtr("R1")}); err != nil {
		t.Fatalf("add S2: %v", err)
	}

	// deleting S1 frees a bed again
	mock.ExpectBegin()
	mock.ExpectQuery("FROM students WHERE student_id = .1 FOR UPDATE").
		WithArgs("S1").
		WillReturnRows(studentRows("S1", "Asha", strPtr("R1")))
	mock.ExpectQuery("FROM payments WHERE student_id").WithArgs("S1").WillReturnRows(existsRows(false))
	mock.ExpectExec("DELETE FROM students").WithArgs("S1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("FROM rooms WHERE room_no = .1 FOR UPDATE").
		WithArgs("R1").
		WillReturnRows(lockedRoom("R1", 2, 2, models.RoomStatusFull))
	mock.ExpectExec("UPDATE rooms SET occupied").
		WithArgs(1, models.RoomStatusAvailable, "R1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	if err := svc.DeleteStudent(ctx, "S1"); err != nil {
		t.Fatalf("delete S1: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddStudentIntoFullRoomRollsBack(t *testing.T) {
	database, mock := newTestDB(t)
	svc := newStudentService(database, mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WithArgs("S3").WillReturnRows(existsRows(false))
	mock.ExpectExec("INSERT INTO students").WithArgs(studentWriteArgs("S3")...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("FOR UPDATE").WithArgs("R1").WillReturnRows(lockedRoom("R1", 2, 2, models.RoomStatusFull))
	mock.ExpectRollback()

	_, err := svc.AddStudent(context.Background(), &dto.StudentRequest{StudentID: "S3", Name: "Chen", RoomNo: strPtr("R1")})
	if !errors.Is(err, apperrors.ErrRoomUnavailable) {
		t.Fatalf("expected ErrRoomUnavailable, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddStudentDuplicateID(t *testing.T) {
	database, mock := newTestDB(t)
	svc := newStudentService(database, mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WithArgs("S1").WillReturnRows(existsRows(true))
	mock.ExpectRollback()

	_, err := svc.AddStudent(context.Background(), &dto.StudentRequest{StudentID: "S1", Name: "Asha"})
	if !errors.Is(err, apperrors.ErrStudentIDAlreadyExists) {
		t.Fatalf("expected ErrStudentIDAlreadyExists, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("expected the already-exists kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddStudentWithoutRoomSkipsLedger(t *testing.T) {
	database, mock := newTestDB(t)
	svc := newStudentService(database, mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WithArgs("S4").WillReturnRows(existsRows(false))
	mock.ExpectExec("INSERT INTO students").WithArgs(studentWriteArgs("S4")...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	student, err := svc.AddStudent(context.Background(), &dto.StudentRequest{StudentID: "S4", Name: "Dev", RoomNo: strPtr("  ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if student.RoomNo != nil {
		t.Errorf("blank room should be stored as NULL, got %q", *student.RoomNo)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddStudentValidation(t *testing.T) {
	database, mock := newTestDB(t)
	svc := newStudentService(database, mock)

	_, err := svc.AddStudent(context.Background(), &dto.StudentRequest{StudentID: "S5"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected a validation failure, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no statement may be issued: %v", err)
	}
}

func TestUpdateStudentMovesRoom(t *testing.T) {
	database, mock := newTestDB(t)
	svc := newStudentService(database, mock)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM students WHERE student_id = .1 FOR UPDATE").
		WithArgs("S1").
		WillReturnRows(studentRows("S1", "Asha", strPtr("R1")))
	mock.ExpectExec("UPDATE students").WithArgs(studentWriteArgs("S1", "S1")...).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("FOR UPDATE").WithArgs("R1").WillReturnRows(lockedRoom("R1", 2, 2, models.RoomStatusFull))
	mock.ExpectExec("UPDATE rooms SET occupied").
		WithArgs(1, models.RoomStatusAvailable, "R1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("FOR UPDATE").WithArgs("R2").WillReturnRows(lockedRoom("R2", 1, 0, models.RoomStatusAvailable))
	mock.ExpectExec("UPDATE rooms SET occupied").
		WithArgs(1, models.RoomStatusFull, "R2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	_, err := svc.UpdateStudent(context.Background(), "S1", &dto.StudentRequest{StudentID: "S1", Name: "Asha", RoomNo: strPtr("R2")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStudentSameRoomLeavesOccupancy(t *testing.T) {
	database, mock := newTestDB(t)
	svc := newStudentService(database, mock)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("S1").WillReturnRows(studentRows("S1", "Asha", strPtr("R1")))
	mock.ExpectExec("UPDATE students").WithArgs(studentWriteArgs("S1", "S1")...).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	_, err := svc.UpdateStudent(context.Background(), "S1", &dto.StudentRequest{StudentID: "S1", Name: "Asha K", RoomNo: strPtr("R1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStudentIDChangeBlockedByPayments(t *testing.T) {
	database, mock := newTestDB(t)
	svc := newStudentService(database, mock)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("S1").WillReturnRows(studentRows("S1", "Asha", nil))
	mock.ExpectQuery("FROM students WHERE student_id").WithArgs("S9").WillReturnRows(existsRows(false))
	mock.ExpectQuery("FROM payments WHERE student_id").WithArgs("S1").WillReturnRows(existsRows(true))
	mock.ExpectQuery("FROM attendance WHERE student_id").WithArgs("S1").WillReturnRows(existsRows(false))
	mock.ExpectRollback()

	_, err := svc.UpdateStudent(context.Background(), "S1", &dto.StudentRequest{StudentID: "S9", Name: "Asha"})
	if !errors.Is(err, apperrors.ErrReferentialIntegrity) {
		t.Fatalf("expected the referential-integrity kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateMissingStudent(t *testing.T) {
	database, mock := newTestDB(t)
	svc := newStudentService(database, mock)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("S404").
		WillReturnRows(pgxmock.NewRows([]string{"student_id", "name", "gender", "age", "email", "contact", "admission_date", "room_no"}))
	mock.ExpectRollback()

	_, err := svc.UpdateStudent(context.Background(), "S404", &dto.StudentRequest{StudentID: "S404", Name: "Nobody"})
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestDeleteStudentWithPayments(t *testing.T) {
	database, mock := newTestDB(t)
	svc := newStudentService(database, mock)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("S1").WillReturnRows(studentRows("S1", "Asha", strPtr("R1")))
	mock.ExpectQuery("FROM payments WHERE student_id").WithArgs("S1").WillReturnRows(existsRows(true))
	mock.ExpectRollback()

	err := svc.DeleteStudent(context.Background(), "S1")
	if !errors.Is(err, apperrors.ErrStudentHasPayments) {
		t.Fatalf("expected ErrStudentHasPayments, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrReferentialIntegrity) {
		t.Errorf("expected the referential-integrity kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("nothing may change: %v", err)
	}
}

func TestDeleteStudentReportsLostConnection(t *testing.T) {
	database, mock := newTestDB(t)
	svc := newStudentService(database, mock)

	mock.ExpectBegin().WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})

	err := svc.DeleteStudent(context.Background(), "S1")
	if !errors.Is(err, apperrors.ErrConnectionFailed) {
		t.Fatalf("expected ErrConnectionFailed, got %v", err)
	}
	if got := apperrors.UserMessage(err); got != "Database connection failed." {
		t.Errorf("user message = %q", got)
	}
}
