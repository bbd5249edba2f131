package repositories

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/dberrors"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	RoomRepository       *RoomRepository
	StudentRepository    *StudentRepository
	PaymentRepository    *PaymentRepository
	AttendanceRepository *AttendanceRepository
	ReportRepository     *ReportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(q db.Querier) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(q),
		RoomRepository:       NewRoomRepository(q),
		StudentRepository:    NewStudentRepository(q),
		PaymentRepository:    NewPaymentRepository(q),
		AttendanceRepository: NewAttendanceRepository(q),
		ReportRepository:     NewReportRepository(q),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// wrapError annotates err with the failed operation. Connection-class
// failures are surfaced as apperrors.ErrConnectionFailed so callers can
// report them uniformly.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrConnectionFailed) {
		return err
	}
	if dberrors.IsConnectionError(err) {
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrConnectionFailed, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFound maps pgx.ErrNoRows to the given domain error.
func notFound(op string, err error, domainErr error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErr
	}
	return wrapError(op, err)
}
