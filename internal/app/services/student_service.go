package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/repositories"
	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/validation"
)

// StudentService handles student records and their room assignments.
// Every write runs in one transaction and moves room occupancy through
// RoomRepository.AdjustOccupancy.
type StudentService struct {
	db             *db.PostgresDB
	studentRepo    *repositories.StudentRepository
	roomRepo       *repositories.RoomRepository
	paymentRepo    *repositories.PaymentRepository
	attendanceRepo *repositories.AttendanceRepository
	logger         zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	database *db.PostgresDB,
	studentRepo *repositories.StudentRepository,
	roomRepo *repositories.RoomRepository,
	paymentRepo *repositories.PaymentRepository,
	attendanceRepo *repositories.AttendanceRepository,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		db:             database,
		studentRepo:    studentRepo,
		roomRepo:       roomRepo,
		paymentRepo:    paymentRepo,
		attendanceRepo: attendanceRepo,
		logger:         logger,
	}
}

// ListStudents returns students ordered by ID, filtered by a name or ID substring
func (s *StudentService) ListStudents(ctx context.Context, search string) ([]*models.Student, error) {
	students, err := s.studentRepo.List(ctx, search)
	if err != nil {
		s.logger.Error().Err(err).Str("search", search).Msg("Error listing students")
		return []*models.Student{}, err
	}
	return students, nil
}

// ListStudentOptions returns id and name pairs ordered by name
func (s *StudentService) ListStudentOptions(ctx context.Context) ([]*models.StudentOption, error) {
	options, err := s.studentRepo.ListOptions(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing student options")
		return []*models.StudentOption{}, err
	}
	return options, nil
}

// GetStudent returns one student
func (s *StudentService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

func prepareStudent(req *dto.StudentRequest) (*models.Student, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	student, err := req.ToModel()
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return student, nil
}

// AddStudent inserts a student and, when a room is given, takes one bed in it
func (s *StudentService) AddStudent(ctx context.Context, req *dto.StudentRequest) (*models.Student, error) {
	student, err := prepareStudent(req)
	if err != nil {
		return nil, err
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)

		exists, err := students.ExistsByID(ctx, student.StudentID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrStudentIDAlreadyExists
		}
		if err := s.checkEmail(ctx, students, student, student.StudentID); err != nil {
			return err
		}

		if err := students.Create(ctx, student); err != nil {
			return err
		}
		_, err = s.roomRepo.WithTx(tx).AdjustOccupancy(ctx, student.Room(), +1)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("studentID", student.StudentID).Msg("Student not added")
		return nil, err
	}

	s.logger.Info().Str("studentID", student.StudentID).Str("roomNo", student.Room()).Msg("Student added")
	return student, nil
}

// UpdateStudent rewrites the student stored under oldID. The previous room
// is read from the locked row, never trusted from the caller. When the room
// changes, one bed is released in the old room and taken in the new one.
func (s *StudentService) UpdateStudent(ctx context.Context, oldID string, req *dto.StudentRequest) (*models.Student, error) {
	student, err := prepareStudent(req)
	if err != nil {
		return nil, err
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)
		rooms := s.roomRepo.WithTx(tx)

		previous, err := students.LockByID(ctx, oldID)
		if err != nil {
			return err
		}

		if student.StudentID != oldID {
			if err := s.checkIDChange(ctx, tx, oldID, student.StudentID); err != nil {
				return err
			}
		}
		if err := s.checkEmail(ctx, students, student, oldID); err != nil {
			return err
		}

		if err := students.Update(ctx, oldID, student); err != nil {
			return err
		}

		oldRoom, newRoom := previous.Room(), student.Room()
		if oldRoom == newRoom {
			return nil
		}
		if _, err := rooms.AdjustOccupancy(ctx, oldRoom, -1); err != nil {
			return err
		}
		_, err = rooms.AdjustOccupancy(ctx, newRoom, +1)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("studentID", oldID).Msg("Student not updated")
		return nil, err
	}

	s.logger.Info().Str("studentID", student.StudentID).Str("previousID", oldID).Msg("Student updated")
	return student, nil
}

// checkIDChange refuses a new ID that is taken or an ID change for a
// student that other records still point to
func (s *StudentService) checkIDChange(ctx context.Context, tx pgx.Tx, oldID, newID string) error {
	taken, err := s.studentRepo.WithTx(tx).ExistsByID(ctx, newID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrStudentIDAlreadyExists
	}

	hasPayments, err := s.paymentRepo.WithTx(tx).ExistsForStudent(ctx, oldID)
	if err != nil {
		return err
	}
	hasAttendance, err := s.attendanceRepo.WithTx(tx).ExistsForStudent(ctx, oldID)
	if err != nil {
		return err
	}
	if hasPayments || hasAttendance {
		return apperrors.ErrStudentReferenced
	}
	return nil
}

func (s *StudentService) checkEmail(ctx context.Context, students *repositories.StudentRepository, student *models.Student, exceptID string) error {
	if student.Email == nil {
		return nil
	}
	taken, err := students.EmailTaken(ctx, *student.Email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrStudentEmailExists
	}
	return nil
}

// DeleteStudent removes a student and releases their bed. Students with
// payment records cannot be deleted.
func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)

		student, err := students.LockByID(ctx, id)
		if err != nil {
			return err
		}

		hasPayments, err := s.paymentRepo.WithTx(tx).ExistsForStudent(ctx, id)
		if err != nil {
			return err
		}
		if hasPayments {
			return apperrors.ErrStudentHasPayments
		}

		if err := students.Delete(ctx, id); err != nil {
			return err
		}
		_, err = s.roomRepo.WithTx(tx).AdjustOccupancy(ctx, student.Room(), -1)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("studentID", id).Msg("Student not deleted")
		return err
	}

	s.logger.Info().Str("studentID", id).Msg("Student deleted")
	return nil
}
