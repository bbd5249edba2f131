package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/dberrors"
	"github.com/yigit/hostel/internal/pkg/helpers"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// Constraint names PostgreSQL generates for the students table
const (
	studentsEmailKey   = "students_email_key"
	studentsRoomNoFkey = "students_room_no_fkey"
)

var studentColumns = []string{
	"student_id", "name", "gender", "age", "email", "contact", "admission_date", "room_no",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.Querier) *StudentRepository {
	return &StudentRepository{
		db: q,
		sb: statementBuilder(),
	}
}

// WithTx returns a copy bound to tx
func (r *StudentRepository) WithTx(tx pgx.Tx) *StudentRepository {
	return &StudentRepository{db: tx, sb: r.sb}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.StudentID,
		&s.Name,
		&s.Gender,
		&s.Age,
		&s.Email,
		&s.Contact,
		&s.AdmissionDate,
		&s.RoomNo,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// mapStudentWriteError translates constraint violations raised by an insert or
// update of a student row.
func mapStudentWriteError(op string, err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, studentsEmailKey):
		return apperrors.ErrStudentEmailExists
	case dberrors.IsUniqueViolation(err):
		return apperrors.ErrStudentIDAlreadyExists
	case dberrors.IsForeignKeyViolation(err) && dberrors.ConstraintName(err) == studentsRoomNoFkey:
		return apperrors.ErrRoomNotFound
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrStudentReferenced
	}
	return wrapError(op, err)
}

// Create inserts a student row. Room occupancy is adjusted separately.
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	query := `
		INSERT INTO students (student_id, name, gender, age, email, contact, admission_date, room_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		s.StudentID, s.Name, s.Gender, s.Age, s.Email, s.Contact, s.AdmissionDate, s.RoomNo)
	if err != nil {
		logger.Error().Err(err).Str("studentID", s.StudentID).Msg("Error creating student")
		return mapStudentWriteError("create student", err)
	}
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `
		SELECT student_id, name, gender, age, email, contact, admission_date, room_no
		FROM students
		WHERE student_id = $1
	`

	s, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound("get student", err, apperrors.ErrStudentNotFound)
	}
	return s, nil
}

// LockByID retrieves a student and holds its row lock until the
// surrounding transaction ends
func (r *StudentRepository) LockByID(ctx context.Context, id string) (*models.Student, error) {
	query := `
		SELECT student_id, name, gender, age, email, contact, admission_date, room_no
		FROM students
		WHERE student_id = $1
		FOR UPDATE
	`

	s, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound("lock student", err, apperrors.ErrStudentNotFound)
	}
	return s, nil
}

// ExistsByID checks whether a student ID is taken
func (r *StudentRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE student_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, wrapError("check student existence", err)
	}
	return exists, nil
}

// EmailTaken checks whether another student already uses email
func (r *StudentRepository) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE email = $1 AND student_id <> $2)`,
		email, exceptID).Scan(&exists)
	if err != nil {
		return false, wrapError("check student email", err)
	}
	return exists, nil
}

// List retrieves students ordered by ID. A non-empty search matches a
// case-insensitive substring of the name or the ID.
func (r *StudentRepository) List(ctx context.Context, search string) ([]*models.Student, error) {
	q := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("student_id")

	if term := strings.TrimSpace(search); term != "" {
		pattern := helpers.LikePattern(term)
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"student_id": pattern},
		})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, wrapError("build list students query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapError("list students", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, wrapError("scan student", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate students", err)
	}
	return students, nil
}

// ListOptions retrieves id and name of every student ordered by name
func (r *StudentRepository) ListOptions(ctx context.Context) ([]*models.StudentOption, error) {
	rows, err := r.db.Query(ctx, `SELECT student_id, name FROM students ORDER BY name, student_id`)
	if err != nil {
		return nil, wrapError("list student options", err)
	}
	defer rows.Close()

	options := make([]*models.StudentOption, 0)
	for rows.Next() {
		var o models.StudentOption
		if err := rows.Scan(&o.StudentID, &o.Name); err != nil {
			return nil, wrapError("scan student option", err)
		}
		options = append(options, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate student options", err)
	}
	return options, nil
}

// Update rewrites the student stored under oldID, including a possible new ID
func (r *StudentRepository) Update(ctx context.Context, oldID string, s *models.Student) error {
	query := `
		UPDATE students
		SET student_id = $1, name = $2, gender = $3, age = $4, email = $5,
			contact = $6, admission_date = $7, room_no = $8
		WHERE student_id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		s.StudentID, s.Name, s.Gender, s.Age, s.Email, s.Contact, s.AdmissionDate, s.RoomNo, oldID)
	if err != nil {
		logger.Error().Err(err).Str("studentID", oldID).Msg("Error updating student")
		return mapStudentWriteError("update student", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete deletes a student row. A student still referenced by payments is
// refused by the caller beforehand; a racing reference surfaces here as a
// foreign key violation.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE student_id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentHasPayments
		}
		logger.Error().Err(err).Str("studentID", id).Msg("Error deleting student")
		return wrapError("delete student", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
