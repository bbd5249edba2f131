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
	"github.com/yigit/hostel/internal/pkg/logger"
)

// AllRoomTypes is the room-type filter value meaning "no filter"
const AllRoomTypes = "All"

// RoomRepository handles room database operations. Occupancy and status
// are only written through AdjustOccupancy (room_ledger.go) once a room exists.
type RoomRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(q db.Querier) *RoomRepository {
	return &RoomRepository{
		db: q,
		sb: statementBuilder(),
	}
}

// WithTx returns a copy bound to tx
func (r *RoomRepository) WithTx(tx pgx.Tx) *RoomRepository {
	return &RoomRepository{db: tx, sb: r.sb}
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	var room models.Room
	err := row.Scan(
		&room.RoomNo,
		&room.RoomType,
		&room.Capacity,
		&room.Occupied,
		&room.Rent,
		&room.Status,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Create inserts a room with zero occupancy
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (room_no, room_type, capacity, occupied, rent, status)
		VALUES ($1, $2, $3, 0, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, room.RoomNo, room.RoomType, room.Capacity, room.Rent, room.Status)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrRoomAlreadyExists
		}
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewValidationError("Capacity and rent must be positive.")
		}
		logger.Error().Err(err).Str("roomNo", room.RoomNo).Msg("Error creating room")
		return wrapError("create room", err)
	}
	room.Occupied = 0
	return nil
}

// GetByRoomNo retrieves a room by its number
func (r *RoomRepository) GetByRoomNo(ctx context.Context, roomNo string) (*models.Room, error) {
	query := `
		SELECT room_no, room_type, capacity, occupied, rent, status
		FROM rooms
		WHERE room_no = $1
	`

	room, err := scanRoom(r.db.QueryRow(ctx, query, roomNo))
	if err != nil {
		return nil, notFound("get room", err, apperrors.ErrRoomNotFound)
	}
	return room, nil
}

// LockByRoomNo retrieves a room and holds its row lock until the
// surrounding transaction ends
func (r *RoomRepository) LockByRoomNo(ctx context.Context, roomNo string) (*models.Room, error) {
	query := `
		SELECT room_no, room_type, capacity, occupied, rent, status
		FROM rooms
		WHERE room_no = $1
		FOR UPDATE
	`

	room, err := scanRoom(r.db.QueryRow(ctx, query, roomNo))
	if err != nil {
		return nil, notFound("lock room", err, apperrors.ErrRoomNotFound)
	}
	return room, nil
}

// ExistsByRoomNo checks whether a room number is taken
func (r *RoomRepository) ExistsByRoomNo(ctx context.Context, roomNo string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM rooms WHERE room_no = $1)`, roomNo).Scan(&exists)
	if err != nil {
		return false, wrapError("check room existence", err)
	}
	return exists, nil
}

// List retrieves rooms ordered by number. An empty or "All" roomType
// returns every room.
func (r *RoomRepository) List(ctx context.Context, roomType string) ([]*models.Room, error) {
	q := r.sb.Select("room_no", "room_type", "capacity", "occupied", "rent", "status").
		From("rooms").
		OrderBy("room_no")

	roomType = strings.TrimSpace(roomType)
	if roomType != "" && roomType != AllRoomTypes {
		q = q.Where(squirrel.Eq{"room_type": roomType})
	}

	return r.queryRooms(ctx, q)
}

// ListOccupied retrieves rooms with at least one student, ordered by number
func (r *RoomRepository) ListOccupied(ctx context.Context) ([]*models.Room, error) {
	q := r.sb.Select("room_no", "room_type", "capacity", "occupied", "rent", "status").
		From("rooms").
		Where(squirrel.Gt{"occupied": 0}).
		OrderBy("room_no")

	return r.queryRooms(ctx, q)
}

func (r *RoomRepository) queryRooms(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Room, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, wrapError("build rooms query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapError("list rooms", err)
	}
	defer rows.Close()

	rooms := make([]*models.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, wrapError("scan room", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate rooms", err)
	}
	return rooms, nil
}

// ListTypes retrieves the distinct room types in alphabetical order
func (r *RoomRepository) ListTypes(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `SELECT DISTINCT room_type FROM rooms ORDER BY room_type`)
}

// ListAvailable retrieves the numbers of rooms whose status is Available
func (r *RoomRepository) ListAvailable(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `SELECT room_no FROM rooms WHERE status = $1 ORDER BY room_no`, models.RoomStatusAvailable)
}

func (r *RoomRepository) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("list room values", err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, wrapError("scan room value", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate room values", err)
	}
	return values, nil
}

// Update writes the managed attributes of a room. The caller resolves the
// status from the locked occupancy; room_no and occupied never change here.
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	query := `
		UPDATE rooms
		SET room_type = $1, capacity = $2, rent = $3, status = $4
		WHERE room_no = $5
	`

	cmdTag, err := r.db.Exec(ctx, query, room.RoomType, room.Capacity, room.Rent, room.Status, room.RoomNo)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewValidationError("Capacity and rent must be positive.")
		}
		logger.Error().Err(err).Str("roomNo", room.RoomNo).Msg("Error updating room")
		return wrapError("update room", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}
	return nil
}

// Delete deletes an empty room. Rooms that still hold students are left
// untouched and reported as occupied.
func (r *RoomRepository) Delete(ctx context.Context, roomNo string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE room_no = $1 AND occupied = 0`, roomNo)
	if err != nil {
		return wrapError("delete room", err)
	}
	if cmdTag.RowsAffected() == 0 {
		exists, err := r.ExistsByRoomNo(ctx, roomNo)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrRoomOccupied
		}
		return apperrors.ErrRoomNotFound
	}
	return nil
}
