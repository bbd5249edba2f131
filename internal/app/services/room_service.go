package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/repositories"
	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/validation"
)

// RoomService handles room management
type RoomService struct {
	db       *db.PostgresDB
	roomRepo *repositories.RoomRepository
	logger   zerolog.Logger
}

// NewRoomService creates a new RoomService
func NewRoomService(database *db.PostgresDB, roomRepo *repositories.RoomRepository, logger zerolog.Logger) *RoomService {
	return &RoomService{
		db:       database,
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// ListRooms returns rooms ordered by number, optionally of one type
func (s *RoomService) ListRooms(ctx context.Context, roomType string) ([]*models.Room, error) {
	rooms, err := s.roomRepo.List(ctx, roomType)
	if err != nil {
		s.logger.Error().Err(err).Str("roomType", roomType).Msg("Error listing rooms")
		return []*models.Room{}, err
	}
	return rooms, nil
}

// ListOccupiedRooms returns rooms holding at least one student
func (s *RoomService) ListOccupiedRooms(ctx context.Context) ([]*models.Room, error) {
	rooms, err := s.roomRepo.ListOccupied(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing occupied rooms")
		return []*models.Room{}, err
	}
	return rooms, nil
}

// ListRoomTypes returns the distinct room types
func (s *RoomService) ListRoomTypes(ctx context.Context) ([]string, error) {
	types, err := s.roomRepo.ListTypes(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing room types")
		return []string{}, err
	}
	return types, nil
}

// ListAvailableRooms returns the numbers of rooms that accept students
func (s *RoomService) ListAvailableRooms(ctx context.Context) ([]string, error) {
	rooms, err := s.roomRepo.ListAvailable(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing available rooms")
		return []string{}, err
	}
	return rooms, nil
}

// GetRoom returns one room
func (s *RoomService) GetRoom(ctx context.Context, roomNo string) (*models.Room, error) {
	return s.roomRepo.GetByRoomNo(ctx, roomNo)
}

// AddRoom creates an empty room. Maintenance may be requested; any other
// status is derived from the (zero) occupancy.
func (s *RoomService) AddRoom(ctx context.Context, req *dto.CreateRoomRequest) (*models.Room, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	room := req.ToModel()
	room.Status = models.ResolveRequestedStatus(0, room.Capacity, req.Status)

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rooms := s.roomRepo.WithTx(tx)

		exists, err := rooms.ExistsByRoomNo(ctx, room.RoomNo)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrRoomAlreadyExists
		}
		return rooms.Create(ctx, room)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("roomNo", room.RoomNo).Msg("Room not added")
		return nil, err
	}

	s.logger.Info().Str("roomNo", room.RoomNo).Msg("Room added")
	return room, nil
}

// UpdateRoom changes type, capacity, rent and status of an existing room.
// The status is recomputed from occupancy unless Maintenance is requested.
// A blank status keeps a room under Maintenance.
func (s *RoomService) UpdateRoom(ctx context.Context, roomNo string, req *dto.UpdateRoomRequest) (*models.Room, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	room := req.ToModel(roomNo)

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rooms := s.roomRepo.WithTx(tx)

		current, err := rooms.LockByRoomNo(ctx, roomNo)
		if err != nil {
			return err
		}
		if room.Capacity < current.Occupied {
			return apperrors.NewValidationError(fmt.Sprintf(
				"Capacity cannot be lower than the current occupancy (%d).", current.Occupied))
		}

		requested := req.Status
		if requested == "" {
			requested = current.Status
		}
		room.Occupied = current.Occupied
		room.Status = models.ResolveRequestedStatus(current.Occupied, room.Capacity, requested)
		return rooms.Update(ctx, room)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("roomNo", roomNo).Msg("Room not updated")
		return nil, err
	}

	s.logger.Info().Str("roomNo", roomNo).Str("status", string(room.Status)).Msg("Room updated")
	return room, nil
}

// DeleteRoom removes a room that has no students
func (s *RoomService) DeleteRoom(ctx context.Context, roomNo string) error {
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rooms := s.roomRepo.WithTx(tx)

		current, err := rooms.LockByRoomNo(ctx, roomNo)
		if err != nil {
			return err
		}
		if current.Occupied > 0 {
			return apperrors.ErrRoomOccupied
		}
		return rooms.Delete(ctx, roomNo)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("roomNo", roomNo).Msg("Room not deleted")
		return err
	}

	s.logger.Info().Str("roomNo", roomNo).Msg("Room deleted")
	return nil
}
