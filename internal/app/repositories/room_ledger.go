package repositories

import (
	"context"

	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// AdjustOccupancy moves a room's occupancy by delta and recomputes its
// status in one locked read-modify-write. It must run on a transaction-bound
// repository so the lock and the write commit with the caller's other
// statements. An empty roomNo is a no-op and returns (nil, nil).
func (r *RoomRepository) AdjustOccupancy(ctx context.Context, roomNo string, delta int) (*models.Room, error) {
	if roomNo == "" || delta == 0 {
		return nil, nil
	}

	room, err := r.LockByRoomNo(ctx, roomNo)
	if err != nil {
		return nil, err
	}

	if delta > 0 && !room.HasSpace() {
		logger.Warn().
			Str("roomNo", roomNo).
			Int("occupied", room.Occupied).
			Int("capacity", room.Capacity).
			Str("status", string(room.Status)).
			Msg("Rejected assignment to unavailable room")
		return nil, apperrors.ErrRoomUnavailable
	}

	occupied := room.Occupied + delta
	if occupied < 0 {
		logger.Warn().
			Str("roomNo", roomNo).
			Int("occupied", room.Occupied).
			Int("delta", delta).
			Msg("Room occupancy would drop below zero, clamping")
		occupied = 0
	}
	status := models.NextRoomStatus(occupied, room.Capacity, room.Status)

	_, err = r.db.Exec(ctx, `UPDATE rooms SET occupied = $1, status = $2 WHERE room_no = $3`, occupied, status, roomNo)
	if err != nil {
		logger.Error().Err(err).Str("roomNo", roomNo).Int("delta", delta).Msg("Error adjusting room occupancy")
		return nil, wrapError("adjust room occupancy", err)
	}

	room.Occupied = occupied
	room.Status = status
	logger.Debug().
		Str("roomNo", roomNo).
		Int("occupied", occupied).
		Str("status", string(status)).
		Msg("Room occupancy adjusted")
	return room, nil
}
