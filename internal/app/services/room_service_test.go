package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/repositories"
	"github.com/yigit/hostel/internal/pkg/apperrors"
)

func TestAddRoomStartsEmpty(t *testing.T) {
	database, mock := newTestDB(t)
	svc := NewRoomService(database, repositories.NewRoomRepository(mock), zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WithArgs("A101").WillReturnRows(existsRows(false))
	mock.ExpectExec("INSERT INTO rooms").
		WithArgs("A101", "Double", 2, 4500.0, models.RoomStatusAvailable).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	room, err := svc.AddRoom(context.Background(), &dto.CreateRoomRequest{
		RoomNo: " A101 ", RoomType: "Double", Capacity: 2, Rent: 4500, Status: models.RoomStatusFull,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if room.Occupied != 0 || room.Status != models.RoomStatusAvailable {
		t.Errorf("got %d/%s, want an empty available room", room.Occupied, room.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddRoomDuplicate(t *testing.T) {
	database, mock := newTestDB(t)
	svc := NewRoomService(database, repositories.NewRoomRepository(mock), zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WithArgs("A101").WillReturnRows(existsRows(true))
	mock.ExpectRollback()

	_, err := svc.AddRoom(context.Background(), &dto.CreateRoomRequest{RoomNo: "A101", RoomType: "Single", Capacity: 1, Rent: 3000})
	if !errors.Is(err, apperrors.ErrRoomAlreadyExists) {
		t.Fatalf("expected ErrRoomAlreadyExists, got %v", err)
	}
}

func TestUpdateRoomRecomputesStatus(t *testing.T) {
	tests := []struct {
		name       string
		occupied   int
		current    models.RoomStatus
		capacity   int
		requested  models.RoomStatus
		wantStatus models.RoomStatus
	}{
		{"shrinking to occupancy fills", 2, models.RoomStatusAvailable, 2, "", models.RoomStatusFull},
		{"growing frees a full room", 2, models.RoomStatusFull, 3, models.RoomStatusFull, models.RoomStatusAvailable},
		{"maintenance can be requested", 1, models.RoomStatusAvailable, 3, models.RoomStatusMaintenance, models.RoomStatusMaintenance},
		{"leaving maintenance recomputes", 0, models.RoomStatusMaintenance, 2, models.RoomStatusAvailable, models.RoomStatusAvailable},
		{"blank status keeps maintenance", 1, models.RoomStatusMaintenance, 3, "", models.RoomStatusMaintenance},
		{"blank status recomputes a full room", 2, models.RoomStatusFull, 3, "", models.RoomStatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database, mock := newTestDB(t)
			svc := NewRoomService(database, repositories.NewRoomRepository(mock), zerolog.Nop())

			mock.ExpectBegin()
			mock.ExpectQuery("FOR UPDATE").WithArgs("R1").WillReturnRows(lockedRoom("R1", 4, tt.occupied, tt.current))
			mock.ExpectExec("UPDATE rooms SET room_type").
				WithArgs("Double", tt.capacity, 5000.0, tt.wantStatus, "R1").
				WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			mock.ExpectCommit()

			room, err := svc.UpdateRoom(context.Background(), "R1", &dto.UpdateRoomRequest{
				RoomType: "Double", Capacity: tt.capacity, Rent: 5000, Status: tt.requested,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if room.Status != tt.wantStatus || room.Occupied != tt.occupied {
				t.Errorf("got %d/%s, want %d/%s", room.Occupied, room.Status, tt.occupied, tt.wantStatus)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestUpdateRoomBelowOccupancy(t *testing.T) {
	database, mock := newTestDB(t)
	svc := NewRoomService(database, repositories.NewRoomRepository(mock), zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("R1").WillReturnRows(lockedRoom("R1", 3, 3, models.RoomStatusFull))
	mock.ExpectRollback()

	_, err := svc.UpdateRoom(context.Background(), "R1", &dto.UpdateRoomRequest{RoomType: "Triple", Capacity: 2, Rent: 4000})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected a validation failure, got %v", err)
	}
}

func TestDeleteOccupiedRoom(t *testing.T) {
	database, mock := newTestDB(t)
	svc := NewRoomService(database, repositories.NewRoomRepository(mock), zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("R1").WillReturnRows(lockedRoom("R1", 2, 1, models.RoomStatusAvailable))
	mock.ExpectRollback()

	err := svc.DeleteRoom(context.Background(), "R1")
	if !errors.Is(err, apperrors.ErrRoomOccupied) {
		t.Fatalf("expected ErrRoomOccupied, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected the validation kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("nothing may change: %v", err)
	}
}

func TestDeleteEmptyRoom(t *testing.T) {
	database, mock := newTestDB(t)
	svc := NewRoomService(database, repositories.NewRoomRepository(mock), zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("R2").WillReturnRows(lockedRoom("R2", 2, 0, models.RoomStatusAvailable))
	mock.ExpectExec("DELETE FROM rooms").WithArgs("R2").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	if err := svc.DeleteRoom(context.Background(), "R2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListRoomsReturnsEmptySliceOnError(t *testing.T) {
	database, mock := newTestDB(t)
	svc := NewRoomService(database, repositories.NewRoomRepository(mock), zerolog.Nop())

	mock.ExpectQuery("FROM rooms").WillReturnError(errors.New("boom"))

	rooms, err := svc.ListRooms(context.Background(), "All")
	if err == nil {
		t.Fatal("expected an error")
	}
	if rooms == nil || len(rooms) != 0 {
		t.Errorf("expected an empty non-nil slice, got %v", rooms)
	}
}
