package dto

import (
	"strings"

	"github.com/yigit/hostel/internal/app/models"
)

// CreateRoomRequest represents a new room
type CreateRoomRequest struct {
	RoomNo   string            `json:"roomNo" validate:"required,roomno"`
	RoomType string            `json:"roomType" validate:"required,max=50"`
	Capacity int               `json:"capacity" validate:"required,gt=0"`
	Rent     float64           `json:"rent" validate:"required,gt=0"`
	Status   models.RoomStatus `json:"status" validate:"omitempty,oneof=Available Full Maintenance"`
}

// UpdateRoomRequest represents editable room attributes; the room number is fixed
type UpdateRoomRequest struct {
	RoomType string            `json:"roomType" validate:"required,max=50"`
	Capacity int               `json:"capacity" validate:"required,gt=0"`
	Rent     float64           `json:"rent" validate:"required,gt=0"`
	Status   models.RoomStatus `json:"status" validate:"omitempty,oneof=Available Full Maintenance"`
}

// Normalize trims free text before validation.
func (r *CreateRoomRequest) Normalize() {
	r.RoomNo = strings.TrimSpace(r.RoomNo)
	r.RoomType = strings.TrimSpace(r.RoomType)
}

// Normalize trims free text before validation.
func (r *UpdateRoomRequest) Normalize() {
	r.RoomType = strings.TrimSpace(r.RoomType)
}

// ToModel builds a room with zero occupancy from the request
func (r *CreateRoomRequest) ToModel() *models.Room {
	room := &models.Room{}
	copyFields(room, r)
	return room
}

// ToModel builds the room for roomNo from the request
func (r *UpdateRoomRequest) ToModel(roomNo string) *models.Room {
	room := &models.Room{}
	copyFields(room, r)
	room.RoomNo = roomNo
	return room
}
