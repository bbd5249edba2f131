package models

// RoomStatus is the lifecycle state stored in rooms.status
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "Available"
	RoomStatusFull        RoomStatus = "Full"
	RoomStatusMaintenance RoomStatus = "Maintenance"
)

// Valid reports whether s is one of the stored statuses.
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusFull, RoomStatusMaintenance:
		return true
	}
	return false
}

// Room defines the room model based on the 'rooms' table
type Room struct {
	RoomNo   string     `json:"roomNo" db:"room_no" example:"A101"`
	RoomType string     `json:"roomType" db:"room_type" example:"Double"`
	Capacity int        `json:"capacity" db:"capacity" example:"2"`
	Occupied int        `json:"occupied" db:"occupied" example:"1"`
	Rent     float64    `json:"rent" db:"rent" example:"5000"`
	Status   RoomStatus `json:"status" db:"status" example:"Available"`
}

// HasSpace reports whether a student can be assigned to the room.
func (r *Room) HasSpace() bool {
	return r.Status != RoomStatusMaintenance && r.Occupied < r.Capacity
}

// NextRoomStatus derives the status after an occupancy change.
// A full room is always Full; otherwise Maintenance is kept and anything else
// becomes Available.
func NextRoomStatus(occupied, capacity int, current RoomStatus) RoomStatus {
	switch {
	case occupied >= capacity:
		return RoomStatusFull
	case current == RoomStatusMaintenance:
		return RoomStatusMaintenance
	default:
		return RoomStatusAvailable
	}
}

// ResolveRequestedStatus applies a status chosen by room management.
// Maintenance is honoured as requested; any other request is recomputed from
// occupancy so Full can never be set by hand on a room with free beds.
func ResolveRequestedStatus(occupied, capacity int, requested RoomStatus) RoomStatus {
	if requested == RoomStatusMaintenance {
		return RoomStatusMaintenance
	}
	return NextRoomStatus(occupied, capacity, RoomStatusAvailable)
}
