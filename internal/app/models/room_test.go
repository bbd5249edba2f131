package models

import "testing"

func TestNextRoomStatus(t *testing.T) {
	cases := []struct {
		name     string
		occupied int
		capacity int
		current  RoomStatus
		want     RoomStatus
	}{
		{"fills up", 2, 2, RoomStatusAvailable, RoomStatusFull},
		{"over capacity stays full", 3, 2, RoomStatusFull, RoomStatusFull},
		{"frees a bed", 1, 2, RoomStatusFull, RoomStatusAvailable},
		{"empty room", 0, 2, RoomStatusAvailable, RoomStatusAvailable},
		{"maintenance is sticky below capacity", 1, 2, RoomStatusMaintenance, RoomStatusMaintenance},
		{"maintenance room that fills becomes full", 2, 2, RoomStatusMaintenance, RoomStatusFull},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextRoomStatus(tc.occupied, tc.capacity, tc.current); got != tc.want {
				t.Errorf("NextRoomStatus(%d, %d, %s) = %s, want %s", tc.occupied, tc.capacity, tc.current, got, tc.want)
			}
		})
	}
}

func TestResolveRequestedStatus(t *testing.T) {
	if got := ResolveRequestedStatus(2, 2, RoomStatusMaintenance); got != RoomStatusMaintenance {
		t.Errorf("maintenance request must be honoured, got %s", got)
	}
	if got := ResolveRequestedStatus(0, 2, RoomStatusFull); got != RoomStatusAvailable {
		t.Errorf("full request on empty room must resolve to Available, got %s", got)
	}
	if got := ResolveRequestedStatus(2, 2, RoomStatusAvailable); got != RoomStatusFull {
		t.Errorf("available request on full room must resolve to Full, got %s", got)
	}
}

func TestRoomHasSpace(t *testing.T) {
	if !(&Room{Capacity: 2, Occupied: 1, Status: RoomStatusAvailable}).HasSpace() {
		t.Error("room with a free bed should have space")
	}
	if (&Room{Capacity: 2, Occupied: 2, Status: RoomStatusFull}).HasSpace() {
		t.Error("full room should not have space")
	}
	if (&Room{Capacity: 4, Occupied: 0, Status: RoomStatusMaintenance}).HasSpace() {
		t.Error("room under maintenance should not have space")
	}
}
