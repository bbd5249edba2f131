package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	StudentID     string     `json:"studentId" db:"student_id" example:"S001"`
	Name          string     `json:"name" db:"name" example:"Nguyen Van A"`
	Gender        *string    `json:"gender,omitempty" db:"gender" example:"Male"`
	Age           *int       `json:"age,omitempty" db:"age" example:"20"`
	Email         *string    `json:"email,omitempty" db:"email" example:"a@student.local"`
	Contact       *string    `json:"contact,omitempty" db:"contact"`
	AdmissionDate *time.Time `json:"admissionDate,omitempty" db:"admission_date"`
	RoomNo        *string    `json:"roomNo,omitempty" db:"room_no" example:"A101"` // nil when unassigned
}

// Room returns the assigned room number, or "" when unassigned.
func (s *Student) Room() string {
	if s.RoomNo == nil {
		return ""
	}
	return *s.RoomNo
}

// StudentOption is the id+name pair used by pickers
type StudentOption struct {
	StudentID string `json:"studentId" db:"student_id"`
	Name      string `json:"name" db:"name"`
}
