package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Username  string    `json:"username" db:"username" example:"warden"`
	Email     string    `json:"email" db:"email" example:"warden@hostel.local"`
	Password  string    `json:"-" db:"password"` // hashed, never serialized
	Role      Role      `json:"role" db:"role" example:"staff"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// IsAdmin reports whether the user carries the admin flag
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
