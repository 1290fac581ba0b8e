package models

import (
	"time"

	"gorm.io/gorm"
)

type RoomMember struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	RoomID    uint           `json:"room_id" gorm:"not null;uniqueIndex:idx_room_user"`
	UserID    uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_room_user"`
	JoinedAt  time.Time      `json:"joined_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Room Room `json:"room,omitempty"`
	User User `json:"user,omitempty"`
}

// RoomMemberInfo is the member row joined with the user's display name,
// as returned by member listings.
type RoomMemberInfo struct {
	ID       uint      `json:"id"`
	UserID   uint      `json:"user_id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}
