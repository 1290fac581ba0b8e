package models

import (
	"time"

	"gorm.io/gorm"
)

// GameSession is one player's play-through. RoomID is nil for solo play
// against the player's own question bank.
type GameSession struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	RoomID     *uint          `json:"room_id" gorm:"index"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	StartedAt  time.Time      `json:"started_at"`
	EndedAt    *time.Time     `json:"ended_at"`
	FinalScore int            `json:"final_score" gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Room    *Room          `json:"room,omitempty"`
	User    User           `json:"user,omitempty"`
	Answers []PlayerAnswer `json:"answers,omitempty" gorm:"foreignKey:GameSessionID"`
}

// LeaderboardEntry is a session joined with the player's name, ordered by
// final score in leaderboard listings.
type LeaderboardEntry struct {
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	FinalScore int    `json:"final_score"`
}
