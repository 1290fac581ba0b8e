package models

import (
	"time"

	"gorm.io/gorm"
)

// Room statuses. A room starts out waiting, becomes playing when the owner
// starts the game and finished once the question sequence is exhausted.
const (
	RoomStatusWaiting  = "waiting"
	RoomStatusPlaying  = "playing"
	RoomStatusFinished = "finished"
)

type Room struct {
	ID                   uint           `json:"id" gorm:"primaryKey"`
	Code                 string         `json:"code" gorm:"uniqueIndex;not null;size:10"`
	OwnerID              uint           `json:"owner_id" gorm:"not null"`
	Status               string         `json:"status" gorm:"not null;default:'waiting'"`
	CurrentQuestionIndex int            `json:"current_question_index" gorm:"not null;default:0"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Owner     User         `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Members   []RoomMember `json:"members,omitempty" gorm:"foreignKey:RoomID"`
	Questions []Question   `json:"questions,omitempty" gorm:"foreignKey:RoomID"`
}
