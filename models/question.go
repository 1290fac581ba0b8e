package models

import (
	"time"

	"gorm.io/gorm"
)

// Question is a multiple-choice item with exactly one correct answer and
// three wrong ones. RoomID is nil for questions in the author's personal
// solo bank.
type Question struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	CreatedBy     uint           `json:"created_by" gorm:"not null"`
	RoomID        *uint          `json:"room_id" gorm:"index"`
	QuestionText  string         `json:"question_text" gorm:"not null"`
	CorrectAnswer string         `json:"correct_answer" gorm:"not null;size:255"`
	WrongAnswer1  string         `json:"wrong_answer_1" gorm:"not null;size:255"`
	WrongAnswer2  string         `json:"wrong_answer_2" gorm:"not null;size:255"`
	WrongAnswer3  string         `json:"wrong_answer_3" gorm:"not null;size:255"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Author User  `json:"author,omitempty" gorm:"foreignKey:CreatedBy"`
	Room   *Room `json:"room,omitempty"`
}
