package models

import (
	"time"

	"gorm.io/gorm"
)

// TimeoutAnswer is the sentinel recorded when a player lets the question
// timer run out without choosing an answer.
const TimeoutAnswer = "timeout"

// PlayerAnswer is an append-only scoring event: at most one per
// (session, question) pair.
type PlayerAnswer struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	GameSessionID  uint           `json:"game_session_id" gorm:"not null;uniqueIndex:idx_session_question"`
	QuestionID     uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_session_question"`
	SelectedAnswer string         `json:"selected_answer" gorm:"not null;size:255"`
	IsCorrect      bool           `json:"is_correct" gorm:"not null"`
	PointsEarned   int            `json:"points_earned" gorm:"not null"`
	TimeToAnswer   int            `json:"time_to_answer" gorm:"not null"` // milliseconds
	AnsweredAt     time.Time      `json:"answered_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	GameSession GameSession `json:"game_session,omitempty"`
	Question    Question    `json:"question,omitempty"`
}
