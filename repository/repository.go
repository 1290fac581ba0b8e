package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Thayer574/quizshow/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository stores user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateUserName(ctx context.Context, id uint, name string) error
}

// RoomRepository stores rooms and their membership rows.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoomByCode(ctx context.Context, code string) (*models.Room, error)
	GetRoomByID(ctx context.Context, id uint) (*models.Room, error)
	AddMember(ctx context.Context, member *models.RoomMember) error
	ListMembers(ctx context.Context, roomID uint) ([]models.RoomMemberInfo, error)

	// AdvanceRoomQuestion increments the question index by one, but only if
	// the stored index still equals fromIndex. Returns false when the index
	// moved underneath the caller.
	AdvanceRoomQuestion(ctx context.Context, roomID uint, fromIndex int) (bool, error)

	// ResetRoomForPlay moves the room to playing with the index back at zero.
	ResetRoomForPlay(ctx context.Context, roomID uint) error

	// FinishRoom marks the room finished.
	FinishRoom(ctx context.Context, roomID uint) error
}

// QuestionRepository stores multiple-choice questions.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question *models.Question) error
	GetQuestionByID(ctx context.Context, id uint) (*models.Question, error)
	GetRoomQuestions(ctx context.Context, roomID uint) ([]models.Question, error)
	GetUserQuestions(ctx context.Context, userID uint) ([]models.Question, error)
}

// GameRepository stores play-through sessions and their recorded answers.
type GameRepository interface {
	CreateSession(ctx context.Context, session *models.GameSession) error
	GetSessionByID(ctx context.Context, id uint) (*models.GameSession, error)
	CreateAnswer(ctx context.Context, answer *models.PlayerAnswer) error
	AddSessionScore(ctx context.Context, sessionID uint, points int) error
	EndSession(ctx context.Context, sessionID uint, endedAt time.Time) error
	ListLeaderboard(ctx context.Context, roomID uint) ([]models.LeaderboardEntry, error)
}
