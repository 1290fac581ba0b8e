package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Thayer574/quizshow/models"
	"github.com/Thayer574/quizshow/repository"
)

// maxCodeAttempts bounds the regenerate-and-retry loop on room code
// collisions.
const maxCodeAttempts = 5

type RoomService struct {
	rooms        repository.RoomRepository
	users        repository.UserRepository
	questions    repository.QuestionRepository
	cache        *RoomStateCache
	now          func() time.Time
	generateCode func() string
}

func NewRoomService(rooms repository.RoomRepository, users repository.UserRepository, questions repository.QuestionRepository, cache *RoomStateCache) *RoomService {
	return &RoomService{
		rooms:        rooms,
		users:        users,
		questions:    questions,
		cache:        cache,
		now:          time.Now,
		generateCode: GenerateRoomCode,
	}
}

// NewRoomServiceWithClock is test-only for deterministic timestamps.
func NewRoomServiceWithClock(rooms repository.RoomRepository, users repository.UserRepository, questions repository.QuestionRepository, cache *RoomStateCache, now func() time.Time) *RoomService {
	s := NewRoomService(rooms, users, questions, cache)
	s.now = now
	return s
}

type JoinRoomRequest struct {
	Code       string `json:"code" binding:"required"`
	PlayerName string `json:"player_name"`
}

// CreateRoom allocates a shareable code and persists a waiting room. Code
// collisions are retried with a fresh code up to maxCodeAttempts times.
func (s *RoomService) CreateRoom(ctx context.Context, ownerID uint) (*models.Room, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		room := &models.Room{
			Code:                 s.generateCode(),
			OwnerID:              ownerID,
			Status:               models.RoomStatusWaiting,
			CurrentQuestionIndex: 0,
		}

		err := s.rooms.CreateRoom(ctx, room)
		if errors.Is(err, repository.ErrDuplicate) {
			log.Printf("Room code %s collided, retrying (%d/%d)", room.Code, attempt+1, maxCodeAttempts)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.storeState(ctx, room, 0)
		return room, nil
	}

	return nil, ErrRoomCodeExhausted
}

func (s *RoomService) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	room, err := s.rooms.GetRoomByCode(ctx, strings.ToUpper(code))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	return room, err
}

func (s *RoomService) GetRoomByID(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.rooms.GetRoomByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	return room, err
}

// JoinRoom records membership for the caller. Joining a room you are already
// in is treated as a rejoin: the display name is refreshed and no second
// membership row is written.
func (s *RoomService) JoinRoom(ctx context.Context, code string, userID uint, playerName string, hub *Hub) (*models.Room, error) {
	room, err := s.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if playerName != "" {
		if err := s.users.UpdateUserName(ctx, userID, playerName); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	member := &models.RoomMember{
		RoomID:   room.ID,
		UserID:   userID,
		JoinedAt: s.now(),
	}
	if err := s.rooms.AddMember(ctx, member); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		log.Printf("User %d rejoined room %s", userID, room.Code)
	}

	if hub != nil {
		hub.BroadcastToRoom(room.Code, "member_joined", map[string]interface{}{
			"user_id":     userID,
			"player_name": playerName,
		})
	}

	return room, nil
}

func (s *RoomService) ListMembers(ctx context.Context, roomID uint) ([]models.RoomMemberInfo, error) {
	if _, err := s.GetRoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	return s.rooms.ListMembers(ctx, roomID)
}

// AdvanceQuestion moves the room to the next question. Only the owner may
// advance, and the increment is a compare-and-swap against the index the
// owner last observed, so a double click cannot skip a question. Advancing
// past the last question marks the room finished.
func (s *RoomService) AdvanceQuestion(ctx context.Context, roomID uint, callerID uint, hub *Hub) (*models.Room, error) {
	room, err := s.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.OwnerID != callerID {
		return nil, ErrNotRoomOwner
	}

	ok, err := s.rooms.AdvanceRoomQuestion(ctx, roomID, room.CurrentQuestionIndex)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStaleQuestionIndex
	}

	newIndex := room.CurrentQuestionIndex + 1

	total, err := s.countQuestions(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if total > 0 && newIndex >= total {
		if err := s.rooms.FinishRoom(ctx, roomID); err != nil {
			return nil, err
		}
	}

	room, err = s.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	s.storeState(ctx, room, total)

	if hub != nil {
		hub.BroadcastToRoom(room.Code, "question_advanced", map[string]interface{}{
			"current_question_index": room.CurrentQuestionIndex,
			"status":                 room.Status,
			"total_questions":        total,
		})
	}

	return room, nil
}

// GetRoomState returns the polling snapshot for a room, preferring the cache
// and rebuilding it from the database on a miss.
func (s *RoomService) GetRoomState(ctx context.Context, code string) (*RoomState, error) {
	if s.cache != nil {
		if state := s.cache.Get(ctx, code); state != nil {
			return state, nil
		}
	}

	room, err := s.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	total, err := s.countQuestions(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	state := s.storeState(ctx, room, total)
	return state, nil
}

func (s *RoomService) countQuestions(ctx context.Context, roomID uint) (int, error) {
	questions, err := s.questions.GetRoomQuestions(ctx, roomID)
	if err != nil {
		return 0, err
	}
	return len(questions), nil
}

// storeState refreshes the cached snapshot, stamping the question start time
// that the answer recorder scores against.
func (s *RoomService) storeState(ctx context.Context, room *models.Room, total int) *RoomState {
	state := &RoomState{
		RoomID:               room.ID,
		Code:                 room.Code,
		Status:               room.Status,
		CurrentQuestionIndex: room.CurrentQuestionIndex,
		TotalQuestions:       total,
		QuestionStartedAt:    s.now(),
	}
	if s.cache != nil {
		if err := s.cache.Store(ctx, state); err != nil {
			log.Printf("Failed to store room state for %s: %v", room.Code, err)
		}
	}
	return state
}
