package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Thayer574/quizshow/models"
	"github.com/Thayer574/quizshow/repository"
)

// GameService owns per-player sessions and answer recording. Correctness and
// points are computed server-side from the stored question; the client's
// answer text is the only untrusted input that influences them.
type GameService struct {
	games     repository.GameRepository
	questions repository.QuestionRepository
	rooms     repository.RoomRepository
	cache     *RoomStateCache
	now       func() time.Time
}

func NewGameService(games repository.GameRepository, questions repository.QuestionRepository, rooms repository.RoomRepository, cache *RoomStateCache) *GameService {
	return &GameService{
		games:     games,
		questions: questions,
		rooms:     rooms,
		cache:     cache,
		now:       time.Now,
	}
}

// NewGameServiceWithClock is test-only for deterministic timestamps.
func NewGameServiceWithClock(games repository.GameRepository, questions repository.QuestionRepository, rooms repository.RoomRepository, cache *RoomStateCache, now func() time.Time) *GameService {
	s := NewGameService(games, questions, rooms, cache)
	s.now = now
	return s
}

type StartSessionRequest struct {
	RoomID *uint `json:"room_id"`
}

type RecordAnswerRequest struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer" binding:"required"`
	TimeToAnswer   int    `json:"time_to_answer"` // milliseconds
	// IsCorrect and PointsEarned are accepted for wire compatibility with
	// older clients but never trusted; the server recomputes both.
	IsCorrect    bool `json:"is_correct"`
	PointsEarned int  `json:"points_earned"`
}

// StartSession creates a play-through session for the caller. For room play
// the reference behavior couples session creation with the room's transition
// to playing; that transition only happens when the caller owns the room, so
// joining players simply get their own sessions.
func (s *GameService) StartSession(ctx context.Context, userID uint, roomID *uint, hub *Hub) (*models.GameSession, error) {
	if roomID != nil {
		room, err := s.rooms.GetRoomByID(ctx, *roomID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}

		if room.OwnerID == userID {
			if err := s.rooms.ResetRoomForPlay(ctx, *roomID); err != nil {
				return nil, err
			}
			s.markQuestionStart(ctx, room.Code, 0)

			if hub != nil {
				hub.BroadcastToRoom(room.Code, "game_started", map[string]interface{}{
					"room_id":                room.ID,
					"current_question_index": 0,
				})
			}
		}
	}

	session := &models.GameSession{
		RoomID:    roomID,
		UserID:    userID,
		StartedAt: s.now(),
	}
	if err := s.games.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RecordAnswer appends one scoring event for the caller's session. At most
// one answer per (session, question) pair is accepted; duplicates fail with
// ErrAlreadyAnswered and write nothing.
func (s *GameService) RecordAnswer(ctx context.Context, userID uint, sessionID uint, req *RecordAnswerRequest, hub *Hub) (*models.PlayerAnswer, error) {
	session, err := s.games.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}

	question, err := s.questions.GetQuestionByID(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	isCorrect := req.SelectedAnswer != models.TimeoutAnswer &&
		req.SelectedAnswer == question.CorrectAnswer

	elapsedMs, roomCode := s.resolveElapsed(ctx, session, req.TimeToAnswer)
	remaining := ClampTimeRemaining(
		QuestionTimeLimit-float64(elapsedMs)/1000.0,
		QuestionTimeLimit,
	)
	points := CalculatePoints(isCorrect, remaining, QuestionTimeLimit, PointsPerCorrect, MaxSpeedBonus)

	answer := &models.PlayerAnswer{
		GameSessionID:  sessionID,
		QuestionID:     req.QuestionID,
		SelectedAnswer: req.SelectedAnswer,
		IsCorrect:      isCorrect,
		PointsEarned:   points,
		TimeToAnswer:   elapsedMs,
		AnsweredAt:     s.now(),
	}
	if err := s.games.CreateAnswer(ctx, answer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyAnswered
		}
		return nil, err
	}

	if points > 0 {
		if err := s.games.AddSessionScore(ctx, sessionID, points); err != nil {
			return nil, err
		}
	}

	if hub != nil && roomCode != "" {
		hub.BroadcastToRoom(roomCode, "answer_recorded", map[string]interface{}{
			"user_id":       userID,
			"question_id":   req.QuestionID,
			"points_earned": points,
		})
	}

	return answer, nil
}

// EndSession stamps the session as finished and returns it with its final
// score.
func (s *GameService) EndSession(ctx context.Context, userID uint, sessionID uint) (*models.GameSession, error) {
	session, err := s.games.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}

	if err := s.games.EndSession(ctx, sessionID, s.now()); err != nil {
		return nil, err
	}
	return s.games.GetSessionByID(ctx, sessionID)
}

// GetLeaderboard lists a room's sessions joined with player names, best score
// first.
func (s *GameService) GetLeaderboard(ctx context.Context, roomID uint) ([]models.LeaderboardEntry, error) {
	if _, err := s.rooms.GetRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.games.ListLeaderboard(ctx, roomID)
}

// resolveElapsed picks the elapsed time used for scoring. Room sessions score
// against the server-tracked question start when the cache has one; solo play
// and cache misses fall back to the client-reported elapsed milliseconds.
func (s *GameService) resolveElapsed(ctx context.Context, session *models.GameSession, clientElapsedMs int) (int, string) {
	if session.RoomID == nil || s.cache == nil {
		return clientElapsedMs, ""
	}

	room, err := s.rooms.GetRoomByID(ctx, *session.RoomID)
	if err != nil {
		log.Printf("Failed to load room %d for answer scoring: %v", *session.RoomID, err)
		return clientElapsedMs, ""
	}

	state := s.cache.Get(ctx, room.Code)
	if state == nil || state.QuestionStartedAt.IsZero() {
		return clientElapsedMs, room.Code
	}

	elapsed := s.now().Sub(state.QuestionStartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return int(elapsed.Milliseconds()), room.Code
}

// markQuestionStart refreshes the cached snapshot when a room begins playing.
func (s *GameService) markQuestionStart(ctx context.Context, code string, index int) {
	if s.cache == nil {
		return
	}

	state := s.cache.Get(ctx, code)
	if state == nil {
		room, err := s.rooms.GetRoomByCode(ctx, code)
		if err != nil {
			return
		}
		state = &RoomState{RoomID: room.ID, Code: room.Code}
	}
	state.Status = models.RoomStatusPlaying
	state.CurrentQuestionIndex = index
	state.QuestionStartedAt = s.now()
	if err := s.cache.Store(ctx, state); err != nil {
		log.Printf("Failed to store room state for %s: %v", code, err)
	}
}
