package services

import (
	"context"
	"errors"
	"time"

	"github.com/Thayer574/quizshow/models"
	"github.com/Thayer574/quizshow/repository"
)

type QuestionService struct {
	questions repository.QuestionRepository
	rooms     repository.RoomRepository
}

func NewQuestionService(questions repository.QuestionRepository, rooms repository.RoomRepository) *QuestionService {
	return &QuestionService{questions: questions, rooms: rooms}
}

type AddQuestionRequest struct {
	QuestionText  string `json:"question_text" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
	WrongAnswer1  string `json:"wrong_answer_1" binding:"required"`
	WrongAnswer2  string `json:"wrong_answer_2" binding:"required"`
	WrongAnswer3  string `json:"wrong_answer_3" binding:"required"`
	RoomID        *uint  `json:"room_id"`
}

// AddQuestion stores a question in the caller's solo bank, or in a room's
// shared set when RoomID is given. Any member may author questions while the
// room is waiting.
func (s *QuestionService) AddQuestion(ctx context.Context, userID uint, req *AddQuestionRequest) (*models.Question, error) {
	if req.RoomID != nil {
		if _, err := s.rooms.GetRoomByID(ctx, *req.RoomID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
	}

	question := &models.Question{
		CreatedBy:     userID,
		RoomID:        req.RoomID,
		QuestionText:  req.QuestionText,
		CorrectAnswer: req.CorrectAnswer,
		WrongAnswer1:  req.WrongAnswer1,
		WrongAnswer2:  req.WrongAnswer2,
		WrongAnswer3:  req.WrongAnswer3,
		CreatedAt:     time.Now(),
	}
	if err := s.questions.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) GetRoomQuestions(ctx context.Context, roomID uint) ([]models.Question, error) {
	if _, err := s.rooms.GetRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.questions.GetRoomQuestions(ctx, roomID)
}

// GetUserQuestions returns the caller's personal solo bank.
func (s *QuestionService) GetUserQuestions(ctx context.Context, userID uint) ([]models.Question, error) {
	return s.questions.GetUserQuestions(ctx, userID)
}
