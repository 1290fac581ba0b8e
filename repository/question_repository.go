package repository

import (
	"context"
	"errors"

	"github.com/Thayer574/quizshow/models"

	"gorm.io/gorm"
)

type GormQuestionRepository struct {
	db *gorm.DB
}

func NewGormQuestionRepository(db *gorm.DB) *GormQuestionRepository {
	return &GormQuestionRepository{db: db}
}

func (r *GormQuestionRepository) CreateQuestion(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *GormQuestionRepository) GetQuestionByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *GormQuestionRepository) GetRoomQuestions(ctx context.Context, roomID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id").
		Find(&questions).Error
	return questions, err
}

func (r *GormQuestionRepository) GetUserQuestions(ctx context.Context, userID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Where("created_by = ? AND room_id IS NULL", userID).
		Order("id").
		Find(&questions).Error
	return questions, err
}
