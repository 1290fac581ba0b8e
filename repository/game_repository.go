package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Thayer574/quizshow/models"

	"gorm.io/gorm"
)

type GormGameRepository struct {
	db *gorm.DB
}

func NewGormGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

func (r *GormGameRepository) CreateSession(ctx context.Context, session *models.GameSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *GormGameRepository) GetSessionByID(ctx context.Context, id uint) (*models.GameSession, error) {
	var session models.GameSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *GormGameRepository) CreateAnswer(ctx context.Context, answer *models.PlayerAnswer) error {
	if err := r.db.WithContext(ctx).Create(answer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormGameRepository) AddSessionScore(ctx context.Context, sessionID uint, points int) error {
	result := r.db.WithContext(ctx).Model(&models.GameSession{}).
		Where("id = ?", sessionID).
		Update("final_score", gorm.Expr("final_score + ?", points))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormGameRepository) EndSession(ctx context.Context, sessionID uint, endedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.GameSession{}).
		Where("id = ?", sessionID).
		Update("ended_at", endedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormGameRepository) ListLeaderboard(ctx context.Context, roomID uint) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := r.db.WithContext(ctx).
		Table("game_sessions").
		Select("game_sessions.user_id, users.name, game_sessions.final_score").
		Joins("INNER JOIN users ON users.id = game_sessions.user_id").
		Where("game_sessions.room_id = ? AND game_sessions.deleted_at IS NULL", roomID).
		Order("game_sessions.final_score DESC, game_sessions.id").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
