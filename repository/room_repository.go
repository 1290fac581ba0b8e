package repository

import (
	"context"
	"errors"

	"github.com/Thayer574/quizshow/models"

	"gorm.io/gorm"
)

type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormRoomRepository) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *GormRoomRepository) GetRoomByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *GormRoomRepository) AddMember(ctx context.Context, member *models.RoomMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormRoomRepository) ListMembers(ctx context.Context, roomID uint) ([]models.RoomMemberInfo, error) {
	var members []models.RoomMemberInfo
	err := r.db.WithContext(ctx).
		Table("room_members").
		Select("room_members.id, room_members.user_id, users.name, room_members.joined_at").
		Joins("INNER JOIN users ON users.id = room_members.user_id").
		Where("room_members.room_id = ? AND room_members.deleted_at IS NULL", roomID).
		Order("room_members.id").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// AdvanceRoomQuestion is a compare-and-swap on the question index so two
// rapid advance calls from the owner cannot skip a question.
func (r *GormRoomRepository) AdvanceRoomQuestion(ctx context.Context, roomID uint, fromIndex int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ? AND current_question_index = ?", roomID, fromIndex).
		Update("current_question_index", fromIndex+1)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormRoomRepository) ResetRoomForPlay(ctx context.Context, roomID uint) error {
	result := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{
			"current_question_index": 0,
			"status":                 models.RoomStatusPlaying,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRoomRepository) FinishRoom(ctx context.Context, roomID uint) error {
	result := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("status", models.RoomStatusFinished)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
