package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	Name         string         `json:"name"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"not null;default:'user'"` // user, admin
	LastSignedIn time.Time      `json:"last_signed_in"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Rooms     []Room     `json:"rooms,omitempty" gorm:"foreignKey:OwnerID"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:CreatedBy"`
}
