package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"size:100;not null"`
	Email               string    `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash        string    `gorm:"size:255;not null"`
	BusinessName        string    `gorm:"size:150;not null"`
	BusinessCategory    string    `gorm:"size:100;not null;index"`
	BusinessSubCategory string    `gorm:"size:100"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
