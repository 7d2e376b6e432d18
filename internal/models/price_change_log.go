package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PriceChangeAction string

const (
	PriceChangeCreate PriceChangeAction = "create"
	PriceChangeUpdate PriceChangeAction = "update"
)

type PriceChangeLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	ProductID   uint      `gorm:"index;not null" json:"productId"`
	ProductName string    `gorm:"size:512" json:"productName"`

	Action PriceChangeAction `gorm:"size:20" json:"action"`

	// Snapshot of the mutable product fields. BeforeData is null on create.
	BeforeData datatypes.JSON `json:"beforeData"`
	AfterData  datatypes.JSON `json:"afterData"`
}
