package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Product is a competitor listing stored per user. (name, category, user_id)
// is the natural key; only the price fields and the image change after the
// first insert.
type Product struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_products_natural_key,priority:3" json:"userId"`
	Name              string         `gorm:"size:512;not null;uniqueIndex:idx_products_natural_key,priority:1" json:"name"`
	Category          string         `gorm:"size:100;not null;uniqueIndex:idx_products_natural_key,priority:2" json:"category"`
	CompetitorPrice   *float64       `gorm:"column:competitor_price" json:"competitorPrice"`
	AISuggestedPrice  *string        `gorm:"column:ai_suggested_price;size:50" json:"aiSuggestedPrice"`
	PriceIntelligence datatypes.JSON `gorm:"column:price_intelligence" json:"priceIntelligence"`
	ImageURL          *string        `gorm:"column:image_url;size:1024" json:"imageUrl"`
	Link              string         `gorm:"size:2048" json:"link"`
	Source            string         `gorm:"size:255" json:"source"`
	Stock             string         `gorm:"size:100" json:"stock"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}
