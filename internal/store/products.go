// Package store persists priced listings per user.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/audit"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/lock"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/metrics"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/models"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/pricing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// bounds how long one product waits behind another writer of the same key
const lockWait = 30 * time.Second

type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeSkipped   Outcome = "skipped"
)

// Summary counts the outcomes of one batch.
type Summary struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
}

func (s *Summary) add(o Outcome) {
	switch o {
	case OutcomeCreated:
		s.Created++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeUnchanged:
		s.Unchanged++
	default:
		s.Skipped++
	}
}

// mutableFields is what a later sighting may change on a stored product.
type mutableFields struct {
	CompetitorPrice   *float64                   `json:"competitorPrice"`
	AISuggestedPrice  *string                    `json:"aiSuggestedPrice"`
	PriceIntelligence *pricing.PriceIntelligence `json:"priceIntelligence"`
	ImageURL          *string                    `json:"imageUrl"`
}

type ProductStore struct {
	db     *gorm.DB
	locker lock.Locker
	logger *logrus.Entry
}

func NewProductStore(db *gorm.DB, locker lock.Locker, logger *logrus.Entry) *ProductStore {
	if locker == nil {
		locker = lock.NewMemoryLocker()
	}
	return &ProductStore{db: db, locker: locker, logger: logger}
}

// NaturalKey identifies a stored product.
func NaturalKey(userID uuid.UUID, category, name string) string {
	return userID.String() + "\x00" + category + "\x00" + name
}

// UpsertAll writes the listings one by one. A failed product is logged and
// skipped; it never stops the batch.
func (s *ProductStore) UpsertAll(ctx context.Context, listings []pricing.ProductListing, userID uuid.UUID) Summary {
	var sum Summary
	for _, l := range listings {
		outcome, err := s.Upsert(ctx, l, userID)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"product":  l.Name,
				"category": l.Category,
				"user_id":  userID,
			}).Error("product write skipped")
		}
		metrics.Upserts.WithLabelValues(string(outcome)).Inc()
		sum.add(outcome)
	}
	return sum
}

// Upsert creates the product on first sighting, otherwise overwrites only
// its mutable fields. Identical data leaves the row untouched.
func (s *ProductStore) Upsert(ctx context.Context, l pricing.ProductListing, userID uuid.UUID) (Outcome, error) {
	lockCtx, cancel := context.WithTimeout(ctx, lockWait)
	unlock, err := s.locker.Lock(lockCtx, NaturalKey(userID, l.Category, l.Name))
	cancel()
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("lock product: %w", err)
	}
	defer unlock()

	next := fieldsFromListing(l)
	intelJSON, err := encodeIntelligence(next.PriceIntelligence)
	if err != nil {
		return OutcomeSkipped, err
	}

	var existing models.Product
	err = s.db.WithContext(ctx).
		Where("name = ? AND category = ? AND user_id = ?", l.Name, l.Category, userID).
		First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.create(ctx, l, userID, next, intelJSON)
	case err != nil:
		return OutcomeSkipped, fmt.Errorf("lookup product: %w", err)
	}

	prev, err := fieldsFromProduct(&existing)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", existing.ID).Warn("stored intelligence unreadable, overwriting")
	}
	if err == nil && reflect.DeepEqual(prev, next) {
		return OutcomeUnchanged, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("id = ?", existing.ID).Updates(map[string]any{
			"competitor_price":   next.CompetitorPrice,
			"ai_suggested_price": next.AISuggestedPrice,
			"price_intelligence": intelJSON,
			"image_url":          next.ImageURL,
		}).Error; err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return audit.WriteLog(ctx, tx, audit.LogOptions{
			UserID:      userID,
			ProductID:   existing.ID,
			ProductName: existing.Name,
			Action:      models.PriceChangeUpdate,
			Before:      prev,
			After:       next,
		})
	})
	if err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeUpdated, nil
}

func (s *ProductStore) create(ctx context.Context, l pricing.ProductListing, userID uuid.UUID, next mutableFields, intelJSON datatypes.JSON) (Outcome, error) {
	p := models.Product{
		UserID:            userID,
		Name:              l.Name,
		Category:          l.Category,
		CompetitorPrice:   next.CompetitorPrice,
		AISuggestedPrice:  next.AISuggestedPrice,
		PriceIntelligence: intelJSON,
		ImageURL:          next.ImageURL,
		Link:              l.Link,
		Source:            l.Source,
		Stock:             l.Stock,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return audit.WriteLog(ctx, tx, audit.LogOptions{
			UserID:      userID,
			ProductID:   p.ID,
			ProductName: p.Name,
			Action:      models.PriceChangeCreate,
			After:       next,
		})
	})
	if err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeCreated, nil
}

// ListByUser returns the stored products of a user ordered by name.
func (s *ProductStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").Order("id asc").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func fieldsFromListing(l pricing.ProductListing) mutableFields {
	return mutableFields{
		CompetitorPrice:   l.CompetitorPrice,
		AISuggestedPrice:  l.AISuggestedPrice,
		PriceIntelligence: l.PriceIntelligence,
		ImageURL:          l.ImageURL,
	}
}

func fieldsFromProduct(p *models.Product) (mutableFields, error) {
	f := mutableFields{
		CompetitorPrice:  p.CompetitorPrice,
		AISuggestedPrice: p.AISuggestedPrice,
		ImageURL:         p.ImageURL,
	}
	intel, err := DecodeIntelligence(p.PriceIntelligence)
	f.PriceIntelligence = intel
	return f, err
}

func encodeIntelligence(intel *pricing.PriceIntelligence) (datatypes.JSON, error) {
	if intel == nil {
		return datatypes.JSON("null"), nil
	}
	b, err := json.Marshal(intel)
	if err != nil {
		return nil, fmt.Errorf("encode intelligence: %w", err)
	}
	return datatypes.JSON(b), nil
}

// DecodeIntelligence reads a stored diagnostic block; SQL NULL and JSON null
// both give nil.
func DecodeIntelligence(raw datatypes.JSON) (*pricing.PriceIntelligence, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	var intel pricing.PriceIntelligence
	if err := json.Unmarshal(raw, &intel); err != nil {
		return nil, fmt.Errorf("decode intelligence: %w", err)
	}
	return &intel, nil
}
