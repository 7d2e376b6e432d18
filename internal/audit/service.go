// Package audit records every change the upsert writer makes to a stored
// product, with before/after snapshots of the mutable fields.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type LogOptions struct {
	UserID      uuid.UUID
	ProductID   uint
	ProductName string
	Action      models.PriceChangeAction
	Before      any
	After       any
}

// WriteLog appends a price change entry using db, which may be a
// transaction.
func WriteLog(ctx context.Context, db *gorm.DB, opts LogOptions) error {
	entry := models.PriceChangeLog{
		UserID:      opts.UserID,
		ProductID:   opts.ProductID,
		ProductName: opts.ProductName,
		Action:      opts.Action,
		BeforeData:  toJSON(opts.Before),
		AfterData:   toJSON(opts.After),
	}

	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("price change log: %w", err)
	}
	return nil
}

// ListForUser returns the newest entries first.
func ListForUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]models.PriceChangeLog, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var logs []models.PriceChangeLog
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Order("id desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list price changes: %w", err)
	}
	return logs, nil
}

// JSON columns always hold a document; a missing snapshot is the JSON null
// literal, never SQL NULL.
func toJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}

// Reader binds ListForUser to a database handle.
type Reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

func (r *Reader) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PriceChangeLog, error) {
	return ListForUser(ctx, r.db, userID, limit)
}
