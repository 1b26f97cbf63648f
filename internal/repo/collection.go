// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the key-value collection store: each
// (user, key) pair holds one JSON document that is read and replaced whole.
//
// Semantics mirror a browser local-storage bucket: LoadCollection reports
// whether anything was stored, SaveCollection overwrites unconditionally
// (last write wins) and there are no transactions across keys.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Vinayak2k03/NotedAI/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// LoadCollection decodes the stored document for (userID, key) into out.
// found is false, and out untouched, when nothing has been saved yet.
func LoadCollection(ctx context.Context, db *gorm.DB, userID, key string, out any) (found bool, err error) {
	var row domain.Collection
	err = db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, key).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(row.Payload), out); err != nil {
		return true, fmt.Errorf("decode %s collection: %w", key, err)
	}
	return true, nil
}

// SaveCollection encodes v and upserts it as the document for (userID, key).
func SaveCollection(ctx context.Context, db *gorm.DB, userID, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s collection: %w", key, err)
	}
	now := time.Now().UTC()
	row := domain.Collection{
		ID:        uuid.NewString(),
		UserID:    userID,
		Key:       key,
		Payload:   string(payload),
		Size:      sizeOf(v),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "size", "updated_at"}),
	}).Create(&row).Error
}

// sizeOf reports the element count of a slice or map, else 1.
func sizeOf(v any) int {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	case reflect.Invalid:
		return 0
	}
	return 1
}
