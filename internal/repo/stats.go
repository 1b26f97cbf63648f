// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small metadata queries used for
// conditional responses (weak ETags) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Vinayak2k03/NotedAI/internal/domain"
)

// CollectionStats returns the element count and last write time of the
// (userID, key) collection without decoding its payload. A collection that
// was never saved reports (0, nil, nil).
func CollectionStats(ctx context.Context, db *gorm.DB, userID, key string) (size int, updatedAt *time.Time, err error) {
	var row struct {
		Size      int
		UpdatedAt time.Time
	}
	res := db.WithContext(ctx).
		Model(&domain.Collection{}).
		Select("size", "updated_at").
		Where("user_id = ? AND key = ?", userID, key).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return 0, nil, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil, nil
	}
	return row.Size, &row.UpdatedAt, nil
}
