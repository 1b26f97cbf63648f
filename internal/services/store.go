package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vinayak2k03/NotedAI/internal/repo"
)

// loadList reads the (userID, key) collection as a slice. A collection that
// was never saved reads as empty.
func loadList[T any](ctx context.Context, db *gorm.DB, userID, key string) ([]T, error) {
	var items []T
	if _, err := repo.LoadCollection(ctx, db, userID, key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// saveList replaces the (userID, key) collection.
func saveList[T any](ctx context.Context, db *gorm.DB, userID, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return repo.SaveCollection(ctx, db, userID, key, items)
}

// updateList runs one load-modify-save cycle on the (userID, key) collection
// inside a transaction. fn reports whether the returned slice should be
// written; an error from fn rolls back and is returned unchanged.
func updateList[T any](ctx context.Context, db *gorm.DB, userID, key string, fn func(items []T) (next []T, save bool, err error)) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := loadList[T](ctx, tx, userID, key)
		if err != nil {
			return err
		}
		next, save, err := fn(items)
		if err != nil || !save {
			return err
		}
		return saveList(ctx, tx, userID, key, next)
	})
}
