package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, record *ExpiryRecord) error
	Statuses(ctx context.Context, db *gorm.DB) ([]ItemExpiry, error)
	CountExpired(ctx context.Context, db *gorm.DB) (int64, error)
}
