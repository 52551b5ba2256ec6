package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CountItems(ctx context.Context, db *gorm.DB) (int64, error)
	CountItemsAddedOn(ctx context.Context, db *gorm.DB, day string) (int64, error)
	TotalStockValue(ctx context.Context, db *gorm.DB) (float64, error)
	SalesTotalOn(ctx context.Context, db *gorm.DB, day string) (float64, error)
	SalesTotalsSince(ctx context.Context, db *gorm.DB, fromDay string) ([]DayTotal, error)
	TopSellers(ctx context.Context, db *gorm.DB, limit int) ([]TopSeller, error)
	ItemQuantities(ctx context.Context, db *gorm.DB) ([]ItemQuantity, error)
	SaleLinesOn(ctx context.Context, db *gorm.DB, day string) ([]SaleLine, error)
}
