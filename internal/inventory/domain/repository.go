package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertItem(ctx context.Context, db *gorm.DB, item *Item) error
	FindItemByID(ctx context.Context, db *gorm.DB, id int64) (*Item, error)
	FindItemByName(ctx context.Context, db *gorm.DB, name string) (*Item, error)
	FindAllItems(ctx context.Context, db *gorm.DB) ([]Item, error)
	SearchItems(ctx context.Context, db *gorm.DB, query string) ([]Item, error)
	SuggestItems(ctx context.Context, db *gorm.DB, query string, limit int) ([]Suggestion, error)
	FindItemsAddedOn(ctx context.Context, db *gorm.DB, day string) ([]Item, error)
	UpdateItem(ctx context.Context, db *gorm.DB, item *Item) error
	UpdateItemPrice(ctx context.Context, db *gorm.DB, id int64, price float64) error
	UpdateItemStock(ctx context.Context, db *gorm.DB, id int64, quantity, stockValue float64) error
	DeleteItem(ctx context.Context, db *gorm.DB, id int64) error

	InsertVariation(ctx context.Context, db *gorm.DB, v *PriceVariation) error
	FindVariationByID(ctx context.Context, db *gorm.DB, id int64) (*VariationDetail, error)
	DeleteVariation(ctx context.Context, db *gorm.DB, id int64) error
	HistoryRows(ctx context.Context, db *gorm.DB) ([]HistoryRow, error)
	HistoryDetails(ctx context.Context, db *gorm.DB) ([]VariationDetail, error)

	InsertSale(ctx context.Context, db *gorm.DB, sale *Sale) error
}
