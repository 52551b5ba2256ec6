package repository

import (
	"context"

	"github.com/dukastack/dukani/internal/report/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CountItems(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM items`).Scan(&count).Error
	return count, err
}

func (r *repo) CountItemsAddedOn(ctx context.Context, db *gorm.DB, day string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM items WHERE date(date_added) = ?`, day,
	).Scan(&count).Error
	return count, err
}

func (r *repo) TotalStockValue(ctx context.Context, db *gorm.DB) (float64, error) {
	var total float64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(total_stock_amount), 0) FROM items`,
	).Scan(&total).Error
	return total, err
}

func (r *repo) SalesTotalOn(ctx context.Context, db *gorm.DB, day string) (float64, error) {
	var total float64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE date(date) = ?`, day,
	).Scan(&total).Error
	return total, err
}

func (r *repo) SalesTotalsSince(ctx context.Context, db *gorm.DB, fromDay string) ([]domain.DayTotal, error) {
	var totals []domain.DayTotal
	err := db.WithContext(ctx).Raw(
		`SELECT date(date) AS day, SUM(total_amount) AS total
		 FROM sales
		 WHERE date(date) >= ?
		 GROUP BY date(date)`, fromDay,
	).Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *repo) TopSellers(ctx context.Context, db *gorm.DB, limit int) ([]domain.TopSeller, error) {
	var sellers []domain.TopSeller
	err := db.WithContext(ctx).Raw(
		`SELECT i.item, SUM(s.quantity_sold) AS total_qty, SUM(s.total_amount) AS total_sales
		 FROM sales s
		 JOIN items i ON s.item_id = i.id
		 GROUP BY i.item
		 ORDER BY total_sales DESC
		 LIMIT ?`, limit,
	).Scan(&sellers).Error
	if err != nil {
		return nil, err
	}
	return sellers, nil
}

func (r *repo) ItemQuantities(ctx context.Context, db *gorm.DB) ([]domain.ItemQuantity, error) {
	var quantities []domain.ItemQuantity
	err := db.WithContext(ctx).Raw(
		`SELECT item, total_quantity_available FROM items`,
	).Scan(&quantities).Error
	if err != nil {
		return nil, err
	}
	return quantities, nil
}

func (r *repo) SaleLinesOn(ctx context.Context, db *gorm.DB, day string) ([]domain.SaleLine, error) {
	var lines []domain.SaleLine
	err := db.WithContext(ctx).Raw(
		`SELECT i.item, s.quantity_sold, i.price_per_pc_or_kg, s.total_amount
		 FROM sales s
		 JOIN items i ON s.item_id = i.id
		 WHERE date(s.date) = ?`, day,
	).Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
