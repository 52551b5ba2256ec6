package repository

import (
	"context"

	"github.com/dukastack/dukani/internal/inventory/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const itemColumns = `id, item, description, price_per_pc_or_kg, total_quantity_available, total_stock_amount, date_added`

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO items (id, item, description, price_per_pc_or_kg, total_quantity_available, total_stock_amount, date_added)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		item.Description,
		item.UnitPrice,
		item.Quantity,
		item.StockValue,
		item.DateAdded,
	).Error
}

func (r *repo) FindItemByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Item, error) {
	var item domain.Item
	err := db.WithContext(ctx).Raw(
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) FindItemByName(ctx context.Context, db *gorm.DB, name string) (*domain.Item, error) {
	var item domain.Item
	err := db.WithContext(ctx).Raw(
		`SELECT `+itemColumns+` FROM items WHERE item = ? LIMIT 1`, name,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) FindAllItems(ctx context.Context, db *gorm.DB) ([]domain.Item, error) {
	var items []domain.Item
	err := db.WithContext(ctx).Raw(
		`SELECT ` + itemColumns + ` FROM items ORDER BY item ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) SearchItems(ctx context.Context, db *gorm.DB, query string) ([]domain.Item, error) {
	var items []domain.Item
	pattern := "%" + query + "%"
	err := db.WithContext(ctx).Raw(
		`SELECT `+itemColumns+` FROM items WHERE item LIKE ? OR description LIKE ? ORDER BY item ASC`,
		pattern, pattern,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) SuggestItems(ctx context.Context, db *gorm.DB, query string, limit int) ([]domain.Suggestion, error) {
	var suggestions []domain.Suggestion
	stmt := `SELECT id, item, description FROM items LIMIT ?`
	args := []any{limit}
	if query != "" {
		stmt = `SELECT id, item, description FROM items WHERE item LIKE ? LIMIT ?`
		args = []any{"%" + query + "%", limit}
	}
	err := db.WithContext(ctx).Raw(stmt, args...).Scan(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *repo) FindItemsAddedOn(ctx context.Context, db *gorm.DB, day string) ([]domain.Item, error) {
	var items []domain.Item
	err := db.WithContext(ctx).Raw(
		`SELECT `+itemColumns+` FROM items WHERE date(date_added) = ?`, day,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateItem(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Exec(
		`UPDATE items
		 SET item = ?, description = ?, price_per_pc_or_kg = ?, total_quantity_available = ?, total_stock_amount = ?, date_added = ?
		 WHERE id = ?`,
		item.Name,
		item.Description,
		item.UnitPrice,
		item.Quantity,
		item.StockValue,
		item.DateAdded,
		item.ID,
	).Error
}

func (r *repo) UpdateItemPrice(ctx context.Context, db *gorm.DB, id int64, price float64) error {
	// Stock value follows the price so the invariant holds on price-only edits.
	return db.WithContext(ctx).Exec(
		`UPDATE items
		 SET price_per_pc_or_kg = ?, total_stock_amount = ? * total_quantity_available
		 WHERE id = ?`,
		price, price, id,
	).Error
}

func (r *repo) UpdateItemStock(ctx context.Context, db *gorm.DB, id int64, quantity, stockValue float64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE items SET total_quantity_available = ?, total_stock_amount = ? WHERE id = ?`,
		quantity, stockValue, id,
	).Error
}

func (r *repo) DeleteItem(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM items WHERE id = ?`, id).Error
}

func (r *repo) InsertVariation(ctx context.Context, db *gorm.DB, v *domain.PriceVariation) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO price_variations (id, item_id, old_price, new_price, change_date)
		 VALUES (?, ?, ?, ?, ?)`,
		v.ID,
		v.ItemID,
		v.OldPrice,
		v.NewPrice,
		v.ChangeDate,
	).Error
}

func (r *repo) FindVariationByID(ctx context.Context, db *gorm.DB, id int64) (*domain.VariationDetail, error) {
	var detail domain.VariationDetail
	err := db.WithContext(ctx).Raw(
		`SELECT pv.id, pv.item_id, i.item, i.description, pv.old_price, pv.new_price, pv.change_date
		 FROM price_variations pv
		 JOIN items i ON pv.item_id = i.id
		 WHERE pv.id = ?`, id,
	).Scan(&detail).Error
	if err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, nil
	}
	return &detail, nil
}

func (r *repo) DeleteVariation(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM price_variations WHERE id = ?`, id).Error
}

func (r *repo) HistoryRows(ctx context.Context, db *gorm.DB) ([]domain.HistoryRow, error) {
	var rows []domain.HistoryRow
	err := db.WithContext(ctx).Raw(
		`SELECT i.item, i.description, pv.old_price, pv.new_price, pv.change_date
		 FROM price_variations pv
		 JOIN items i ON pv.item_id = i.id
		 ORDER BY i.item, pv.change_date`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) HistoryDetails(ctx context.Context, db *gorm.DB) ([]domain.VariationDetail, error) {
	var details []domain.VariationDetail
	err := db.WithContext(ctx).Raw(
		`SELECT pv.id, pv.item_id, i.item, i.description, pv.old_price, pv.new_price, pv.change_date
		 FROM price_variations pv
		 JOIN items i ON pv.item_id = i.id
		 ORDER BY i.item, pv.change_date`,
	).Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *repo) InsertSale(ctx context.Context, db *gorm.DB, sale *domain.Sale) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sales (id, item_id, quantity_sold, total_amount, date)
		 VALUES (?, ?, ?, ?, ?)`,
		sale.ID,
		sale.ItemID,
		sale.QuantitySold,
		sale.TotalAmount,
		sale.Date,
	).Error
}
