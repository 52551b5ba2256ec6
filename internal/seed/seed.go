package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	inventorydomain "github.com/dukastack/dukani/internal/inventory/domain"
	dbpkg "github.com/dukastack/dukani/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type demoItem struct {
	name        string
	description string
	price       float64
	quantity    float64
}

var demoInventory = []demoItem{
	{"Sugar 1kg", "Granulated white sugar", 150, 40},
	{"Maize Flour 2kg", "Fortified maize meal", 185, 60},
	{"Cooking Oil 1L", "Vegetable cooking oil", 320, 25},
	{"Toss Yellow", "Laundry bar soap", 55, 80},
	{"Toss Blue 500g", "Laundry powder", 130, 35},
	{"Milk 500ml", "Long-life whole milk", 65, 50},
}

// EnsureDemoInventory seeds a small starter stock on an empty database so a
// fresh install has something to look at. A populated store is never touched.
func EnsureDemoInventory(db *gorm.DB, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Raw(`SELECT COUNT(*) FROM items`).Scan(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := tx.NowFunc().UTC().Format(dbpkg.TimeFormat)
		for _, d := range demoInventory {
			item := inventorydomain.Item{
				ID:          node.Generate().Int64(),
				Name:        d.name,
				Description: d.description,
				UnitPrice:   d.price,
				Quantity:    d.quantity,
				StockValue:  d.price * d.quantity,
				DateAdded:   now,
			}
			if err := tx.Exec(
				`INSERT INTO items (id, item, description, price_per_pc_or_kg, total_quantity_available, total_stock_amount, date_added)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				item.ID, item.Name, item.Description, item.UnitPrice, item.Quantity, item.StockValue, item.DateAdded,
			).Error; err != nil {
				return err
			}
		}

		log.Info("seeded demo inventory", zap.Int("items", len(demoInventory)))
		return nil
	})
}
