package domain

// Item is one inventory line. StockValue is always recomputed as
// UnitPrice * Quantity on every mutation, never trusted from storage input.
// Column and JSON names keep the historical shop schema.
type Item struct {
	ID          int64   `json:"id" gorm:"primaryKey"`
	Name        string  `json:"item" gorm:"column:item;type:text;not null"`
	Description string  `json:"description" gorm:"type:text"`
	UnitPrice   float64 `json:"price_per_pc_or_kg" gorm:"column:price_per_pc_or_kg;not null"`
	Quantity    float64 `json:"total_quantity_available" gorm:"column:total_quantity_available;not null"`
	StockValue  float64 `json:"total_stock_amount" gorm:"column:total_stock_amount;not null"`
	DateAdded   string  `json:"date_added" gorm:"column:date_added;type:text"`
}

func (Item) TableName() string { return "items" }

// PriceVariation is an append-only history row, written iff an operation
// observed old price != new price. Individually deletable, never mutated.
type PriceVariation struct {
	ID         int64   `json:"id" gorm:"primaryKey"`
	ItemID     int64   `json:"item_id" gorm:"column:item_id;not null"`
	OldPrice   float64 `json:"old_price" gorm:"column:old_price;not null"`
	NewPrice   float64 `json:"new_price" gorm:"column:new_price;not null"`
	ChangeDate string  `json:"change_date" gorm:"column:change_date;type:text;not null"`
}

func (PriceVariation) TableName() string { return "price_variations" }

// Sale is immutable once written. TotalAmount is quantity times the unit
// price at sale time.
type Sale struct {
	ID           int64   `json:"id" gorm:"primaryKey"`
	ItemID       int64   `json:"item_id" gorm:"column:item_id;not null"`
	QuantitySold float64 `json:"quantity_sold" gorm:"column:quantity_sold;not null"`
	TotalAmount  float64 `json:"total_amount" gorm:"column:total_amount;not null"`
	Date         string  `json:"date" gorm:"type:text;not null"`
}

func (Sale) TableName() string { return "sales" }

// Suggestion is the trimmed item shape for search typeahead.
type Suggestion struct {
	ID          int64  `json:"id"`
	Name        string `json:"item" gorm:"column:item"`
	Description string `json:"description"`
}

// VariationDetail is a history row joined with its item, read before a
// delete so the audit entry can carry the removed values.
type VariationDetail struct {
	ID          int64   `json:"id"`
	ItemID      int64   `json:"item_id" gorm:"column:item_id"`
	ItemName    string  `json:"item" gorm:"column:item"`
	Description string  `json:"description"`
	OldPrice    float64 `json:"old_price" gorm:"column:old_price"`
	NewPrice    float64 `json:"new_price" gorm:"column:new_price"`
	ChangeDate  string  `json:"change_date" gorm:"column:change_date"`
}

// HistoryRow is one line of the price-variation report, ordered by item
// name then change date.
type HistoryRow struct {
	Item        string  `json:"item"`
	Description string  `json:"description"`
	OldPrice    float64 `json:"old_price" gorm:"column:old_price"`
	NewPrice    float64 `json:"new_price" gorm:"column:new_price"`
	ChangeDate  string  `json:"change_date" gorm:"column:change_date"`
}

// ItemHistory groups a report by item for display.
type ItemHistory struct {
	Item        string           `json:"item"`
	Description string           `json:"description"`
	Variations  []VariationEntry `json:"variations"`
}

type VariationEntry struct {
	ID         int64   `json:"id"`
	OldPrice   float64 `json:"old_price"`
	NewPrice   float64 `json:"new_price"`
	ChangeDate string  `json:"change_date"`
}
