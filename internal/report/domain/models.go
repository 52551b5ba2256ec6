package domain

// DashboardStats are the headline numbers for the landing view.
type DashboardStats struct {
	TotalItems      int64   `json:"total_items"`
	SalesToday      float64 `json:"total_sales_today"`
	NewStockToday   int64   `json:"new_stock_today"`
	ExpiredProducts int64   `json:"expired_products"`
	TotalStockValue float64 `json:"total_stock_value"`
}

// SalesPoint is one day of the sales trend. Days with no sales are present
// with a zero total.
type SalesPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type TopSeller struct {
	Item         string  `json:"item"`
	QuantitySold float64 `json:"total_qty" gorm:"column:total_qty"`
	TotalSales   float64 `json:"total_sales" gorm:"column:total_sales"`
}

// SubstituteGroup buckets items that likely substitute for each other,
// keyed by the normalized leading token of their names. A display
// heuristic, not a guaranteed classification.
type SubstituteGroup struct {
	Family        string  `json:"family"`
	Frequency     int64   `json:"frequency"`
	TotalQuantity float64 `json:"total_quantity"`
}

type SaleLine struct {
	Item         string  `json:"item"`
	QuantitySold float64 `json:"quantity_sold" gorm:"column:quantity_sold"`
	UnitPrice    float64 `json:"price_per_pc_or_kg" gorm:"column:price_per_pc_or_kg"`
	TotalAmount  float64 `json:"total_amount" gorm:"column:total_amount"`
}

// DayTotal is a raw aggregation row before zero-filling.
type DayTotal struct {
	Day   string  `gorm:"column:day"`
	Total float64 `gorm:"column:total"`
}

// ItemQuantity feeds the substitutes grouping.
type ItemQuantity struct {
	Name     string  `gorm:"column:item"`
	Quantity float64 `gorm:"column:total_quantity_available"`
}
