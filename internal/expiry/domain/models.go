package domain

// ExpiryRecord is keyed by item NAME, not item id: renaming or deleting an
// item silently disconnects its expiry row. Known data-model gap, kept
// as-is; the status listing joins through the current items table so
// orphaned rows simply stop being shown.
type ExpiryRecord struct {
	ItemName string `json:"item" gorm:"column:item;primaryKey"`
	Date     string `json:"expiry_date" gorm:"column:expiry_date;type:text"`
	Status   string `json:"expiry_status" gorm:"column:expiry_status;type:text;not null"`
}

func (ExpiryRecord) TableName() string { return "expiry" }

const (
	StatusValid   = "Valid"
	StatusExpired = "Expired"
	StatusNA      = "N/A"
)

// ItemExpiry is one row of the expiry listing: every inventory item with
// its expiry data, or N/A when none was recorded.
type ItemExpiry struct {
	ItemName string `json:"item" gorm:"column:item"`
	Date     string `json:"expiry_date" gorm:"column:expiry_date"`
	Status   string `json:"expiry_status" gorm:"column:expiry_status"`
}
