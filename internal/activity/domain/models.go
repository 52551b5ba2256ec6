package domain

// Action labels for the audit trail. The UPLOAD variants mark rows written
// by the bulk importer.
const (
	ActionAddItem          = "ADD ITEM"
	ActionUpdateItem       = "UPDATE ITEM"
	ActionDeleteItem       = "DELETE ITEM"
	ActionSale             = "SALE"
	ActionPriceChange      = "PRICE CHANGE"
	ActionVariationDeleted = "PRICE VARIATION DELETED"
	ActionUpdateExpiry     = "UPDATE EXPIRY"
	ActionAddItemUpload    = "ADD ITEM (UPLOAD)"
	ActionUpdateItemUpload = "UPDATE ITEM (UPLOAD)"
)

type ActivityLog struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	Action  string `json:"action" gorm:"type:text;not null"`
	Details string `json:"details" gorm:"type:text"`
	Date    string `json:"date" gorm:"type:text;not null"`
}

func (ActivityLog) TableName() string { return "activities" }

type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}
