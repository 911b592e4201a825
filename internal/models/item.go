package models

import "time"

const (
	DefaultItemGroup = "All Item Groups"
	DefaultStockUOM  = "Nos"
)

// Item is a catalog entry billed through a SubscriptionPlan.
type Item struct {
	ItemCode    string    `gorm:"primaryKey;size:140" json:"item_code"`
	ItemName    string    `gorm:"size:140;not null" json:"item_name"`
	ItemGroup   string    `gorm:"size:140;not null" json:"item_group"`
	StockUOM    string    `gorm:"column:stock_uom;size:40;not null" json:"stock_uom"`
	IsStockItem bool      `gorm:"not null" json:"is_stock_item"`
	Disabled    bool      `gorm:"not null" json:"disabled"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
