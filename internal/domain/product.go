package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold marks a product as low stock when its stock count
// falls below this value.
const LowStockThreshold = 10

// Product is a catalog item. Price is stored as an exact decimal and must
// be positive on every write; stock never goes negative.
type Product struct {
	ID        int64           `gorm:"primaryKey" json:"id,string"`
	Name      string          `gorm:"size:100;index" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Stock     int             `gorm:"default:0" json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// LowStock reports whether the product is below the restock threshold.
func (p Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}
