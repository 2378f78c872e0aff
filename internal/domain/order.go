package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order references exactly one customer and at least one product.
// TotalAmount must equal the sum of the associated product prices; it is
// recomputed after the product association is written because the
// many-to-many rows cannot exist before the order row has an identity.
// Deleting a customer cascades to its orders.
type Order struct {
	ID          int64           `gorm:"primaryKey" json:"id,string"`
	CustomerID  int64           `gorm:"index" json:"customer_id,string"`
	Customer    Customer        `gorm:"constraint:OnDelete:CASCADE" json:"customer"`
	Products    []Product       `gorm:"many2many:order_products" json:"products"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_amount"`
	OrderDate   time.Time       `gorm:"index" json:"order_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// CalculateTotal sums the prices of the associated products.
func (o Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Products {
		total = total.Add(p.Price)
	}
	return total
}
