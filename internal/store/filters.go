package store

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/talkincode/gocrm/internal/domain"
	"gorm.io/gorm"
)

// Filter structs translate named, typed criteria into query predicates.
// All supplied criteria combine with logical AND; zero values are no-ops.

type CustomerFilter struct {
	Name         string
	Email        string
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
	PhonePattern string
}

func (f CustomerFilter) Apply(db *gorm.DB) *gorm.DB {
	db = icontains(db, "name", f.Name)
	db = icontains(db, "email", f.Email)
	if f.CreatedAtGte != nil {
		db = db.Where("created_at >= ?", *f.CreatedAtGte)
	}
	if f.CreatedAtLte != nil {
		db = db.Where("created_at <= ?", *f.CreatedAtLte)
	}
	if f.PhonePattern != "" {
		db = db.Where("phone LIKE ?", f.PhonePattern+"%")
	}
	return db
}

type ProductFilter struct {
	Name     string
	PriceGte *decimal.Decimal
	PriceLte *decimal.Decimal
	Stock    *int
	StockGte *int
	StockLte *int
	LowStock *bool
}

func (f ProductFilter) Apply(db *gorm.DB) *gorm.DB {
	db = icontains(db, "name", f.Name)
	if f.PriceGte != nil {
		db = db.Where("price >= ?", *f.PriceGte)
	}
	if f.PriceLte != nil {
		db = db.Where("price <= ?", *f.PriceLte)
	}
	if f.Stock != nil {
		db = db.Where("stock = ?", *f.Stock)
	}
	if f.StockGte != nil {
		db = db.Where("stock >= ?", *f.StockGte)
	}
	if f.StockLte != nil {
		db = db.Where("stock <= ?", *f.StockLte)
	}
	// lowStock=false is a no-op rather than "not low stock"
	if f.LowStock != nil && *f.LowStock {
		db = db.Where("stock < ?", domain.LowStockThreshold)
	}
	return db
}

type OrderFilter struct {
	TotalAmountGte *decimal.Decimal
	TotalAmountLte *decimal.Decimal
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	CustomerName   string
	CustomerEmail  string
	CustomerID     *int64
	ProductName    string
	ProductID      *int64
}

// Apply resolves the one-hop relational criteria with subqueries so the
// result set never duplicates orders joined through the product table.
func (f OrderFilter) Apply(db *gorm.DB) *gorm.DB {
	if f.TotalAmountGte != nil {
		db = db.Where("total_amount >= ?", *f.TotalAmountGte)
	}
	if f.TotalAmountLte != nil {
		db = db.Where("total_amount <= ?", *f.TotalAmountLte)
	}
	if f.OrderDateGte != nil {
		db = db.Where("order_date >= ?", *f.OrderDateGte)
	}
	if f.OrderDateLte != nil {
		db = db.Where("order_date <= ?", *f.OrderDateLte)
	}
	if f.CustomerName != "" {
		db = db.Where("customer_id IN (SELECT id FROM customers WHERE LOWER(name) LIKE ?)",
			"%"+strings.ToLower(f.CustomerName)+"%")
	}
	if f.CustomerEmail != "" {
		db = db.Where("customer_id IN (SELECT id FROM customers WHERE LOWER(email) LIKE ?)",
			"%"+strings.ToLower(f.CustomerEmail)+"%")
	}
	if f.CustomerID != nil {
		db = db.Where("customer_id = ?", *f.CustomerID)
	}
	if f.ProductName != "" {
		db = db.Where("id IN (SELECT op.order_id FROM order_products op "+
			"JOIN products p ON p.id = op.product_id WHERE LOWER(p.name) LIKE ?)",
			"%"+strings.ToLower(f.ProductName)+"%")
	}
	if f.ProductID != nil {
		db = db.Where("id IN (SELECT order_id FROM order_products WHERE product_id = ?)",
			*f.ProductID)
	}
	return db
}

func icontains(db *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return db
	}
	return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(value)+"%")
}

// Sortable column whitelists keep order-by requests off raw SQL.
var (
	customerOrderFields = map[string]string{
		"id":         "id",
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	productOrderFields = map[string]string{
		"id":         "id",
		"name":       "name",
		"price":      "price",
		"stock":      "stock",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	orderOrderFields = map[string]string{
		"id":           "id",
		"total_amount": "total_amount",
		"order_date":   "order_date",
		"created_at":   "created_at",
		"updated_at":   "updated_at",
	}
)

// applyOrder applies orderBy entries in sequence as primary/secondary/...
// sort keys. A leading "-" means descending. Unknown fields are rejected
// instead of silently ignored.
func applyOrder(db *gorm.DB, orderBy []string, allowed map[string]string, defaultOrder string) (*gorm.DB, error) {
	if len(orderBy) == 0 {
		return db.Order(defaultOrder), nil
	}
	for _, field := range orderBy {
		field = strings.TrimSpace(field)
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		col, ok := allowed[field]
		if !ok {
			return nil, errors.Errorf("unknown order field: %s", field)
		}
		db = db.Order(col + " " + dir)
	}
	return db, nil
}
