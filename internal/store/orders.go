package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/talkincode/gocrm/internal/domain"
	"github.com/talkincode/gocrm/pkg/common"
	"gorm.io/gorm"
)

// CreateOrder inserts the order row, attaches the products and then
// recomputes the total from the persisted association, correcting the row
// when the stored estimate drifted. The association cannot be written
// before the order row has an identity, hence the two steps.
func (s *Store) CreateOrder(ctx context.Context, o *domain.Order, products []domain.Product) error {
	if o.ID == 0 {
		o.ID = common.UUIDint64()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}

	db := s.db.WithContext(ctx)
	if err := db.Omit("Customer", "Products").Create(o).Error; err != nil {
		return err
	}
	if err := db.Model(o).Association("Products").Append(products); err != nil {
		return err
	}

	attached, err := s.GetOrderProducts(ctx, o.ID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, p := range attached {
		total = total.Add(p.Price)
	}
	if !total.Equal(o.TotalAmount) {
		o.TotalAmount = total
		if err := db.Model(&domain.Order{}).Where("id = ?", o.ID).
			Update("total_amount", total).Error; err != nil {
			return err
		}
	}
	o.Products = attached
	return nil
}

func (s *Store) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").Preload("Products").
		Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) GetOrderProducts(ctx context.Context, orderID int64) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Where("id IN (SELECT product_id FROM order_products WHERE order_id = ?)", orderID).
		Find(&products).Error
	return products, err
}

func (s *Store) ListOrders(ctx context.Context, filter OrderFilter, orderBy []string, limit, offset int) ([]domain.Order, int64, error) {
	base := filter.Apply(s.db.WithContext(ctx).Model(&domain.Order{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query, err := applyOrder(base, orderBy, orderOrderFields, "order_date DESC")
	if err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	var orders []domain.Order
	if err := query.Preload("Customer").Preload("Products").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *Store) UpdateOrderTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	return s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).Update("total_amount", total).Error
}

// DeleteOrder removes the order and its product association rows.
func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	return s.Atomic(ctx, func(tx *Store) error {
		if err := tx.db.Exec("DELETE FROM order_products WHERE order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.db.Where("id = ?", id).Delete(&domain.Order{}).Error
	})
}
