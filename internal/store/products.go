package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/gocrm/internal/domain"
	"github.com/talkincode/gocrm/pkg/common"
	"gorm.io/gorm"
)

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == 0 {
		p.ID = common.UUIDint64()
	}
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Store) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	var products []domain.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (s *Store) ListProducts(ctx context.Context, filter ProductFilter, orderBy []string, limit, offset int) ([]domain.Product, int64, error) {
	base := filter.Apply(s.db.WithContext(ctx).Model(&domain.Product{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query, err := applyOrder(base, orderBy, productOrderFields, "name ASC")
	if err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	var products []domain.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *Store) ListLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Where("stock < ?", domain.LowStockThreshold).
		Order("name ASC").Find(&products).Error
	return products, err
}

// AddStock increments the stock counter atomically in SQL, so concurrent
// restocks cannot lose updates.
func (s *Store) AddStock(ctx context.Context, id int64, qty int) error {
	return s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", qty),
			"updated_at": time.Now(),
		}).Error
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).Updates(fields).Error
}

// DeleteProduct removes the product and detaches it from any orders.
// Totals on affected orders are not recomputed here; callers that care
// should call UpdateOrderTotal afterwards.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.Atomic(ctx, func(tx *Store) error {
		if err := tx.db.Exec("DELETE FROM order_products WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.db.Where("id = ?", id).Delete(&domain.Product{}).Error
	})
}
