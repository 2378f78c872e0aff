package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/talkincode/gocrm/internal/domain"
	"github.com/talkincode/gocrm/pkg/common"
	"gorm.io/gorm"
)

func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	if c.ID == 0 {
		c.ID = common.UUIDint64()
	}
	return s.db.WithContext(ctx).Create(c).Error
}

// GetCustomerByID returns (nil, nil) when no row matches; a missing
// record is a normal outcome, not an error.
func (s *Store) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CustomerEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (s *Store) ListCustomers(ctx context.Context, filter CustomerFilter, orderBy []string, limit, offset int) ([]domain.Customer, int64, error) {
	base := filter.Apply(s.db.WithContext(ctx).Model(&domain.Customer{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query, err := applyOrder(base, orderBy, customerOrderFields, "name ASC")
	if err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	var customers []domain.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, id int64, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ?", id).Updates(fields).Error
}

// DeleteCustomer removes a customer and cascades the delete to its orders
// and their product associations.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	return s.Atomic(ctx, func(tx *Store) error {
		if err := tx.db.Exec(
			"DELETE FROM order_products WHERE order_id IN (SELECT id FROM orders WHERE customer_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.db.Where("customer_id = ?", id).Delete(&domain.Order{}).Error; err != nil {
			return err
		}
		return tx.db.Where("id = ?", id).Delete(&domain.Customer{}).Error
	})
}
