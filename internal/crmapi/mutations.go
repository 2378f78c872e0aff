package crmapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/gocrm/internal/domain"
	"github.com/talkincode/gocrm/internal/store"
)

// validateCustomerInput returns an error message suitable for the errors
// list, or "" when the input is acceptable.
func (r *Resolver) validateCustomerInput(ctx context.Context, tx *store.Store, input CustomerInput) (string, error) {
	if !domain.ValidEmail(input.Email) {
		return "Invalid email format", nil
	}
	exists, err := tx.CustomerEmailExists(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if exists {
		return "Email already exists", nil
	}
	if !domain.ValidPhone(input.Phone) {
		return "Invalid phone number format", nil
	}
	return "", nil
}

func (r *Resolver) CreateCustomer(ctx context.Context, input CustomerInput) *CustomerMutationResponse {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if msg, err := r.validateCustomerInput(ctx, r.store, input); err != nil {
		return &CustomerMutationResponse{Success: false, Errors: []string{err.Error()}}
	} else if msg != "" {
		return &CustomerMutationResponse{Success: false, Errors: []string{msg}}
	}

	customer := &domain.Customer{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	if err := r.store.CreateCustomer(ctx, customer); err != nil {
		return &CustomerMutationResponse{Success: false, Errors: []string{err.Error()}}
	}
	return &CustomerMutationResponse{
		Customer: customer,
		Message:  "Customer created successfully",
		Success:  true,
	}
}

// BulkCreateCustomers processes every record inside one transaction.
// A per-record failure is tagged with its 1-based index and skipped; it
// does not abort the batch.
func (r *Resolver) BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) *BulkCustomerMutationResponse {
	created := make([]domain.Customer, 0, len(inputs))
	errs := make([]string, 0)

	err := r.store.Atomic(ctx, func(tx *store.Store) error {
		for i, input := range inputs {
			input.Name = strings.TrimSpace(input.Name)
			input.Email = strings.TrimSpace(input.Email)

			msg, err := r.validateCustomerInput(ctx, tx, input)
			if err != nil {
				errs = append(errs, fmt.Sprintf("Customer %d: %s", i+1, err.Error()))
				continue
			}
			if msg != "" {
				errs = append(errs, fmt.Sprintf("Customer %d: %s", i+1, msg))
				continue
			}

			customer := domain.Customer{
				Name:  input.Name,
				Email: input.Email,
				Phone: input.Phone,
			}
			if err := tx.CreateCustomer(ctx, &customer); err != nil {
				errs = append(errs, fmt.Sprintf("Customer %d: %s", i+1, err.Error()))
				continue
			}
			created = append(created, customer)
		}
		return nil
	})
	if err != nil {
		return &BulkCustomerMutationResponse{
			Errors:     []string{err.Error()},
			ErrorCount: 1,
		}
	}

	return &BulkCustomerMutationResponse{
		Customers:    created,
		Errors:       errs,
		SuccessCount: len(created),
		ErrorCount:   len(errs),
	}
}

func (r *Resolver) CreateProduct(ctx context.Context, input ProductInput) *ProductMutationResponse {
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return &ProductMutationResponse{Success: false, Errors: []string{"Price must be positive"}}
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	if stock < 0 {
		return &ProductMutationResponse{Success: false, Errors: []string{"Stock cannot be negative"}}
	}

	product := &domain.Product{
		Name:  strings.TrimSpace(input.Name),
		Price: input.Price,
		Stock: stock,
	}
	if err := r.store.CreateProduct(ctx, product); err != nil {
		return &ProductMutationResponse{Success: false, Errors: []string{err.Error()}}
	}
	return &ProductMutationResponse{
		Product: product,
		Message: "Product created successfully",
		Success: true,
	}
}

func (r *Resolver) CreateOrder(ctx context.Context, input OrderInput) *OrderMutationResponse {
	resp := &OrderMutationResponse{}

	err := r.store.Atomic(ctx, func(tx *store.Store) error {
		customerID, err := strconv.ParseInt(input.CustomerID, 10, 64)
		if err != nil {
			resp.Errors = []string{"Invalid customer ID"}
			return nil
		}
		customer, err := tx.GetCustomerByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			resp.Errors = []string{"Invalid customer ID"}
			return nil
		}

		if len(input.ProductIDs) == 0 {
			resp.Errors = []string{"At least one product must be selected"}
			return nil
		}

		ids := make([]int64, 0, len(input.ProductIDs))
		for _, raw := range input.ProductIDs {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
		products, err := tx.GetProductsByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(products) != len(input.ProductIDs) {
			found := make(map[string]bool, len(products))
			for _, p := range products {
				found[strconv.FormatInt(p.ID, 10)] = true
			}
			var invalid []string
			for _, raw := range input.ProductIDs {
				if !found[raw] {
					invalid = append(invalid, raw)
				}
			}
			resp.Errors = []string{"Invalid product ID(s): " + strings.Join(invalid, ", ")}
			return nil
		}

		total := decimal.Zero
		for _, p := range products {
			total = total.Add(p.Price)
		}
		if total.LessThanOrEqual(decimal.Zero) {
			resp.Errors = []string{"Order total must be greater than zero"}
			return nil
		}

		order := &domain.Order{
			CustomerID:  customer.ID,
			TotalAmount: total,
		}
		if input.OrderDate != nil {
			order.OrderDate = *input.OrderDate
		} else {
			order.OrderDate = time.Now()
		}
		if err := tx.CreateOrder(ctx, order, products); err != nil {
			return err
		}
		order.Customer = *customer

		resp.Order = order
		resp.Message = "Order created successfully"
		resp.Success = true
		return nil
	})
	if err != nil {
		return &OrderMutationResponse{
			Success: false,
			Errors:  []string{"An error occurred while creating the order: " + err.Error()},
		}
	}
	return resp
}

// UpdateLowStockProducts restocks every product below the threshold. A
// product restocked above the threshold is not picked up again on the
// next run unless its stock has dropped back below it.
func (r *Resolver) UpdateLowStockProducts(ctx context.Context) *UpdateLowStockProductsResponse {
	var updated []domain.Product

	err := r.store.Atomic(ctx, func(tx *store.Store) error {
		lowStock, err := tx.ListLowStockProducts(ctx)
		if err != nil {
			return err
		}
		ids := make([]int64, 0, len(lowStock))
		for _, p := range lowStock {
			if err := tx.AddStock(ctx, p.ID, r.restockQty); err != nil {
				return err
			}
			ids = append(ids, p.ID)
		}
		updated, err = tx.GetProductsByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return &UpdateLowStockProductsResponse{
			Products: []domain.Product{},
			Success:  false,
			Errors:   []string{err.Error()},
		}
	}

	return &UpdateLowStockProductsResponse{
		Products: updated,
		Message:  fmt.Sprintf("Restocked %d product(s) successfully.", len(updated)),
		Success:  true,
		Errors:   []string{},
	}
}
