package crmapi

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/gocrm/internal/domain"
	"github.com/talkincode/gocrm/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "crm.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().AutoMigrate(domain.Tables...))
	return NewResolver(store.NewStore(db))
}

func createProduct(t *testing.T, r *Resolver, name, price string, stock int) *domain.Product {
	t.Helper()
	s := stock
	resp := r.CreateProduct(context.Background(), ProductInput{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: &s,
	})
	require.True(t, resp.Success, "create product %s: %v", name, resp.Errors)
	return resp.Product
}

func TestCreateCustomer(t *testing.T) {
	r := newTestResolver(t)

	resp := r.CreateCustomer(context.Background(), CustomerInput{
		Name:  "Alice Johnson",
		Email: "alice@example.com",
		Phone: "+1234567890",
	})
	require.True(t, resp.Success)
	assert.Equal(t, "Customer created successfully", resp.Message)
	require.NotNil(t, resp.Customer)
	assert.NotZero(t, resp.Customer.ID)
	assert.Empty(t, resp.Errors)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	first := r.CreateCustomer(ctx, CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.True(t, first.Success)

	dup := r.CreateCustomer(ctx, CustomerInput{Name: "Other Alice", Email: "alice@example.com"})
	assert.False(t, dup.Success)
	assert.Nil(t, dup.Customer)
	assert.Contains(t, dup.Errors, "Email already exists")
}

func TestCreateCustomerPhoneValidation(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	cases := []struct {
		phone string
		ok    bool
	}{
		{"+1234567890", true},
		{"123-456-7890", true},
		{"", true},
		{"abc", false},
		{"12345", false},
	}
	for i, tc := range cases {
		resp := r.CreateCustomer(ctx, CustomerInput{
			Name:  "Customer",
			Email: "phone" + strconv.Itoa(i) + "@example.com",
			Phone: tc.phone,
		})
		if tc.ok {
			assert.True(t, resp.Success, "phone %q should be accepted", tc.phone)
		} else {
			assert.False(t, resp.Success, "phone %q should be rejected", tc.phone)
			assert.Contains(t, resp.Errors, "Invalid phone number format")
		}
	}
}

func TestCreateCustomerInvalidEmail(t *testing.T) {
	r := newTestResolver(t)

	resp := r.CreateCustomer(context.Background(), CustomerInput{
		Name:  "Broken",
		Email: "not-an-email",
	})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Errors, "Invalid email format")
}

func TestBulkCreateCustomers(t *testing.T) {
	r := newTestResolver(t)

	resp := r.BulkCreateCustomers(context.Background(), []CustomerInput{
		{Name: "Alice", Email: "alice@example.com", Phone: "+1234567890"},
		{Name: "Dup Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com", Phone: "123-456-7890"},
	})
	assert.Equal(t, 2, resp.SuccessCount)
	assert.Equal(t, 1, resp.ErrorCount)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "Customer 2")
	assert.Contains(t, resp.Errors[0], "Email already exists")
	require.Len(t, resp.Customers, 2)
	assert.Equal(t, "Alice", resp.Customers[0].Name)
	assert.Equal(t, "Bob", resp.Customers[1].Name)
}

func TestBulkCreateCustomersBadRecordDoesNotAbortBatch(t *testing.T) {
	r := newTestResolver(t)

	resp := r.BulkCreateCustomers(context.Background(), []CustomerInput{
		{Name: "Bad Phone", Email: "bad@example.com", Phone: "abc"},
		{Name: "Carol", Email: "carol@example.com"},
	})
	assert.Equal(t, 1, resp.SuccessCount)
	assert.Equal(t, 1, resp.ErrorCount)

	// the valid record must have been committed
	exists, err := r.Store().CustomerEmailExists(context.Background(), "carol@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateProduct(t *testing.T) {
	r := newTestResolver(t)

	p := createProduct(t, r, "Wireless Mouse", "29.99", 50)
	assert.NotZero(t, p.ID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("29.99")))
	assert.Equal(t, 50, p.Stock)
}

func TestCreateProductPriceMustBePositive(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	for _, price := range []string{"0", "-5.00"} {
		resp := r.CreateProduct(ctx, ProductInput{
			Name:  "Freebie",
			Price: decimal.RequireFromString(price),
		})
		assert.False(t, resp.Success, "price %s should be rejected", price)
		assert.Contains(t, resp.Errors, "Price must be positive")
	}
}

func TestCreateProductStockCannotBeNegative(t *testing.T) {
	r := newTestResolver(t)

	stock := -1
	resp := r.CreateProduct(context.Background(), ProductInput{
		Name:  "Phantom",
		Price: decimal.RequireFromString("9.99"),
		Stock: &stock,
	})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Errors, "Stock cannot be negative")
}

func TestCreateProductStockDefaultsToZero(t *testing.T) {
	r := newTestResolver(t)

	resp := r.CreateProduct(context.Background(), ProductInput{
		Name:  "Backorder Item",
		Price: decimal.RequireFromString("19.99"),
	})
	require.True(t, resp.Success)
	assert.Equal(t, 0, resp.Product.Stock)
}

func TestCreateOrder(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	customer := r.CreateCustomer(ctx, CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.True(t, customer.Success)
	p1 := createProduct(t, r, "Wireless Mouse", "29.99", 50)
	p2 := createProduct(t, r, "Mechanical Keyboard", "89.99", 25)

	resp := r.CreateOrder(ctx, OrderInput{
		CustomerID: strconv.FormatInt(customer.Customer.ID, 10),
		ProductIDs: []string{
			strconv.FormatInt(p1.ID, 10),
			strconv.FormatInt(p2.ID, 10),
		},
	})
	require.True(t, resp.Success, "errors: %v", resp.Errors)
	assert.Equal(t, "Order created successfully", resp.Message)
	require.NotNil(t, resp.Order)
	assert.True(t, resp.Order.TotalAmount.Equal(decimal.RequireFromString("119.98")),
		"expected total 119.98, got %s", resp.Order.TotalAmount)
	assert.Equal(t, customer.Customer.ID, resp.Order.Customer.ID)
	assert.False(t, resp.Order.OrderDate.IsZero())
}

func TestCreateOrderInvalidCustomer(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()
	p := createProduct(t, r, "Desk Lamp", "39.99", 5)

	for _, id := range []string{"999999", "not-a-number"} {
		resp := r.CreateOrder(ctx, OrderInput{
			CustomerID: id,
			ProductIDs: []string{strconv.FormatInt(p.ID, 10)},
		})
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Errors, "Invalid customer ID")
	}
}

func TestCreateOrderNoProducts(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	customer := r.CreateCustomer(ctx, CustomerInput{Name: "Bob", Email: "bob@example.com"})
	require.True(t, customer.Success)

	resp := r.CreateOrder(ctx, OrderInput{
		CustomerID: strconv.FormatInt(customer.Customer.ID, 10),
	})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Errors, "At least one product must be selected")
}

func TestCreateOrderInvalidProductIDs(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	customer := r.CreateCustomer(ctx, CustomerInput{Name: "Carol", Email: "carol@example.com"})
	require.True(t, customer.Success)
	p := createProduct(t, r, "Monitor 27", "299.99", 8)

	resp := r.CreateOrder(ctx, OrderInput{
		CustomerID: strconv.FormatInt(customer.Customer.ID, 10),
		ProductIDs: []string{strconv.FormatInt(p.ID, 10), "111", "bogus"},
	})
	assert.False(t, resp.Success)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Invalid product ID(s): 111, bogus", resp.Errors[0])
}

func TestUpdateLowStockProducts(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	low := createProduct(t, r, "Desk Lamp", "39.99", 5)
	createProduct(t, r, "Wireless Mouse", "29.99", 50)

	resp := r.UpdateLowStockProducts(ctx)
	require.True(t, resp.Success)
	assert.Equal(t, "Restocked 1 product(s) successfully.", resp.Message)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, low.ID, resp.Products[0].ID)
	assert.Equal(t, 15, resp.Products[0].Stock)

	// the restocked product is above the threshold, so a second run is a no-op
	resp = r.UpdateLowStockProducts(ctx)
	require.True(t, resp.Success)
	assert.Equal(t, "Restocked 0 product(s) successfully.", resp.Message)
	assert.Empty(t, resp.Products)
}

func TestUpdateLowStockProductsCustomQty(t *testing.T) {
	r := newTestResolver(t)
	r.SetRestockQty(100)
	ctx := context.Background()

	p := createProduct(t, r, "Monitor 27", "299.99", 2)

	resp := r.UpdateLowStockProducts(ctx)
	require.True(t, resp.Success)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, p.ID, resp.Products[0].ID)
	assert.Equal(t, 102, resp.Products[0].Stock)
}
