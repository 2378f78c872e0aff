package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/gocrm/internal/domain"
	"github.com/talkincode/gocrm/internal/store"
	"go.uber.org/zap"
)

type settingDef struct {
	Category    string
	Name        string
	Default     string
	Description string
}

var defaultSettings = []settingDef{
	{"crm", "RestockQty", "10", "Stock added to each low-stock product by the restock job"},
	{"crm", "ReminderDays", "7", "Order reminder lookback window in days"},
	{"jobs", "HeartbeatCron", "*/5 * * * *", "Heartbeat job schedule"},
	{"jobs", "LowStockCron", "0 */12 * * *", "Low-stock restock job schedule"},
	{"jobs", "ReminderCron", "@daily", "Order reminder job schedule"},
}

// checkSettings initializes missing settings rows with their defaults.
func (a *Application) checkSettings() {
	for sortid, def := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", def.Category, def.Name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   def.Category,
				Name:   def.Name,
				Value:  def.Default,
				Remark: def.Description,
			})
			zap.S().Infof("initialized config %s.%s = %s", def.Category, def.Name, def.Default)
		}
	}
}

var seedCustomers = []domain.Customer{
	{Name: "Alice Johnson", Email: "alice@example.com", Phone: "+1234567890"},
	{Name: "Bob Smith", Email: "bob@example.com", Phone: "123-456-7890"},
	{Name: "Carol Davis", Email: "carol@example.com", Phone: "+1987654321"},
	{Name: "David Wilson", Email: "david@example.com", Phone: "987-654-3210"},
	{Name: "Eva Brown", Email: "eva@example.com", Phone: "+1555123456"},
}

var seedProducts = []domain.Product{
	{Name: "Laptop Pro", Price: decimal.RequireFromString("1299.99"), Stock: 15},
	{Name: "Wireless Mouse", Price: decimal.RequireFromString("29.99"), Stock: 50},
	{Name: "Mechanical Keyboard", Price: decimal.RequireFromString("89.99"), Stock: 25},
	{Name: "USB-C Hub", Price: decimal.RequireFromString("49.99"), Stock: 30},
	{Name: "Monitor 27\"", Price: decimal.RequireFromString("299.99"), Stock: 8},
	{Name: "Webcam HD", Price: decimal.RequireFromString("79.99"), Stock: 20},
	{Name: "Desk Lamp", Price: decimal.RequireFromString("39.99"), Stock: 5},
	{Name: "Bluetooth Headphones", Price: decimal.RequireFromString("159.99"), Stock: 12},
}

// SeedData wipes the CRM tables and loads the sample dataset, including a
// couple of orders so list queries return something meaningful.
func (a *Application) SeedData() error {
	ctx := context.Background()

	if err := a.gormDB.Exec("DELETE FROM order_products").Error; err != nil {
		return err
	}
	for _, table := range []string{"orders", "customers", "products"} {
		if err := a.gormDB.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}

	customers := make([]domain.Customer, len(seedCustomers))
	copy(customers, seedCustomers)
	products := make([]domain.Product, len(seedProducts))
	copy(products, seedProducts)

	err := a.crmStore.Atomic(ctx, func(tx *store.Store) error {
		for i := range customers {
			if err := tx.CreateCustomer(ctx, &customers[i]); err != nil {
				return err
			}
		}
		for i := range products {
			if err := tx.CreateProduct(ctx, &products[i]); err != nil {
				return err
			}
		}

		orderPicks := [][]int{
			{0, 1},    // Laptop Pro + Wireless Mouse
			{2, 3, 5}, // Keyboard + Hub + Webcam
			{7},       // Headphones
		}
		for i, picks := range orderPicks {
			items := make([]domain.Product, 0, len(picks))
			total := decimal.Zero
			for _, idx := range picks {
				items = append(items, products[idx])
				total = total.Add(products[idx].Price)
			}
			order := &domain.Order{
				CustomerID:  customers[i%len(customers)].ID,
				TotalAmount: total,
				OrderDate:   time.Now().AddDate(0, 0, -i),
			}
			if err := tx.CreateOrder(ctx, order, items); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.S().Infof("seeded %d customers, %d products", len(customers), len(products))
	return nil
}
