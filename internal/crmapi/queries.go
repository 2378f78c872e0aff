package crmapi

import (
	"context"
	"strconv"

	"github.com/talkincode/gocrm/internal/domain"
	"github.com/talkincode/gocrm/internal/store"
)

// Hello is a read-only smoke-test field used by the heartbeat job.
func (r *Resolver) Hello() string {
	return "Hello, GraphQL!"
}

// Single lookups resolve to nil when the id does not match a row; a
// missing entity is not an error.

func (r *Resolver) Customer(ctx context.Context, id string) (*domain.Customer, error) {
	cid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	return r.store.GetCustomerByID(ctx, cid)
}

func (r *Resolver) Product(ctx context.Context, id string) (*domain.Product, error) {
	pid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	return r.store.GetProductByID(ctx, pid)
}

func (r *Resolver) Order(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	return r.store.GetOrderByID(ctx, oid)
}

func (r *Resolver) AllCustomers(ctx context.Context, filter store.CustomerFilter, orderBy []string, first, offset int) (*CustomerConnection, error) {
	customers, total, err := r.store.ListCustomers(ctx, filter, orderBy, first, offset)
	if err != nil {
		return nil, err
	}
	conn := &CustomerConnection{TotalCount: total, Edges: make([]CustomerEdge, 0, len(customers))}
	for _, c := range customers {
		conn.Edges = append(conn.Edges, CustomerEdge{Node: c})
	}
	return conn, nil
}

func (r *Resolver) AllProducts(ctx context.Context, filter store.ProductFilter, orderBy []string, first, offset int) (*ProductConnection, error) {
	products, total, err := r.store.ListProducts(ctx, filter, orderBy, first, offset)
	if err != nil {
		return nil, err
	}
	conn := &ProductConnection{TotalCount: total, Edges: make([]ProductEdge, 0, len(products))}
	for _, p := range products {
		conn.Edges = append(conn.Edges, ProductEdge{Node: p})
	}
	return conn, nil
}

func (r *Resolver) AllOrders(ctx context.Context, filter store.OrderFilter, orderBy []string, first, offset int) (*OrderConnection, error) {
	orders, total, err := r.store.ListOrders(ctx, filter, orderBy, first, offset)
	if err != nil {
		return nil, err
	}
	conn := &OrderConnection{TotalCount: total, Edges: make([]OrderEdge, 0, len(orders))}
	for _, o := range orders {
		conn.Edges = append(conn.Edges, OrderEdge{Node: o})
	}
	return conn, nil
}
