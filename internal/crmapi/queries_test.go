package crmapi

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/gocrm/internal/store"
)

func TestHello(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, "Hello, GraphQL!", r.Hello())
}

func TestSingleLookupsMissingResolveToNil(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	c, err := r.Customer(ctx, "999999")
	require.NoError(t, err)
	assert.Nil(t, c)

	p, err := r.Product(ctx, "999999")
	require.NoError(t, err)
	assert.Nil(t, p)

	o, err := r.Order(ctx, "999999")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestSingleLookupMalformedID(t *testing.T) {
	r := newTestResolver(t)

	c, err := r.Customer(context.Background(), "not-a-number")
	require.NoError(t, err, "a malformed id is treated like a missing row")
	assert.Nil(t, c)
}

func TestSingleLookupFound(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	created := r.CreateCustomer(ctx, CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.True(t, created.Success)

	got, err := r.Customer(ctx, strconv.FormatInt(created.Customer.ID, 10))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alice", got.Name)
}

func TestAllCustomersConnection(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	for _, c := range []CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
		{Name: "Carol", Email: "carol@example.com"},
	} {
		require.True(t, r.CreateCustomer(ctx, c).Success)
	}

	conn, err := r.AllCustomers(ctx, store.CustomerFilter{}, nil, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, conn.TotalCount, "totalCount ignores pagination")
	require.Len(t, conn.Edges, 2)
	assert.Equal(t, "Alice", conn.Edges[0].Node.Name)
	assert.Equal(t, "Bob", conn.Edges[1].Node.Name)
}

func TestAllProductsConnectionFiltered(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	createProduct(t, r, "Desk Lamp", "39.99", 5)
	createProduct(t, r, "Wireless Mouse", "29.99", 50)

	lowStock := true
	conn, err := r.AllProducts(ctx, store.ProductFilter{LowStock: &lowStock}, nil, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, conn.TotalCount)
	require.Len(t, conn.Edges, 1)
	assert.Equal(t, "Desk Lamp", conn.Edges[0].Node.Name)
}

func TestAllOrdersConnectionEmpty(t *testing.T) {
	r := newTestResolver(t)

	conn, err := r.AllOrders(context.Background(), store.OrderFilter{}, nil, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, conn.TotalCount)
	assert.Empty(t, conn.Edges)
}

func TestAllCustomersUnknownOrderFieldPropagates(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.AllCustomers(context.Background(), store.CustomerFilter{}, []string{"bogus"}, 0, 0)
	require.Error(t, err)
}
