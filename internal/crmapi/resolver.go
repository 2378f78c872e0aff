package crmapi

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/gocrm/internal/domain"
	"github.com/talkincode/gocrm/internal/store"
)

// DefaultRestockQty is added to every low-stock product by the restock
// mutation unless overridden from settings.
const DefaultRestockQty = 10

// Resolver holds the dependencies the GraphQL schema resolves against.
type Resolver struct {
	store      *store.Store
	restockQty int
}

func NewResolver(s *store.Store) *Resolver {
	return &Resolver{store: s, restockQty: DefaultRestockQty}
}

// SetRestockQty overrides the restock increment (settings-driven).
func (r *Resolver) SetRestockQty(qty int) {
	if qty > 0 {
		r.restockQty = qty
	}
}

func (r *Resolver) Store() *store.Store {
	return r.store
}

// Mutation inputs. Ids arrive as opaque GraphQL ID strings and are parsed
// by the handlers so invalid ids can be reported verbatim.

type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

type ProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock *int
}

type OrderInput struct {
	CustomerID string
	ProductIDs []string
	OrderDate  *time.Time
}

// Mutation responses. Handlers never raise to the transport layer; every
// outcome is a well-formed response with success/errors populated.

type CustomerMutationResponse struct {
	Customer *domain.Customer
	Message  string
	Success  bool
	Errors   []string
}

type BulkCustomerMutationResponse struct {
	Customers    []domain.Customer
	Errors       []string
	SuccessCount int
	ErrorCount   int
}

type ProductMutationResponse struct {
	Product *domain.Product
	Message string
	Success bool
	Errors  []string
}

type OrderMutationResponse struct {
	Order   *domain.Order
	Message string
	Success bool
	Errors  []string
}

type UpdateLowStockProductsResponse struct {
	Products []domain.Product
	Message  string
	Success  bool
	Errors   []string
}

// Connection results for the list queries.

type CustomerEdge struct{ Node domain.Customer }

type CustomerConnection struct {
	Edges      []CustomerEdge
	TotalCount int64
}

type ProductEdge struct{ Node domain.Product }

type ProductConnection struct {
	Edges      []ProductEdge
	TotalCount int64
}

type OrderEdge struct{ Node domain.Order }

type OrderConnection struct {
	Edges      []OrderEdge
	TotalCount int64
}
