package crmapi

import (
	"strconv"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"github.com/talkincode/gocrm/internal/store"
)

// NewSchema builds the executable GraphQL schema bound to the resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Hello(), nil
				},
			},
			"customer": &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					c, err := r.Customer(p.Context, argString(p.Args, "id"))
					if err != nil || c == nil {
						return nil, err
					}
					return c, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prod, err := r.Product(p.Context, argString(p.Args, "id"))
					if err != nil || prod == nil {
						return nil, err
					}
					return prod, nil
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					o, err := r.Order(p.Context, argString(p.Args, "id"))
					if err != nil || o == nil {
						return nil, err
					}
					return o, nil
				},
			},
			"allCustomers": &graphql.Field{
				Type: graphql.NewNonNull(customerConnectionType),
				Args: listArgs(customerFilterInputType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := decodeCustomerFilter(argMap(p.Args, "filter"))
					return r.AllCustomers(p.Context, filter,
						argStringList(p.Args, "orderBy"),
						argInt(p.Args, "first"), argInt(p.Args, "offset"))
				},
			},
			"allProducts": &graphql.Field{
				Type: graphql.NewNonNull(productConnectionType),
				Args: listArgs(productFilterInputType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := decodeProductFilter(argMap(p.Args, "filter"))
					return r.AllProducts(p.Context, filter,
						argStringList(p.Args, "orderBy"),
						argInt(p.Args, "first"), argInt(p.Args, "offset"))
				},
			},
			"allOrders": &graphql.Field{
				Type: graphql.NewNonNull(orderConnectionType),
				Args: listArgs(orderFilterInputType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := decodeOrderFilter(argMap(p.Args, "filter"))
					return r.AllOrders(p.Context, filter,
						argStringList(p.Args, "orderBy"),
						argInt(p.Args, "first"), argInt(p.Args, "offset"))
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: graphql.NewNonNull(customerMutationResponseType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(customerInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.CreateCustomer(p.Context, decodeCustomerInput(argMap(p.Args, "input"))), nil
				},
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: graphql.NewNonNull(bulkCustomerMutationResponseType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerInputType))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var inputs []CustomerInput
					if list, ok := p.Args["input"].([]interface{}); ok {
						for _, item := range list {
							if m, ok := item.(map[string]interface{}); ok {
								inputs = append(inputs, decodeCustomerInput(m))
							}
						}
					}
					return r.BulkCreateCustomers(p.Context, inputs), nil
				},
			},
			"createProduct": &graphql.Field{
				Type: graphql.NewNonNull(productMutationResponseType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.CreateProduct(p.Context, decodeProductInput(argMap(p.Args, "input"))), nil
				},
			},
			"createOrder": &graphql.Field{
				Type: graphql.NewNonNull(orderMutationResponseType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.CreateOrder(p.Context, decodeOrderInput(argMap(p.Args, "input"))), nil
				},
			},
			"updateLowStockProducts": &graphql.Field{
				Type: graphql.NewNonNull(updateLowStockProductsResponseType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.UpdateLowStockProducts(p.Context), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func listArgs(filter *graphql.InputObject) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"filter":  &graphql.ArgumentConfig{Type: filter},
		"orderBy": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"first":   &graphql.ArgumentConfig{Type: graphql.Int},
		"offset":  &graphql.ArgumentConfig{Type: graphql.Int},
	}
}

// Argument decoding. graphql-go hands back loosely typed maps; these
// helpers narrow them to the typed inputs the resolver methods take.

func argMap(args map[string]interface{}, key string) map[string]interface{} {
	if m, ok := args[key].(map[string]interface{}); ok {
		return m
	}
	return nil
}

func argString(args map[string]interface{}, key string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return ""
}

func argInt(args map[string]interface{}, key string) int {
	if n, ok := args[key].(int); ok {
		return n
	}
	return 0
}

func argStringList(args map[string]interface{}, key string) []string {
	list, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func mapString(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func mapIntPtr(m map[string]interface{}, key string) *int {
	if n, ok := m[key].(int); ok {
		return &n
	}
	return nil
}

func mapBoolPtr(m map[string]interface{}, key string) *bool {
	if b, ok := m[key].(bool); ok {
		return &b
	}
	return nil
}

func mapTimePtr(m map[string]interface{}, key string) *time.Time {
	if t, ok := m[key].(time.Time); ok {
		return &t
	}
	return nil
}

func mapDecimalPtr(m map[string]interface{}, key string) *decimal.Decimal {
	if d, ok := m[key].(decimal.Decimal); ok {
		return &d
	}
	return nil
}

func mapIDPtr(m map[string]interface{}, key string) *int64 {
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func decodeCustomerInput(m map[string]interface{}) CustomerInput {
	return CustomerInput{
		Name:  mapString(m, "name"),
		Email: mapString(m, "email"),
		Phone: mapString(m, "phone"),
	}
}

func decodeProductInput(m map[string]interface{}) ProductInput {
	input := ProductInput{
		Name:  mapString(m, "name"),
		Stock: mapIntPtr(m, "stock"),
	}
	if d, ok := m["price"].(decimal.Decimal); ok {
		input.Price = d
	}
	return input
}

func decodeOrderInput(m map[string]interface{}) OrderInput {
	input := OrderInput{
		CustomerID: mapString(m, "customerId"),
		OrderDate:  mapTimePtr(m, "orderDate"),
	}
	if list, ok := m["productIds"].([]interface{}); ok {
		for _, item := range list {
			if s, ok := item.(string); ok {
				input.ProductIDs = append(input.ProductIDs, s)
			}
		}
	}
	return input
}

func decodeCustomerFilter(m map[string]interface{}) store.CustomerFilter {
	return store.CustomerFilter{
		Name:         mapString(m, "name"),
		Email:        mapString(m, "email"),
		CreatedAtGte: mapTimePtr(m, "createdAtGte"),
		CreatedAtLte: mapTimePtr(m, "createdAtLte"),
		PhonePattern: mapString(m, "phonePattern"),
	}
}

func decodeProductFilter(m map[string]interface{}) store.ProductFilter {
	return store.ProductFilter{
		Name:     mapString(m, "name"),
		PriceGte: mapDecimalPtr(m, "priceGte"),
		PriceLte: mapDecimalPtr(m, "priceLte"),
		Stock:    mapIntPtr(m, "stock"),
		StockGte: mapIntPtr(m, "stockGte"),
		StockLte: mapIntPtr(m, "stockLte"),
		LowStock: mapBoolPtr(m, "lowStock"),
	}
}

func decodeOrderFilter(m map[string]interface{}) store.OrderFilter {
	return store.OrderFilter{
		TotalAmountGte: mapDecimalPtr(m, "totalAmountGte"),
		TotalAmountLte: mapDecimalPtr(m, "totalAmountLte"),
		OrderDateGte:   mapTimePtr(m, "orderDateGte"),
		OrderDateLte:   mapTimePtr(m, "orderDateLte"),
		CustomerName:   mapString(m, "customerName"),
		CustomerEmail:  mapString(m, "customerEmail"),
		CustomerID:     mapIDPtr(m, "customerId"),
		ProductName:    mapString(m, "productName"),
		ProductID:      mapIDPtr(m, "productId"),
	}
}
