package crmapi

import (
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
	"github.com/talkincode/gocrm/internal/domain"
)

// decimalType carries currency amounts as exact decimal strings so totals
// never pick up floating-point drift on the wire.
var decimalType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "An arbitrary-precision decimal number serialized as a string.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case decimal.Decimal:
			return v.String()
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			return v.String()
		default:
			return nil
		}
	},
	ParseValue: parseDecimalValue,
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.StringValue:
			return parseDecimalValue(v.Value)
		case *ast.IntValue:
			return parseDecimalValue(v.Value)
		case *ast.FloatValue:
			return parseDecimalValue(v.Value)
		default:
			return nil
		}
	},
})

func parseDecimalValue(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		return nil
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Resolve sources arrive either as values (list nodes) or pointers
// (single lookups), so each accessor normalizes both.

func srcCustomer(src interface{}) *domain.Customer {
	switch v := src.(type) {
	case domain.Customer:
		return &v
	case *domain.Customer:
		return v
	}
	return nil
}

func srcProduct(src interface{}) *domain.Product {
	switch v := src.(type) {
	case domain.Product:
		return &v
	case *domain.Product:
		return v
	}
	return nil
}

func srcOrder(src interface{}) *domain.Order {
	switch v := src.(type) {
	case domain.Order:
		return &v
	case *domain.Order:
		return v
	}
	return nil
}

var customerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Customer",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return formatID(srcCustomer(p.Source).ID), nil
			},
		},
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcCustomer(p.Source).Name, nil
			},
		},
		"email": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcCustomer(p.Source).Email, nil
			},
		},
		"phone": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if c := srcCustomer(p.Source); c.Phone != "" {
					return c.Phone, nil
				}
				return nil, nil
			},
		},
		"createdAt": &graphql.Field{
			Type: graphql.DateTime,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcCustomer(p.Source).CreatedAt, nil
			},
		},
		"updatedAt": &graphql.Field{
			Type: graphql.DateTime,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcCustomer(p.Source).UpdatedAt, nil
			},
		},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return formatID(srcProduct(p.Source).ID), nil
			},
		},
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcProduct(p.Source).Name, nil
			},
		},
		"price": &graphql.Field{
			Type: graphql.NewNonNull(decimalType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcProduct(p.Source).Price, nil
			},
		},
		"stock": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcProduct(p.Source).Stock, nil
			},
		},
		"lowStock": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcProduct(p.Source).LowStock(), nil
			},
		},
		"createdAt": &graphql.Field{
			Type: graphql.DateTime,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcProduct(p.Source).CreatedAt, nil
			},
		},
		"updatedAt": &graphql.Field{
			Type: graphql.DateTime,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcProduct(p.Source).UpdatedAt, nil
			},
		},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return formatID(srcOrder(p.Source).ID), nil
			},
		},
		"customer": &graphql.Field{
			Type: graphql.NewNonNull(customerType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcOrder(p.Source).Customer, nil
			},
		},
		"products": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcOrder(p.Source).Products, nil
			},
		},
		"totalAmount": &graphql.Field{
			Type: graphql.NewNonNull(decimalType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcOrder(p.Source).TotalAmount, nil
			},
		},
		"orderDate": &graphql.Field{
			Type: graphql.NewNonNull(graphql.DateTime),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcOrder(p.Source).OrderDate, nil
			},
		},
		"createdAt": &graphql.Field{
			Type: graphql.DateTime,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcOrder(p.Source).CreatedAt, nil
			},
		},
		"updatedAt": &graphql.Field{
			Type: graphql.DateTime,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return srcOrder(p.Source).UpdatedAt, nil
			},
		},
	},
})

func edgeType(name string, nodeType *graphql.Object, node func(src interface{}) interface{}) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"node": &graphql.Field{
				Type: graphql.NewNonNull(nodeType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return node(p.Source), nil
				},
			},
		},
	})
}

func connectionType(name string, edge *graphql.Object, edges func(src interface{}) interface{}, total func(src interface{}) interface{}) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"edges": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edge))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return edges(p.Source), nil
				},
			},
			"totalCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return total(p.Source), nil
				},
			},
		},
	})
}

var customerConnectionType = connectionType("CustomerConnection",
	edgeType("CustomerEdge", customerType, func(src interface{}) interface{} {
		return src.(CustomerEdge).Node
	}),
	func(src interface{}) interface{} { return src.(*CustomerConnection).Edges },
	func(src interface{}) interface{} { return int(src.(*CustomerConnection).TotalCount) },
)

var productConnectionType = connectionType("ProductConnection",
	edgeType("ProductEdge", productType, func(src interface{}) interface{} {
		return src.(ProductEdge).Node
	}),
	func(src interface{}) interface{} { return src.(*ProductConnection).Edges },
	func(src interface{}) interface{} { return int(src.(*ProductConnection).TotalCount) },
)

var orderConnectionType = connectionType("OrderConnection",
	edgeType("OrderEdge", orderType, func(src interface{}) interface{} {
		return src.(OrderEdge).Node
	}),
	func(src interface{}) interface{} { return src.(*OrderConnection).Edges },
	func(src interface{}) interface{} { return int(src.(*OrderConnection).TotalCount) },
)

var customerMutationResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CustomerMutationResponse",
	Fields: graphql.Fields{
		"customer": &graphql.Field{
			Type: customerType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if c := p.Source.(*CustomerMutationResponse).Customer; c != nil {
					return c, nil
				}
				return nil, nil
			},
		},
		"message": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*CustomerMutationResponse).Message, nil
			},
		},
		"success": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*CustomerMutationResponse).Success, nil
			},
		},
		"errors": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return nonNilErrors(p.Source.(*CustomerMutationResponse).Errors), nil
			},
		},
	},
})

var bulkCustomerMutationResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BulkCustomerMutationResponse",
	Fields: graphql.Fields{
		"customers": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerType))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*BulkCustomerMutationResponse).Customers, nil
			},
		},
		"errors": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return nonNilErrors(p.Source.(*BulkCustomerMutationResponse).Errors), nil
			},
		},
		"successCount": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*BulkCustomerMutationResponse).SuccessCount, nil
			},
		},
		"errorCount": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*BulkCustomerMutationResponse).ErrorCount, nil
			},
		},
	},
})

var productMutationResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductMutationResponse",
	Fields: graphql.Fields{
		"product": &graphql.Field{
			Type: productType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if prod := p.Source.(*ProductMutationResponse).Product; prod != nil {
					return prod, nil
				}
				return nil, nil
			},
		},
		"message": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*ProductMutationResponse).Message, nil
			},
		},
		"success": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*ProductMutationResponse).Success, nil
			},
		},
		"errors": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return nonNilErrors(p.Source.(*ProductMutationResponse).Errors), nil
			},
		},
	},
})

var orderMutationResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderMutationResponse",
	Fields: graphql.Fields{
		"order": &graphql.Field{
			Type: orderType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if o := p.Source.(*OrderMutationResponse).Order; o != nil {
					return o, nil
				}
				return nil, nil
			},
		},
		"message": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*OrderMutationResponse).Message, nil
			},
		},
		"success": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*OrderMutationResponse).Success, nil
			},
		},
		"errors": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return nonNilErrors(p.Source.(*OrderMutationResponse).Errors), nil
			},
		},
	},
})

var updateLowStockProductsResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UpdateLowStockProductsResponse",
	Fields: graphql.Fields{
		"products": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*UpdateLowStockProductsResponse).Products, nil
			},
		},
		"message": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*UpdateLowStockProductsResponse).Message, nil
			},
		},
		"success": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*UpdateLowStockProductsResponse).Success, nil
			},
		},
		"errors": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return nonNilErrors(p.Source.(*UpdateLowStockProductsResponse).Errors), nil
			},
		},
	},
})

func nonNilErrors(errs []string) []string {
	if errs == nil {
		return []string{}
	}
	return errs
}

var customerInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var productInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(decimalType)},
		"stock": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var orderInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"customerId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"productIds": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
		"orderDate":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
	},
})

var customerFilterInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"createdAtGte": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"createdAtLte": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"phonePattern": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var productFilterInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"priceGte": &graphql.InputObjectFieldConfig{Type: decimalType},
		"priceLte": &graphql.InputObjectFieldConfig{Type: decimalType},
		"stock":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"stockGte": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"stockLte": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"lowStock": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

var orderFilterInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"totalAmountGte": &graphql.InputObjectFieldConfig{Type: decimalType},
		"totalAmountLte": &graphql.InputObjectFieldConfig{Type: decimalType},
		"orderDateGte":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"orderDateLte":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"customerName":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"customerEmail":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"customerId":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"productName":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"productId":      &graphql.InputObjectFieldConfig{Type: graphql.ID},
	},
})
