package crmapi

import (
	"context"
	"strconv"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSchema(t *testing.T) (graphql.Schema, *Resolver) {
	t.Helper()
	r := newTestResolver(t)
	schema, err := NewSchema(r)
	require.NoError(t, err)
	return schema, r
}

func exec(t *testing.T, schema graphql.Schema, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
	require.Empty(t, result.Errors, "unexpected graphql errors: %v", result.Errors)
	return result.Data.(map[string]interface{})
}

func TestSchemaHello(t *testing.T) {
	schema, _ := newTestSchema(t)

	data := exec(t, schema, `{ hello }`, nil)
	assert.Equal(t, "Hello, GraphQL!", data["hello"])
}

func TestSchemaCreateCustomerRoundTrip(t *testing.T) {
	schema, _ := newTestSchema(t)

	data := exec(t, schema, `
		mutation {
			createCustomer(input: {name: "Alice Johnson", email: "alice@example.com", phone: "+1234567890"}) {
				success
				message
				errors
				customer { id name email phone }
			}
		}`, nil)

	resp := data["createCustomer"].(map[string]interface{})
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Customer created successfully", resp["message"])
	assert.Empty(t, resp["errors"])

	customer := resp["customer"].(map[string]interface{})
	assert.Equal(t, "Alice Johnson", customer["name"])
	assert.Equal(t, "alice@example.com", customer["email"])
	assert.Equal(t, "+1234567890", customer["phone"])

	// the new row is readable through the single lookup
	lookup := exec(t, schema, `query($id: ID!) { customer(id: $id) { name } }`,
		map[string]interface{}{"id": customer["id"]})
	assert.Equal(t, "Alice Johnson",
		lookup["customer"].(map[string]interface{})["name"])
}

func TestSchemaCreateCustomerFailureShape(t *testing.T) {
	schema, _ := newTestSchema(t)

	exec(t, schema, `
		mutation {
			createCustomer(input: {name: "Alice", email: "alice@example.com"}) { success }
		}`, nil)

	data := exec(t, schema, `
		mutation {
			createCustomer(input: {name: "Dup", email: "alice@example.com"}) {
				success
				errors
				customer { id }
			}
		}`, nil)

	resp := data["createCustomer"].(map[string]interface{})
	assert.Equal(t, false, resp["success"])
	assert.Nil(t, resp["customer"])
	require.Len(t, resp["errors"], 1)
	assert.Equal(t, "Email already exists", resp["errors"].([]interface{})[0])
}

func TestSchemaMissingCustomerIsNullNotError(t *testing.T) {
	schema, _ := newTestSchema(t)

	data := exec(t, schema, `{ customer(id: "999999") { id } }`, nil)
	assert.Nil(t, data["customer"])
}

func TestSchemaCreateProductDecimalPrice(t *testing.T) {
	schema, _ := newTestSchema(t)

	data := exec(t, schema, `
		mutation {
			createProduct(input: {name: "Wireless Mouse", price: "29.99", stock: 50}) {
				success
				product { name price stock lowStock }
			}
		}`, nil)

	resp := data["createProduct"].(map[string]interface{})
	assert.Equal(t, true, resp["success"])
	product := resp["product"].(map[string]interface{})
	assert.Equal(t, "29.99", product["price"], "price is serialized as an exact decimal string")
	assert.Equal(t, 50, product["stock"])
	assert.Equal(t, false, product["lowStock"])
}

func TestSchemaCreateProductRejectsNonPositivePrice(t *testing.T) {
	schema, _ := newTestSchema(t)

	data := exec(t, schema, `
		mutation {
			createProduct(input: {name: "Freebie", price: "0"}) {
				success
				errors
			}
		}`, nil)

	resp := data["createProduct"].(map[string]interface{})
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Price must be positive", resp["errors"].([]interface{})[0])
}

func TestSchemaBulkCreateCustomers(t *testing.T) {
	schema, _ := newTestSchema(t)

	data := exec(t, schema, `
		mutation {
			bulkCreateCustomers(input: [
				{name: "Alice", email: "alice@example.com"},
				{name: "Dup Alice", email: "alice@example.com"},
				{name: "Bob", email: "bob@example.com"}
			]) {
				successCount
				errorCount
				errors
				customers { name }
			}
		}`, nil)

	resp := data["bulkCreateCustomers"].(map[string]interface{})
	assert.Equal(t, 2, resp["successCount"])
	assert.Equal(t, 1, resp["errorCount"])
	require.Len(t, resp["errors"], 1)
	assert.Contains(t, resp["errors"].([]interface{})[0], "Customer 2")
}

func TestSchemaCreateOrderRoundTrip(t *testing.T) {
	schema, r := newTestSchema(t)
	ctx := context.Background()

	customer := r.CreateCustomer(ctx, CustomerInput{Name: "Carol", Email: "carol@example.com"})
	require.True(t, customer.Success)
	p1 := createProduct(t, r, "Wireless Mouse", "29.99", 50)
	p2 := createProduct(t, r, "Mechanical Keyboard", "89.99", 25)

	data := exec(t, schema, `
		mutation($customerId: ID!, $productIds: [ID!]!) {
			createOrder(input: {customerId: $customerId, productIds: $productIds}) {
				success
				message
				order {
					totalAmount
					customer { name }
					products { name }
				}
			}
		}`, map[string]interface{}{
		"customerId": strconv.FormatInt(customer.Customer.ID, 10),
		"productIds": []interface{}{
			strconv.FormatInt(p1.ID, 10),
			strconv.FormatInt(p2.ID, 10),
		},
	})

	resp := data["createOrder"].(map[string]interface{})
	assert.Equal(t, true, resp["success"], "errors: %v", resp["errors"])
	order := resp["order"].(map[string]interface{})
	assert.Equal(t, "119.98", order["totalAmount"])
	assert.Equal(t, "Carol", order["customer"].(map[string]interface{})["name"])
	assert.Len(t, order["products"], 2)
}

func TestSchemaAllProductsFilterAndPaging(t *testing.T) {
	schema, r := newTestSchema(t)

	createProduct(t, r, "Desk Lamp", "39.99", 5)
	createProduct(t, r, "Monitor 27", "299.99", 8)
	createProduct(t, r, "Wireless Mouse", "29.99", 50)

	data := exec(t, schema, `
		{
			allProducts(filter: {lowStock: true}, orderBy: ["name"], first: 1) {
				totalCount
				edges { node { name stock } }
			}
		}`, nil)

	conn := data["allProducts"].(map[string]interface{})
	assert.Equal(t, 2, conn["totalCount"])
	edges := conn["edges"].([]interface{})
	require.Len(t, edges, 1)
	node := edges[0].(map[string]interface{})["node"].(map[string]interface{})
	assert.Equal(t, "Desk Lamp", node["name"])
}

func TestSchemaUpdateLowStockProducts(t *testing.T) {
	schema, r := newTestSchema(t)

	createProduct(t, r, "Desk Lamp", "39.99", 5)
	createProduct(t, r, "Wireless Mouse", "29.99", 50)

	data := exec(t, schema, `
		mutation {
			updateLowStockProducts {
				success
				message
				errors
				products { name stock }
			}
		}`, nil)

	resp := data["updateLowStockProducts"].(map[string]interface{})
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Restocked 1 product(s) successfully.", resp["message"])
	products := resp["products"].([]interface{})
	require.Len(t, products, 1)
	restocked := products[0].(map[string]interface{})
	assert.Equal(t, "Desk Lamp", restocked["name"])
	assert.Equal(t, 15, restocked["stock"])
}

func TestSchemaUnknownOrderFieldSurfacesAsError(t *testing.T) {
	schema, _ := newTestSchema(t)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ allCustomers(orderBy: ["bogus"]) { totalCount } }`,
		Context:       context.Background(),
	})
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "unknown order field")
}
