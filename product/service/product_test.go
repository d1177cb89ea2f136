package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/danisworo/storefront/internal/constants"
	inErrors "github.com/danisworo/storefront/internal/errors"
	"github.com/danisworo/storefront/product/pkg/request"
	"github.com/danisworo/storefront/product/pkg/response"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func seedProduct(name, category string, price int64, stock int) request.Product {
	return request.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimalPtr(decimal.NewFromInt(price)),
		Category:    category,
		Stock:       intPtr(stock),
	}
}

func TestInsertProductDefaults(t *testing.T) {
	c := context.Background()
	client, container, _, productService := setup(t)(c)
	defer teardown(t)(c, client, container)

	inserted, err := productService.InsertProduct(c, request.Product{
		Name:        "Desk Lamp",
		Description: "Adjustable arm",
		Price:       decimalPtr(decimal.NewFromInt(25)),
		Category:    "Home",
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, inserted.Stock)
	assert.Equal(t, constants.DefaultProductImage, inserted.Image)
	assert.False(t, inserted.Featured)
	assert.True(t, decimal.NewFromInt(25).Equal(inserted.Price))
	assert.NotEmpty(t, inserted.ID)
}

func TestFindProductsFiltering(t *testing.T) {
	c := context.Background()
	client, container, _, productService := setup(t)(c)
	defer teardown(t)(c, client, container)

	seeds := []request.Product{
		seedProduct("Mechanical Keyboard", "Electronics", 75, 10),
		seedProduct("Wireless Mouse", "Electronics", 25, 20),
		seedProduct("Cotton Shirt", "Clothing", 15, 30),
		seedProduct("Puzzle Cube", "Toys", 8, 40),
	}
	for _, seed := range seeds {
		_, err := productService.InsertProduct(c, seed)
		assert.NoError(t, err)
	}

	products, err := productService.FindProducts(c, request.FindProducts{Category: "Electronics"})
	assert.NoError(t, err)
	assert.Len(t, products.Products, 2)
	assert.EqualValues(t, 2, products.Pagination.Total)

	products, err = productService.FindProducts(c, request.FindProducts{
		MinPrice: decimalPtr(decimal.NewFromInt(10)),
		MaxPrice: decimalPtr(decimal.NewFromInt(30)),
	})
	assert.NoError(t, err)
	assert.Len(t, products.Products, 2)
	for _, product := range products.Products {
		assert.True(t, product.Price.GreaterThanOrEqual(decimal.NewFromInt(10)))
		assert.True(t, product.Price.LessThanOrEqual(decimal.NewFromInt(30)))
	}

	// category and both price bounds compose into a single predicate
	products, err = productService.FindProducts(c, request.FindProducts{
		Category: "Electronics",
		MinPrice: decimalPtr(decimal.NewFromInt(10)),
		MaxPrice: decimalPtr(decimal.NewFromInt(50)),
	})
	assert.NoError(t, err)
	assert.Len(t, products.Products, 1)
	assert.Equal(t, "Wireless Mouse", products.Products[0].Name)
	assert.Equal(t, "Electronics", products.Products[0].Category)
	assert.True(t, products.Products[0].Price.GreaterThanOrEqual(decimal.NewFromInt(10)))
	assert.True(t, products.Products[0].Price.LessThanOrEqual(decimal.NewFromInt(50)))

	// category "all" matches every product
	products, err = productService.FindProducts(c, request.FindProducts{Category: constants.CategoryAll})
	assert.NoError(t, err)
	assert.EqualValues(t, 4, products.Pagination.Total)
}

func TestFindProductsPagination(t *testing.T) {
	c := context.Background()
	client, container, _, productService := setup(t)(c)
	defer teardown(t)(c, client, container)

	for i := range 5 {
		_, err := productService.InsertProduct(
			c,
			seedProduct(fmt.Sprintf("Book %d", i), "Books", 10, 5),
		)
		assert.NoError(t, err)
	}

	products, err := productService.FindProducts(c, request.FindProducts{Page: 1, Limit: 2})
	assert.NoError(t, err)
	assert.Len(t, products.Products, 2)
	assert.EqualValues(t, 5, products.Pagination.Total)
	assert.EqualValues(t, 3, products.Pagination.TotalPages)
	assert.True(t, products.Pagination.HasNext)
	assert.False(t, products.Pagination.HasPrev)

	products, err = productService.FindProducts(c, request.FindProducts{Page: 3, Limit: 2})
	assert.NoError(t, err)
	assert.Len(t, products.Products, 1)
	assert.False(t, products.Pagination.HasNext)
	assert.True(t, products.Pagination.HasPrev)

	// out of range pages fall back to the defaults
	products, err = productService.FindProducts(c, request.FindProducts{Page: -1, Limit: -1})
	assert.NoError(t, err)
	assert.EqualValues(t, constants.DefaultPage, products.Pagination.Page)
	assert.EqualValues(t, constants.DefaultLimit, products.Pagination.Limit)
}

func TestFindProductsSearch(t *testing.T) {
	c := context.Background()
	client, container, _, productService := setup(t)(c)
	defer teardown(t)(c, client, container)

	_, err := productService.InsertProduct(c, seedProduct("Mechanical Keyboard", "Electronics", 75, 10))
	assert.NoError(t, err)
	_, err = productService.InsertProduct(c, seedProduct("Cotton Shirt", "Clothing", 15, 30))
	assert.NoError(t, err)

	products, err := productService.FindProducts(c, request.FindProducts{Search: "keyboard"})
	assert.NoError(t, err)
	assert.Len(t, products.Products, 1)
	assert.Equal(t, "Mechanical Keyboard", products.Products[0].Name)
}

func TestUpdateProductPartialMerge(t *testing.T) {
	c := context.Background()
	client, container, _, productService := setup(t)(c)
	defer teardown(t)(c, client, container)

	inserted, err := productService.InsertProduct(c, seedProduct("Desk Lamp", "Home", 25, 7))
	assert.NoError(t, err)
	id, err := primitive.ObjectIDFromHex(inserted.ID)
	assert.NoError(t, err)

	updated, err := productService.UpdateProduct(c, id, request.UpdateProduct{
		Price: decimalPtr(decimal.NewFromInt(30)),
	})
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(updated.Price))
	assert.Equal(t, inserted.Name, updated.Name)
	assert.Equal(t, inserted.Stock, updated.Stock)

	// explicit zero stock is a real update, not an omitted field
	updated, err = productService.UpdateProduct(c, id, request.UpdateProduct{Stock: intPtr(0)})
	assert.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.True(t, decimal.NewFromInt(30).Equal(updated.Price))

	updated, err = productService.UpdateProduct(c, id, request.UpdateProduct{
		Name:     stringPtr("Floor Lamp"),
		Category: stringPtr("Electronics"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Floor Lamp", updated.Name)
	assert.Equal(t, "Electronics", updated.Category)
}

func TestUpdateProductNotFound(t *testing.T) {
	c := context.Background()
	client, container, _, productService := setup(t)(c)
	defer teardown(t)(c, client, container)

	_, err := productService.UpdateProduct(c, primitive.NewObjectID(), request.UpdateProduct{
		Name: stringPtr("Ghost"),
	})
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestRemoveProduct(t *testing.T) {
	c := context.Background()
	client, container, _, productService := setup(t)(c)
	defer teardown(t)(c, client, container)

	inserted, err := productService.InsertProduct(c, seedProduct("Puzzle Cube", "Toys", 8, 40))
	assert.NoError(t, err)
	id, err := primitive.ObjectIDFromHex(inserted.ID)
	assert.NoError(t, err)

	err = productService.RemoveProduct(c, id)
	assert.NoError(t, err)

	_, err = productService.FindProductByID(c, id)
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)

	err = productService.RemoveProduct(c, id)
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestFindProductByID(t *testing.T) {
	c := context.Background()
	client, container, _, productService := setup(t)(c)
	defer teardown(t)(c, client, container)

	inserted, err := productService.InsertProduct(c, seedProduct("Wireless Mouse", "Electronics", 25, 20))
	assert.NoError(t, err)
	id, err := primitive.ObjectIDFromHex(inserted.ID)
	assert.NoError(t, err)

	found, err := productService.FindProductByID(c, id)
	assert.NoError(t, err)
	assert.Equal(t, response.Product{
		ID:          inserted.ID,
		Name:        inserted.Name,
		Description: inserted.Description,
		Price:       found.Price,
		Category:    inserted.Category,
		Stock:       inserted.Stock,
		Image:       inserted.Image,
		Featured:    inserted.Featured,
		CreatedAt:   found.CreatedAt,
		UpdatedAt:   found.UpdatedAt,
	}, found)
	assert.True(t, inserted.Price.Equal(found.Price))
}
