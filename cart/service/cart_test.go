package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danisworo/storefront/cart/pkg/request"
	inErrors "github.com/danisworo/storefront/internal/errors"
)

func intPtr(i int) *int {
	return &i
}

func TestFindCartCreatesOnFirstAccess(t *testing.T) {
	c := context.Background()
	client, container, _, cartService := setup(t)(c)
	defer teardown(t)(c, client, container)

	cart, err := cartService.FindCartByUserID(c, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
	assert.Empty(t, cart.Items)
	assert.NotEmpty(t, cart.ID)

	// second fetch returns the same cart instead of creating another
	again, err := cartService.FindCartByUserID(c, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestAddCartItemMergesQuantity(t *testing.T) {
	c := context.Background()
	client, container, queries, cartService := setup(t)(c)
	defer teardown(t)(c, client, container)

	product := seedProduct(t, c, queries, "Mechanical Keyboard", 5)

	cart, err := cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: product.ID.Hex(),
		Quantity:  intPtr(3),
	})
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, product.Name, cart.Items[0].Name)
	assert.Equal(t, product.Stock, cart.Items[0].Stock)

	// merging 3 more would exceed the stock of 5, the cart stays at 3
	_, err = cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: product.ID.Hex(),
		Quantity:  intPtr(3),
	})
	assert.ErrorIs(t, err, inErrors.ErrInsufficientStock)

	cart, err = cartService.FindCartByUserID(c, "user-1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// merging 2 more lands exactly on the stock limit
	cart, err = cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: product.ID.Hex(),
		Quantity:  intPtr(2),
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddCartItemDefaultsQuantity(t *testing.T) {
	c := context.Background()
	client, container, queries, cartService := setup(t)(c)
	defer teardown(t)(c, client, container)

	product := seedProduct(t, c, queries, "Wireless Mouse", 10)

	cart, err := cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: product.ID.Hex(),
	})
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	c := context.Background()
	client, container, _, cartService := setup(t)(c)
	defer teardown(t)(c, client, container)

	_, err := cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: "ffffffffffffffffffffffff",
	})
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)

	_, err = cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: "not-a-hex-id",
	})
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestRemoveCartItem(t *testing.T) {
	c := context.Background()
	client, container, queries, cartService := setup(t)(c)
	defer teardown(t)(c, client, container)

	keyboard := seedProduct(t, c, queries, "Mechanical Keyboard", 5)
	mouse := seedProduct(t, c, queries, "Wireless Mouse", 10)

	_, err := cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: keyboard.ID.Hex(),
		Quantity:  intPtr(2),
	})
	assert.NoError(t, err)
	_, err = cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: mouse.ID.Hex(),
		Quantity:  intPtr(1),
	})
	assert.NoError(t, err)

	cart, err := cartService.RemoveCartItem(c, "user-1", request.RemoveCartItem{
		ProductID: keyboard.ID.Hex(),
	})
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, mouse.ID.Hex(), cart.Items[0].ProductID)

	// removing a product that is not in the cart leaves it unchanged
	cart, err = cartService.RemoveCartItem(c, "user-1", request.RemoveCartItem{
		ProductID: keyboard.ID.Hex(),
	})
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestRemoveCartItemErrors(t *testing.T) {
	c := context.Background()
	client, container, queries, cartService := setup(t)(c)
	defer teardown(t)(c, client, container)

	_, err := cartService.RemoveCartItem(c, "user-1", request.RemoveCartItem{
		ProductID: "not-a-hex-id",
	})
	assert.ErrorIs(t, err, inErrors.ErrInvalidProductID)

	product := seedProduct(t, c, queries, "Puzzle Cube", 40)
	_, err = cartService.RemoveCartItem(c, "user-1", request.RemoveCartItem{
		ProductID: product.ID.Hex(),
	})
	assert.ErrorIs(t, err, inErrors.ErrCartNotFound)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	c := context.Background()
	client, container, queries, cartService := setup(t)(c)
	defer teardown(t)(c, client, container)

	product := seedProduct(t, c, queries, "Mechanical Keyboard", 5)

	_, err := cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: product.ID.Hex(),
		Quantity:  intPtr(2),
	})
	assert.NoError(t, err)

	// unlike add, update replaces the quantity instead of accumulating
	cart, err := cartService.UpdateCartItem(c, "user-1", request.UpdateCartItem{
		ProductID: product.ID.Hex(),
		Quantity:  intPtr(4),
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	_, err = cartService.UpdateCartItem(c, "user-1", request.UpdateCartItem{
		ProductID: product.ID.Hex(),
		Quantity:  intPtr(6),
	})
	assert.ErrorIs(t, err, inErrors.ErrInsufficientStock)
}

func TestUpdateCartItemNeverCreates(t *testing.T) {
	c := context.Background()
	client, container, queries, cartService := setup(t)(c)
	defer teardown(t)(c, client, container)

	carted := seedProduct(t, c, queries, "Mechanical Keyboard", 5)
	uncarted := seedProduct(t, c, queries, "Wireless Mouse", 10)

	_, err := cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: carted.ID.Hex(),
		Quantity:  intPtr(1),
	})
	assert.NoError(t, err)

	_, err = cartService.UpdateCartItem(c, "user-1", request.UpdateCartItem{
		ProductID: uncarted.ID.Hex(),
		Quantity:  intPtr(1),
	})
	assert.ErrorIs(t, err, inErrors.ErrCartItemNotFound)

	cart, err := cartService.FindCartByUserID(c, "user-1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, carted.ID.Hex(), cart.Items[0].ProductID)
}

func TestClearCart(t *testing.T) {
	c := context.Background()
	client, container, queries, cartService := setup(t)(c)
	defer teardown(t)(c, client, container)

	product := seedProduct(t, c, queries, "Mechanical Keyboard", 5)
	_, err := cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: product.ID.Hex(),
		Quantity:  intPtr(2),
	})
	assert.NoError(t, err)

	cart, err := cartService.ClearCart(c, "user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "user-1", cart.UserID)

	// clearing an already empty cart succeeds
	cart, err = cartService.ClearCart(c, "user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = cartService.ClearCart(c, "user-2")
	assert.ErrorIs(t, err, inErrors.ErrCartNotFound)
}

func TestCartDropsDeletedProducts(t *testing.T) {
	c := context.Background()
	client, container, queries, cartService := setup(t)(c)
	defer teardown(t)(c, client, container)

	product := seedProduct(t, c, queries, "Mechanical Keyboard", 5)
	_, err := cartService.AddCartItem(c, "user-1", request.AddCartItem{
		ProductID: product.ID.Hex(),
		Quantity:  intPtr(2),
	})
	assert.NoError(t, err)

	err = queries.DeleteProductByID(c, product.ID)
	assert.NoError(t, err)

	cart, err := cartService.FindCartByUserID(c, "user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
}
