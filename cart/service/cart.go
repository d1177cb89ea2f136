package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/danisworo/storefront/cart/otel"
	"github.com/danisworo/storefront/cart/pkg/request"
	"github.com/danisworo/storefront/cart/pkg/response"
	inErrors "github.com/danisworo/storefront/internal/errors"
	"github.com/danisworo/storefront/internal/log"
	"github.com/danisworo/storefront/internal/repository"
)

type CartService struct {
	queries *repository.Queries
}

func NewCartService(queries *repository.Queries) CartService {
	return CartService{queries: queries}
}

// findOrCreateCart returns the user's cart, creating an empty one on first
// access.
func (svc CartService) findOrCreateCart(
	c context.Context,
	userID string,
) (repository.Cart, error) {
	cart, err := svc.queries.FindCartByUserID(c, userID)
	if errors.Is(err, inErrors.ErrCartNotFound) {
		return svc.queries.InsertCart(c, repository.Cart{UserID: userID})
	}
	if err != nil {
		return repository.Cart{}, err
	}
	return cart, nil
}

// resolveProducts loads every product referenced by the cart's line items,
// keyed by id.
func (svc CartService) resolveProducts(
	c context.Context,
	cart repository.Cart,
) (map[primitive.ObjectID]repository.Product, error) {
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := svc.queries.FindProductsByIDs(c, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]repository.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}
	return byID, nil
}

func (svc CartService) FindCartByUserID(
	c context.Context,
	userID string,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCartByUserID")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartByUserID").
		Str(log.KeyUserID, userID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Trace().Msg("finding cart")
	span.AddEvent("finding cart")
	cart, err := svc.findOrCreateCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", userID, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("found cart")
	logger = logger.With().Str(log.KeyCartID, cart.ID.Hex()).Logger()
	logger.Trace().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "resolving cart products").Logger()
	logger.Trace().Msg("resolving cart products")
	span.AddEvent("resolving cart products")
	products, err := svc.resolveProducts(c, cart)
	if err != nil {
		err = fmt.Errorf("failed resolving cart products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("resolved cart products")
	logger.Info().Msg("resolved cart products")

	return cart.Response(products), nil
}

// AddCartItem merges the product into the user's cart, creating the cart on
// first access. Quantities for an already carted product accumulate, and the
// combined quantity is checked against the product's stock before the cart is
// touched.
func (svc CartService) AddCartItem(
	c context.Context,
	userID string,
	param request.AddCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddCartItem").
		Str(log.KeyUserID, userID).
		Str(log.KeyProductID, param.ProductID).
		Logger()

	quantity := 1
	if param.Quantity != nil {
		quantity = *param.Quantity
	}

	productID, err := primitive.ObjectIDFromHex(param.ProductID)
	if err != nil {
		err = fmt.Errorf("%w: %s", inErrors.ErrProductNotFound, param.ProductID)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Trace().Msg("finding product")
	span.AddEvent("finding product")
	product, err := svc.queries.FindProductByID(c, productID)
	if err != nil {
		err = fmt.Errorf("failed finding product with id=%s with error=%w", productID.Hex(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("found product")
	logger.Trace().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Trace().Msg("finding cart")
	span.AddEvent("finding cart")
	cart, err := svc.findOrCreateCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", userID, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("found cart")
	logger = logger.With().Str(log.KeyCartID, cart.ID.Hex()).Logger()
	logger.Trace().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "merging cart item").Logger()
	logger.Trace().Int(log.KeyQuantity, quantity).Msg("merging cart item")
	items := cart.Items
	merged := false
	requested := quantity
	for i, item := range items {
		if item.ProductID != productID {
			continue
		}
		requested = item.Quantity + quantity
		items[i].Quantity = requested
		merged = true
		break
	}
	if !merged {
		items = append(items, repository.CartItem{ProductID: productID, Quantity: quantity})
	}
	if requested > product.Stock {
		err = fmt.Errorf(
			"%w: requested=%d stock=%d",
			inErrors.ErrInsufficientStock,
			requested,
			product.Stock,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Msg("merged cart item")

	logger = logger.With().Str(log.KeyProcess, "updating cart items").Logger()
	logger.Trace().Msg("updating cart items")
	span.AddEvent("updating cart items")
	cart, err = svc.queries.UpdateCartItems(c, cart.ID, items)
	if err != nil {
		err = fmt.Errorf("failed updating cart items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("updated cart items")
	logger = logger.With().Any(log.KeyCart, cart).Logger()
	logger.Info().Msg("updated cart items")

	products, err := svc.resolveProducts(c, cart)
	if err != nil {
		err = fmt.Errorf("failed resolving cart products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	return cart.Response(products), nil
}

// RemoveCartItem deletes the product's line item from the cart. Removing a
// product that is not in the cart leaves the cart unchanged.
func (svc CartService) RemoveCartItem(
	c context.Context,
	userID string,
	param request.RemoveCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCartItem").
		Str(log.KeyUserID, userID).
		Str(log.KeyProductID, param.ProductID).
		Logger()

	productID, err := primitive.ObjectIDFromHex(param.ProductID)
	if err != nil {
		err = fmt.Errorf("%w: %s", inErrors.ErrInvalidProductID, param.ProductID)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Trace().Msg("finding cart")
	span.AddEvent("finding cart")
	cart, err := svc.queries.FindCartByUserID(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", userID, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("found cart")
	logger = logger.With().Str(log.KeyCartID, cart.ID.Hex()).Logger()
	logger.Trace().Msg("found cart")

	items := make([]repository.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID == productID {
			continue
		}
		items = append(items, item)
	}

	logger = logger.With().Str(log.KeyProcess, "updating cart items").Logger()
	logger.Trace().Msg("updating cart items")
	span.AddEvent("updating cart items")
	cart, err = svc.queries.UpdateCartItems(c, cart.ID, items)
	if err != nil {
		err = fmt.Errorf("failed updating cart items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("updated cart items")
	logger.Info().Msg("updated cart items")

	products, err := svc.resolveProducts(c, cart)
	if err != nil {
		err = fmt.Errorf("failed resolving cart products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	return cart.Response(products), nil
}

// UpdateCartItem sets the quantity of an existing line item. Unlike
// AddCartItem it never creates a line item: the product must already be in
// the cart.
func (svc CartService) UpdateCartItem(
	c context.Context,
	userID string,
	param request.UpdateCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateCartItem").
		Str(log.KeyUserID, userID).
		Str(log.KeyProductID, param.ProductID).
		Logger()

	productID, err := primitive.ObjectIDFromHex(param.ProductID)
	if err != nil {
		err = fmt.Errorf("%w: %s", inErrors.ErrProductNotFound, param.ProductID)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Trace().Msg("finding product")
	span.AddEvent("finding product")
	product, err := svc.queries.FindProductByID(c, productID)
	if err != nil {
		err = fmt.Errorf("failed finding product with id=%s with error=%w", productID.Hex(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("found product")
	logger.Trace().Msg("found product")

	quantity := *param.Quantity
	if quantity > product.Stock {
		err = fmt.Errorf(
			"%w: requested=%d stock=%d",
			inErrors.ErrInsufficientStock,
			quantity,
			product.Stock,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Trace().Msg("finding cart")
	span.AddEvent("finding cart")
	cart, err := svc.queries.FindCartByUserID(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", userID, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("found cart")
	logger = logger.With().Str(log.KeyCartID, cart.ID.Hex()).Logger()
	logger.Trace().Msg("found cart")

	items := cart.Items
	found := false
	for i, item := range items {
		if item.ProductID != productID {
			continue
		}
		items[i].Quantity = quantity
		found = true
		break
	}
	if !found {
		err = fmt.Errorf("%w: productId=%s", inErrors.ErrCartItemNotFound, productID.Hex())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating cart items").Logger()
	logger.Trace().Int(log.KeyQuantity, quantity).Msg("updating cart items")
	span.AddEvent("updating cart items")
	cart, err = svc.queries.UpdateCartItems(c, cart.ID, items)
	if err != nil {
		err = fmt.Errorf("failed updating cart items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("updated cart items")
	logger.Info().Msg("updated cart items")

	products, err := svc.resolveProducts(c, cart)
	if err != nil {
		err = fmt.Errorf("failed resolving cart products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	return cart.Response(products), nil
}

// ClearCart empties the cart's line items without deleting the cart document.
func (svc CartService) ClearCart(
	c context.Context,
	userID string,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Trace().Msg("finding cart")
	span.AddEvent("finding cart")
	cart, err := svc.queries.FindCartByUserID(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", userID, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("found cart")
	logger = logger.With().Str(log.KeyCartID, cart.ID.Hex()).Logger()
	logger.Trace().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "clearing cart items").Logger()
	logger.Trace().Msg("clearing cart items")
	span.AddEvent("clearing cart items")
	cart, err = svc.queries.UpdateCartItems(c, cart.ID, []repository.CartItem{})
	if err != nil {
		err = fmt.Errorf("failed clearing cart items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("cleared cart items")
	logger.Info().Msg("cleared cart items")

	return cart.Response(map[primitive.ObjectID]repository.Product{}), nil
}
