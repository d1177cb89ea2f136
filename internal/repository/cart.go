package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	inErrors "github.com/danisworo/storefront/internal/errors"
)

func (q *Queries) FindCartByUserID(c context.Context, userID string) (Cart, error) {
	cart := Cart{}
	err := q.carts.FindOne(c, bson.M{"userId": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Cart{}, inErrors.ErrCartNotFound
	}
	if err != nil {
		return Cart{}, fmt.Errorf("failed finding cart with error=%w", err)
	}
	return cart, nil
}

func (q *Queries) InsertCart(c context.Context, cart Cart) (Cart, error) {
	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	result, err := q.carts.InsertOne(c, cart)
	if err != nil {
		return Cart{}, fmt.Errorf("failed inserting cart with error=%w", err)
	}
	cart.ID = result.InsertedID.(primitive.ObjectID)
	return cart, nil
}

// UpdateCartItems overwrites the cart's line item sequence in place and
// returns the updated cart.
func (q *Queries) UpdateCartItems(
	c context.Context,
	id primitive.ObjectID,
	items []CartItem,
) (Cart, error) {
	if items == nil {
		items = []CartItem{}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	cart := Cart{}
	err := q.carts.
		FindOneAndUpdate(
			c,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"items": items, "updatedAt": time.Now()}},
			opts,
		).
		Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Cart{}, inErrors.ErrCartNotFound
	}
	if err != nil {
		return Cart{}, fmt.Errorf("failed updating cart items with error=%w", err)
	}
	return cart, nil
}
