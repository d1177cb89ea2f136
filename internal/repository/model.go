package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionProducts = "products"
	CollectionCarts    = "carts"
)

type Product struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Category    string               `bson:"category"`
	Stock       int                  `bson:"stock"`
	Image       string               `bson:"image"`
	Featured    bool                 `bson:"featured"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId"`
	Quantity  int                `bson:"quantity"`
}

// Cart holds at most one document per user, enforced by a unique index
// on userId.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	Items     []CartItem         `bson:"items"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
