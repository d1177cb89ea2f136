package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Queries struct {
	products *mongo.Collection
	carts    *mongo.Collection
}

func New(db *mongo.Database) *Queries {
	return &Queries{
		products: db.Collection(CollectionProducts),
		carts:    db.Collection(CollectionCarts),
	}
}

// EnsureIndexes creates the text index backing product search, the
// newest-first listing index and the one-cart-per-user unique index.
func EnsureIndexes(c context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionProducts).Indexes().CreateMany(c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
			},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed creating product indexes with error=%w", err)
	}

	_, err = db.Collection(CollectionCarts).Indexes().CreateOne(c, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed creating cart indexes with error=%w", err)
	}

	return nil
}
