package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	mongoOptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danisworo/storefront/internal/repository"
)

type (
	setupFunc    func(context.Context) (*mongo.Client, *mongodb.MongoDBContainer, *repository.Queries, *CartService)
	teardownFunc func(context.Context, *mongo.Client, *mongodb.MongoDBContainer)
)

func setup(t *testing.T) setupFunc {
	return func(c context.Context) (*mongo.Client, *mongodb.MongoDBContainer, *repository.Queries, *CartService) {
		mongoContainer, err := mongodb.Run(c, "mongo:7.0.16")
		if err != nil {
			t.Fatalf("failed running mongodb container with error: %s", err)
		}

		connStr, err := mongoContainer.ConnectionString(c)
		if err != nil {
			t.Fatalf("failed getting mongodb connection string with error: %s", err)
		}

		client, err := mongo.Connect(c, mongoOptions.Client().ApplyURI(connStr))
		if err != nil {
			t.Fatalf("failed connecting to mongodb with error: %s", err)
		}

		db := client.Database("storefront_test")
		if err = repository.EnsureIndexes(c, db); err != nil {
			t.Fatalf("failed ensuring indexes with error: %s", err)
		}

		queries := repository.New(db)
		cartService := NewCartService(queries)
		return client, mongoContainer, queries, &cartService
	}
}

func teardown(t *testing.T) teardownFunc {
	return func(c context.Context, client *mongo.Client, mongoContainer *mongodb.MongoDBContainer) {
		if err := client.Disconnect(c); err != nil {
			t.Fatalf("failed disconnecting mongodb client with error: %s", err)
		}
		if err := testcontainers.TerminateContainer(mongoContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}
}

func seedProduct(
	t *testing.T,
	c context.Context,
	queries *repository.Queries,
	name string,
	stock int,
) repository.Product {
	now := time.Now()
	product, err := queries.InsertProduct(c, repository.Product{
		Name:        name,
		Description: name + " description",
		Price:       repository.NumericFromDecimal(decimal.NewFromInt(25)),
		Category:    "Electronics",
		Stock:       stock,
		Image:       "https://example.com/image.png",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("failed seeding product with error: %s", err)
	}
	return product
}
