package service

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	mongoOptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danisworo/storefront/internal/repository"
)

type (
	setupFunc    func(context.Context) (*mongo.Client, *mongodb.MongoDBContainer, *repository.Queries, *ProductService)
	teardownFunc func(context.Context, *mongo.Client, *mongodb.MongoDBContainer)
)

func setup(t *testing.T) setupFunc {
	return func(c context.Context) (*mongo.Client, *mongodb.MongoDBContainer, *repository.Queries, *ProductService) {
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
		productService := NewProductService(queries, nil)
		return client, mongoContainer, queries, &productService
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
