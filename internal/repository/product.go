package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	inErrors "github.com/danisworo/storefront/internal/errors"
)

type FindProductsParams struct {
	Category string
	Search   string
	MinPrice *primitive.Decimal128
	MaxPrice *primitive.Decimal128
	Skip     int64
	Limit    int64
}

func (p FindProductsParams) filter() bson.M {
	filter := bson.M{}
	if p.Category != "" {
		filter["category"] = p.Category
	}
	priceRange := bson.M{}
	if p.MinPrice != nil {
		priceRange["$gte"] = *p.MinPrice
	}
	if p.MaxPrice != nil {
		priceRange["$lte"] = *p.MaxPrice
	}
	if len(priceRange) > 0 {
		filter["price"] = priceRange
	}
	if p.Search != "" {
		filter["$text"] = bson.M{"$search": p.Search}
	}
	return filter
}

func (q *Queries) InsertProduct(c context.Context, product Product) (Product, error) {
	result, err := q.products.InsertOne(c, product)
	if err != nil {
		return Product{}, fmt.Errorf("failed inserting product with error=%w", err)
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return product, nil
}

// FindProducts returns one page of matching products, newest first, and the
// total count of matches.
func (q *Queries) FindProducts(
	c context.Context,
	param FindProductsParams,
) ([]Product, int64, error) {
	filter := param.filter()

	total, err := q.products.CountDocuments(c, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed counting products with error=%w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(param.Skip).
		SetLimit(param.Limit)
	cursor, err := q.products.Find(c, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed finding products with error=%w", err)
	}
	defer cursor.Close(c)

	products := []Product{}
	if err = cursor.All(c, &products); err != nil {
		return nil, 0, fmt.Errorf("failed decoding products with error=%w", err)
	}
	return products, total, nil
}

func (q *Queries) FindProductByID(c context.Context, id primitive.ObjectID) (Product, error) {
	product := Product{}
	err := q.products.FindOne(c, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, inErrors.ErrProductNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("failed finding product with error=%w", err)
	}
	return product, nil
}

func (q *Queries) FindProductsByIDs(
	c context.Context,
	ids []primitive.ObjectID,
) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	cursor, err := q.products.Find(c, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed finding products by ids with error=%w", err)
	}
	defer cursor.Close(c)

	products := []Product{}
	if err = cursor.All(c, &products); err != nil {
		return nil, fmt.Errorf("failed decoding products with error=%w", err)
	}
	return products, nil
}

// UpdateProductByID merges the given fields into the stored document and
// returns the updated product.
func (q *Queries) UpdateProductByID(
	c context.Context,
	id primitive.ObjectID,
	set bson.M,
) (Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	product := Product{}
	err := q.products.
		FindOneAndUpdate(c, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, inErrors.ErrProductNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("failed updating product with error=%w", err)
	}
	return product, nil
}

func (q *Queries) DeleteProductByID(c context.Context, id primitive.ObjectID) error {
	result, err := q.products.DeleteOne(c, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed deleting product with error=%w", err)
	}
	if result.DeletedCount == 0 {
		return inErrors.ErrProductNotFound
	}
	return nil
}
