package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/danisworo/storefront/internal/constants"
	inErrors "github.com/danisworo/storefront/internal/errors"
	"github.com/danisworo/storefront/internal/infra"
	"github.com/danisworo/storefront/internal/log"
	"github.com/danisworo/storefront/internal/repository"
	"github.com/danisworo/storefront/product/otel"
	"github.com/danisworo/storefront/product/pkg/request"
	"github.com/danisworo/storefront/product/pkg/response"
)

type ProductService struct {
	queries *repository.Queries
	storage *infra.StorageClient
}

func NewProductService(
	queries *repository.Queries,
	storage *infra.StorageClient,
) ProductService {
	return ProductService{queries: queries, storage: storage}
}

func (svc ProductService) InsertProduct(
	c context.Context,
	param request.Product,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Logger()

	stock := 0
	if param.Stock != nil && *param.Stock > 0 {
		stock = *param.Stock
	}
	image := param.Image
	if image == "" {
		image = constants.DefaultProductImage
	}
	now := time.Now()
	product := repository.Product{
		Name:        param.Name,
		Description: param.Description,
		Price:       repository.NumericFromDecimal(*param.Price),
		Category:    param.Category,
		Stock:       stock,
		Image:       image,
		Featured:    param.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	logger = logger.With().Str(log.KeyProcess, "inserting product to database").Logger()
	logger.Trace().Msg("inserting product to database")
	span.AddEvent("inserting product to database")
	product, err := svc.queries.InsertProduct(c, product)
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("inserted product to database")
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msg("inserted product to database")

	return product.Response(), nil
}

func (svc ProductService) FindProducts(
	c context.Context,
	param request.FindProducts,
) (response.ProductList, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Logger()

	page := param.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	limit := param.Limit
	if limit < 1 {
		limit = constants.DefaultLimit
	}

	category := param.Category
	if category == constants.CategoryAll {
		category = ""
	}
	filters := repository.FindProductsParams{
		Category: category,
		Search:   param.Search,
		Skip:     (page - 1) * limit,
		Limit:    limit,
	}
	if param.MinPrice != nil {
		minPrice := repository.NumericFromDecimal(*param.MinPrice)
		filters.MinPrice = &minPrice
	}
	if param.MaxPrice != nil {
		maxPrice := repository.NumericFromDecimal(*param.MaxPrice)
		filters.MaxPrice = &maxPrice
	}

	logger = logger.With().Str(log.KeyProcess, "finding products in database").Logger()
	logger.Trace().Msg("finding products in database")
	span.AddEvent("finding products in database")
	products, total, err := svc.queries.FindProducts(c, filters)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ProductList{}, err
	}
	span.AddEvent("found products in database")
	logger = logger.With().Any(log.KeyProducts, products).Logger()
	logger.Info().Msgf("found %d of %d products", len(products), total)

	mapped := make([]response.Product, 0, len(products))
	for _, product := range products {
		mapped = append(mapped, product.Response())
	}
	totalPages := (total + limit - 1) / limit
	return response.ProductList{
		Products: mapped,
		Pagination: response.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

func (svc ProductService) FindProductByID(
	c context.Context,
	id primitive.ObjectID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductByID")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductByID").
		Str(log.KeyProductID, id.Hex()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	span.AddEvent("finding product in database")
	product, err := svc.queries.FindProductByID(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding product in database with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("found product in database")
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msg("found product in database")

	return product.Response(), nil
}

func (svc ProductService) UpdateProduct(
	c context.Context,
	id primitive.ObjectID,
	param request.UpdateProduct,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Str(log.KeyProductID, id.Hex()).
		Logger()

	// Presence checks, not truthiness: an explicit zero price or stock must
	// overwrite the stored value.
	set := bson.M{"updatedAt": time.Now()}
	if param.Name != nil {
		set["name"] = *param.Name
	}
	if param.Description != nil {
		set["description"] = *param.Description
	}
	if param.Price != nil {
		set["price"] = repository.NumericFromDecimal(*param.Price)
	}
	if param.Category != nil {
		set["category"] = *param.Category
	}
	if param.Stock != nil {
		set["stock"] = *param.Stock
	}
	if param.Image != nil {
		set["image"] = *param.Image
	}
	if param.Featured != nil {
		set["featured"] = *param.Featured
	}

	logger = logger.With().Str(log.KeyProcess, "updating product in database").Logger()
	logger.Trace().Msg("updating product in database")
	span.AddEvent("updating product in database")
	product, err := svc.queries.UpdateProductByID(c, id, set)
	if err != nil {
		err = fmt.Errorf("failed updating product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("updated product in database")
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msg("updated product in database")

	return product.Response(), nil
}

func (svc ProductService) RemoveProduct(c context.Context, id primitive.ObjectID) error {
	c, span := otel.Tracer.Start(c, "ProductService RemoveProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService RemoveProduct").
		Str(log.KeyProductID, id.Hex()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "removing product in database").Logger()
	logger.Trace().Msg("removing product in database")
	span.AddEvent("removing product in database")
	err := svc.queries.DeleteProductByID(c, id)
	if err != nil {
		err = fmt.Errorf("failed removing product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	span.AddEvent("removed product in database")
	logger.Info().Msg("removed product in database")

	return nil
}

func (svc ProductService) UploadImage(
	c context.Context,
	filename string,
	file io.Reader,
) (response.UploadedImage, error) {
	c, span := otel.Tracer.Start(c, "ProductService UploadImage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UploadImage").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "uploading image to storage").Logger()
	logger.Trace().Msg("uploading image to storage")
	span.AddEvent("uploading image to storage")
	c = logger.WithContext(c)
	imageUrl, err := svc.storage.UploadImage(c, filename, file)
	if err != nil {
		err = fmt.Errorf("failed uploading image to storage with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.UploadedImage{}, err
	}
	span.AddEvent("uploaded image to storage")
	logger.Info().Msg("uploaded image to storage")

	return response.UploadedImage{ImageUrl: imageUrl}, nil
}
