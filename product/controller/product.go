package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/danisworo/storefront/internal/common/validate"
	inErrors "github.com/danisworo/storefront/internal/errors"
	inHttp "github.com/danisworo/storefront/internal/http"
	"github.com/danisworo/storefront/internal/log"
	"github.com/danisworo/storefront/internal/middleware"
	"github.com/danisworo/storefront/product/otel"
	"github.com/danisworo/storefront/product/service"
	"github.com/danisworo/storefront/product/pkg/request"
)

type ProductController struct {
	service *service.ProductService
}

func AttachProductController(router *mux.Router, service *service.ProductService) {
	controller := ProductController{service}

	readRouter := router.PathPrefix("/products").Methods(http.MethodGet).Subrouter()
	readRouter.HandleFunc("", controller.FindProducts).Methods(http.MethodGet)
	readRouter.HandleFunc("/{productId}", controller.FindProductByID).Methods(http.MethodGet)

	adminRouter := router.PathPrefix("/products").
		Methods(http.MethodPost, http.MethodPut, http.MethodDelete).
		Subrouter()
	adminRouter.Use(middleware.Auth, middleware.AdminOnly)
	adminRouter.HandleFunc("", controller.InsertProduct).Methods(http.MethodPost)
	adminRouter.HandleFunc("/upload", controller.UploadImage).Methods(http.MethodPost)
	adminRouter.HandleFunc("/{productId}", controller.UpdateProduct).Methods(http.MethodPut)
	adminRouter.HandleFunc("/{productId}", controller.RemoveProduct).Methods(http.MethodDelete)
}

func (p ProductController) InsertProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController InsertProduct").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	span.AddEvent("decoding request body")
	reqBody := request.Product{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	span.AddEvent("decoded request body")
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	span.AddEvent("validating request body")
	if err := validate.New().StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	span.AddEvent("validated request body")
	logger.Trace().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	logger.Info().Msg("inserting product")
	c = logger.WithContext(c)
	product, err := p.service.InsertProduct(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": inHttp.StatusCode(err),
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	logger.Info().Msg("inserted product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"success":    true,
		"statusCode": http.StatusCreated,
		"message":    "successfully inserted product",
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (p ProductController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProducts").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing query params").Logger()
	logger.Trace().Msg("parsing query params")
	query := r.URL.Query()
	reqBody := request.FindProducts{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}
	// page and limit are coerced to numbers; anything unparsable falls back
	// to the defaults.
	reqBody.Page, _ = strconv.ParseInt(query.Get("page"), 10, 64)
	reqBody.Limit, _ = strconv.ParseInt(query.Get("limit"), 10, 64)
	if raw := query.Get("minPrice"); raw != "" {
		minPrice, err := decimal.NewFromString(raw)
		if err != nil {
			err = fmt.Errorf("failed parsing minPrice with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"success":    false,
				"statusCode": http.StatusBadRequest,
				"message":    err.Error(),
				"error":      err.Error(),
			})
			return
		}
		reqBody.MinPrice = &minPrice
	}
	if raw := query.Get("maxPrice"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil {
			err = fmt.Errorf("failed parsing maxPrice with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"success":    false,
				"statusCode": http.StatusBadRequest,
				"message":    err.Error(),
				"error":      err.Error(),
			})
			return
		}
		reqBody.MaxPrice = &maxPrice
	}
	logger.Trace().Msg("parsed query params")

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	logger.Trace().Msg("finding products")
	span.AddEvent("finding products")
	c = logger.WithContext(c)
	products, err := p.service.FindProducts(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": inHttp.StatusCode(err),
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	span.AddEvent("found products")
	logger.Info().Msg("found products")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"success":    true,
		"statusCode": http.StatusOK,
		"message":    "products found",
		"data": map[string]interface{}{
			"products":   products.Products,
			"pagination": products.Pagination,
		},
	})
}

func (p ProductController) FindProductByID(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductByID")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductByID").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting pathValue productId").Logger()
	logger.Trace().Msg("getting pathValue productId")
	pathValues := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(pathValues["productId"])
	if err != nil {
		err = fmt.Errorf("%w: %s", inErrors.ErrProductNotFound, pathValues["productId"])
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": inHttp.StatusCode(err),
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyProductID, id.Hex()).Logger()
	logger.Trace().Msg("got pathValue productId")

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Trace().Msg("finding product")
	span.AddEvent("finding product")
	c = logger.WithContext(c)
	product, err := p.service.FindProductByID(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding product with id=%s with error=%w", id.Hex(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": inHttp.StatusCode(err),
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	span.AddEvent("found product")
	logger.Info().Msg("found product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"success":    true,
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product id=%s found", id.Hex()),
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (p ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UpdateProduct").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting pathValue productId").Logger()
	logger.Trace().Msg("getting pathValue productId")
	pathValues := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(pathValues["productId"])
	if err != nil {
		err = fmt.Errorf("%w: %s", inErrors.ErrProductNotFound, pathValues["productId"])
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": inHttp.StatusCode(err),
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyProductID, id.Hex()).Logger()
	logger.Trace().Msg("got pathValue productId")

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	span.AddEvent("decoding request body")
	reqBody := request.UpdateProduct{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	span.AddEvent("decoded request body")
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	span.AddEvent("validating request body")
	if err := validate.New().StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	span.AddEvent("validated request body")
	logger.Trace().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	logger.Trace().Msg("updating product")
	span.AddEvent("updating product")
	c = logger.WithContext(c)
	product, err := p.service.UpdateProduct(c, id, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": inHttp.StatusCode(err),
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	span.AddEvent("updated product")
	logger.Info().Msg("updated product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"success":    true,
		"statusCode": http.StatusOK,
		"message":    "successfully updated product",
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (p ProductController) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController RemoveProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController RemoveProduct").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting pathValue productId").Logger()
	logger.Trace().Msg("getting pathValue productId")
	pathValues := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(pathValues["productId"])
	if err != nil {
		err = fmt.Errorf("%w: %s", inErrors.ErrProductNotFound, pathValues["productId"])
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": inHttp.StatusCode(err),
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyProductID, id.Hex()).Logger()
	logger.Trace().Msg("got pathValue productId")

	logger = logger.With().Str(log.KeyProcess, "removing product").Logger()
	logger.Trace().Msg("removing product")
	span.AddEvent("removing product")
	c = logger.WithContext(c)
	if err := p.service.RemoveProduct(c, id); err != nil {
		err = fmt.Errorf("failed removing product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": inHttp.StatusCode(err),
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	span.AddEvent("removed product")
	logger.Info().Msg("removed product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"success":    true,
		"statusCode": http.StatusOK,
		"message":    "successfully removed product",
		"data":       map[string]interface{}{},
	})
}

func (p ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UploadImage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UploadImage").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "reading image file").Logger()
	logger.Trace().Msg("reading image file")
	file, header, err := r.FormFile("image")
	if err != nil {
		err = fmt.Errorf("failed reading image file with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	defer file.Close()
	logger.Trace().Msg("read image file")

	logger = logger.With().Str(log.KeyProcess, "uploading image").Logger()
	logger.Info().Msg("uploading image")
	c = logger.WithContext(c)
	uploaded, err := p.service.UploadImage(c, header.Filename, file)
	if err != nil {
		err = fmt.Errorf("failed uploading image with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": inHttp.StatusCode(err),
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	logger.Info().Msg("uploaded image")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"success":    true,
		"statusCode": http.StatusOK,
		"message":    "successfully uploaded image",
		"data": map[string]interface{}{
			"imageUrl": uploaded.ImageUrl,
		},
	})
}
