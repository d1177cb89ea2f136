package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/danisworo/storefront/cart/otel"
	"github.com/danisworo/storefront/cart/service"
	"github.com/danisworo/storefront/cart/pkg/request"
	"github.com/danisworo/storefront/internal/common"
	"github.com/danisworo/storefront/internal/common/validate"
	inErrors "github.com/danisworo/storefront/internal/errors"
	inHttp "github.com/danisworo/storefront/internal/http"
	"github.com/danisworo/storefront/internal/log"
	"github.com/danisworo/storefront/internal/middleware"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(router *mux.Router, service *service.CartService) {
	controller := CartController{service}

	cartRouter := router.PathPrefix("/cart").Subrouter()
	cartRouter.Use(middleware.Auth)
	cartRouter.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	cartRouter.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	cartRouter.HandleFunc("/add", controller.AddCartItem).Methods(http.MethodPost)
	cartRouter.HandleFunc("/remove", controller.RemoveCartItem).Methods(http.MethodPost)
	cartRouter.HandleFunc("/update", controller.UpdateCartItem).Methods(http.MethodPost)
}

func (ct CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
		Logger()

	caller, err := common.CallerFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting caller from context with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, caller.UserID).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Trace().Msg("finding cart")
	span.AddEvent("finding cart")
	c = logger.WithContext(c)
	cart, err := ct.service.FindCartByUserID(c, caller.UserID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
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
	span.AddEvent("found cart")
	logger.Info().Msg("found cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"success":    true,
		"statusCode": http.StatusOK,
		"message":    "cart found",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (ct CartController) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddCartItem").
		Logger()

	caller, err := common.CallerFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting caller from context with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, caller.UserID).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	span.AddEvent("decoding request body")
	reqBody := request.AddCartItem{}
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

	logger = logger.With().Str(log.KeyProcess, "adding cart item").Logger()
	logger.Info().Msg("adding cart item")
	c = logger.WithContext(c)
	cart, err := ct.service.AddCartItem(c, caller.UserID, reqBody)
	if err != nil {
		err = fmt.Errorf("failed adding cart item with error=%w", err)
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
	logger.Info().Msg("added cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"success":    true,
		"statusCode": http.StatusOK,
		"message":    "successfully added cart item",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (ct CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveCartItem").
		Logger()

	caller, err := common.CallerFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting caller from context with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, caller.UserID).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	span.AddEvent("decoding request body")
	reqBody := request.RemoveCartItem{}
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

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msg("removing cart item")
	c = logger.WithContext(c)
	cart, err := ct.service.RemoveCartItem(c, caller.UserID, reqBody)
	if err != nil {
		err = fmt.Errorf("failed removing cart item with error=%w", err)
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
	logger.Info().Msg("removed cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"success":    true,
		"statusCode": http.StatusOK,
		"message":    "successfully removed cart item",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (ct CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateCartItem").
		Logger()

	caller, err := common.CallerFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting caller from context with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, caller.UserID).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	span.AddEvent("decoding request body")
	reqBody := request.UpdateCartItem{}
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

	logger = logger.With().Str(log.KeyProcess, "updating cart item").Logger()
	logger.Info().Msg("updating cart item")
	c = logger.WithContext(c)
	cart, err := ct.service.UpdateCartItem(c, caller.UserID, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating cart item with error=%w", err)
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
	logger.Info().Msg("updated cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"success":    true,
		"statusCode": http.StatusOK,
		"message":    "successfully updated cart item",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (ct CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ClearCart").
		Logger()

	caller, err := common.CallerFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting caller from context with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"success":    false,
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
			"error":      err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, caller.UserID).Logger()

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	cart, err := ct.service.ClearCart(c, caller.UserID)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
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
	logger.Info().Msg("cleared cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"success":    true,
		"statusCode": http.StatusOK,
		"message":    "successfully cleared cart",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}
