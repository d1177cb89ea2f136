package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	inErrors "github.com/danisworo/storefront/internal/errors"
	"github.com/danisworo/storefront/internal/otel"
)

// WriteJsonResponse encodes body as the uniform response envelope
// {success, message, data?, error?}. The "statusCode" entry selects the
// HTTP status and is stripped from the encoded body.
func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str("tag", "WriteJsonResponse").Logger()

	w.Header().Add(KEY_HEADER_CONTENT_TYPE, VALUE_HEADER_APPLICATION_JSON)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"]; ok {
		w.WriteHeader(v.(int))
		delete(body, "statusCode")
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}

// StatusCode maps a failed operation to the response status following the
// taxonomy: validation 400, not-found 404, forbidden 403, everything else 500.
func StatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs),
		errors.Is(err, inErrors.ErrInvalidProductID),
		errors.Is(err, inErrors.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, inErrors.ErrProductNotFound),
		errors.Is(err, inErrors.ErrCartNotFound),
		errors.Is(err, inErrors.ErrCartItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
