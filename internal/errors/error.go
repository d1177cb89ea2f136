package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEmptyAuth         = errors.New("missing authorization")
	ErrTokenInvalid      = errors.New("invalid token")
	ErrForbidden         = errors.New("admin role is required")
	ErrProductNotFound   = errors.New("product not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartItemNotFound  = errors.New("product not found in cart")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidProductID  = errors.New("invalid productId")
)

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
