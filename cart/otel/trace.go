package otel

import (
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/danisworo/storefront/internal/constants"
)

var Tracer = otel.Tracer(
	constants.AppName+"-cart",
	trace.WithInstrumentationAttributes(semconv.ServiceName(constants.AppName)),
)
