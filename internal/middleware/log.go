package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	inHttp "github.com/danisworo/storefront/internal/http"
	"github.com/danisworo/storefront/internal/log"
	"github.com/danisworo/storefront/internal/otel"
)

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(inHttp.KEY_HEADER_REQUEST_ID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c, span := otel.Tracer.Start(
			r.Context(),
			"main Logging",
			trace.WithAttributes(
				attribute.String(log.KeyRequestID, requestID),
				attribute.String(log.KeyRequestHost, r.Host),
				attribute.String(log.KeyRequestIp, r.RemoteAddr),
				attribute.String(log.KeyRequestMethod, r.Method),
				attribute.String(log.KeyRequestURI, r.RequestURI),
				attribute.String(log.KeyRequestURL, r.URL.String()),
			),
		)
		defer span.End()

		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyRequestID, requestID).
			Str(log.KeyTag, "Logging").
			Logger()

		// Only JSON bodies are captured for the request log. Other payloads
		// (multipart uploads in particular) pass through untouched so the
		// handler sees the complete body.
		requestBody := map[string]interface{}{}
		contentType := r.Header.Get(inHttp.KEY_HEADER_CONTENT_TYPE)
		if strings.Contains(contentType, inHttp.VALUE_HEADER_APPLICATION_JSON) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				logger.Error().Err(err).Msg("failed reading request body")
			} else {
				r.Body = io.NopCloser(bytes.NewReader(body))
				if len(body) > 0 {
					if err := json.Unmarshal(body, &requestBody); err != nil {
						logger.Trace().Err(err).Msg("request body is not valid json")
					}
				}
			}
		}

		logger = logger.
			With().
			Dict("request", zerolog.Dict().
				Any(log.KeyRequestHeader, r.Header).
				Str(log.KeyRequestHost, r.Host).
				Str(log.KeyRequestIp, r.RemoteAddr).
				Str(log.KeyRequestMethod, r.Method).
				Str(log.KeyRequestURI, r.RequestURI).
				Str(log.KeyRequestURL, r.URL.String()).
				Any(log.KeyRequestBody, requestBody)).
			Logger()

		logger.Trace().Msg("attaching request value to context")
		c = log.AttachRequestIDToContext(c, requestID)
		c = logger.WithContext(c)
		r = r.WithContext(c)
		logger.Trace().Msg("attached request value to context")

		next.ServeHTTP(w, r)
	})
}
