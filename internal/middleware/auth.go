package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/danisworo/storefront/internal/common"
	inErrors "github.com/danisworo/storefront/internal/errors"
	inHttp "github.com/danisworo/storefront/internal/http"
	"github.com/danisworo/storefront/internal/log"
)

// Auth verifies the bearer token and attaches the caller context
// (userId, role) to the request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware auth").Logger()
		c := logger.WithContext(r.Context())

		authorization := r.Header.Get("Authorization")
		if authorization == "" || !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
			logger.Error().
				Err(inErrors.ErrEmptyAuth).
				Msg(inErrors.ErrEmptyAuth.Error())
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"success":    false,
				"statusCode": http.StatusUnauthorized,
				"message":    inErrors.ErrEmptyAuth.Error(),
				"error":      inErrors.ErrEmptyAuth.Error(),
			})
			return
		}

		token := authorization[len("bearer "):]
		caller, err := common.VerifyToken(c, token)
		if err != nil {
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"success":    false,
				"statusCode": http.StatusUnauthorized,
				"message":    inErrors.ErrTokenInvalid.Error(),
				"error":      inErrors.ErrTokenInvalid.Error(),
			})
			return
		}

		logger = logger.With().Str(log.KeyUserID, caller.UserID).Logger()
		c = common.AttachCallerToContext(c, caller)
		c = logger.WithContext(c)

		next.ServeHTTP(w, r.WithContext(c))
	})
}

// AdminOnly is the access gate for product mutations: the caller must be
// authenticated and hold the admin role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()
		logger := zerolog.Ctx(c).With().Str(log.KeyTag, "middleware adminOnly").Logger()

		caller, err := common.CallerFromContext(c)
		if err != nil || !caller.IsAdmin() {
			logger.Error().
				Err(inErrors.ErrForbidden).
				Str(log.KeyCaller, caller.UserID).
				Msg(inErrors.ErrForbidden.Error())
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"success":    false,
				"statusCode": http.StatusForbidden,
				"message":    inErrors.ErrForbidden.Error(),
				"error":      inErrors.ErrForbidden.Error(),
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
