package common

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/danisworo/storefront/internal/config"
	"github.com/danisworo/storefront/internal/constants"
	inErrors "github.com/danisworo/storefront/internal/errors"
	"github.com/danisworo/storefront/internal/log"
)

// Caller is the authenticated identity attached to a request. It is built
// once by the auth middleware and passed down through the request context.
type Caller struct {
	UserID string
	Role   string
}

func (c Caller) IsAdmin() bool {
	return c.Role == constants.RoleAdmin
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type callerKey struct{}

func AttachCallerToContext(c context.Context, caller Caller) context.Context {
	return context.WithValue(c, callerKey{}, caller)
}

func CallerFromContext(c context.Context) (Caller, error) {
	caller, ok := c.Value(callerKey{}).(Caller)
	if !ok {
		return Caller{}, inErrors.ErrEmptyAuth
	}
	return caller, nil
}

func VerifyToken(c context.Context, token string) (Caller, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VerifyToken").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing config").Logger()
	logger.Trace().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppName)
	logger.Trace().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	claims := Claims{}
	jwtToken, err := jwt.ParseWithClaims(token,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.Application.SecretKey), nil
		},
		jwt.WithAudience(constants.AudienceStorefront),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.AppAuthService),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing with claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return Caller{}, err
	}
	logger = logger.With().Any(log.KeyToken, jwtToken).Logger()
	logger.Trace().Msg("parsed claims")

	logger = logger.With().Str(log.KeyProcess, "validating token").Logger()
	logger.Trace().Msg("validating token")
	if !jwtToken.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return Caller{}, inErrors.ErrTokenInvalid
	}
	if claims.Subject == "" {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return Caller{}, inErrors.ErrTokenInvalid
	}
	logger.Trace().Msg("validated token")

	return Caller{UserID: claims.Subject, Role: claims.Role}, nil
}
