package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/skillspark/internal/infrastructure/auth"
)

// ValidateTokenOption ...
type ValidateTokenOption struct {
	InBlackList func(ctx context.Context, token string) (bool, error)
}

// RefreshTokenOption ...
type RefreshTokenOption struct {
	Threshold time.Duration
}

// VerifyToken validate JWT from cookie and put its claims into the echo context
func VerifyToken(ju *auth.JWTUtil, options ...*ValidateTokenOption) echo.MiddlewareFunc {
	inBlacklist := func(context.Context, string) (bool, error) { return false, nil }
	if len(options) > 0 && options[0].InBlackList != nil {
		inBlacklist = options[0].InBlackList
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr, err := ju.ExtractToken(c)
			if err != nil {
				return c.NoContent(http.StatusUnauthorized)
			}

			if ok, err := inBlacklist(c.Request().Context(), tokenStr); err != nil {
				return err
			} else if ok {
				return c.NoContent(http.StatusUnauthorized)
			}

			token, err := ju.Validate(tokenStr)
			if err != nil {
				return c.NoContent(http.StatusUnauthorized)
			}
			ju.SetContextToken(c, token)
			return next(c)
		}
	}
}

// RefreshToken refresh jwt if necessary, must be chained after VerifyToken
func RefreshToken(ju *auth.JWTUtil, options ...*RefreshTokenOption) echo.MiddlewareFunc {
	threshold := 5 * time.Minute
	if len(options) > 0 {
		if option := options[0]; option.Threshold > 0 {
			threshold = option.Threshold
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ju.GetContextToken(c)
			if claims == nil {
				return next(c)
			}
			if claims.TimeRemaining() < threshold {
				ju.RefreshToken(claims)
				tokenStr, err := ju.Sign(claims)
				if err != nil {
					return err
				}
				ju.SetClientToken(c, tokenStr)
			}
			return next(c)
		}
	}
}
