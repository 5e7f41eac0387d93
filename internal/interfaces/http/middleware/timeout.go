package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AbortRequestOption .
type AbortRequestOption struct {
	Skipper middleware.Skipper
	Timeout time.Duration
}

// AbortRequest bound the request context with a deadline, blocking calls made
// with it are aborted once Timeout elapses. Zero Timeout disables it.
func AbortRequest(option *AbortRequestOption) echo.MiddlewareFunc {
	skipper := middleware.DefaultSkipper
	if option.Skipper != nil {
		skipper = option.Skipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if option.Timeout <= 0 || skipper(c) {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), option.Timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
