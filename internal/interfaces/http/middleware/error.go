package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandlingOption options for error handling
type ErrorHandlingOption struct {
	Handler func(c echo.Context, traceID string, err error)
	Logger  *zap.Logger
}

// ErrorHandling answer errors returned or panicked from the handler chain,
// **DO NOT return error anymore**
func ErrorHandling(options ...*ErrorHandlingOption) echo.MiddlewareFunc {
	custom := &ErrorHandlingOption{
		Handler: func(c echo.Context, traceID string, err error) {
			c.String(http.StatusInternalServerError, err.Error())
		},
		Logger: zap.NewNop(),
	}
	if len(options) > 0 {
		option := options[0]
		if option.Handler != nil {
			custom.Handler = option.Handler
		}
		if option.Logger != nil {
			custom.Logger = option.Logger
		}
	}
	handler := custom.Handler
	logger := custom.Logger
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if any := recover(); any != nil {
					perr, ok := any.(error)
					if !ok {
						perr = fmt.Errorf("%v", any)
					}
					traceID := c.Response().Header().Get(echo.HeaderXRequestID)
					logger.Error(perr.Error(),
						zap.String("url.path", c.Request().RequestURI),
						zap.String("http.request.method", c.Request().Method),
						zap.Strings("route.params.name", c.ParamNames()),
						zap.Strings("route.params.value", c.ParamValues()),
						zap.String("trace.id", traceID),
						zap.Stack("error.stack_trace"),
					)
					if !c.Response().Committed {
						handler(c, traceID, perr)
					}
					err = nil
				}
			}()

			if err := next(c); err != nil {
				if c.Response().Committed {
					return nil
				}
				var he *echo.HTTPError
				if errors.As(err, &he) {
					return c.JSON(he.Code, map[string]interface{}{"code": he.Code, "title": http.StatusText(he.Code), "detail": fmt.Sprint(he.Message)})
				}
				traceID := c.Response().Header().Get(echo.HeaderXRequestID)
				handler(c, traceID, err)
			}
			return nil
		}
	}
}

// NoRouteMatched answer unknown routes with an empty 404
func NoRouteMatched() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if v, ok := err.(*echo.HTTPError); ok && v.Code == http.StatusNotFound {
				return c.NoContent(v.Code)
			}
			return err
		}
	}
}
