package http

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
	"github.com/pot-code/skillspark/internal/domain"
	infra "github.com/pot-code/skillspark/internal/infrastructure"
	"github.com/pot-code/skillspark/internal/infrastructure/auth"
	"github.com/pot-code/skillspark/internal/infrastructure/driver"
	"github.com/pot-code/skillspark/internal/infrastructure/validate"
	"github.com/pot-code/skillspark/internal/interfaces/http/middleware"
	"go.elastic.co/apm/module/apmechov4"
	"go.uber.org/zap"
)

// Server http transport
type Server struct {
	app     *echo.Echo
	address string
	logger  *zap.Logger
}

// NewServer create http transport server
func NewServer(
	conn driver.ITransactionalDB,
	kv driver.KeyValueDB,
	option *infra.AppConfig,
	UserUseCase domain.UserUseCase,
	ProgressUseCase domain.ProgressUseCase,
	logger *zap.Logger,
) *Server {
	var (
		app       = echo.New()
		validator = validate.NewValidator()
		websocket = NewWebsocket()
		blacklist = auth.NewTokenBlacklist(kv)
		jwtUtil   = auth.NewJWTUtil(option.Security.JWTMethod,
			option.Security.JWTSecret,
			option.Security.TokenName,
			option.SessionTimeout)
		jwtMiddleware = middleware.VerifyToken(jwtUtil, &middleware.ValidateTokenOption{
			InBlackList: blacklist.Contains,
		})
		refreshMiddleware = middleware.RefreshToken(jwtUtil, &middleware.RefreshTokenOption{
			Threshold: option.SessionRefresh,
		})
	)
	app.HideBanner = true
	app.HidePort = true

	registerLivenessProbe(app, conn, kv)
	if option.Env == infra.EnvDevelopment {
		registerProfileEndpoints(app)
	}
	app.Use(middleware.Logging(logger, &middleware.LoggingConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().RequestURI, "/healthz")
		},
	}))
	app.Use(middleware.ErrorHandling(
		&middleware.ErrorHandlingOption{
			Handler: func(c echo.Context, traceID string, err error) {
				c.JSON(http.StatusInternalServerError,
					NewRESTStandardError(http.StatusInternalServerError, err.Error()).SetTraceID(traceID),
				)
				logger.Error(err.Error(), zap.String("trace.id", traceID))
			},
			Logger: logger,
		},
	))
	app.Use(echo_middleware.Secure())
	if option.DevOP.APM {
		app.Use(apmechov4.Middleware())
	}
	app.Use(echo_middleware.CORS())
	app.Use(middleware.AbortRequest(&middleware.AbortRequestOption{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().RequestURI, "/api/v1/ws/")
		},
		Timeout: option.RequestTimeout,
	}))
	app.Use(middleware.NoRouteMatched())

	var (
		UserHandler     = NewUserHandler(jwtUtil, blacklist, UserUseCase, validator)
		ProgressHandler = NewProgressHandler(ProgressUseCase, jwtUtil, validator)
	)
	createEndpoint(app, v1Endpoint(
		UserHandler,
		ProgressHandler,
		websocket.WithHeartbeat(ProgressHandler.HandleProgressSocket),
		jwtMiddleware, refreshMiddleware, echo_middleware.RequestID(), middleware.SetTraceLogger(logger),
	))

	printRoutes(app, logger)
	return &Server{
		app:     app,
		address: fmt.Sprintf("%s:%d", option.Host, option.Port),
		logger:  logger,
	}
}

// Start listen and serve, blocks until the server is stopped
func (s *Server) Start() error {
	s.logger.Info("Server started", zap.String("server.address", s.address))
	if err := s.app.Start(s.address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shutdown the server
func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// ServeHTTP implement http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func printRoutes(app *echo.Echo, logger *zap.Logger) {
	for _, route := range app.Routes() {
		if !strings.HasPrefix(route.Name, "github.com/labstack/echo") {
			name := route.Name
			trimIndex := strings.LastIndexByte(name, '/')
			logger.Debug("Registered route", zap.String("method", route.Method), zap.String("path", route.Path), zap.String("name", name[trimIndex+1:]))
		}
	}
}

func registerLivenessProbe(app *echo.Echo, db driver.ITransactionalDB, kv driver.KeyValueDB) {
	app.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		if db.Ping(ctx) == nil && kv.Ping(ctx) == nil {
			return c.NoContent(http.StatusOK)
		}
		return c.NoContent(http.StatusServiceUnavailable)
	})
}

func registerProfileEndpoints(app *echo.Echo) {
	expvarHandler := expvar.Handler()
	app.GET("/debug/vars", func(c echo.Context) error {
		expvarHandler.ServeHTTP(c.Response().Writer, c.Request())
		return nil
	})
	app.GET("/debug/pprof/", func(c echo.Context) error {
		pprof.Index(c.Response().Writer, c.Request())
		return nil
	})
	app.GET("/debug/pprof/:name", func(c echo.Context) error {
		switch c.Param("name") {
		case "cmdline":
			pprof.Cmdline(c.Response().Writer, c.Request())
		case "profile":
			pprof.Profile(c.Response().Writer, c.Request())
		case "symbol":
			pprof.Symbol(c.Response().Writer, c.Request())
		case "trace":
			pprof.Trace(c.Response().Writer, c.Request())
		default:
			pprof.Handler(c.Param("name")).ServeHTTP(c.Response().Writer, c.Request())
		}
		return nil
	})
}
