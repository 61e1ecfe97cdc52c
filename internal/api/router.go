package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ovl11/club-payment/docs"
	"github.com/ovl11/club-payment/internal/api/handler"
	"github.com/ovl11/club-payment/internal/api/middleware"
	"github.com/ovl11/club-payment/internal/core/ports"
)

// Dependencies is everything NewRouter needs. Services are built by the
// caller so tests can swap them out.
type Dependencies struct {
	Log zerolog.Logger

	Auth     ports.AuthService
	Payments ports.PaymentService
	Admin    ports.AdminService
	Webhooks ports.WebhookService

	AllowOrigins []string

	// HeaderAuth switches protected routes to X-User-Id / X-User-Role.
	HeaderAuth bool

	// ConnectionTokenRequireAuth puts /terminal/connection_token behind auth.
	ConnectionTokenRequireAuth bool

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if len(deps.AllowOrigins) == 0 {
		deps.AllowOrigins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.AllowOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			middleware.HeaderUserID,
			middleware.HeaderUserRole,
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "clubpay",
		Registerer: deps.Registerer,
	}))

	// --- Dependencies ---
	authMiddleware := middleware.Auth(deps.Auth)
	if deps.HeaderAuth {
		authMiddleware = middleware.HeaderAuth(deps.Auth)
	}

	healthHandler := handler.NewHealthHandler()
	paymentHandler := handler.NewPaymentHandler(deps.Payments)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	authHandler := handler.NewAuthHandler(deps.Auth)
	webhookHandler := handler.NewWebhookHandler(deps.Webhooks)

	// --- Operational routes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Terminal ---
	if deps.ConnectionTokenRequireAuth {
		e.POST("/terminal/connection_token", paymentHandler.ConnectionToken, authMiddleware)
	} else {
		e.POST("/terminal/connection_token", paymentHandler.ConnectionToken)
	}
	e.POST("/pos/create_intent", paymentHandler.CreateIntent, authMiddleware)

	// --- Admin ---
	admin := e.Group("/admin", authMiddleware, middleware.RequireAdmin())
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.POST("/devices", adminHandler.AssignDevice)
	admin.GET("/devices", adminHandler.ListDevices)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)

	// --- Stripe ---
	e.POST("/webhook", webhookHandler.Receive)

	return e
}

// requestLogger writes one zerolog line per request. Errors are already
// rendered by the error handler, so only their text is attached here.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			} else if v.Status >= 400 {
				ev = log.Warn()
			}
			if v.Error != nil {
				ev = ev.Str("error", v.Error.Error())
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("remote_ip", v.RemoteIP).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
