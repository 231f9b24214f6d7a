package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scholarfolio/portfolio-api/internal/api/handler"
	"github.com/scholarfolio/portfolio-api/internal/api/middleware"
	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

// Deps carries everything the router wires into handlers. Mongo and Redis
// are only used by the readiness check and may be nil.
type Deps struct {
	Log zerolog.Logger

	Auth     ports.AuthService
	Profiles ports.ProfileService
	Papers   ports.ResourceService[*domain.Paper, domain.PaperPatch]
	Courses  ports.ResourceService[*domain.Course, domain.CoursePatch]
	Blogs    ports.ResourceService[*domain.Blog, domain.BlogPatch]
	Videos   ports.ResourceService[*domain.Video, domain.VideoPatch]
	Contact  handler.ContactQueue

	Mongo *mongo.Database
	Redis *redis.Client

	RequestTimeout time.Duration
	CORSOrigins    []string

	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// Prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	if d.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeout(d.RequestTimeout))
	}

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "portfolio",
		Subsystem:                 "http",
		Registerer:                registerer,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Health checks, metrics and docs (no auth required) ---
	health := handler.NewHealthHandler(d.Mongo, d.Redis)
	e.GET("/", health.Root)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	protect := []echo.MiddlewareFunc{middleware.Auth(d.Auth)}

	api := e.Group("/api")

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/admin/dashboard", authHandler.Dashboard, protect...)

	// --- Profile ---
	profileHandler := handler.NewProfileHandler(d.Profiles)
	api.GET("/profile", profileHandler.Get)
	api.PUT("/profile", profileHandler.Upsert, protect...)

	// --- Resource collections ---
	handler.NewResourceHandler(domain.KindPaper, d.Papers).Register(api.Group("/papers"), protect...)
	handler.NewResourceHandler(domain.KindCourse, d.Courses).Register(api.Group("/courses"), protect...)
	handler.NewResourceHandler(domain.KindBlog, d.Blogs).Register(api.Group("/blogs"), protect...)
	handler.NewResourceHandler(domain.KindVideo, d.Videos).Register(api.Group("/videos"), protect...)

	// --- Contact form ---
	api.POST("/contact", handler.NewContactHandler(d.Contact).Submit)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
