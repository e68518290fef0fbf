package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/cipco/cms-backend/docs"
	"github.com/cipco/cms-backend/internal/api/handler"
	"github.com/cipco/cms-backend/internal/api/middleware"
	"github.com/cipco/cms-backend/internal/core/ports"
	"github.com/cipco/cms-backend/internal/pkg/config"
	"github.com/cipco/cms-backend/internal/pkg/metrics"
)

// multipart overhead allowed on top of the image itself
const formOverheadBytes = 1 << 20

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Config *config.Config
	Log    zerolog.Logger

	Tokens ports.TokenService
	Users  ports.UserRepository

	Auth     ports.AuthService
	UserMgmt ports.UserService
	Blogs    ports.BlogService
	Contacts ports.ContactService
	Teams    ports.TeamService
	Stats    ports.StatsService

	// Readiness dependencies by name, e.g. "mongodb" and "redis".
	Health map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(reg); err != nil {
		return nil, err
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.Config.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			middleware.HeaderAuthToken,
		},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit(strconv.FormatInt((d.Config.MaxUploadBytes+formOverheadBytes)/1024, 10) + "K"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	healthHandler := handler.NewHealthHandler(d.Health)
	authHandler := handler.NewAuthHandler(d.Auth)
	blogHandler := handler.NewBlogHandler(d.Blogs, d.Config.MaxUploadBytes)
	contactHandler := handler.NewContactHandler(d.Contacts)
	teamHandler := handler.NewTeamHandler(d.Teams, d.Config.MaxUploadBytes)
	userHandler := handler.NewUserHandler(d.UserMgmt)
	statsHandler := handler.NewStatsHandler(d.Stats)

	authenticate := middleware.Authenticate(d.Tokens, d.Users, d.Log)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", healthHandler.Readiness)

	// --- Auth ---
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authenticate)

	// --- Public content ---
	api.GET("/blogs", blogHandler.List)
	api.GET("/blogs/categories/list", blogHandler.Categories)
	api.GET("/blogs/:id", blogHandler.Get)
	api.GET("/teams", teamHandler.List)
	api.POST("/contacts", contactHandler.Submit, contactRateLimiter(d.Config.Contact))

	// --- Admin (admin or superadmin) ---
	admin := api.Group("/admin", authenticate, middleware.RequireAdmin())
	admin.GET("/stats", statsHandler.Dashboard)

	admin.GET("/blogs", blogHandler.ListAll)
	admin.POST("/blogs", blogHandler.Create)
	admin.PUT("/blogs/:id", blogHandler.Update)
	admin.DELETE("/blogs/:id", blogHandler.Delete)

	admin.GET("/contacts", contactHandler.List)
	admin.GET("/contacts/:id", contactHandler.Get)
	admin.PUT("/contacts/:id", contactHandler.Update)
	admin.DELETE("/contacts/:id", contactHandler.Delete)

	admin.GET("/teams", teamHandler.List)
	admin.POST("/teams", teamHandler.Create)
	admin.PUT("/teams/:id", teamHandler.Update)
	admin.DELETE("/teams/:id", teamHandler.Delete)

	// --- User management (superadmin only) ---
	users := admin.Group("/users", middleware.RequireSuperAdmin())
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	return e, nil
}

// contactRateLimiter limits contact form submissions per client IP.
func contactRateLimiter(cfg config.ContactConfig) echo.MiddlewareFunc {
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.Rate),
		Burst:     cfg.Burst,
		ExpiresIn: 10 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, try again later")
		},
	})
}
