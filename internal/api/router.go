package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/pressroom/blog-api/docs"
	"github.com/pressroom/blog-api/internal/api/handler"
	"github.com/pressroom/blog-api/internal/api/middleware"
	"github.com/pressroom/blog-api/internal/core/service"
	"github.com/pressroom/blog-api/internal/infrastructure/config"
	"github.com/pressroom/blog-api/internal/infrastructure/db/postgres"
	"github.com/pressroom/blog-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	// Browser clients call this API cross-origin.
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Dependencies ---
	limiter := redis.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)
	authRepo := postgres.NewAuthRepository(pool)
	authService := service.NewAuthService(authRepo, limiter, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log)
	authHandler := handler.NewAuthHandler(authService)

	postRepo := postgres.NewPostRepository(pool)
	postService := service.NewPostService(postRepo, log)
	postHandler := handler.NewPostHandler(postService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)

	// --- Post routes (reads are public, mutations need a bearer token) ---
	e.GET("/posts", postHandler.List)
	e.GET("/posts/:id", postHandler.ListByUser)
	e.POST("/posts", postHandler.Create, authMiddleware)
	e.PUT("/posts/:id", postHandler.Update, authMiddleware)
	e.DELETE("/posts/:id", postHandler.Delete, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
