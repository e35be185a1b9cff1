package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/postmessages/board-api/internal/api/handler"
	"github.com/postmessages/board-api/internal/api/middleware"
	"github.com/postmessages/board-api/internal/core/domain"
	"github.com/postmessages/board-api/internal/core/service"
	mongodb "github.com/postmessages/board-api/internal/infrastructure/db/mongo"
	redisdb "github.com/postmessages/board-api/internal/infrastructure/db/redis"
	"github.com/postmessages/board-api/internal/ws"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, hub *ws.Hub, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("board"))

	// --- Dependencies ---
	cache := redisdb.NewQueryCache(rdb, logger)

	userRepo := mongodb.NewUserRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)

	authService := service.NewAuthService(userRepo, jwtSecret, tokenTTL)
	userService := service.NewUserService(userRepo, cache, logger)
	messageService := service.NewMessageService(messageRepo, cache, hub, logger)

	rootHandler := handler.NewRootHandler()
	userHandler := handler.NewUserHandler(userService, authService)
	messageHandler := handler.NewMessageHandler(messageService)

	auth := middleware.Auth(jwtSecret)
	moderator := middleware.RequireRole(domain.RoleModerator)

	// --- Public routes ---
	e.GET("/", rootHandler.Index)
	e.GET("/login", userHandler.Login)
	e.POST("/users", userHandler.Register)

	// --- Protected routes ---
	e.GET("/tags", messageHandler.ListTags, auth)
	e.GET("/messages", messageHandler.List, auth)
	e.POST("/messages", messageHandler.Create, auth)
	e.DELETE("/messages/:id", messageHandler.Delete, auth, moderator)
	e.GET("/users", userHandler.List, auth)
	e.GET("/users/:mail", userHandler.Get, auth)

	// --- Real-time channel (unauthenticated observers) ---
	e.GET("/ws", hub.Serve)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
