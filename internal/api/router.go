package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gameforge/auth-core/internal/api/handler"
	"github.com/gameforge/auth-core/internal/api/middleware"
	"github.com/gameforge/auth-core/internal/core/domain"
	"github.com/gameforge/auth-core/internal/core/service"
	"github.com/gameforge/auth-core/internal/infrastructure/config"
	mongodb "github.com/gameforge/auth-core/internal/infrastructure/db/mongo"
	redisdb "github.com/gameforge/auth-core/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Gate order on protected routes is fixed: ClientAuth → UserAuth →
// RequireRole; role checks never run before an identity is attached.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	clients := mongodb.NewClientRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	codec := service.NewTokenCodec(cfg.APITokenSecret)
	sessions := service.NewSessionManager(sessionStore, users, cfg.SessionTTL)
	authService := service.NewAuthService(users, sessions)
	clientService := service.NewClientService(clients, codec)

	clientAuth := middleware.ClientAuth(codec, clients)
	userAuth := middleware.UserAuth(sessions, cfg.SessionCookie)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(authService, handler.CookieOptions{
		Name:   cfg.SessionCookie,
		MaxAge: sessions.TTL(),
		Secure: cfg.IsProduction(),
	})
	clientHandler := handler.NewClientHandler(clientService)
	meHandler := handler.NewMeHandler()

	// --- User routes (service-level trust required throughout) ---
	user := e.Group("/user", clientAuth)
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/logout", authHandler.Logout, userAuth)
	user.PATCH("/:id", authHandler.Update, userAuth)
	user.DELETE("/:id", authHandler.Delete, userAuth)

	e.GET("/me", meHandler.Profile, clientAuth, userAuth)

	// --- API client management (admin sessions only) ---
	client := e.Group("/client", clientAuth, userAuth, adminOnly)
	client.POST("/new", clientHandler.Create)
	client.POST("/invalidate/:id", clientHandler.Invalidate)

	// --- Health checks and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
