package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Despicable-at/robot-delivery-backend/internal/config"
	"github.com/Despicable-at/robot-delivery-backend/internal/delivery/http/handler"
	"github.com/Despicable-at/robot-delivery-backend/internal/infrastructure/database/postgres"
	"github.com/Despicable-at/robot-delivery-backend/internal/logger"
	"github.com/Despicable-at/robot-delivery-backend/internal/mailer"
	"github.com/Despicable-at/robot-delivery-backend/internal/middleware"
	accountUsecase "github.com/Despicable-at/robot-delivery-backend/internal/usecase/account"
	authUsecase "github.com/Despicable-at/robot-delivery-backend/internal/usecase/auth"
	robotUsecase "github.com/Despicable-at/robot-delivery-backend/internal/usecase/robot"
)

// Services bundles the constructed use cases so main can also hand them to
// background jobs.
type Services struct {
	Auth    *authUsecase.Service
	Account *accountUsecase.Service
	Robot   *robotUsecase.Service
}

func SetupRoutes(cfg *config.Config, db *postgres.DB, mail mailer.Mailer) (*gin.Engine, *Services) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	accountRepository := postgres.NewAccountRepository(db)
	credentialRepository := postgres.NewCredentialRepository(db)
	sessionRepository := postgres.NewSessionRepository(db)
	robotRepository := postgres.NewRobotRepository(db)

	authService := authUsecase.NewService(accountRepository, credentialRepository, sessionRepository, mail, cfg)
	accountService := accountUsecase.NewService(accountRepository, cfg)
	robotService := robotUsecase.NewService(robotRepository)

	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	robotHandler := handler.NewRobotHandler(robotService)

	api := router.Group("/api")
	{
		authHandler.RegisterRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			accountHandler.RegisterRoutes(protected)
			robotHandler.RegisterRoutes(protected)
		}
	}

	logger.Info("All routes initialized")

	return router, &Services{
		Auth:    authService,
		Account: accountService,
		Robot:   robotService,
	}
}
