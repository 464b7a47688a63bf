package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/config"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/handlers"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/middleware"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/pdf"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/ratelimit"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/repositories"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/routes"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/likhith1072/Buyer-Lead-Intake/docs"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.Auth.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.Auth.JWTSecret)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	buyerRepo := repositories.NewBuyerRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	userService := services.NewUserService(userRepo, emailService)

	var telegramService *services.TelegramService
	if cfg.Telegram.BotToken != "" {
		telegramService, err = services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("telegram notifications disabled: %v", err)
		}
	}

	buyerService := services.NewBuyerService(buyerRepo, historyRepo, telegramService)
	importService := services.NewImportService(buyerRepo, telegramService, cfg.Import.MaxRows)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)
	buyerHandler := handlers.NewBuyerHandler(buyerService, importService, pdf.NewReportGenerator())

	// === Rate limiter ===
	limiter := ratelimit.NewLimiter()
	go func() {
		// periodic sweep: memory hygiene only, not load-bearing
		for range time.Tick(10 * time.Minute) {
			limiter.Sweep()
		}
	}()

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		buyerHandler,
		limiter,
		cfg.RateLimit.Limit,
		time.Duration(cfg.RateLimit.WindowMs)*time.Millisecond,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
