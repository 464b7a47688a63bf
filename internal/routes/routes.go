package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/handlers"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/middleware"
	"github.com/likhith1072/Buyer-Lead-Intake/internal/ratelimit"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	buyerHandler *handlers.BuyerHandler,
	limiter *ratelimit.Limiter,
	rateLimit int,
	rateWindow time.Duration,
) *gin.Engine {

	// ---- public
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	r.POST("/logout", authHandler.Logout)

	// only mutating endpoints go through the limiter
	limited := middleware.RateLimit(limiter, rateLimit, rateWindow)

	buyers := r.Group("/buyers")
	{
		buyers.POST("/", limited, buyerHandler.Create)
		buyers.GET("/", buyerHandler.List)
		buyers.GET("/export", buyerHandler.ExportCSV)
		buyers.GET("/export/pdf", buyerHandler.ExportPDF)
		buyers.POST("/import", limited, buyerHandler.Import)
		buyers.GET("/:id", buyerHandler.GetByID)
		buyers.PUT("/:id", limited, buyerHandler.Update)
		buyers.DELETE("/:id", limited, buyerHandler.Delete)
		buyers.GET("/:id/history", buyerHandler.History)
	}

	return r
}
