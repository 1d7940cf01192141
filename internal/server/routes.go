package routes

import (
	"net/http"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter crea el router de Gin con CORS, logging y recuperación de pánicos
func NewRouter(allowOrigins []string, h *middleware.Handler, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	// Configurar CORS
	config := cors.DefaultConfig()
	if len(allowOrigins) == 0 || contains(allowOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	config.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(config))

	RegisterRoutes(router, h)
	return router
}

func RegisterRoutes(router *gin.Engine, h *middleware.Handler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	stocks := router.Group("/stocks")
	{
		stocks.GET("", h.GetStocks)
		stocks.POST("/fetch", h.FetchStocks)
		stocks.GET("/status", h.GetStockStatus)
		stocks.GET("/updater", h.GetUpdaterStatus)
	}

	portfolio := router.Group("/portfolio")
	{
		portfolio.GET("", h.GetPortfolio)
		portfolio.POST("", h.AddToPortfolio)
		portfolio.GET("/diversity", h.GetDiversity)
		portfolio.GET("/chart", h.GetChart)
		portfolio.GET("/events", h.StreamPortfolio)
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
