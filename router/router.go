package router

import (
	"net/http"

	"videobrowse-service/handler"
	"videobrowse-service/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "videobrowse-service"

func Setup(h *handler.Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// The session cookie has to cross origins, so the request origin is echoed
	// back rather than "*". No configured origins means any origin.
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(allowedOrigins) == 0 {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	}
	r.Use(cors.New(corsConfig))
	r.Use(middleware.PrometheusMiddleware(serviceName))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", middleware.Session())
	{
		api.GET("/home", h.Home)
		api.GET("/popular", h.Popular)
		api.GET("/search", h.Search)
		api.GET("/watch", h.Watch)
		api.GET("/watch/:id", h.Watch)

		api.GET("/history", h.GetWatchHistory)
		api.POST("/history", h.AddWatchHistory)
		api.DELETE("/history", h.ClearWatchHistory)
		api.DELETE("/history/:videoId", h.RemoveWatchHistory)

		api.GET("/search-history", h.GetSearchHistory)
		api.POST("/search-history", h.AddSearchHistory)
		api.DELETE("/search-history", h.ClearSearchHistory)
		api.DELETE("/search-history/*term", h.RemoveSearchHistory)

		api.GET("/settings", h.GetSettings)
		api.PUT("/settings/theme", h.SetTheme)
		api.POST("/settings/theme/toggle", h.ToggleTheme)
	}

	return r
}
