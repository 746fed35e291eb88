package routes

import (
	"net/http"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/config"
	"github.com/ArowuTest/spin-wheel-backend/internal/handlers"
	"github.com/ArowuTest/spin-wheel-backend/internal/middleware"
	"github.com/ArowuTest/spin-wheel-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies holds all handler dependencies for the router
type HandlerDependencies struct {
	AuthService   services.AuthService
	AuthHandler   *handlers.AuthHandler
	ConfigHandler *handlers.ConfigHandler
	PrizeHandler  *handlers.PrizeHandler
	SpinHandler   *handlers.SpinHandler
	HealthHandler *handlers.HealthHandler
	StaticHandler *handlers.StaticHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	requireAdmin := middleware.AdminAPIMiddleware(deps.AuthService)

	api := router.Group("/api")
	{
		api.GET("/health", deps.HealthHandler.Health)

		admin := api.Group("/admin")
		{
			admin.POST("/login", deps.AuthHandler.Login)
			admin.POST("/logout", deps.AuthHandler.Logout)
			admin.GET("/session", deps.AuthHandler.Session)
		}

		api.GET("/config", requireAdmin, deps.ConfigHandler.GetConfig)
		api.PUT("/config", requireAdmin, deps.ConfigHandler.UpdateConfig)

		prizes := api.Group("/prizes")
		{
			prizes.GET("", deps.PrizeHandler.ListPrizes)
			prizes.POST("", requireAdmin, deps.PrizeHandler.CreatePrize)
			prizes.PUT("/:id", requireAdmin, deps.PrizeHandler.UpdatePrize)
			prizes.DELETE("/:id", requireAdmin, deps.PrizeHandler.DeletePrize)
		}

		api.POST("/spin", deps.SpinHandler.Spin)
		api.GET("/last-prize/:dni", deps.SpinHandler.LastPrize)
	}

	// Admin panel: the gate runs before any file is served
	adminPages := router.Group("/admin")
	adminPages.Use(middleware.AdminPageMiddleware(deps.AuthService, []byte(handlers.AdminLoginPage)))
	{
		adminPages.Any("", deps.StaticHandler.AdminFiles)
		adminPages.Any("/*filepath", deps.StaticHandler.AdminFiles)
	}

	router.GET("/premio/:dni", deps.StaticHandler.ResultPage)
	router.NoRoute(deps.StaticHandler.Fallback)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
