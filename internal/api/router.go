package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripcraft/internal/api/controllers"
	"tripcraft/internal/catalog"
	"tripcraft/internal/config"
	"tripcraft/pkg/middleware"
	"tripcraft/pkg/utils"
)

func NewRouter(
	cfg config.Config,
	logger *zap.Logger,
	cat *catalog.Catalog,
	tripController *controllers.TripController,
	catalogController *controllers.CatalogController,
) *gin.Engine {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(corsConfig(cfg.Server.CORSAllowedOrigins)))

	RegisterRoutes(r, cat, tripController, catalogController)
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func RegisterRoutes(r *gin.Engine,
	cat *catalog.Catalog,
	tripController *controllers.TripController,
	catalogController *controllers.CatalogController) {

	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok", "catalog_version": cat.Version()}, "")
	})

	catalogGroup := r.Group("/catalog")
	catalogGroup.GET("/destinations", catalogController.ListDestinations)
	catalogGroup.GET("/destinations/:key/activities", catalogController.ListActivities)

	tripsGroup := r.Group("/trips")
	tripsGroup.POST("/extract", tripController.ExtractPreferences)
	tripsGroup.GET("/drafts/:id", tripController.GetDraft)
	tripsGroup.PUT("/drafts/:id", tripController.ReplaceDraft)
	tripsGroup.DELETE("/drafts/:id", tripController.DeleteDraft)
	tripsGroup.POST("/drafts/:id/itinerary", tripController.PlanDraft)

	r.POST("/itineraries", tripController.PlanItinerary)
}
