package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripcraft/internal/services"
	"tripcraft/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
	logger         *zap.Logger
}

func NewCatalogController(catalogService services.CatalogServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListDestinations godoc
// @Summary List catalog destinations
// @Tags Catalog
// @Produce json
// @Success 200 {object} response_models.CatalogResponse
// @Router /catalog/destinations [get]
func (cc *CatalogController) ListDestinations(c *gin.Context) {
	utils.RespondSuccess(c, cc.catalogService.ListDestinations(c.Request.Context()), "Destinations fetched successfully")
}

// ListActivities godoc
// @Summary List activities of a destination
// @Tags Catalog
// @Produce json
// @Param key path string true "Destination key"
// @Param interests query string false "Comma separated interest categories"
// @Success 200 {object} response_models.DestinationActivitiesResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /catalog/destinations/{key}/activities [get]
func (cc *CatalogController) ListActivities(c *gin.Context) {
	var interests []string
	if raw := c.Query("interests"); raw != "" {
		interests = strings.Split(raw, ",")
	}

	resp, err := cc.catalogService.ListActivities(c.Request.Context(), c.Param("key"), interests)
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}
	utils.RespondSuccess(c, resp, "Activities fetched successfully")
}
