package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripcraft/internal/models/request_models"
	"tripcraft/internal/models/trip_models"
	"tripcraft/internal/services"
	"tripcraft/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
	logger      *zap.Logger
}

func NewTripController(tripService services.TripServiceInterface, logger *zap.Logger) *TripController {
	return &TripController{
		tripService: tripService,
		logger:      logger,
	}
}

// ExtractPreferences godoc
// @Summary Extract trip preferences from free text
// @Description Parses a trip description, stores the result as a draft and returns follow-up questions
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.ExtractPreferencesRequest true "Trip description"
// @Success 201 {object} response_models.ExtractionResponse
// @Failure 400 {object} utils.APIResponse
// @Router /trips/extract [post]
func (t *TripController) ExtractPreferences(c *gin.Context) {
	var req request_models.ExtractPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := t.tripService.ExtractPreferences(c.Request.Context(), req.Text)
	if err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, resp, "Preferences extracted successfully")
}

// GetDraft godoc
// @Summary Get a preference draft
// @Tags Trips
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response_models.DraftResponse
// @Failure 404 {object} utils.APIResponse
// @Router /trips/drafts/{id} [get]
func (t *TripController) GetDraft(c *gin.Context) {
	resp, err := t.tripService.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}
	utils.RespondSuccess(c, resp, "Draft fetched successfully")
}

// ReplaceDraft godoc
// @Summary Replace a preference draft
// @Description The body is a complete preferences object; fields are not merged
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response_models.DraftResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /trips/drafts/{id} [put]
func (t *TripController) ReplaceDraft(c *gin.Context) {
	var prefs trip_models.TripPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid preferences: "+err.Error())
		return
	}

	resp, err := t.tripService.ReplaceDraft(c.Request.Context(), c.Param("id"), prefs)
	if err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}
	utils.RespondSuccess(c, resp, "Draft updated successfully")
}

// DeleteDraft godoc
// @Summary Discard a preference draft
// @Tags Trips
// @Param id path string true "Draft ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /trips/drafts/{id} [delete]
func (t *TripController) DeleteDraft(c *gin.Context) {
	if err := t.tripService.DeleteDraft(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "Draft deleted successfully")
}

// PlanDraft godoc
// @Summary Build an itinerary from a stored draft
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body request_models.PlanDraftRequest false "Optional seed and approved activities"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 404 {object} utils.APIResponse
// @Router /trips/drafts/{id}/itinerary [post]
func (t *TripController) PlanDraft(c *gin.Context) {
	var req request_models.PlanDraftRequest
	// the body is optional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := t.tripService.PlanDraft(c.Request.Context(), c.Param("id"), services.PlanOptions{
		Seed:       req.Seed,
		Activities: req.Activities,
	})
	if err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}
	utils.RespondSuccess(c, resp, "Itinerary created successfully")
}

// PlanItinerary godoc
// @Summary Build an itinerary from explicit preferences
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.PlanItineraryRequest true "Preferences, optional seed and approved activities"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries [post]
func (t *TripController) PlanItinerary(c *gin.Context) {
	var req request_models.PlanItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := t.tripService.Plan(c.Request.Context(), *req.Preferences, services.PlanOptions{
		Seed:       req.Seed,
		Activities: req.Activities,
	})
	if err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}
	utils.RespondSuccess(c, resp, "Itinerary created successfully")
}
