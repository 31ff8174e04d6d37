package request_models

import "tripcraft/internal/models/trip_models"

type ExtractPreferencesRequest struct {
	Text string `json:"text"`
}

type PlanDraftRequest struct {
	Seed *uint64 `json:"seed"`
	// Activities restricts planning to the listed catalog activities. Empty means all candidates.
	Activities []string `json:"activities"`
}

// PlanItineraryRequest plans from explicit preferences without storing a draft.
type PlanItineraryRequest struct {
	Preferences *trip_models.TripPreferences `json:"preferences" binding:"required"`
	Seed        *uint64                      `json:"seed"`
	Activities  []string                     `json:"activities"`
}
