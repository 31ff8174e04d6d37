package response_models

import "tripcraft/internal/models/trip_models"

type ExtractionResponse struct {
	DraftID     string                      `json:"draft_id"`
	ExpiresAt   int64                       `json:"expires_at"`
	Preferences trip_models.TripPreferences `json:"preferences"`
	Defaulted   []string                    `json:"defaulted"`
	Questions   []string                    `json:"questions"`
	Warnings    []string                    `json:"warnings"`
}

type DraftResponse struct {
	DraftID     string                      `json:"draft_id"`
	Preferences trip_models.TripPreferences `json:"preferences"`
}

type ItineraryResponse struct {
	Destination     string                `json:"destination"`
	DestinationName string                `json:"destination_name"`
	Country         string                `json:"country,omitempty"`
	CatalogVersion  string                `json:"catalog_version"`
	Seed            uint64                `json:"seed"`
	DurationDays    int                   `json:"duration_days"`
	Days            []trip_models.DayPlan `json:"days"`
	Warnings        []string              `json:"warnings"`
}
