package response_models

type CatalogResponse struct {
	Version      string                `json:"version"`
	Destinations []DestinationResponse `json:"destinations"`
}

type DestinationResponse struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	Country       string   `json:"country,omitempty"`
	Locale        string   `json:"locale,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Aliases       []string `json:"aliases"`
	Categories    []string `json:"categories"`
	ActivityCount int      `json:"activity_count"`
}

type ActivityResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type DestinationActivitiesResponse struct {
	Destination string             `json:"destination"`
	Activities  []ActivityResponse `json:"activities"`
}
