package services

import (
	"context"
	"fmt"
	"strings"

	"tripcraft/internal/catalog"
	"tripcraft/internal/models/response_models"
	"tripcraft/internal/models/trip_models"
	"tripcraft/pkg/utils"
)

type CatalogServiceInterface interface {
	ListDestinations(ctx context.Context) response_models.CatalogResponse
	ListActivities(ctx context.Context, key string, interests []string) (response_models.DestinationActivitiesResponse, error)
}

type CatalogService struct {
	catalog *catalog.Catalog
}

func NewCatalogService(cat *catalog.Catalog) CatalogServiceInterface {
	return &CatalogService{catalog: cat}
}

func (s *CatalogService) ListDestinations(ctx context.Context) response_models.CatalogResponse {
	destinations := s.catalog.Destinations()
	out := make([]response_models.DestinationResponse, 0, len(destinations))

	for _, d := range destinations {
		categories := d.Categories()
		names := make([]string, 0, len(categories))
		for _, c := range categories {
			names = append(names, string(c))
		}
		aliases := d.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		out = append(out, response_models.DestinationResponse{
			Key:           d.Key,
			Name:          d.Name,
			Country:       d.Country,
			Locale:        d.Locale,
			ImageURL:      d.ImageURL,
			Aliases:       aliases,
			Categories:    names,
			ActivityCount: len(s.catalog.ActivityNames(d.Key)),
		})
	}

	return response_models.CatalogResponse{
		Version:      s.catalog.Version(),
		Destinations: out,
	}
}

// ListActivities returns a destination's activities, limited to interests when any are given.
func (s *CatalogService) ListActivities(ctx context.Context, key string, interests []string) (response_models.DestinationActivitiesResponse, error) {
	d, ok := s.catalog.Resolve(key)
	if !ok {
		return response_models.DestinationActivitiesResponse{}, utils.ErrDestinationNotFound
	}

	filter, err := parseInterests(interests)
	if err != nil {
		return response_models.DestinationActivitiesResponse{}, err
	}
	if len(filter) == 0 {
		filter = trip_models.AllInterests
	}

	names, categoryOf := s.catalog.Candidates(d.Key, filter)
	activities := make([]response_models.ActivityResponse, 0, len(names))
	for _, name := range names {
		activities = append(activities, response_models.ActivityResponse{
			Name:     name,
			Category: string(categoryOf[name]),
		})
	}

	return response_models.DestinationActivitiesResponse{
		Destination: d.Key,
		Activities:  activities,
	}, nil
}

// parseInterests accepts raw category names and rejects any outside the vocabulary.
func parseInterests(raw []string) ([]trip_models.Interest, error) {
	var out []trip_models.Interest
	for _, r := range raw {
		name := strings.ToLower(strings.TrimSpace(r))
		if name == "" {
			continue
		}
		interest := trip_models.Interest(name)
		if !interest.Valid() {
			return nil, fmt.Errorf("%w: unknown interest %q", utils.ErrInvalidInput, r)
		}
		out = append(out, interest)
	}
	return trip_models.NormalizeInterests(out), nil
}
