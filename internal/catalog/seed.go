package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"tripcraft/internal/models/trip_models"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedDocument is the on-disk layout of a catalog dataset.
type SeedDocument struct {
	Version      string            `yaml:"version"`
	Destinations []SeedDestination `yaml:"destinations"`
}

type SeedDestination struct {
	Key        string              `yaml:"key"`
	Name       string              `yaml:"name"`
	Country    string              `yaml:"country"`
	Locale     string              `yaml:"locale"`
	Image      string              `yaml:"image"`
	Aliases    []string            `yaml:"aliases"`
	Activities map[string][]string `yaml:"activities"`
}

// Seed returns the dataset compiled into the binary.
func Seed() (*Catalog, error) {
	return Parse(seedYAML)
}

// SeedDocumentFromEmbedded exposes the raw embedded document, used to populate a database.
func SeedDocumentFromEmbedded() (SeedDocument, error) {
	var doc SeedDocument
	if err := yaml.Unmarshal(seedYAML, &doc); err != nil {
		return SeedDocument{}, fmt.Errorf("decode catalog seed: %w", err)
	}
	return doc, nil
}

func Parse(data []byte) (*Catalog, error) {
	var doc SeedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return FromDocument(doc)
}

func FromDocument(doc SeedDocument) (*Catalog, error) {
	destinations := make([]Destination, 0, len(doc.Destinations))
	for _, sd := range doc.Destinations {
		activities := make(map[trip_models.Interest][]string, len(sd.Activities))
		for category, names := range sd.Activities {
			activities[trip_models.Interest(strings.ToLower(category))] = names
		}
		destinations = append(destinations, Destination{
			Key:        sd.Key,
			Name:       sd.Name,
			Country:    sd.Country,
			Locale:     sd.Locale,
			ImageURL:   sd.Image,
			Aliases:    sd.Aliases,
			Activities: activities,
		})
	}
	return New(doc.Version, destinations)
}
