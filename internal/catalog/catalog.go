// Package catalog holds the read-only destination and activity dataset the planner draws from.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"tripcraft/internal/models/trip_models"
)

var (
	ErrUnknownCategory      = errors.New("unknown activity category")
	ErrDuplicateDestination = errors.New("duplicate destination key")
	ErrEmptyKey             = errors.New("destination key is empty")
)

type Destination struct {
	Key        string
	Name       string
	Country    string
	Locale     string
	ImageURL   string
	Aliases    []string
	Activities map[trip_models.Interest][]string
}

// Categories returns the categories the destination has activities for, in canonical order.
func (d Destination) Categories() []trip_models.Interest {
	out := make([]trip_models.Interest, 0, len(d.Activities))
	for _, i := range trip_models.AllInterests {
		if len(d.Activities[i]) > 0 {
			out = append(out, i)
		}
	}
	return out
}

// Catalog is immutable after New returns and safe to share between goroutines.
type Catalog struct {
	version      string
	destinations []Destination
	byKey        map[string]int
}

func New(version string, destinations []Destination) (*Catalog, error) {
	c := &Catalog{
		version:      version,
		destinations: make([]Destination, 0, len(destinations)),
		byKey:        make(map[string]int, len(destinations)),
	}

	for _, d := range destinations {
		key := strings.TrimSpace(d.Key)
		if key == "" {
			return nil, ErrEmptyKey
		}
		lower := strings.ToLower(key)
		if _, dup := c.byKey[lower]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDestination, key)
		}

		cp := Destination{
			Key:        key,
			Name:       d.Name,
			Country:    d.Country,
			Locale:     d.Locale,
			ImageURL:   d.ImageURL,
			Aliases:    append([]string(nil), d.Aliases...),
			Activities: make(map[trip_models.Interest][]string, len(d.Activities)),
		}
		if cp.Name == "" {
			cp.Name = key
		}
		for category, names := range d.Activities {
			if !category.Valid() {
				return nil, fmt.Errorf("%w: %q in %s", ErrUnknownCategory, category, key)
			}
			cp.Activities[category] = append([]string(nil), names...)
		}

		c.byKey[lower] = len(c.destinations)
		c.destinations = append(c.destinations, cp)
	}

	return c, nil
}

func (c *Catalog) Version() string { return c.version }

// Keys lists destination keys in catalog order. The order is stable for the life of the catalog.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.destinations))
	for i, d := range c.destinations {
		keys[i] = d.Key
	}
	return keys
}

func (c *Catalog) Aliases(key string) []string {
	d, ok := c.Lookup(key)
	if !ok {
		return nil
	}
	return d.Aliases
}

func (c *Catalog) Destinations() []Destination {
	out := make([]Destination, len(c.destinations))
	copy(out, c.destinations)
	return out
}

// Lookup finds a destination by key, ignoring case.
func (c *Catalog) Lookup(key string) (Destination, bool) {
	idx, ok := c.byKey[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Destination{}, false
	}
	return c.destinations[idx], true
}

// Resolve finds a destination by key or alias, ignoring case.
func (c *Catalog) Resolve(name string) (Destination, bool) {
	if d, ok := c.Lookup(name); ok {
		return d, true
	}
	name = strings.TrimSpace(name)
	for _, d := range c.destinations {
		for _, alias := range d.Aliases {
			if strings.EqualFold(alias, name) {
				return d, true
			}
		}
	}
	return Destination{}, false
}

// Candidates flattens the destination's activities for the given interests into a de-duplicated name list.
// A name listed under several matching categories is attributed to the first one in canonical order.
func (c *Catalog) Candidates(key string, interests []trip_models.Interest) ([]string, map[string]trip_models.Interest) {
	categoryOf := make(map[string]trip_models.Interest)
	d, ok := c.Lookup(key)
	if !ok {
		return nil, categoryOf
	}

	var names []string
	for _, interest := range trip_models.NormalizeInterests(interests) {
		for _, name := range d.Activities[interest] {
			if _, seen := categoryOf[name]; seen {
				continue
			}
			categoryOf[name] = interest
			names = append(names, name)
		}
	}
	return names, categoryOf
}

// ActivityNames returns every activity name of a destination regardless of category.
func (c *Catalog) ActivityNames(key string) []string {
	names, _ := c.Candidates(key, trip_models.AllInterests)
	return names
}
