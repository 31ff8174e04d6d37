// Package extraction turns a free-text trip description into TripPreferences.
//
// Each field has its own ordered list of rules. Rules are tried in order and the first
// one that matches wins; when none match the field receives a fixed default. Extraction
// never fails.
package extraction

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"tripcraft/internal/models/trip_models"
)

// DestinationIndex is the read-only view of the catalog the extractor needs.
type DestinationIndex interface {
	Keys() []string
	Aliases(key string) []string
}

// FallbackPolicy decides which destination is used when the text names none we know.
type FallbackPolicy string

const (
	FallbackDefault FallbackPolicy = "default"
	FallbackRandom  FallbackPolicy = "random"
)

const DefaultTripDays = 4

// Field names a preference field, used to report which fields fell back to defaults.
type Field string

const (
	FieldDestination   Field = "destination"
	FieldDates         Field = "dates"
	FieldBudget        Field = "budget_tier"
	FieldInterests     Field = "interests"
	FieldOrigin        Field = "origin"
	FieldDietary       Field = "dietary"
	FieldAccommodation Field = "accommodation"
	FieldPace          Field = "pace"
)

var DefaultInterests = []trip_models.Interest{trip_models.InterestCulture}

type Options struct {
	DefaultDestination string
	Fallback           FallbackPolicy
	DefaultDays        int
	Now                func() time.Time
	Rand               *rand.Rand
}

// Result is the outcome of one extraction along with the fields that were not found in the text.
type Result struct {
	Preferences trip_models.TripPreferences `json:"preferences"`
	Defaulted   []Field                     `json:"defaulted"`
}

func (r Result) WasDefaulted(f Field) bool {
	for _, d := range r.Defaulted {
		if d == f {
			return true
		}
	}
	return false
}

type Extractor struct {
	destinations *destinationMatcher
	opts         Options

	randMu sync.Mutex
}

func New(index DestinationIndex, opts Options) *Extractor {
	if opts.Fallback == "" {
		opts.Fallback = FallbackDefault
	}
	if opts.DefaultDays < 1 {
		opts.DefaultDays = DefaultTripDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return &Extractor{
		destinations: newDestinationMatcher(index),
		opts:         opts,
	}
}

// Extract returns a fully populated TripPreferences for any input.
func (e *Extractor) Extract(raw string) trip_models.TripPreferences {
	return e.Analyze(raw).Preferences
}

func (e *Extractor) Analyze(raw string) Result {
	text := normalizeText(raw)
	var res Result
	defaulted := func(f Field) { res.Defaulted = append(res.Defaulted, f) }

	prefs := trip_models.TripPreferences{}

	if key, ok := e.destinations.match(text); ok {
		prefs.Destination = key
	} else {
		prefs.Destination = e.fallbackDestination()
		prefs.DestinationAutoSelected = prefs.Destination != trip_models.UnresolvedDestination
		defaulted(FieldDestination)
	}

	if dates, ok := resolveDates(text, e.opts.Now()); ok {
		prefs.Dates = dates
	} else {
		prefs.Dates = trip_models.FlexibleDates(e.opts.DefaultDays)
		defaulted(FieldDates)
	}

	if tier, ok := resolveBudget(text); ok {
		prefs.Budget = tier
	} else {
		prefs.Budget = trip_models.BudgetTierModerate
		defaulted(FieldBudget)
	}

	if interests := resolveInterests(text); len(interests) > 0 {
		prefs.Interests = interests
	} else {
		prefs.Interests = append([]trip_models.Interest(nil), DefaultInterests...)
		defaulted(FieldInterests)
	}

	if origin, ok := resolveOrigin(text); ok {
		prefs.Origin = origin
	} else {
		prefs.Origin = trip_models.UnspecifiedOrigin
		defaulted(FieldOrigin)
	}

	if dietary, ok := resolveDietary(text); ok {
		prefs.Dietary = dietary
	} else {
		prefs.Dietary = trip_models.NoDietaryRestriction
		defaulted(FieldDietary)
	}

	if lodging, ok := resolveAccommodation(text); ok {
		prefs.Accommodation = lodging
	} else {
		prefs.Accommodation = trip_models.UnspecifiedLodging
		defaulted(FieldAccommodation)
	}

	if pace, ok := resolvePace(text); ok {
		prefs.Pace = pace
	} else {
		prefs.Pace = trip_models.PaceModerate
		defaulted(FieldPace)
	}

	res.Preferences = prefs
	return res
}

func (e *Extractor) fallbackDestination() string {
	keys := e.destinations.keys
	if len(keys) == 0 {
		return trip_models.UnresolvedDestination
	}

	if e.opts.Fallback == FallbackRandom {
		e.randMu.Lock()
		idx := e.opts.Rand.IntN(len(keys))
		e.randMu.Unlock()
		return keys[idx]
	}

	for _, k := range keys {
		if strings.EqualFold(k, e.opts.DefaultDestination) {
			return k
		}
	}
	return keys[0]
}

// normalizeText collapses whitespace so patterns only need to handle single spaces.
func normalizeText(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
