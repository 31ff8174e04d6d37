package trip_models

import "strings"

type BudgetTier string

const (
	BudgetTierBudget   BudgetTier = "budget"
	BudgetTierModerate BudgetTier = "moderate"
	BudgetTierLuxury   BudgetTier = "luxury"
)

func (b BudgetTier) Valid() bool {
	switch b {
	case BudgetTierBudget, BudgetTierModerate, BudgetTierLuxury:
		return true
	}
	return false
}

// Interest is a category identifier shared by the catalog and the interest keyword table.
type Interest string

const (
	InterestArt       Interest = "art"
	InterestFood      Interest = "food"
	InterestHistory   Interest = "history"
	InterestNature    Interest = "nature"
	InterestShopping  Interest = "shopping"
	InterestAdventure Interest = "adventure"
	InterestCulture   Interest = "culture"
	InterestBeach     Interest = "beach"
	InterestNightlife Interest = "nightlife"
)

// AllInterests is the canonical category order. Sets of interests are always kept in this order.
var AllInterests = []Interest{
	InterestArt,
	InterestFood,
	InterestHistory,
	InterestNature,
	InterestShopping,
	InterestAdventure,
	InterestCulture,
	InterestBeach,
	InterestNightlife,
}

func (i Interest) Valid() bool {
	for _, known := range AllInterests {
		if i == known {
			return true
		}
	}
	return false
}

// NormalizeInterests lower-cases, drops unknown and duplicate entries and returns the rest in canonical order.
func NormalizeInterests(in []Interest) []Interest {
	seen := make(map[Interest]bool, len(in))
	for _, i := range in {
		seen[Interest(strings.ToLower(strings.TrimSpace(string(i))))] = true
	}
	out := make([]Interest, 0, len(seen))
	for _, known := range AllInterests {
		if seen[known] {
			out = append(out, known)
		}
	}
	return out
}

const (
	UnresolvedDestination = "unresolved"
	UnspecifiedOrigin     = "unspecified"
	NoDietaryRestriction  = "none"
	UnspecifiedLodging    = "unspecified"
)

type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceModerate Pace = "moderate"
	PaceActive   Pace = "active"
)

func (p Pace) Valid() bool {
	return p == PaceRelaxed || p == PaceModerate || p == PaceActive
}

// TripPreferences is the structured form of a free-text trip description.
// It is a value: edits replace it wholesale.
type TripPreferences struct {
	Destination             string     `json:"destination"`
	DestinationAutoSelected bool       `json:"destination_auto_selected"`
	Origin                  string     `json:"origin"`
	Dates                   TripDates  `json:"dates"`
	Budget                  BudgetTier `json:"budget_tier"`
	Interests               []Interest `json:"interests"`
	Dietary                 string     `json:"dietary"`
	Accommodation           string     `json:"accommodation"`
	Pace                    Pace       `json:"pace"`
}

func (p TripPreferences) DurationDays() int {
	return p.Dates.DurationDays()
}

func (p TripPreferences) HasInterest(i Interest) bool {
	for _, own := range p.Interests {
		if own == i {
			return true
		}
	}
	return false
}
