package allocation

import (
	"fmt"
	"strings"

	"tripcraft/internal/models/trip_models"
)

const (
	ArrivalFiller = "Arrival: airport transfer and hotel check-in"
	RestFiller    = "Evening at leisure to rest"
)

var slotFillers = map[trip_models.SlotName][]string{
	trip_models.SlotMorning: {
		"Slow breakfast and a neighbourhood walk",
		"Free morning to explore at your own pace",
		"Morning at a local café",
	},
	trip_models.SlotAfternoon: {
		"Free afternoon to wander",
		"Rest and recharge at the hotel",
		"Browse a local street at leisure",
	},
	trip_models.SlotEvening: {
		"Dinner at a local favourite",
		"Evening stroll and sunset viewpoint",
		"Quiet evening near the hotel",
	},
}

var lunchVenues = map[trip_models.BudgetTier][]string{
	trip_models.BudgetTierBudget: {
		"Street-food lunch",
		"Lunch at a local food market",
		"Lunch at a casual neighbourhood eatery",
	},
	trip_models.BudgetTierModerate: {
		"Lunch at a neighbourhood bistro",
		"Lunch at a popular local restaurant",
		"Café lunch",
	},
	trip_models.BudgetTierLuxury: {
		"Fine-dining lunch",
		"Lunch at a chef's tasting counter",
		"Lunch at a rooftop restaurant",
	},
}

// IsFiller reports whether s is one of the allocator's placeholder strings rather than a catalog activity.
func IsFiller(s string) bool {
	if s == RestFiller || strings.HasPrefix(s, ArrivalFiller) {
		return true
	}
	for _, vocab := range slotFillers {
		for _, f := range vocab {
			if f == s {
				return true
			}
		}
	}
	return false
}

// arrivalFor names the lodging the traveller asked for, when they asked for any.
func arrivalFor(prefs trip_models.TripPreferences) string {
	if prefs.Accommodation == "" || prefs.Accommodation == trip_models.UnspecifiedLodging {
		return ArrivalFiller
	}
	return fmt.Sprintf("%s (%s)", ArrivalFiller, prefs.Accommodation)
}

func lunchFor(prefs trip_models.TripPreferences, rng Rand) string {
	venues, ok := lunchVenues[prefs.Budget]
	if !ok {
		venues = lunchVenues[trip_models.BudgetTierModerate]
	}
	venue := venues[rng.IntN(len(venues))]
	if prefs.Dietary != "" && prefs.Dietary != trip_models.NoDietaryRestriction {
		venue = fmt.Sprintf("%s (%s options)", venue, prefs.Dietary)
	}
	return venue
}
