package allocation

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcraft/internal/catalog"
	"tripcraft/internal/models/trip_models"
)

func seeded(seed uint64) Options {
	return Options{
		Rand: rand.New(rand.NewPCG(seed, seed^0xabcdef)),
		Now:  func() time.Time { return time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC) },
	}
}

func flexiblePrefs(days int, interests ...trip_models.Interest) trip_models.TripPreferences {
	return trip_models.TripPreferences{
		Destination: "Testville",
		Origin:      trip_models.UnspecifiedOrigin,
		Dates:       trip_models.FlexibleDates(days),
		Budget:      trip_models.BudgetTierModerate,
		Interests:   interests,
		Dietary:     trip_models.NoDietaryRestriction,
	}
}

// candidatesFor builds n activities per category named "<category> <i>".
func candidatesFor(n int, categories ...trip_models.Interest) ([]string, map[string]trip_models.Interest) {
	var names []string
	categoryOf := make(map[string]trip_models.Interest)
	for _, c := range categories {
		for i := 1; i <= n; i++ {
			name := fmt.Sprintf("%s %d", c, i)
			names = append(names, name)
			categoryOf[name] = c
		}
	}
	return names, categoryOf
}

func realActivities(plans []trip_models.DayPlan) []trip_models.SlotAssignment {
	var out []trip_models.SlotAssignment
	for _, p := range plans {
		for _, s := range p.Slots {
			if !s.Filler {
				out = append(out, s)
			}
		}
	}
	return out
}

func TestAllocateBangkokScenario(t *testing.T) {
	c, err := catalog.Seed()
	require.NoError(t, err)

	dates, err := trip_models.FixedDates(
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	prefs := trip_models.TripPreferences{
		Destination: "Bangkok",
		Origin:      "New York",
		Dates:       dates,
		Budget:      trip_models.BudgetTierBudget,
		Interests:   []trip_models.Interest{trip_models.InterestArt, trip_models.InterestFood},
		Dietary:     trip_models.NoDietaryRestriction,
	}
	names, categoryOf := c.Candidates("Bangkok", prefs.Interests)

	plans, err := Allocate(prefs, names, categoryOf, seeded(1))
	require.NoError(t, err)
	require.Len(t, plans, 4)

	_, hasEvening := plans[0].Slot(trip_models.SlotEvening)
	require.False(t, hasEvening)
	for _, p := range plans[1:] {
		_, hasEvening = p.Slot(trip_models.SlotEvening)
		require.True(t, hasEvening, "day %d", p.DayIndex)
	}

	require.Equal(t, "2025-06-01", plans[0].Date)
	require.Equal(t, "Sun, Jun 1, 2025", plans[0].DateLabel)
	require.Equal(t, "2025-06-04", plans[3].Date)

	morning, _ := plans[0].Slot(trip_models.SlotMorning)
	require.Equal(t, ArrivalFiller, morning.Activity)
	require.True(t, morning.Filler)
}

func TestAllocateSlotOrderAndEveningSkip(t *testing.T) {
	names, categoryOf := candidatesFor(10, trip_models.InterestArt)
	plans, err := Allocate(flexiblePrefs(5, trip_models.InterestArt), names, categoryOf, seeded(2))
	require.NoError(t, err)

	for _, p := range plans {
		var order []trip_models.SlotName
		for _, s := range p.Slots {
			order = append(order, s.Slot)
		}
		if p.DayIndex == 1 {
			require.Equal(t, []trip_models.SlotName{trip_models.SlotMorning, trip_models.SlotLunch, trip_models.SlotAfternoon}, order)
			continue
		}
		require.Equal(t, []trip_models.SlotName{trip_models.SlotMorning, trip_models.SlotLunch, trip_models.SlotAfternoon, trip_models.SlotEvening}, order)
	}
}

func TestAllocateNoRepeatWhenPoolIsLargeEnough(t *testing.T) {
	for days := 1; days <= 10; days++ {
		names, categoryOf := candidatesFor(days, trip_models.InterestArt, trip_models.InterestFood, trip_models.InterestHistory)
		require.GreaterOrEqual(t, len(names), days*3)

		plans, err := Allocate(flexiblePrefs(days, trip_models.InterestArt, trip_models.InterestFood, trip_models.InterestHistory), names, categoryOf, seeded(uint64(days)))
		require.NoError(t, err)
		require.Len(t, plans, days)

		seen := make(map[string]bool)
		for _, s := range realActivities(plans) {
			require.False(t, seen[s.Activity], "%s repeated in a %d-day trip", s.Activity, days)
			seen[s.Activity] = true
		}
		require.Len(t, seen, 1+3*(days-1))
	}
}

func TestAllocateEmptyPoolIsAllFiller(t *testing.T) {
	c, err := catalog.Seed()
	require.NoError(t, err)
	var everything []string
	for _, key := range c.Keys() {
		everything = append(everything, c.ActivityNames(key)...)
	}

	plans, err := Allocate(flexiblePrefs(6, trip_models.InterestArt), nil, nil, seeded(3))
	require.NoError(t, err)
	require.Len(t, plans, 6)

	for _, p := range plans {
		for _, s := range p.Slots {
			require.True(t, s.Filler)
			if s.Slot == trip_models.SlotLunch {
				continue
			}
			require.NotContains(t, everything, s.Activity)
			require.True(t, IsFiller(s.Activity), s.Activity)
		}
	}
}

func TestAllocateReusesLeastRecentAfterFillers(t *testing.T) {
	names, categoryOf := candidatesFor(2, trip_models.InterestFood)
	plans, err := Allocate(flexiblePrefs(8, trip_models.InterestFood), names, categoryOf, seeded(4))
	require.NoError(t, err)

	used := realActivities(plans)
	require.Greater(t, len(used), 2, "expected reuse once fillers ran out")

	// Each slot vocabulary is spent before any activity comes back.
	fillerCount := 0
	for _, p := range plans {
		for _, s := range p.Slots {
			if s.Filler && s.Slot != trip_models.SlotLunch && s.Activity != ArrivalFiller {
				fillerCount++
			}
		}
	}
	require.Equal(t, 9, fillerCount)

	// Least recently used first means the two activities strictly alternate.
	for i := 2; i < len(used); i++ {
		require.Equal(t, used[i-2].Activity, used[i].Activity)
		require.NotEqual(t, used[i-1].Activity, used[i].Activity)
	}
}

func TestAllocateRotatesAcrossInterests(t *testing.T) {
	interests := []trip_models.Interest{trip_models.InterestArt, trip_models.InterestFood, trip_models.InterestNature}
	names, categoryOf := candidatesFor(10, interests...)

	plans, err := Allocate(flexiblePrefs(4, interests...), names, categoryOf, seeded(5))
	require.NoError(t, err)

	used := realActivities(plans)
	require.Len(t, used, 10)
	for i := 1; i < len(used); i++ {
		require.NotEqual(t, used[i-1].Category, used[i].Category, "slot %d", i)
	}

	counts := make(map[trip_models.Interest]int)
	for _, s := range used {
		counts[s.Category]++
	}
	for _, i := range interests {
		assert.GreaterOrEqual(t, counts[i], 3, string(i))
	}
}

func TestAllocateFallsBackToOtherCategoriesBeforeFiller(t *testing.T) {
	names := []string{"Gallery", "Harbour Cruise"}
	categoryOf := map[string]trip_models.Interest{
		"Gallery":        trip_models.InterestArt,
		"Harbour Cruise": trip_models.InterestCulture,
	}
	plans, err := Allocate(flexiblePrefs(2, trip_models.InterestArt), names, categoryOf, seeded(6))
	require.NoError(t, err)

	used := realActivities(plans)
	require.GreaterOrEqual(t, len(used), 2)
	require.Equal(t, "Gallery", used[0].Activity)
	require.Equal(t, "Harbour Cruise", used[1].Activity)
}

func TestAllocateDeduplicatesCandidates(t *testing.T) {
	names := []string{"Temple", "Temple", "", "Market", "Temple"}
	categoryOf := map[string]trip_models.Interest{"Temple": trip_models.InterestCulture, "Market": trip_models.InterestCulture}

	plans, err := Allocate(flexiblePrefs(2, trip_models.InterestCulture), names, categoryOf, seeded(7))
	require.NoError(t, err)

	used := realActivities(plans)
	require.Len(t, used, 2)
	require.ElementsMatch(t, []string{"Temple", "Market"}, []string{used[0].Activity, used[1].Activity})
}

func TestAllocateIsDeterministicForASeed(t *testing.T) {
	names, categoryOf := candidatesFor(8, trip_models.InterestArt, trip_models.InterestFood)
	prefs := flexiblePrefs(5, trip_models.InterestArt, trip_models.InterestFood)

	a, err := Allocate(prefs, names, categoryOf, seeded(42))
	require.NoError(t, err)
	b, err := Allocate(prefs, names, categoryOf, seeded(42))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestAllocateClampsLongTrips(t *testing.T) {
	dates, err := trip_models.FixedDates(
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	prefs := flexiblePrefs(1, trip_models.InterestArt)
	prefs.Dates = dates

	plans, err := Allocate(prefs, nil, nil, seeded(8))
	require.NoError(t, err)
	require.Len(t, plans, MaxDays)
	require.Equal(t, MaxDays, plans[len(plans)-1].DayIndex)

	opts := seeded(8)
	opts.MaxDays = 3
	plans, err = Allocate(prefs, nil, nil, opts)
	require.NoError(t, err)
	require.Len(t, plans, 3)
}

func TestAllocateRejectsNonPositiveDuration(t *testing.T) {
	for _, days := range []int{0, -3} {
		_, err := Allocate(flexiblePrefs(days, trip_models.InterestArt), nil, nil, seeded(9))
		require.ErrorIs(t, err, ErrNonPositiveDuration)
	}
}

func TestAllocateLunchFollowsBudgetAndDiet(t *testing.T) {
	names, categoryOf := candidatesFor(3, trip_models.InterestFood)
	prefs := flexiblePrefs(3, trip_models.InterestFood)
	prefs.Budget = trip_models.BudgetTierLuxury
	prefs.Dietary = "vegetarian"

	plans, err := Allocate(prefs, names, categoryOf, seeded(10))
	require.NoError(t, err)

	for _, p := range plans {
		lunch, ok := p.Slot(trip_models.SlotLunch)
		require.True(t, ok)
		require.True(t, lunch.Filler)
		require.True(t, strings.HasSuffix(lunch.Activity, " (vegetarian options)"), lunch.Activity)

		venue := strings.TrimSuffix(lunch.Activity, " (vegetarian options)")
		require.Contains(t, lunchVenues[trip_models.BudgetTierLuxury], venue)
		require.NotContains(t, names, venue)
	}
}

func TestAllocateAnchorsFlexibleTripsToday(t *testing.T) {
	plans, err := Allocate(flexiblePrefs(2, trip_models.InterestArt), nil, nil, seeded(11))
	require.NoError(t, err)

	require.Equal(t, "2025-03-10", plans[0].Date)
	require.Equal(t, "Mon, Mar 10, 2025", plans[0].DateLabel)
	require.Equal(t, "2025-03-11", plans[1].Date)
}

func TestAllocateArrivalMentionsAccommodation(t *testing.T) {
	prefs := flexiblePrefs(2, trip_models.InterestArt)
	prefs.Accommodation = "budget-friendly, central"

	plans, err := Allocate(prefs, nil, nil, seeded(12))
	require.NoError(t, err)

	morning, _ := plans[0].Slot(trip_models.SlotMorning)
	require.Equal(t, "Arrival: airport transfer and hotel check-in (budget-friendly, central)", morning.Activity)
	require.True(t, morning.Filler)
	require.True(t, IsFiller(morning.Activity))

	prefs.Accommodation = trip_models.UnspecifiedLodging
	plans, err = Allocate(prefs, nil, nil, seeded(12))
	require.NoError(t, err)
	morning, _ = plans[0].Slot(trip_models.SlotMorning)
	require.Equal(t, ArrivalFiller, morning.Activity)
}

func TestAllocateRelaxedPaceRestsInTheEvening(t *testing.T) {
	names, categoryOf := candidatesFor(20, trip_models.InterestArt)

	relaxed := flexiblePrefs(5, trip_models.InterestArt)
	relaxed.Pace = trip_models.PaceRelaxed
	plans, err := Allocate(relaxed, names, categoryOf, seeded(13))
	require.NoError(t, err)

	for _, p := range plans[1:] {
		evening, ok := p.Slot(trip_models.SlotEvening)
		require.True(t, ok, "day %d", p.DayIndex)
		require.True(t, evening.Filler)
		require.Equal(t, RestFiller, evening.Activity)
	}
	// Morning and afternoon on days 2-5 plus the day-1 afternoon.
	require.Len(t, realActivities(plans), 9)

	moderate := flexiblePrefs(5, trip_models.InterestArt)
	moderate.Pace = trip_models.PaceModerate
	plans, err = Allocate(moderate, names, categoryOf, seeded(13))
	require.NoError(t, err)
	require.Len(t, realActivities(plans), 13)
}
