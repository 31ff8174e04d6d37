// Package allocation spreads candidate activities over the days of a trip.
package allocation

import (
	"errors"
	"math/rand/v2"
	"time"

	"tripcraft/internal/models/trip_models"
)

var ErrNonPositiveDuration = errors.New("trip must last at least one day")

const MaxDays = 30

const dateLabelLayout = "Mon, Jan 2, 2006"

// Rand is the randomness the allocator consumes. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type Options struct {
	// Rand drives shuffling and filler choice. A fixed seed gives a reproducible itinerary.
	Rand Rand
	// Now anchors trips that have no start date.
	Now     func() time.Time
	MaxDays int
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().Unix())))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.MaxDays < 1 {
		o.MaxDays = MaxDays
	}
	return o
}

// ClampDays bounds a trip length to max days.
func ClampDays(days, max int) int {
	if days > max {
		return max
	}
	return days
}

var daySlots = []trip_models.SlotName{
	trip_models.SlotMorning,
	trip_models.SlotLunch,
	trip_models.SlotAfternoon,
	trip_models.SlotEvening,
}

// Allocate builds one DayPlan per trip day. Activities are not repeated until every candidate has
// been placed, and consecutive picks rotate through the traveller's interests. A relaxed pace
// turns every evening into rest time.
func Allocate(
	prefs trip_models.TripPreferences,
	candidates []string,
	categoryOf map[string]trip_models.Interest,
	opts Options,
) ([]trip_models.DayPlan, error) {
	days := prefs.DurationDays()
	if days <= 0 {
		return nil, ErrNonPositiveDuration
	}
	opts = opts.withDefaults()
	days = ClampDays(days, opts.MaxDays)

	p := newPool(prefs.Interests, candidates, categoryOf, opts.Rand)

	base, fixed := prefs.Dates.Start()
	if !fixed {
		base = trip_models.CalendarDay(opts.Now())
	}

	plans := make([]trip_models.DayPlan, 0, days)
	for d := 1; d <= days; d++ {
		date := base.AddDate(0, 0, d-1)
		plan := trip_models.DayPlan{
			DayIndex:  d,
			Date:      date.Format(trip_models.DateLayout),
			DateLabel: date.Format(dateLabelLayout),
			Slots:     make([]trip_models.SlotAssignment, 0, len(daySlots)),
		}

		for _, slot := range daySlots {
			switch {
			case slot == trip_models.SlotEvening && d == 1:
				continue
			case slot == trip_models.SlotMorning && d == 1:
				plan.Slots = append(plan.Slots, filler(slot, arrivalFor(prefs)))
			case slot == trip_models.SlotLunch:
				plan.Slots = append(plan.Slots, filler(slot, lunchFor(prefs, opts.Rand)))
			case slot == trip_models.SlotEvening && prefs.Pace == trip_models.PaceRelaxed:
				// Relaxed trips keep evenings free and leave the pool for daytime slots.
				plan.Slots = append(plan.Slots, filler(slot, RestFiller))
			default:
				plan.Slots = append(plan.Slots, p.next(slot))
			}
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func filler(slot trip_models.SlotName, text string) trip_models.SlotAssignment {
	return trip_models.SlotAssignment{Slot: slot, Activity: text, Filler: true}
}
