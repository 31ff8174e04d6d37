package extraction

import (
	"fmt"

	"tripcraft/internal/models/trip_models"
)

// FollowUpQuestions lists what to ask the traveller next to fill in fields the text left open.
func FollowUpQuestions(r Result) []string {
	p := r.Preferences
	var qs []string

	if r.WasDefaulted(FieldDestination) {
		if p.Destination == trip_models.UnresolvedDestination {
			qs = append(qs, "Where would you like to go?")
		} else {
			qs = append(qs, fmt.Sprintf("We didn't recognise a destination, so we picked %s. Would you like somewhere else?", p.Destination))
		}
	}
	if r.WasDefaulted(FieldDates) {
		qs = append(qs, fmt.Sprintf("What are your travel dates? We assumed a %d-day trip.", p.DurationDays()))
	}
	if p.HasInterest(trip_models.InterestArt) {
		qs = append(qs, "For art, do you prefer famous museums or hidden galleries?")
	}
	if r.WasDefaulted(FieldInterests) {
		qs = append(qs, "What do you enjoy most when travelling (e.g., art, food, nature, history)?")
	}
	if r.WasDefaulted(FieldDietary) {
		qs = append(qs, "Any dietary preferences (e.g., vegetarian)?")
	}
	if r.WasDefaulted(FieldAccommodation) {
		qs = append(qs, "Accommodation preference (e.g., budget-friendly, central)?")
	}
	if r.WasDefaulted(FieldPace) {
		qs = append(qs, "How much walking are you comfortable with daily?")
	}
	if r.WasDefaulted(FieldOrigin) {
		qs = append(qs, "Where will you be travelling from?")
	}
	return qs
}
