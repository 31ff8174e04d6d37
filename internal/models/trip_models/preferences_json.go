package trip_models

import (
	"encoding/json"
	"fmt"
	"time"
)

// tripPreferencesJSON is the flat wire shape of TripPreferences.
type tripPreferencesJSON struct {
	Destination             string     `json:"destination"`
	DestinationAutoSelected bool       `json:"destination_auto_selected"`
	Origin                  string     `json:"origin"`
	StartDate               string     `json:"start_date,omitempty"`
	EndDate                 string     `json:"end_date,omitempty"`
	DurationDays            int        `json:"duration_days"`
	Budget                  BudgetTier `json:"budget_tier"`
	Interests               []Interest `json:"interests"`
	Dietary                 string     `json:"dietary"`
	Accommodation           string     `json:"accommodation"`
	Pace                    Pace       `json:"pace"`
}

func (p TripPreferences) MarshalJSON() ([]byte, error) {
	out := tripPreferencesJSON{
		Destination:             p.Destination,
		DestinationAutoSelected: p.DestinationAutoSelected,
		Origin:                  p.Origin,
		DurationDays:            p.Dates.DurationDays(),
		Budget:                  p.Budget,
		Interests:               p.Interests,
		Dietary:                 p.Dietary,
		Accommodation:           p.Accommodation,
		Pace:                    p.Pace,
	}
	if start, ok := p.Dates.Start(); ok {
		end, _ := p.Dates.End()
		out.StartDate = start.Format(DateLayout)
		out.EndDate = end.Format(DateLayout)
	}
	if out.Interests == nil {
		out.Interests = []Interest{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts either start_date+end_date or duration_days. When dates are present
// duration_days is ignored and derived from them.
func (p *TripPreferences) UnmarshalJSON(data []byte) error {
	var in tripPreferencesJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	dates := FlexibleDates(in.DurationDays)
	switch {
	case in.StartDate != "" && in.EndDate != "":
		start, err := time.Parse(DateLayout, in.StartDate)
		if err != nil {
			return fmt.Errorf("start_date: %w", err)
		}
		end, err := time.Parse(DateLayout, in.EndDate)
		if err != nil {
			return fmt.Errorf("end_date: %w", err)
		}
		if dates, err = FixedDates(start, end); err != nil {
			return err
		}
	case in.StartDate != "" || in.EndDate != "":
		return fmt.Errorf("start_date and end_date must be given together")
	}

	*p = TripPreferences{
		Destination:             in.Destination,
		DestinationAutoSelected: in.DestinationAutoSelected,
		Origin:                  in.Origin,
		Dates:                   dates,
		Budget:                  in.Budget,
		Interests:               in.Interests,
		Dietary:                 in.Dietary,
		Accommodation:           in.Accommodation,
		Pace:                    in.Pace,
	}
	return nil
}
