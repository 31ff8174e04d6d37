package trip_models

type SlotName string

const (
	SlotMorning   SlotName = "morning"
	SlotLunch     SlotName = "lunch"
	SlotAfternoon SlotName = "afternoon"
	SlotEvening   SlotName = "evening"
)

// SlotAssignment is what fills one time window of a day.
type SlotAssignment struct {
	Slot     SlotName `json:"slot"`
	Activity string   `json:"activity"`
	Category Interest `json:"category,omitempty"`
	Filler   bool     `json:"filler"`
}

type DayPlan struct {
	DayIndex  int              `json:"day_index"`
	Date      string           `json:"date"`
	DateLabel string           `json:"date_label"`
	Slots     []SlotAssignment `json:"slots"`
}

func (d DayPlan) Slot(name SlotName) (SlotAssignment, bool) {
	for _, s := range d.Slots {
		if s.Slot == name {
			return s, true
		}
	}
	return SlotAssignment{}, false
}
