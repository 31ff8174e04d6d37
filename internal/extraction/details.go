package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"tripcraft/internal/models/trip_models"
)

type labelRule struct {
	label   string
	pattern *regexp.Regexp
}

var dietaryRules = []labelRule{
	{"vegan", keywordPattern(`vegan`)},
	{"vegetarian", keywordPattern(`vegetarian`, `veggie`)},
	{"pescatarian", keywordPattern(`pescatarian`, `pescetarian`)},
	{"halal", keywordPattern(`halal`)},
	{"kosher", keywordPattern(`kosher`)},
	{"gluten-free", keywordPattern(`gluten[\s-]*free`, `celiac`, `coeliac`)},
	{"dairy-free", keywordPattern(`dairy[\s-]*free`, `lactose[\s-]*free`, `lactose intolerant`)},
}

var accommodationRules = []labelRule{
	{"budget-friendly", keywordPattern(`budget[\s-]*friendly`, `cheap hotel`, `affordable hotel`)},
	{"central", keywordPattern(`central`, `centrally located`, `city cent(?:er|re)`, `downtown`)},
	{"boutique", keywordPattern(`boutique hotel`, `boutique`)},
	{"resort", keywordPattern(`resorts?`, `all[\s-]*inclusive`)},
	{"hostel", keywordPattern(`hostels?`, `dorm`)},
	{"apartment", keywordPattern(`apartments?`, `airbnb`, `vacation rental`)},
}

// resolveLabels joins every matching label in rule order.
func resolveLabels(rules []labelRule, text string) (string, bool) {
	var labels []string
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			labels = append(labels, r.label)
		}
	}
	if len(labels) == 0 {
		return "", false
	}
	return strings.Join(labels, ", "), true
}

func resolveDietary(text string) (string, bool) {
	// "no dietary restrictions" states the default explicitly.
	if noDietary.MatchString(text) {
		return trip_models.NoDietaryRestriction, true
	}
	return resolveLabels(dietaryRules, text)
}

var noDietary = keywordPattern(`no dietary (?:restrictions?|preferences?|requirements?)`, `eat anything`, `no allergies`)

func resolveAccommodation(text string) (string, bool) {
	return resolveLabels(accommodationRules, text)
}

type paceRule struct {
	pace    trip_models.Pace
	pattern *regexp.Regexp
	// accept, when set, decides from the submatches whether the rule applies.
	accept func(m []string) bool
}

var walkingDistance = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:(?:-|–|to)\s*(\d+(?:\.\d+)?)\s*)?(miles?|mi|km|kilomet(?:er|re)s?)\b`)

var paceRules = []paceRule{
	{pace: trip_models.PaceRelaxed, pattern: keywordPattern(`relaxed`, `relaxing`, `slow`, `slow-paced`, `leisurely`, `easy-going`, `laid-back`, `little walking`, `minimal walking`, `not much walking`, `limited mobility`, `wheelchair`)},
	{pace: trip_models.PaceActive, pattern: keywordPattern(`active`, `energetic`, `fast-paced`, `packed`, `lots of walking`, `a lot of walking`, `love walking`)},
	{pace: trip_models.PaceActive, pattern: walkingDistance, accept: func(m []string) bool { return walkedMiles(m) >= 5 }},
	{pace: trip_models.PaceRelaxed, pattern: walkingDistance, accept: func(m []string) bool { return walkedMiles(m) <= 2 }},
	{pace: trip_models.PaceModerate, pattern: walkingDistance},
}

func resolvePace(text string) (trip_models.Pace, bool) {
	for _, r := range paceRules {
		m := r.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if r.accept == nil || r.accept(m) {
			return r.pace, true
		}
	}
	return "", false
}

// walkedMiles takes the upper bound of a walking distance like "5-7 miles" and converts it to miles.
func walkedMiles(m []string) float64 {
	value := m[1]
	if m[2] != "" {
		value = m[2]
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	if strings.HasPrefix(strings.ToLower(m[3]), "k") {
		return n * 0.621371
	}
	return n
}
