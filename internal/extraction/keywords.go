package extraction

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tripcraft/internal/models/trip_models"
)

// keywordPattern matches any of the given phrases as whole words, case-insensitively.
func keywordPattern(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = strings.ReplaceAll(w, " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

type budgetRule struct {
	tier    trip_models.BudgetTier
	pattern *regexp.Regexp
}

// budgetRules are in priority order: luxury cues beat budget cues, which beat moderate cues.
var budgetRules = []budgetRule{
	{trip_models.BudgetTierLuxury, keywordPattern(`luxury`, `luxurious`, `high-end`, `upscale`, `five-star`, `5-star`, `5 star`, `premium`, `splurge`, `lavish`)},
	{trip_models.BudgetTierBudget, keywordPattern(`budget`, `cheap`, `cheaply`, `affordable`, `backpack(?:ing|er)?`, `low-cost`, `low budget`, `shoestring`, `inexpensive`, `frugal`)},
	{trip_models.BudgetTierModerate, keywordPattern(`moderate`, `moderately`, `mid-range`, `midrange`, `mid range`, `reasonable`, `reasonably priced`, `standard`)},
}

func resolveBudget(text string) (trip_models.BudgetTier, bool) {
	for _, rule := range budgetRules {
		if rule.pattern.MatchString(text) {
			return rule.tier, true
		}
	}
	return "", false
}

type interestRule struct {
	interest trip_models.Interest
	pattern  *regexp.Regexp
}

var interestRules = []interestRule{
	{trip_models.InterestArt, keywordPattern(`arts?`, `artsy`, `artistic`, `museums?`, `galler(?:y|ies)`, `paintings?`, `exhibitions?`, `murals?`, `sculptures?`)},
	{trip_models.InterestFood, keywordPattern(`food`, `foodie`, `cuisine`, `culinary`, `eat`, `eating`, `restaurants?`, `dining`, `gastronomy`, `tasting`, `cooking`, `tapas`, `wine`)},
	{trip_models.InterestHistory, keywordPattern(`history`, `historic`, `historical`, `heritage`, `ancient`, `ruins`, `palaces?`, `castles?`, `monuments?`)},
	{trip_models.InterestNature, keywordPattern(`nature`, `parks?`, `hik(?:e|es|ing)`, `mountains?`, `gardens?`, `wildlife`, `waterfalls?`, `outdoors?`, `scenery`)},
	{trip_models.InterestShopping, keywordPattern(`shopping`, `shops?`, `markets?`, `malls?`, `boutiques?`, `souvenirs?`)},
	{trip_models.InterestAdventure, keywordPattern(`adventure`, `adventures`, `adventurous`, `diving`, `scuba`, `trek`, `trekking`, `rafting`, `zip-?line`, `kayak(?:ing)?`, `climbing`, `surf(?:ing)?`)},
	{trip_models.InterestCulture, keywordPattern(`culture`, `cultural`, `temples?`, `traditions?`, `traditional`, `festivals?`, `theat(?:re|er)`, `local life`, `dance`)},
	{trip_models.InterestBeach, keywordPattern(`beach(?:es)?`, `islands?`, `snorkel(?:l?ing)?`, `seaside`, `coast`, `coastal`, `sunbathing`)},
	{trip_models.InterestNightlife, keywordPattern(`nightlife`, `bars?`, `clubs?`, `clubbing`, `pubs?`, `cocktails?`, `party`, `partying`)},
}

// resolveInterests returns every category with a matching keyword, in canonical order.
// Phrases such as "I eat anything" answer the dietary question and are ignored here.
func resolveInterests(text string) []trip_models.Interest {
	text = noDietary.ReplaceAllString(text, " ")
	var out []trip_models.Interest
	for _, rule := range interestRules {
		if rule.pattern.MatchString(text) {
			out = append(out, rule.interest)
		}
	}
	return trip_models.NormalizeInterests(out)
}

var originPattern = regexp.MustCompile(`(?i)\b(?:(?:flying|departing|leaving|coming|travell?ing)\s+)?from\s+(\p{L}[\p{L}.'’\- ]*?)\s*(?:[,.;:!?()]|\s(?:on|to|in|for|with|and|at|between|during|next|this|around|via)\b|\s\d|$)`)

// notPlaces are words that can follow "from" without naming a place.
var notPlaces = map[string]bool{
	"today": true, "tomorrow": true, "now": true, "here": true, "the": true, "a": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true, "friday": true, "saturday": true, "sunday": true,
}

const maxOriginWords = 5

var monthName = regexp.MustCompile(`(?i)^` + monthPattern + `$`)

func resolveOrigin(text string) (string, bool) {
	for _, m := range originPattern.FindAllStringSubmatch(text, -1) {
		origin := strings.Trim(m[1], " .-'’")
		words := strings.Fields(origin)
		if len(words) == 0 || len(words) > maxOriginWords {
			continue
		}
		first := strings.ToLower(words[0])
		if notPlaces[first] {
			continue
		}
		if len(words) == 1 && monthName.MatchString(first) {
			continue
		}
		// A Caser is stateful, so each call gets its own.
		return cases.Title(language.English).String(origin), true
	}
	return "", false
}
