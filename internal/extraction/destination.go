package extraction

import (
	"regexp"
	"strings"
	"unicode"
)

type destinationPattern struct {
	key     string
	pattern *regexp.Regexp
}

// destinationMatcher looks for catalog keys and aliases as whole words anywhere in the text.
type destinationMatcher struct {
	keys     []string
	patterns []destinationPattern
}

func newDestinationMatcher(index DestinationIndex) *destinationMatcher {
	m := &destinationMatcher{}
	if index == nil {
		return m
	}
	m.keys = index.Keys()
	for _, key := range m.keys {
		names := append([]string{key}, index.Aliases(key)...)
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			m.patterns = append(m.patterns, destinationPattern{
				key:     key,
				pattern: regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(` + wordsPattern(name) + `)(?:$|[^\p{L}\p{N}])`),
			})
		}
	}
	return m
}

// wordsPattern quotes name and lets any run of spaces or hyphens separate its words.
func wordsPattern(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return unicode.IsSpace(r) || r == '-' })
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return strings.Join(parts, `[\s-]+`)
}

// match returns the key whose name occurs earliest in text. Ties go to catalog order.
// Occurrences right after "from" are treated as the origin and only used when nothing else matches.
func (m *destinationMatcher) match(text string) (string, bool) {
	bestKey, bestPos := "", -1
	originKey, originPos := "", -1

	for _, dp := range m.patterns {
		for _, loc := range dp.pattern.FindAllStringSubmatchIndex(text, -1) {
			start := loc[2]
			if precededByOriginCue(text[:start]) {
				if originPos < 0 || start < originPos {
					originKey, originPos = dp.key, start
				}
				continue
			}
			if bestPos < 0 || start < bestPos {
				bestKey, bestPos = dp.key, start
			}
			break
		}
	}

	if bestPos >= 0 {
		return bestKey, true
	}
	if originPos >= 0 {
		return originKey, true
	}
	return "", false
}

func precededByOriginCue(prefix string) bool {
	prefix = strings.ToLower(strings.TrimRightFunc(prefix, unicode.IsSpace))
	if !strings.HasSuffix(prefix, "from") {
		return false
	}
	rest := strings.TrimSuffix(prefix, "from")
	if rest == "" {
		return true
	}
	r := []rune(rest)
	return !unicode.IsLetter(r[len(r)-1])
}
