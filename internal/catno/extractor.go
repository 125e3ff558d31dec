package catno

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Identifier is a normalized catalogue number: uppercase, trimmed, with
// whitespace runs collapsed to single spaces.
type Identifier string

// String returns the identifier text.
func (id Identifier) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id Identifier) IsZero() bool { return id == "" }

// Rule names reported by ExtractMatch.
const (
	RuleEMI      = "emi"
	RulePrefixed = "prefixed"
	RuleGrouped  = "grouped"
	RuleSplit    = "split"
	RuleSuffixed = "suffixed"
	RulePlain    = "plain"
)

// Match describes the winning candidate of an extraction.
type Match struct {
	Identifier Identifier
	Rule       string
	// Offset is the byte offset of the match within the cleaned text.
	Offset int
}

type rule struct {
	name    string
	pattern *regexp.Regexp
	build   func(text string, loc []int) (string, bool)
}

// Patterns are anchored and evaluated at each token start of the cleaned text.
var rules = []rule{
	{
		name:    RuleEMI,
		pattern: regexp.MustCompile(`^([0-9][A-Z]) ?([0-9]{3})[ -]([0-9]{5})\b`),
		build:   verbatim,
	},
	{
		name:    RulePrefixed,
		pattern: regexp.MustCompile(`^([A-Z]{2,6})([ -]?)([0-9OIL]{1,6})(?:\.([0-9OIL]{3}))?(?:-([A-Z0-9]))?\b`),
		build:   buildPrefixed,
	},
	{
		name:    RuleGrouped,
		pattern: regexp.MustCompile(`^[0-9]{2} [0-9]{3} [A-Z]{2}\b`),
		build:   verbatim,
	},
	{
		name:    RuleSplit,
		pattern: regexp.MustCompile(`^[0-9]{4}[ .][0-9]{3}\b`),
		build:   verbatim,
	},
	{
		name:    RuleSuffixed,
		pattern: regexp.MustCompile(`^[0-9]{6} [0-9]\b`),
		build:   verbatim,
	},
	{
		name:    RulePlain,
		pattern: regexp.MustCompile(`^[0-9]{7}\b`),
		build:   verbatim,
	},
}

// Sleeve words and label codes that look like a letter prefix followed by digits.
var stopPrefixes = map[string]struct{}{
	"STEREO": {}, "MONO": {}, "SIDE": {}, "SIDA": {}, "SEITE": {}, "FACE": {},
	"LP": {}, "RPM": {}, "TEL": {}, "BOX": {}, "NO": {}, "NR": {}, "VOL": {},
	"TRACK": {}, "PART": {}, "MADE": {}, "YEAR": {}, "LC": {},
}

var ocrDigits = strings.NewReplacer("O", "0", "I", "1", "L", "1")

// Extract returns the best catalogue number candidate found in text.
func Extract(text string) (Identifier, bool) {
	m, ok := ExtractMatch(text)
	if !ok {
		return "", false
	}
	return m.Identifier, true
}

// ExtractMatch is Extract with the winning rule and offset reported. The
// longest normalized candidate wins; ties go to the earliest offset and then
// to rule order.
func ExtractMatch(text string) (Match, bool) {
	cleaned := clean(text)
	if cleaned == "" {
		return Match{}, false
	}

	var (
		best     Match
		bestRank int
		found    bool
	)
	for _, start := range tokenStarts(cleaned) {
		tail := cleaned[start:]
		for rank, r := range rules {
			loc := r.pattern.FindStringSubmatchIndex(tail)
			if loc == nil {
				continue
			}
			candidate, ok := r.build(tail, loc)
			if !ok {
				continue
			}
			m := Match{Identifier: Normalize(candidate), Rule: r.name, Offset: start}
			if !found || better(m, rank, best, bestRank) {
				best, bestRank, found = m, rank, true
			}
		}
	}
	return best, found
}

func better(m Match, rank int, best Match, bestRank int) bool {
	if len(m.Identifier) != len(best.Identifier) {
		return len(m.Identifier) > len(best.Identifier)
	}
	if m.Offset != best.Offset {
		return m.Offset < best.Offset
	}
	return rank < bestRank
}

// Normalize uppercases s, trims it and collapses internal whitespace.
func Normalize(s string) Identifier {
	return Identifier(strings.Join(strings.Fields(strings.ToUpper(s)), " "))
}

func verbatim(text string, loc []int) (string, bool) {
	return text[loc[0]:loc[1]], true
}

func buildPrefixed(text string, loc []int) (string, bool) {
	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return text[loc[2*i]:loc[2*i+1]]
	}
	prefix, sep, number, decimal, suffix := group(1), group(2), group(3), group(4), group(5)
	if _, stop := stopPrefixes[prefix]; stop {
		return "", false
	}
	if !hasDigit(number) {
		return "", false
	}
	if decimal != "" && !hasDigit(decimal) {
		return "", false
	}
	number = ocrDigits.Replace(number)
	// "SWEDEN 1986", "MUSIC 1986": sleeve text followed by a pressing year.
	if decimal == "" && suffix == "" && isYear(number) {
		return "", false
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(sep)
	b.WriteString(number)
	if decimal != "" {
		b.WriteByte('.')
		b.WriteString(ocrDigits.Replace(decimal))
	}
	if suffix != "" {
		b.WriteByte('-')
		b.WriteString(suffix)
	}
	return b.String(), true
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

func isYear(number string) bool {
	return len(number) == 4 && (strings.HasPrefix(number, "19") || strings.HasPrefix(number, "20"))
}

func tokenStarts(s string) []int {
	starts := []int{0}
	for i := 0; i < len(s)-1; i++ {
		if s[i] == ' ' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func clean(text string) string {
	text = strings.ToUpper(norm.NFKC.String(text))
	text = strings.Map(func(r rune) rune {
		switch r {
		case '‐', '‑', '‒', '–', '—', '―', '−', '﹣', '－':
			return '-'
		case '|', '_', '"', '\'', '`', '~', '*', ',', ';', ':', '!', '?', '#',
			'(', ')', '[', ']', '{', '}', '/', '\\', '‘', '’', '“', '”':
			return ' '
		}
		return r
	}, text)
	return strings.Join(strings.Fields(text), " ")
}
