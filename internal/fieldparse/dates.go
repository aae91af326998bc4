package fieldparse

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// canonicalLayout is the single normalized form every date candidate is
// reduced to, e.g. "JAN-2024".
const canonicalLayout = "Jan-2006"

// dateCandidate is one date substring found in the text, normalized, with
// its character offset retained for anchor-window matching.
type dateCandidate struct {
	pos  int
	when time.Time
}

func (d dateCandidate) canonical() string {
	return strings.ToUpper(d.when.Format(canonicalLayout))
}

// datePattern pairs a shape regexp with its interpretation. Patterns are
// ordered most-specific first; a later pattern never claims a span already
// claimed by an earlier one (MM/YY would otherwise eat the front of
// DD/MM/YYYY).
type datePattern struct {
	re     *regexp.Regexp
	strict bool
	parse  func(groups []string) (time.Time, bool)
}

var datePatterns = []datePattern{
	{
		// MON-YYYY
		re:    regexp.MustCompile(`(?i)\b([A-Z]{3})-(\d{4})\b`),
		parse: func(g []string) (time.Time, bool) { return parseMonYear(g[1], g[2]) },
	},
	{
		// DD/MM/YYYY
		re:    regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{4})\b`),
		parse: func(g []string) (time.Time, bool) { return parseDMY(g[1], g[2], g[3]) },
	},
	{
		// DD-MM-YYYY
		re:    regexp.MustCompile(`\b(\d{2})-(\d{2})-(\d{4})\b`),
		parse: func(g []string) (time.Time, bool) { return parseDMY(g[1], g[2], g[3]) },
	},
	{
		// DD.MM.YY
		re:     regexp.MustCompile(`\b(\d{2})\.(\d{2})\.(\d{2})\b`),
		strict: true,
		parse:  func(g []string) (time.Time, bool) { return parseDMY(g[1], g[2], expandYear(g[3])) },
	},
	{
		// MM/YYYY
		re:     regexp.MustCompile(`\b(\d{2})/(\d{4})\b`),
		strict: true,
		parse:  func(g []string) (time.Time, bool) { return parseDMY("01", g[1], g[2]) },
	},
	{
		// MM/YY
		re:     regexp.MustCompile(`\b(\d{2})/(\d{2})\b`),
		strict: true,
		parse:  func(g []string) (time.Time, bool) { return parseDMY("01", g[1], expandYear(g[2])) },
	},
}

// findDates collects every date-shaped substring, normalized. Strict mode
// adds the short shapes (DD.MM.YY, MM/YY, MM/YYYY) the loose parser leaves
// alone because they false-positive too easily on batch codes.
func findDates(text string, strict bool) []dateCandidate {
	var out []dateCandidate
	var claimed [][2]int

	for _, p := range datePatterns {
		if p.strict && !strict {
			continue
		}
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if overlaps(claimed, idx[0], idx[1]) {
				continue
			}
			groups := make([]string, 0, len(idx)/2)
			for i := 0; i < len(idx); i += 2 {
				if idx[i] < 0 {
					groups = append(groups, "")
					continue
				}
				groups = append(groups, text[idx[i]:idx[i+1]])
			}
			when, ok := p.parse(groups)
			if !ok {
				continue
			}
			claimed = append(claimed, [2]int{idx[0], idx[1]})
			out = append(out, dateCandidate{pos: idx[0], when: when})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].pos < out[j].pos })
	return out
}

func overlaps(claimed [][2]int, start, end int) bool {
	for _, span := range claimed {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}

// distinctSorted reduces candidates to their distinct normalized dates in
// chronological order.
func distinctSorted(candidates []dateCandidate) []time.Time {
	seen := make(map[string]bool, len(candidates))
	var out []time.Time
	for _, c := range candidates {
		key := c.canonical()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c.when)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func canonicalString(t time.Time) *string {
	s := strings.ToUpper(t.Format(canonicalLayout))
	return &s
}

func parseMonYear(mon, year string) (time.Time, bool) {
	if len(mon) != 3 {
		return time.Time{}, false
	}
	mon = strings.ToUpper(mon[:1]) + strings.ToLower(mon[1:])
	t, err := time.Parse(canonicalLayout, mon+"-"+year)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseDMY(day, month, year string) (time.Time, bool) {
	t, err := time.Parse("02-01-2006", day+"-"+month+"-"+year)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// expandYear widens a two-digit year; label dates are contemporary, so the
// 2000s are assumed.
func expandYear(yy string) string {
	return "20" + yy
}
