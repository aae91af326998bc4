package fieldparse

import (
	"regexp"
	"strings"
	"sync"

	"flipgrid/internal/domain"
)

// anchorWords are label landmarks that brand names tend to print near; the
// positional tie-break measures distance to the closest of these.
var anchorWords = []string{"MRP", "Mfd", "Exp.", "Manufactured", "Marketed By"}

// Compiled whole-word patterns, keyed by brand word. The brand vocabulary is
// small and stable for the process lifetime, so the cache never needs
// eviction.
var (
	wordPatternsMu sync.Mutex
	wordPatterns   = map[string]*regexp.Regexp{}
)

func wordPattern(word string) *regexp.Regexp {
	wordPatternsMu.Lock()
	defer wordPatternsMu.Unlock()
	re, ok := wordPatterns[word]
	if !ok {
		re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		wordPatterns[word] = re
	}
	return re
}

// brandMatch aggregates every whole-word hit any constituent word of a
// brand produced.
type brandMatch struct {
	brand     string
	positions []int
}

// matchBrand finds the best brand for the text. Any single constituent word
// of a multi-word brand matching case-insensitively as a whole word counts.
// Ties are broken by raw occurrence count when any brand repeats, otherwise
// by minimum character distance to the nearest anchor word. No match yields
// the "searched and failed" sentinel, distinct from a nil field.
func matchBrand(text string, brands []string) string {
	var matches []brandMatch
	for _, brand := range brands {
		var positions []int
		for _, word := range strings.Fields(brand) {
			for _, idx := range wordPattern(word).FindAllStringIndex(text, -1) {
				positions = append(positions, idx[0])
			}
		}
		if len(positions) > 0 {
			matches = append(matches, brandMatch{brand: brand, positions: positions})
		}
	}

	switch len(matches) {
	case 0:
		return domain.BrandNotFound
	case 1:
		return matches[0].brand
	}

	// Occurrence count wins when any brand repeats.
	best := matches[0]
	repeated := false
	for _, m := range matches {
		if len(m.positions) > 1 {
			repeated = true
		}
		if len(m.positions) > len(best.positions) {
			best = m
		}
	}
	if repeated {
		return best.brand
	}

	// Otherwise the brand nearest to any anchor word wins.
	anchors := anchorPositions(text)
	if len(anchors) == 0 {
		return matches[0].brand
	}
	bestDist := -1
	bestBrand := matches[0].brand
	for _, m := range matches {
		for _, p := range m.positions {
			for _, a := range anchors {
				d := p - a
				if d < 0 {
					d = -d
				}
				if bestDist < 0 || d < bestDist {
					bestDist = d
					bestBrand = m.brand
				}
			}
		}
	}
	return bestBrand
}

func anchorPositions(text string) []int {
	lower := strings.ToLower(text)
	var out []int
	for _, anchor := range anchorWords {
		needle := strings.ToLower(anchor)
		from := 0
		for {
			i := strings.Index(lower[from:], needle)
			if i < 0 {
				break
			}
			out = append(out, from+i)
			from += i + len(needle)
		}
	}
	return out
}
