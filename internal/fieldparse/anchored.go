package fieldparse

import (
	"regexp"

	"flipgrid/internal/domain"
	"flipgrid/internal/vocab"
)

// anchorWindow bounds how far after a "Mfg"/"Exp" label a date token may
// appear and still be claimed by it.
const anchorWindow = 40

var (
	mfgLabelRe = regexp.MustCompile(`(?i)\bMfg\b\.?:?`)
	expLabelRe = regexp.MustCompile(`(?i)\bExp\b\.?:?`)
)

// anchored is the strict parsing strategy: a date is assigned to the field
// whose label it follows within a bounded character distance. It is the
// higher-confidence mode for OCR output that preserves layout order (cloud
// block text), decoupling assignment from mere min/max ordering.
type anchored struct {
	vocab *vocab.Vocabulary
}

func (s *anchored) Parse(text string) domain.ParsedFields {
	fields := domain.ParsedFields{
		MRP: extractPrice(text),
	}
	brand := matchBrand(text, s.vocab.Brands)
	fields.Brand = &brand

	candidates := findDates(text, true)

	claimed := make(map[int]bool, len(candidates))
	if c, ok := dateAfterLabel(text, mfgLabelRe, candidates, claimed); ok {
		fields.ManufacturingDate = canonicalString(c.when)
	}
	if c, ok := dateAfterLabel(text, expLabelRe, candidates, claimed); ok {
		fields.ExpiryDate = canonicalString(c.when)
	}

	if fields.ManufacturingDate != nil || fields.ExpiryDate != nil {
		return fields
	}

	// No label claimed anything; fall back to the distinct-date count.
	dates := distinctSorted(candidates)
	switch len(dates) {
	case 1:
		// Unlike the loose strategy, a lone unanchored date in strict mode
		// is treated as the manufacturing date.
		fields.ManufacturingDate = canonicalString(dates[0])
	case 2:
		fields.ManufacturingDate = canonicalString(dates[0])
		fields.ExpiryDate = canonicalString(dates[1])
	}
	return fields
}

// dateAfterLabel returns the first unclaimed date candidate within the
// anchor window after any occurrence of the label.
func dateAfterLabel(text string, label *regexp.Regexp, candidates []dateCandidate, claimed map[int]bool) (dateCandidate, bool) {
	for _, loc := range label.FindAllStringIndex(text, -1) {
		labelEnd := loc[1]
		for i, c := range candidates {
			if claimed[i] {
				continue
			}
			if c.pos >= labelEnd && c.pos-labelEnd <= anchorWindow {
				claimed[i] = true
				return c, true
			}
		}
	}
	return dateCandidate{}, false
}
