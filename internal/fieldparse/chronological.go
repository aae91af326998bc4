package fieldparse

import (
	"flipgrid/internal/domain"
	"flipgrid/internal/vocab"
)

// chronological is the loose parsing strategy: every date-shaped substring
// is collected and the pair is ordered chronologically, because the text
// order of "Mfg"/"Exp" labels in ensemble OCR output is not trustworthy.
type chronological struct {
	vocab *vocab.Vocabulary
}

func (s *chronological) Parse(text string) domain.ParsedFields {
	fields := domain.ParsedFields{
		MRP: extractPrice(text),
	}
	brand := matchBrand(text, s.vocab.Brands)
	fields.Brand = &brand

	dates := distinctSorted(findDates(text, false))
	switch len(dates) {
	case 1:
		// A lone date on packaging is far more often the expiry.
		fields.ExpiryDate = canonicalString(dates[0])
	case 2:
		fields.ManufacturingDate = canonicalString(dates[0])
		fields.ExpiryDate = canonicalString(dates[1])
	}
	// Zero dates, or three and more, is ambiguous: both fields stay nil.
	return fields
}
