package fieldparse

import (
	"regexp"
	"strings"
)

// Price markers are volatile in surrounding format but reliably co-located
// with the amount on the same printed line, so the search is line-local
// rather than a whole-text regex.
var priceMarkers = []string{"MRP", "M.R.P"}

var priceRe = regexp.MustCompile(`\d+(?:,\d+)*(?:\.\d{1,2})?`)

// extractPrice returns the first numeric token on the first line carrying a
// price marker, with grouping commas stripped. Nil when no marker line
// exists.
func extractPrice(text string) *string {
	for _, line := range strings.Split(text, "\n") {
		marked := false
		for _, marker := range priceMarkers {
			if strings.Contains(line, marker) {
				marked = true
				break
			}
		}
		if !marked {
			continue
		}
		if match := priceRe.FindString(line); match != "" {
			price := strings.ReplaceAll(match, ",", "")
			return &price
		}
	}
	return nil
}
