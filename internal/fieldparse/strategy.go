// Package fieldparse turns raw OCR text into structured label fields. Two
// strategies with different precision guarantees are available: the loose
// chronological heuristic and the stricter label-anchored heuristic used
// when the OCR backend preserves layout order.
package fieldparse

import (
	"fmt"

	"flipgrid/internal/domain"
	"flipgrid/internal/vocab"
)

// Strategy parses raw label text into structured fields. Parsing never
// fails: an unextractable field is left nil (or the brand sentinel) without
// blocking the others.
type Strategy interface {
	Parse(text string) domain.ParsedFields
}

// Strategy names selectable via configuration.
const (
	StrategyChronological = "chronological"
	StrategyAnchored      = "anchored"
)

// New creates the named parsing strategy over the given vocabulary.
func New(name string, v *vocab.Vocabulary) (Strategy, error) {
	switch name {
	case StrategyChronological:
		return &chronological{vocab: v}, nil
	case StrategyAnchored:
		return &anchored{vocab: v}, nil
	default:
		return nil, fmt.Errorf("unknown parser strategy: %s", name)
	}
}
