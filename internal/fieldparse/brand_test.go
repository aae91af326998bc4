package fieldparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flipgrid/internal/domain"
	"flipgrid/internal/vocab"
)

func TestMatchBrand_WholeWordOnly(t *testing.T) {
	brands := vocab.Default().Brands

	// A brand embedded in a longer token is not a match.
	assert.Equal(t, domain.BrandNotFound, matchBrand("ColgatePlus toothpaste", brands))

	// The brand as its own word is.
	assert.Equal(t, "Colgate", matchBrand("Colgate Total toothpaste", brands))
}

func TestMatchBrand_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "Nivea", matchBrand("NIVEA soft cream", vocab.Default().Brands))
}

func TestMatchBrand_MultiWordBrandSingleConstituent(t *testing.T) {
	// Any single constituent word of a multi-word brand counts.
	assert.Equal(t, "Surf Excel", matchBrand("Excel matic liquid", []string{"Surf Excel", "Cinthol"}))
}

func TestMatchBrand_NoMatch(t *testing.T) {
	assert.Equal(t, domain.BrandNotFound, matchBrand("generic store label", vocab.Default().Brands))
}

func TestMatchBrand_OccurrenceCountTieBreak(t *testing.T) {
	text := "Dettol wash Dettol soap and some Lux"
	assert.Equal(t, "Dettol", matchBrand(text, []string{"Dettol", "Lux"}))
}

func TestMatchBrand_AnchorDistanceTieBreak(t *testing.T) {
	// Neither brand repeats; Lux sits right next to the MRP anchor.
	text := "Dettol somewhere far away from the price block MRP 45 Lux"
	assert.Equal(t, "Lux", matchBrand(text, []string{"Dettol", "Lux"}))
}

func TestMatchBrand_NoAnchorFallsBackToFirst(t *testing.T) {
	text := "Dettol and Lux on one shelf"
	assert.Equal(t, "Dettol", matchBrand(text, []string{"Dettol", "Lux"}))
}

func TestWordPattern_CompiledOnce(t *testing.T) {
	first := wordPattern("Colgate")
	assert.Same(t, first, wordPattern("Colgate"))
	assert.True(t, first.MatchString("COLGATE total"))
	assert.False(t, first.MatchString("ColgatePlus"))
}
