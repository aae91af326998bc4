package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassFromIndex(t *testing.T) {
	c, ok := ClassFromIndex(0)
	assert.True(t, ok)
	assert.Equal(t, FreshApple, c)

	c, ok = ClassFromIndex(14)
	assert.True(t, ok)
	assert.Equal(t, RottenOrange, c)

	_, ok = ClassFromIndex(-1)
	assert.False(t, ok)
	_, ok = ClassFromIndex(NumClasses)
	assert.False(t, ok)
}

func TestFreshnessClass_Lookups(t *testing.T) {
	tests := []struct {
		class     FreshnessClass
		shelfLife int
		score     int
	}{
		{FreshApple, 7, 1},
		{FreshBanana, 5, 1},
		{FreshGuava, 6, 1},
		{FreshPomegranate, 7, 1},
		{FreshOrange, 6, 1},
		{PartiallyFreshApple, 4, 5},
		{PartiallyFreshBanana, 3, 5},
		{PartiallyFreshGuava, 4, 5},
		{PartiallyFreshPomegran, 5, 6},
		{PartiallyFreshOrange, 4, 6},
		{RottenApple, 0, 8},
		{RottenBanana, 0, 8},
		{RottenGuava, 0, 9},
		{RottenPomegranate, 0, 9},
		{RottenOrange, 0, 10},
	}
	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			days, ok := tt.class.ShelfLifeDays()
			assert.True(t, ok)
			assert.Equal(t, tt.shelfLife, days)

			score, ok := tt.class.FreshnessScore()
			assert.True(t, ok)
			assert.Equal(t, tt.score, score)
		})
	}
}

func TestFreshnessClass_UnknownLabel(t *testing.T) {
	unknown := FreshnessClass("freshmystery")

	_, ok := unknown.ShelfLifeDays()
	assert.False(t, ok)
	_, ok = unknown.FreshnessScore()
	assert.False(t, ok)
}

func TestFreshnessClass_Condition(t *testing.T) {
	assert.Equal(t, ConditionFresh, FreshBanana.Condition())
	assert.Equal(t, ConditionPartiallyFresh, PartiallyFreshBanana.Condition())
	assert.Equal(t, ConditionRotten, RottenBanana.Condition())
	assert.Equal(t, ConditionUnknown, FreshnessClass("stale").Condition())
}

func TestFreshnessClass_Produce(t *testing.T) {
	assert.Equal(t, "banana", FreshBanana.Produce())
	assert.Equal(t, "pomegranate", PartiallyFreshPomegran.Produce())
	assert.Equal(t, "orange", RottenOrange.Produce())
}
