package domain

import "strings"

// FreshnessClass is one of the closed set of labels the pretrained pilot
// model can emit: a condition (fresh / partiallyfresh / rotten) fused with a
// produce species.
type FreshnessClass string

const (
	FreshApple             FreshnessClass = "freshapple"
	FreshBanana            FreshnessClass = "freshbanana"
	FreshGuava             FreshnessClass = "freshguava"
	FreshPomegranate       FreshnessClass = "freshpomegranate"
	FreshOrange            FreshnessClass = "freshorange"
	PartiallyFreshApple    FreshnessClass = "partiallyfreshapple"
	PartiallyFreshBanana   FreshnessClass = "partiallyfreshbanana"
	PartiallyFreshGuava    FreshnessClass = "partiallyfreshguava"
	PartiallyFreshPomegran FreshnessClass = "partiallyfreshpomegranate"
	PartiallyFreshOrange   FreshnessClass = "partiallyfreshorange"
	RottenApple            FreshnessClass = "rottenapple"
	RottenBanana           FreshnessClass = "rottenbanana"
	RottenGuava            FreshnessClass = "rottenguava"
	RottenPomegranate      FreshnessClass = "rottenpomegranate"
	RottenOrange           FreshnessClass = "rottenorange"
)

// classIndex maps the model's output index to its label. The order is fixed
// by the training run and must not be reordered.
var classIndex = [...]FreshnessClass{
	FreshApple,
	FreshBanana,
	FreshGuava,
	FreshPomegranate,
	FreshOrange,
	PartiallyFreshApple,
	PartiallyFreshBanana,
	PartiallyFreshGuava,
	PartiallyFreshPomegran,
	PartiallyFreshOrange,
	RottenApple,
	RottenBanana,
	RottenGuava,
	RottenPomegranate,
	RottenOrange,
}

// NumClasses is the size of the model's output layer.
const NumClasses = len(classIndex)

// ClassFromIndex resolves a model output index to its FreshnessClass.
func ClassFromIndex(i int) (FreshnessClass, bool) {
	if i < 0 || i >= len(classIndex) {
		return "", false
	}
	return classIndex[i], true
}

// ShelfLifeDays returns the remaining shelf life for the label. The second
// return is false for labels outside the closed class set.
func (c FreshnessClass) ShelfLifeDays() (int, bool) {
	switch c {
	case FreshApple, FreshPomegranate:
		return 7, true
	case FreshGuava, FreshOrange:
		return 6, true
	case FreshBanana, PartiallyFreshPomegran:
		return 5, true
	case PartiallyFreshApple, PartiallyFreshGuava, PartiallyFreshOrange:
		return 4, true
	case PartiallyFreshBanana:
		return 3, true
	case RottenApple, RottenBanana, RottenGuava, RottenPomegranate, RottenOrange:
		return 0, true
	}
	return 0, false
}

// FreshnessScore returns the 1-10 degradation score for the label (1 = fully
// fresh, 10 = fully rotten). The second return is false for labels outside
// the closed class set.
func (c FreshnessClass) FreshnessScore() (int, bool) {
	switch c {
	case FreshApple, FreshBanana, FreshGuava, FreshPomegranate, FreshOrange:
		return 1, true
	case PartiallyFreshApple, PartiallyFreshBanana, PartiallyFreshGuava:
		return 5, true
	case PartiallyFreshPomegran, PartiallyFreshOrange:
		return 6, true
	case RottenApple, RottenBanana:
		return 8, true
	case RottenGuava, RottenPomegranate:
		return 9, true
	case RottenOrange:
		return 10, true
	}
	return 0, false
}

// Condition is the produce-condition family of a FreshnessClass.
type Condition string

const (
	ConditionFresh          Condition = "fresh"
	ConditionPartiallyFresh Condition = "partiallyfresh"
	ConditionRotten         Condition = "rotten"
	ConditionUnknown        Condition = "unknown"
)

// Condition returns the condition family of the label. The partiallyfresh
// prefix must be checked before fresh.
func (c FreshnessClass) Condition() Condition {
	s := string(c)
	switch {
	case strings.HasPrefix(s, string(ConditionPartiallyFresh)):
		return ConditionPartiallyFresh
	case strings.HasPrefix(s, string(ConditionFresh)):
		return ConditionFresh
	case strings.HasPrefix(s, string(ConditionRotten)):
		return ConditionRotten
	}
	return ConditionUnknown
}

// Produce returns the species with the condition prefix stripped, e.g.
// "freshbanana" -> "banana".
func (c FreshnessClass) Produce() string {
	s := string(c)
	cond := c.Condition()
	if cond == ConditionUnknown {
		return s
	}
	return strings.TrimPrefix(s, string(cond))
}

// ProductCategory selects which shape of ProductRecord a pipeline run emits.
type ProductCategory string

const (
	CategoryPackaged     ProductCategory = "packaged"
	CategoryFreshProduce ProductCategory = "fresh_produce"
)

// ResultStatus is the caller-visible outcome of a pipeline run.
type ResultStatus string

const (
	// StatusCreated means a record was committed to the sink.
	StatusCreated ResultStatus = "CREATED"
	// StatusFetched means extraction produced a best-effort result that was
	// deliberately not committed: inconclusive fields, rotten produce, or no
	// usable frame.
	StatusFetched ResultStatus = "FETCHED"
	// StatusError means the run failed; Message carries the reason.
	StatusError ResultStatus = "ERROR"
)
