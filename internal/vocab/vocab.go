// Package vocab holds the closed vocabularies the pipeline matches against:
// known brand names, the target-object classes that make a frame
// interesting, and the produce keywords driving the category gate. They are
// configuration data, loadable from a YAML file without a rebuild.
package vocab

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary is the set of closed word lists used across the pipeline.
type Vocabulary struct {
	// Brands are the known brand strings for label matching.
	Brands []string `yaml:"brands"`
	// TargetObjects are detector class-name keywords that qualify a frame
	// (packaging and produce shapes).
	TargetObjects []string `yaml:"target_objects"`
	// ProduceKeywords route an input to the freshness path when present in
	// its path or name.
	ProduceKeywords []string `yaml:"produce_keywords"`
}

// Load reads a Vocabulary from a YAML file. An empty path returns the
// built-in defaults.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vocab.Load: %w", err)
	}
	v := &Vocabulary{}
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("vocab.Load: parsing %s: %w", path, err)
	}
	if len(v.Brands) == 0 {
		v.Brands = Default().Brands
	}
	if len(v.TargetObjects) == 0 {
		v.TargetObjects = Default().TargetObjects
	}
	if len(v.ProduceKeywords) == 0 {
		v.ProduceKeywords = Default().ProduceKeywords
	}
	return v, nil
}

// IsTargetObject reports whether a detector class name contains any
// target-object keyword. Class names arrive in ImageNet style
// ("pop_bottle", "spaghetti_squash"), so substring containment is the
// intended match, not whole-word.
func (v *Vocabulary) IsTargetObject(className string) bool {
	lower := strings.ToLower(className)
	for _, kw := range v.TargetObjects {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsProduce reports whether any produce keyword occurs in the given media
// path or name.
func (v *Vocabulary) IsProduce(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range v.ProduceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	return &Vocabulary{
		Brands: []string{
			"WH Protective Oil", "Colgate", "LetsShave", "Nivea", "Garnier",
			"Dettol", "Vaseline", "Himalaya", "Dabur", "Gillette",
			"Johnson & Johnson", "L'Oréal", "Parachute", "Pepsodent",
			"Sunsilk", "Lifebuoy", "Ponds", "Clinic Plus", "Head & Shoulders",
			"Oral-B", "Sensodyne", "Fair & Lovely", "Rexona", "Cinthol",
			"Patanjali", "Godrej", "Emami", "Boroplus", "Santoor", "ITC",
			"Park Avenue", "Fiama", "Old Spice", "Lux", "Wild Stone", "Axe",
			"Yardley", "Nirma", "Surf Excel", "Ariel", "Tide", "Rin", "Vim",
			"Medimix",
		},
		TargetObjects: []string{
			"vegetable", "fruit", "produce", "spaghetti_squash", "package",
			"box", "container", "pop_bottle", "laptop", "sunscreen", "modem",
			"lotion", "oil_filter", "hard_disc", "carton",
		},
		ProduceKeywords: []string{
			"fruit", "vegetable", "produce", "apple", "banana", "guava",
			"pomegranate", "orange",
		},
	}
}
