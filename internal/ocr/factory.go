// Package ocr selects the OCR backend behind the port.TextExtractor
// contract. Both backends produce the same output shape, so the field
// parser downstream never branches on which one ran.
package ocr

import (
	"fmt"

	"flipgrid/internal/config"
	"flipgrid/internal/port"
)

// EngineFactory is a function that creates a TextExtractor from an engine
// config.
type EngineFactory func(cfg *config.OCREngineConfig) (port.TextExtractor, error)

// registry of OCR engine factories, populated by init() in each engine
// package or explicitly via Register.
var engines = map[string]EngineFactory{}

// Register registers an OCR engine factory by name.
func Register(name string, factory EngineFactory) {
	engines[name] = factory
}

// New creates a TextExtractor from an engine config using the registered
// factory.
func New(cfg *config.OCREngineConfig) (port.TextExtractor, error) {
	factory, ok := engines[cfg.Engine]
	if !ok {
		return nil, fmt.Errorf("unknown ocr engine: %s", cfg.Engine)
	}
	return factory(cfg)
}
