// Package tesseract implements the local OCR backend on top of the
// gosseract bindings.
package tesseract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"flipgrid/internal/config"
	"flipgrid/internal/domain"
	"flipgrid/internal/ocr"
	"flipgrid/internal/port"
)

func init() {
	ocr.Register("tesseract", func(cfg *config.OCREngineConfig) (port.TextExtractor, error) {
		return NewEngine(cfg), nil
	})
}

// pageSegModes are the three segmentation hypotheses tried per image:
// uniform text block, full automatic layout, and a single variable-width
// column. Label photography defeats any single mode often enough that the
// ensemble is worth the extra passes.
var pageSegModes = []gosseract.PageSegMode{
	gosseract.PSM_SINGLE_BLOCK,
	gosseract.PSM_AUTO,
	gosseract.PSM_SINGLE_COLUMN,
}

// Engine runs a multi-pass tesseract ensemble over label images. It
// implements port.TextExtractor.
type Engine struct {
	languages []string

	// recognize runs one OCR pass; swapped in tests.
	recognize func(imagePath string, psm gosseract.PageSegMode, languages []string) (string, error)
}

// NewEngine creates a tesseract-backed Engine from an engine config.
func NewEngine(cfg *config.OCREngineConfig) *Engine {
	var langs []string
	for _, l := range strings.Split(cfg.Languages, ",") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return &Engine{
		languages: langs,
		recognize: recognizeOnce,
	}
}

// Extract OCRs each image under all page-segmentation modes, keeps the
// longest string per image as the information-retention winner, and joins
// the winners with single spaces in input order. The longest-string rule is
// an accepted heuristic for "most information retained", not a correctness
// guarantee.
func (e *Engine) Extract(ctx context.Context, imagePaths []string) (string, error) {
	winners := make([]string, 0, len(imagePaths))
	for _, path := range imagePaths {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("tesseract.Engine.Extract: %w: %v", domain.ErrInputUnavailable, err)
		}

		best := ""
		for _, psm := range pageSegModes {
			text, err := e.recognize(path, psm, e.languages)
			if err != nil {
				return "", fmt.Errorf("tesseract.Engine.Extract: %s (psm %d): %w", path, psm, err)
			}
			if len(text) > len(best) {
				best = text
			}
		}
		winners = append(winners, best)
	}
	return strings.Join(winners, " "), nil
}

func recognizeOnce(imagePath string, psm gosseract.PageSegMode, languages []string) (string, error) {
	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := client.SetPageSegMode(psm); err != nil {
		return "", fmt.Errorf("set page seg mode: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
