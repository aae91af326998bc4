package domain

import (
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaInput identifies one unit of work for the pipeline: either a video
// file or an ordered list of still images. The paths are owned by the caller
// and read-only to the pipeline. Exactly one of VideoPath and ImagePaths is
// set.
type MediaInput struct {
	// CorrelationID keys this input's result within a batch. Batches give no
	// completion-order guarantee, so callers match results by this ID rather
	// than by submission order. Empty means "derive from the media path".
	CorrelationID string
	VideoPath     string
	ImagePaths    []string
}

// ID returns the correlation identifier, deriving it from the media path
// when the caller did not supply one.
func (m MediaInput) ID() string {
	if m.CorrelationID != "" {
		return m.CorrelationID
	}
	if m.VideoPath != "" {
		return m.VideoPath
	}
	if len(m.ImagePaths) > 0 {
		return m.ImagePaths[0]
	}
	return ""
}

// IsVideo reports whether this input is a video rather than a still-image
// sequence.
func (m MediaInput) IsVideo() bool { return m.VideoPath != "" }

// Name returns the base name of the media, used for artifact naming and the
// produce-keyword category gate.
func (m MediaInput) Name() string {
	p := m.VideoPath
	if p == "" && len(m.ImagePaths) > 0 {
		p = m.ImagePaths[0]
	}
	return strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
}

// Frame is a decoded image buffer together with its position in the source
// media. Frames live only for the duration of one pipeline run.
type Frame struct {
	Image    image.Image
	Index    int
	SourceID string
}

// FrameScore holds the per-frame quality signals on their native [0,1]
// scales and the blended composite on a 0-100 scale.
type FrameScore struct {
	Confidence float64 `json:"confidence"`
	Centering  float64 `json:"centering_score"`
	Size       float64 `json:"size_score"`
	Composite  float64 `json:"composite"`
}

// CompositeScore blends detection confidence, centering, and size-fraction
// into the 0-100 frame-quality score.
func CompositeScore(confidence, centering, size float64) float64 {
	return (0.4*confidence + 0.3*centering + 0.3*size) * 100
}

// BrandNotFound is the sentinel for "brand search exhausted without a
// match", distinct from a nil Brand ("field not applicable").
const BrandNotFound = "Brand not found"

// ParsedFields is the structured output of label-text parsing. Every field
// is independently optional; a missing field never blocks the others.
// Dates are canonical MON-YYYY strings.
type ParsedFields struct {
	Brand             *string `json:"brand"`
	MRP               *string `json:"mrp"`
	ManufacturingDate *string `json:"manufacturing_date"`
	ExpiryDate        *string `json:"expiry_date"`
}

// BrandFound reports whether brand matching produced a real brand rather
// than nothing or the not-found sentinel.
func (f ParsedFields) BrandFound() bool {
	return f.Brand != nil && *f.Brand != BrandNotFound
}

// Conclusive reports whether the fields justify committing a packaged
// product record: at least one of brand, expiry date, or MRP present.
func (f ParsedFields) Conclusive() bool {
	return f.BrandFound() || f.ExpiryDate != nil || f.MRP != nil
}

// ClassificationResult is the winning freshness prediction across a run's
// images, with the derived lookups resolved. ShelfLifeDays and
// FreshnessScore are nil only when the label falls outside the closed class
// set.
type ClassificationResult struct {
	Label          FreshnessClass `json:"label"`
	Confidence     float64        `json:"confidence"`
	ShelfLifeDays  *int           `json:"shelf_life_days"`
	FreshnessScore *int           `json:"freshness_score"`
}

// PackagedProduct is the record shape for the OCR path.
type PackagedProduct struct {
	ID                   uuid.UUID `db:"uuid" json:"uuid"`
	SlNo                 int       `db:"sl_no" json:"sl_no"`
	Brand                string    `db:"brand" json:"brand"`
	MRP                  *string   `db:"mrp" json:"mrp"`
	ManufacturingDate    *string   `db:"manufacturing_date" json:"manufacturing_date"`
	ExpiryDate           *string   `db:"expiry_date" json:"expiry_date"`
	Count                int       `db:"count" json:"count"`
	Expired              bool      `db:"expired" json:"expired"`
	ExpectedLifeSpanDays int       `db:"expected_life_span" json:"expected_life_span_days"`
	Timestamp            time.Time `db:"timestamp" json:"timestamp"`
}

// FreshProduce is the record shape for the freshness path. Produce holds the
// species name with the condition prefix stripped.
type FreshProduce struct {
	ID                   uuid.UUID `db:"uuid" json:"uuid"`
	SlNo                 int       `db:"sl_no" json:"sl_no"`
	Produce              string    `db:"produce" json:"produce"`
	FreshnessScore       int       `db:"freshness_score" json:"freshness_score"`
	ExpectedLifeSpanDays int       `db:"expected_life_span" json:"expected_life_span_days"`
	Timestamp            time.Time `db:"timestamp" json:"timestamp"`
}

// ProductRecord is the terminal artifact of a pipeline run. Exactly one of
// Packaged and Fresh is non-nil, matching Category.
type ProductRecord struct {
	Category ProductCategory  `json:"category"`
	Packaged *PackagedProduct `json:"packaged,omitempty"`
	Fresh    *FreshProduce    `json:"fresh,omitempty"`
}

// PipelineResult is the response envelope every pipeline run produces,
// independent of whether a record was committed. Confidence and composite
// scores are always surfaced so callers can audit borderline decisions.
type PipelineResult struct {
	InputID        string                `json:"input_id"`
	Status         ResultStatus          `json:"status"`
	Message        string                `json:"message"`
	Committed      bool                  `json:"committed"`
	Record         *ProductRecord        `json:"record,omitempty"`
	Fields         *ParsedFields         `json:"fields,omitempty"`
	Classification *ClassificationResult `json:"classification,omitempty"`
	FrameScore     *FrameScore           `json:"frame_score,omitempty"`
}
