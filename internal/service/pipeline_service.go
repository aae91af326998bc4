// Package service orchestrates the pipeline stages into complete runs and
// batches.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"flipgrid/internal/domain"
	"flipgrid/internal/fieldparse"
	"flipgrid/internal/port"
	"flipgrid/internal/vocab"
)

// FrameSelector resolves a media input to the image paths downstream stages
// consume.
type FrameSelector interface {
	SelectBest(ctx context.Context, media domain.MediaInput) ([]string, *domain.FrameScore, error)
}

// FreshnessClassifier reduces a run's images to one freshness verdict.
type FreshnessClassifier interface {
	Classify(ctx context.Context, imagePaths []string) (*domain.ClassificationResult, error)
}

// PipelineService runs one media input end to end: frame selection, then
// either the OCR path or the freshness path depending on the category gate,
// then the commit decision. Run never returns a raw error; every failure is
// folded into the result envelope so batch siblings stay isolated.
type PipelineService struct {
	selector   FrameSelector
	extractor  port.TextExtractor
	parser     fieldparse.Strategy
	classifier FreshnessClassifier
	sink       port.RecordSink
	vocab      *vocab.Vocabulary
}

// NewPipelineService creates a new PipelineService.
func NewPipelineService(
	selector FrameSelector,
	extractor port.TextExtractor,
	parser fieldparse.Strategy,
	classifier FreshnessClassifier,
	sink port.RecordSink,
	v *vocab.Vocabulary,
) *PipelineService {
	return &PipelineService{
		selector:   selector,
		extractor:  extractor,
		parser:     parser,
		classifier: classifier,
		sink:       sink,
		vocab:      v,
	}
}

// Run executes the pipeline for one input and returns its result envelope.
func (s *PipelineService) Run(ctx context.Context, media domain.MediaInput) *domain.PipelineResult {
	id := media.ID()

	paths, frameScore, err := s.selector.SelectBest(ctx, media)
	if err != nil {
		return errorResult(id, "frame selection", err)
	}
	if len(paths) == 0 {
		// No usable frame is a first-class outcome, not an error.
		return &domain.PipelineResult{
			InputID: id,
			Status:  domain.StatusFetched,
			Message: "no usable frame found",
		}
	}

	if s.vocab.IsProduce(media.ID()) || s.vocab.IsProduce(media.Name()) {
		return s.runFreshness(ctx, id, paths, frameScore)
	}
	return s.runOCR(ctx, id, paths, frameScore)
}

// runOCR is the packaged-product path: extract label text, parse fields,
// commit only when the fields are conclusive.
func (s *PipelineService) runOCR(ctx context.Context, id string, paths []string, frameScore *domain.FrameScore) *domain.PipelineResult {
	text, err := s.extractor.Extract(ctx, paths)
	if err != nil {
		return errorResult(id, "text extraction", err)
	}

	fields := s.parser.Parse(text)
	result := &domain.PipelineResult{
		InputID:    id,
		Fields:     &fields,
		FrameScore: frameScore,
	}

	if !fields.Conclusive() {
		result.Status = domain.StatusFetched
		result.Message = "no conclusive label fields extracted"
		return result
	}

	brand := domain.BrandNotFound
	if fields.Brand != nil {
		brand = *fields.Brand
	}
	product := &domain.PackagedProduct{
		Brand:             brand,
		MRP:               fields.MRP,
		ManufacturingDate: fields.ManufacturingDate,
		ExpiryDate:        fields.ExpiryDate,
		Count:             1,
		Timestamp:         time.Now().UTC(),
	}
	if fields.ExpiryDate != nil {
		product.Expired, product.ExpectedLifeSpanDays = expiryOutlook(*fields.ExpiryDate, product.Timestamp)
	}
	result.Record = &domain.ProductRecord{
		Category: domain.CategoryPackaged,
		Packaged: product,
	}

	s.commit(ctx, result)
	return result
}

// runFreshness is the produce path: classify, derive the record, commit
// unless the produce is rotten.
func (s *PipelineService) runFreshness(ctx context.Context, id string, paths []string, frameScore *domain.FrameScore) *domain.PipelineResult {
	classification, err := s.classifier.Classify(ctx, paths)
	if err != nil {
		return errorResult(id, "freshness classification", err)
	}

	result := &domain.PipelineResult{
		InputID:        id,
		Classification: classification,
		FrameScore:     frameScore,
	}

	if classification.FreshnessScore == nil || classification.ShelfLifeDays == nil {
		result.Status = domain.StatusFetched
		result.Message = fmt.Sprintf("unrecognized freshness label %q", classification.Label)
		return result
	}

	result.Record = &domain.ProductRecord{
		Category: domain.CategoryFreshProduce,
		Fresh: &domain.FreshProduce{
			Produce:              classification.Label.Produce(),
			FreshnessScore:       *classification.FreshnessScore,
			ExpectedLifeSpanDays: *classification.ShelfLifeDays,
			Timestamp:            time.Now().UTC(),
		},
	}

	if classification.Label.Condition() == domain.ConditionRotten {
		result.Status = domain.StatusFetched
		result.Message = "rotten produce not recorded"
		return result
	}

	s.commit(ctx, result)
	return result
}

// commit persists the result's record and folds the sink acknowledgement
// into the envelope. A persistence failure downgrades the run to an error
// status but never escapes.
func (s *PipelineService) commit(ctx context.Context, result *domain.PipelineResult) {
	err := s.sink.Create(ctx, result.Record)
	switch {
	case err == nil:
		result.Status = domain.StatusCreated
		result.Committed = true
		result.Message = "record created"
	case errors.Is(err, domain.ErrDuplicateRecord):
		result.Status = domain.StatusFetched
		result.Message = "record already exists"
		log.Printf("service.PipelineService: duplicate record for %s", result.InputID)
	default:
		result.Status = domain.StatusError
		result.Message = fmt.Sprintf("persisting record: %v", err)
		log.Printf("service.PipelineService: sink failure for %s: %v", result.InputID, err)
	}
}

// expiryOutlook derives the expired flag and the remaining whole days from a
// canonical MON-YYYY expiry relative to now. An unparseable date keeps the
// zero outlook.
func expiryOutlook(expiry string, now time.Time) (expired bool, daysLeft int) {
	t, err := time.Parse("Jan-2006", expiry)
	if err != nil {
		return false, 0
	}
	// The label names only a month; treat the product as good through the
	// month's end.
	endOfMonth := t.AddDate(0, 1, 0)
	if !endOfMonth.After(now) {
		return true, 0
	}
	return false, int(endOfMonth.Sub(now).Hours() / 24)
}

func errorResult(id, stage string, err error) *domain.PipelineResult {
	log.Printf("service.PipelineService: %s failed for %s: %v", stage, id, err)
	return &domain.PipelineResult{
		InputID: id,
		Status:  domain.StatusError,
		Message: fmt.Sprintf("%s: %v", stage, err),
	}
}
