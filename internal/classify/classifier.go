// Package classify reduces per-image freshness predictions to one verdict
// for a pipeline run.
package classify

import (
	"context"
	"fmt"
	"log"

	"flipgrid/internal/domain"
	"flipgrid/internal/port"
)

// Classifier wraps the freshness model with the argmax-and-reduce policy:
// every image gets an independent prediction and the single most confident
// one wins the run.
type Classifier struct {
	model port.ImageClassifier
}

func New(model port.ImageClassifier) *Classifier {
	return &Classifier{model: model}
}

// Classify predicts a freshness label for each image and returns the
// prediction with the highest confidence across all of them, lookups
// resolved. Confidence is reported on a 0-100 scale. An empty image list is
// an error; a model failure on any image fails the whole run, since a
// partial verdict over produce condition is worse than none.
func (c *Classifier) Classify(ctx context.Context, imagePaths []string) (*domain.ClassificationResult, error) {
	if len(imagePaths) == 0 {
		return nil, fmt.Errorf("classify.Classifier.Classify: no images to classify")
	}

	var best *domain.ClassificationResult
	for _, path := range imagePaths {
		scores, err := c.model.Predict(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("classify.Classifier.Classify: %w", err)
		}

		idx, conf := argmax(scores)
		if idx < 0 {
			return nil, fmt.Errorf("classify.Classifier.Classify: empty prediction for %s", path)
		}

		result := &domain.ClassificationResult{
			Confidence: conf * 100,
		}
		if label, ok := domain.ClassFromIndex(idx); ok {
			result.Label = label
			if days, ok := label.ShelfLifeDays(); ok {
				result.ShelfLifeDays = &days
			}
			if score, ok := label.FreshnessScore(); ok {
				result.FreshnessScore = &score
			}
		} else {
			// Index beyond the closed class set: keep the confidence so the
			// reduction stays honest, but derive nothing from the label.
			log.Printf("classify.Classifier: prediction index %d outside class set for %s", idx, path)
		}

		if best == nil || result.Confidence > best.Confidence {
			best = result
		}
	}
	return best, nil
}

// argmax returns the index and value of the largest score, or (-1, 0) for an
// empty vector.
func argmax(scores []float64) (int, float64) {
	idx := -1
	var max float64
	for i, s := range scores {
		if idx < 0 || s > max {
			idx, max = i, s
		}
	}
	return idx, max
}
