package port

import (
	"context"
	"image"
)

// Detection is a general-purpose object classifier's top prediction for one
// frame. Confidence is on a [0,1] scale.
type Detection struct {
	Class      string
	Confidence float64
}

// ObjectDetector scores decoded frames during frame selection. The handle is
// process-wide and safe for concurrent read-only inference.
type ObjectDetector interface {
	Detect(ctx context.Context, img image.Image) (Detection, error)
}

// ImageClassifier runs the pretrained freshness model over a single image
// and returns the raw softmax vector. The handle is process-wide and safe
// for concurrent read-only inference.
type ImageClassifier interface {
	Predict(ctx context.Context, imagePath string) ([]float64, error)
}
