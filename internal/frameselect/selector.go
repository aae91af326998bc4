// Package frameselect scans a media input for the frame most likely to show
// a legible label or a clear product view.
package frameselect

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"

	"flipgrid/internal/domain"
	"flipgrid/internal/port"
	"flipgrid/internal/vocab"
)

// cropPadding is the pixel margin kept around the foreground bounding box
// when the accepted frame is cropped for the artifact.
const cropPadding = 20

// Selector scans video frames and returns the first one whose composite
// quality score clears the threshold. The early exit deliberately favors
// latency over optimality: once a frame is good enough, later frames are
// never decoded.
type Selector struct {
	source    port.FrameSource
	detector  port.ObjectDetector
	vocab     *vocab.Vocabulary
	threshold float64
	// artifactDir receives the accepted frame JPEG of each run, the
	// pipeline's only outward artifact besides the final record.
	artifactDir string
}

// NewSelector creates a Selector. threshold is on the composite's 0-100
// scale.
func NewSelector(source port.FrameSource, detector port.ObjectDetector, v *vocab.Vocabulary, threshold float64, artifactDir string) *Selector {
	return &Selector{
		source:      source,
		detector:    detector,
		vocab:       v,
		threshold:   threshold,
		artifactDir: artifactDir,
	}
}

// SelectBest resolves a media input to the image paths downstream stages
// consume. A still-image input is treated as pre-selected frames and
// returned unscored. A video input is scanned frame by frame; the accepted
// frame is cropped, written to the artifact directory, and its path
// returned. (nil, nil, nil) means the whole video was scanned without a
// usable frame; that is a first-class outcome, not an error.
func (s *Selector) SelectBest(ctx context.Context, media domain.MediaInput) ([]string, *domain.FrameScore, error) {
	if !media.IsVideo() {
		for _, path := range media.ImagePaths {
			if _, err := os.Stat(path); err != nil {
				return nil, nil, fmt.Errorf("frameselect.Selector.SelectBest: %w: %v", domain.ErrInputUnavailable, err)
			}
		}
		return media.ImagePaths, nil, nil
	}

	it, err := s.source.Open(ctx, media.VideoPath)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = it.Close() }()

	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		frame, err := it.Next()
		if err != nil {
			return nil, nil, err
		}
		if frame == nil {
			// Scan exhausted without a good frame.
			log.Printf("frameselect.Selector: no suitable frames in %s", media.VideoPath)
			return nil, nil, nil
		}

		detection, err := s.detector.Detect(ctx, frame.Image)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, nil, err
			}
			log.Printf("frameselect.Selector: detection failed on frame %d of %s: %v", frame.Index, media.VideoPath, err)
			continue
		}
		if !s.vocab.IsTargetObject(detection.Class) {
			continue
		}

		score, region := scoreFrame(frame.Image, detection.Confidence)
		if score.Composite <= s.threshold {
			continue
		}

		log.Printf("frameselect.Selector: good frame in %s: frame %d, %s, score %.2f",
			media.VideoPath, frame.Index, detection.Class, score.Composite)

		artifact, err := s.saveArtifact(frame, detection.Class, score.Composite, region)
		if err != nil {
			return nil, nil, err
		}
		return []string{artifact}, &score, nil
	}
}

// saveArtifact crops the accepted frame to its foreground region with
// padding and writes it under a deterministic name, so repeated runs on the
// same input are traceable.
func (s *Selector) saveArtifact(frame *domain.Frame, class string, composite float64, region image.Rectangle) (string, error) {
	if err := os.MkdirAll(s.artifactDir, 0755); err != nil {
		return "", fmt.Errorf("frameselect.Selector.saveArtifact: %w", err)
	}

	img := cropWithPadding(frame.Image, region)

	name := fmt.Sprintf("good_%s_%s_%.2f_frame_%d.jpg", frame.SourceID, class, composite, frame.Index)
	path := filepath.Join(s.artifactDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("frameselect.Selector.saveArtifact: %w", err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("frameselect.Selector.saveArtifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("frameselect.Selector.saveArtifact: %w", err)
	}
	return path, nil
}

// cropWithPadding extracts the region plus margin, clamped to the frame.
// A zero region (no foreground) keeps the full frame.
func cropWithPadding(img image.Image, region image.Rectangle) image.Image {
	if region.Empty() {
		return img
	}
	padded := image.Rect(
		region.Min.X-cropPadding,
		region.Min.Y-cropPadding,
		region.Max.X+cropPadding,
		region.Max.Y+cropPadding,
	).Intersect(img.Bounds())

	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return img
	}
	return sub.SubImage(padded)
}
