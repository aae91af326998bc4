package port

import "context"

// TextExtractor abstracts the OCR backend. Implementations take the ordered
// image paths of one pipeline run and return the concatenated raw text, one
// winner per image joined by single spaces. An unreadable image is an error;
// silently skipping one would corrupt downstream date/brand pairing.
type TextExtractor interface {
	Extract(ctx context.Context, imagePaths []string) (string, error)
}
