package port

import (
	"context"

	"flipgrid/internal/domain"
)

// FrameIterator yields decoded frames in source order. Next returns
// (nil, nil) once the source is exhausted. Close releases decode buffers and
// any temporary extraction artifacts.
type FrameIterator interface {
	Next() (*domain.Frame, error)
	Close() error
}

// FrameSource opens a video for sequential frame decoding. A source that
// cannot be opened returns domain.ErrInputUnavailable.
type FrameSource interface {
	Open(ctx context.Context, videoPath string) (FrameIterator, error)
}
