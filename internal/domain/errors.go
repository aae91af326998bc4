package domain

import "errors"

var (
	// ErrInputUnavailable means a video failed to open or an image file is
	// missing. Fatal for the single input, never for its batch siblings.
	ErrInputUnavailable = errors.New("media input unavailable")
	// ErrModelUnavailable means a classifier or OCR engine handle could not
	// be established. Fatal at process startup.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrDuplicateRecord means the sink rejected the record as a duplicate.
	ErrDuplicateRecord = errors.New("duplicate record")
)
