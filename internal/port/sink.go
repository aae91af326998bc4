package port

import (
	"context"

	"flipgrid/internal/domain"
)

// RecordSink receives the terminal ProductRecord of a pipeline run. The
// pipeline does not interpret the acknowledgement beyond logging and status
// mapping: domain.ErrDuplicateRecord marks a duplicate, any other error is a
// persistence failure.
type RecordSink interface {
	Create(ctx context.Context, record *domain.ProductRecord) error
}
