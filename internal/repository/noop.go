// Package repository provides RecordSink implementations outside the
// postgres backend.
package repository

import (
	"context"
	"log"

	"flipgrid/internal/domain"
	"flipgrid/internal/port"
)

type noopSink struct{}

// NewNoopSink returns a RecordSink that logs records instead of persisting
// them. It is the default sink so the pipeline runs without a database.
func NewNoopSink() port.RecordSink {
	return &noopSink{}
}

func (s *noopSink) Create(_ context.Context, record *domain.ProductRecord) error {
	switch record.Category {
	case domain.CategoryPackaged:
		log.Printf("repository.noopSink: packaged product %q (not persisted)", record.Packaged.Brand)
	case domain.CategoryFreshProduce:
		log.Printf("repository.noopSink: fresh produce %q (not persisted)", record.Fresh.Produce)
	}
	return nil
}
