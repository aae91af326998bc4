package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flipgrid/internal/domain"
)

// MockRecordSink is a mock implementation of port.RecordSink.
type MockRecordSink struct {
	mock.Mock
}

func (m *MockRecordSink) Create(ctx context.Context, record *domain.ProductRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
