package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flipgrid/internal/domain"
	"flipgrid/internal/port"
)

// MockFrameSource is a mock implementation of port.FrameSource.
type MockFrameSource struct {
	mock.Mock
}

func (m *MockFrameSource) Open(ctx context.Context, videoPath string) (port.FrameIterator, error) {
	args := m.Called(ctx, videoPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.FrameIterator), args.Error(1)
}

// MockFrameIterator is a mock implementation of port.FrameIterator.
type MockFrameIterator struct {
	mock.Mock
}

func (m *MockFrameIterator) Next() (*domain.Frame, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Frame), args.Error(1)
}

func (m *MockFrameIterator) Close() error {
	args := m.Called()
	return args.Error(0)
}
