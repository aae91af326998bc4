package mocks

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"

	"flipgrid/internal/port"
)

// MockObjectDetector is a mock implementation of port.ObjectDetector.
type MockObjectDetector struct {
	mock.Mock
}

func (m *MockObjectDetector) Detect(ctx context.Context, img image.Image) (port.Detection, error) {
	args := m.Called(ctx, img)
	return args.Get(0).(port.Detection), args.Error(1)
}
