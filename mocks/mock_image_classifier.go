package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockImageClassifier is a mock implementation of port.ImageClassifier.
type MockImageClassifier struct {
	mock.Mock
}

func (m *MockImageClassifier) Predict(ctx context.Context, imagePath string) ([]float64, error) {
	args := m.Called(ctx, imagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}
