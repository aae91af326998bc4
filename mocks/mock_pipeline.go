package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flipgrid/internal/domain"
)

// MockFrameSelector is a mock implementation of service.FrameSelector.
type MockFrameSelector struct {
	mock.Mock
}

func (m *MockFrameSelector) SelectBest(ctx context.Context, media domain.MediaInput) ([]string, *domain.FrameScore, error) {
	args := m.Called(ctx, media)
	var paths []string
	if args.Get(0) != nil {
		paths = args.Get(0).([]string)
	}
	var score *domain.FrameScore
	if args.Get(1) != nil {
		score = args.Get(1).(*domain.FrameScore)
	}
	return paths, score, args.Error(2)
}

// MockFreshnessClassifier is a mock implementation of
// service.FreshnessClassifier.
type MockFreshnessClassifier struct {
	mock.Mock
}

func (m *MockFreshnessClassifier) Classify(ctx context.Context, imagePaths []string) (*domain.ClassificationResult, error) {
	args := m.Called(ctx, imagePaths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClassificationResult), args.Error(1)
}
