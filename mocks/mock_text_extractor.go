package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, imagePaths []string) (string, error) {
	args := m.Called(ctx, imagePaths)
	return args.String(0), args.Error(1)
}
