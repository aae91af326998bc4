package ocr_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flipgrid/internal/config"
	"flipgrid/internal/ocr"
	"flipgrid/internal/port"
)

type stubExtractor struct {
	languages string
}

func (s *stubExtractor) Extract(_ context.Context, _ []string) (string, error) {
	return "", nil
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	ocr.Register("test-engine", func(cfg *config.OCREngineConfig) (port.TextExtractor, error) {
		return &stubExtractor{languages: cfg.Languages}, nil
	})

	e, err := ocr.New(&config.OCREngineConfig{Engine: "test-engine", Languages: "eng"})
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "eng", e.(*stubExtractor).languages)
}

func TestFactory_UnknownEngine(t *testing.T) {
	e, err := ocr.New(&config.OCREngineConfig{Engine: "nonexistent-engine-xyz"})
	assert.Nil(t, e)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ocr engine")
}
