package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flipgrid/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 13)
	assert.Equal(t, "Input", row[0])
	assert.Equal(t, "Timestamp", row[12])
}

func TestWriteResults_PackagedRecord(t *testing.T) {
	mrp := "150"
	exp := "DEC-2024"
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	results := []domain.PipelineResult{{
		InputID:   "shelf.mp4",
		Status:    domain.StatusCreated,
		Committed: true,
		Record: &domain.ProductRecord{
			Category: domain.CategoryPackaged,
			Packaged: &domain.PackagedProduct{
				Brand:                "Colgate",
				MRP:                  &mrp,
				ExpiryDate:           &exp,
				ExpectedLifeSpanDays: 180,
				Timestamp:            ts,
			},
		},
	}}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteResults(results))
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Equal(t, "shelf.mp4", row[0])
	assert.Equal(t, "CREATED", row[1])
	assert.Equal(t, "packaged", row[2])
	assert.Equal(t, "Colgate", row[3])
	assert.Equal(t, "150", row[4])
	assert.Equal(t, "", row[5])
	assert.Equal(t, "DEC-2024", row[6])
	assert.Equal(t, "180", row[9])
	assert.Equal(t, "Yes", row[11])
	assert.Equal(t, "2025-06-01T12:00:00Z", row[12])
}

func TestWriteResults_FreshRecord(t *testing.T) {
	results := []domain.PipelineResult{{
		InputID:   "banana.mp4",
		Status:    domain.StatusCreated,
		Committed: true,
		Classification: &domain.ClassificationResult{
			Label:      domain.FreshBanana,
			Confidence: 91.5,
		},
		Record: &domain.ProductRecord{
			Category: domain.CategoryFreshProduce,
			Fresh: &domain.FreshProduce{
				Produce:              "banana",
				FreshnessScore:       1,
				ExpectedLifeSpanDays: 5,
			},
		},
	}}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteResults(results))
	w.Flush()

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Equal(t, "fresh_produce", row[2])
	assert.Equal(t, "banana", row[7])
	assert.Equal(t, "1", row[8])
	assert.Equal(t, "5", row[9])
	assert.Equal(t, "91.50", row[10])
}

func TestWriteResults_ErrorRowIsSparse(t *testing.T) {
	results := []domain.PipelineResult{{
		InputID: "corrupt.mp4",
		Status:  domain.StatusError,
		Message: "frame selection: input unavailable",
	}}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteResults(results))
	w.Flush()

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Equal(t, "corrupt.mp4", row[0])
	assert.Equal(t, "ERROR", row[1])
	assert.Equal(t, "", row[2])
	assert.Equal(t, "No", row[11])
}
