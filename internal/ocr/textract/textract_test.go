package textract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstextract "github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flipgrid/internal/domain"
)

type fakeTextract struct {
	responses map[string][]types.Block
	err       error
	calls     int
}

func (f *fakeTextract) DetectDocumentText(_ context.Context, params *awstextract.DetectDocumentTextInput, _ ...func(*awstextract.Options)) (*awstextract.DetectDocumentTextOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &awstextract.DetectDocumentTextOutput{
		Blocks: f.responses[string(params.Document.Bytes)],
	}, nil
}

func writeImage(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtract_LineBlocksJoinedInDocumentOrder(t *testing.T) {
	path := writeImage(t, "label.jpg", "img-1")

	client := &fakeTextract{responses: map[string][]types.Block{
		"img-1": {
			{BlockType: types.BlockTypePage},
			{BlockType: types.BlockTypeLine, Text: aws.String("MRP 99")},
			{BlockType: types.BlockTypeWord, Text: aws.String("ignored")},
			{BlockType: types.BlockTypeLine, Text: aws.String("Exp: 06/2025")},
		},
	}}

	text, err := NewEngineWithClient(client).Extract(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, "MRP 99\nExp: 06/2025", text)
}

func TestExtract_ImagesJoinedInInputOrder(t *testing.T) {
	front := writeImage(t, "front.jpg", "img-front")
	back := writeImage(t, "back.jpg", "img-back")

	client := &fakeTextract{responses: map[string][]types.Block{
		"img-front": {{BlockType: types.BlockTypeLine, Text: aws.String("front")}},
		"img-back":  {{BlockType: types.BlockTypeLine, Text: aws.String("back")}},
	}}

	text, err := NewEngineWithClient(client).Extract(context.Background(), []string{front, back})
	require.NoError(t, err)
	assert.Equal(t, "front back", text)
	assert.Equal(t, 2, client.calls)
}

func TestExtract_MissingImage(t *testing.T) {
	client := &fakeTextract{}

	_, err := NewEngineWithClient(client).Extract(context.Background(), []string{"/nonexistent/label.jpg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInputUnavailable)
	assert.Zero(t, client.calls)
}

func TestExtract_ServiceFailure(t *testing.T) {
	path := writeImage(t, "label.jpg", "img-1")
	client := &fakeTextract{err: errors.New("throttled")}

	_, err := NewEngineWithClient(client).Extract(context.Background(), []string{path})
	assert.Error(t, err)
}
