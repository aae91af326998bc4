// Package textract implements the cloud OCR backend using the AWS Textract
// document-analysis service.
package textract

import (
	"context"
	"fmt"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"flipgrid/internal/config"
	"flipgrid/internal/domain"
	"flipgrid/internal/ocr"
	"flipgrid/internal/port"
)

func init() {
	ocr.Register("textract", func(cfg *config.OCREngineConfig) (port.TextExtractor, error) {
		return NewEngine(context.Background(), cfg)
	})
}

// api is the slice of the Textract client the engine uses; narrowed for
// tests.
type api interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// Engine runs AWS Textract text detection over label images. It implements
// port.TextExtractor.
type Engine struct {
	client api
}

// NewEngine creates a Textract-backed Engine from an engine config. The
// credential triple (access key, secret key, region) comes from
// configuration; when the keys are empty the default AWS credential chain
// applies.
func NewEngine(ctx context.Context, cfg *config.OCREngineConfig) (*Engine, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading aws config: %v", domain.ErrModelUnavailable, err)
	}

	return &Engine{client: textract.NewFromConfig(awsCfg)}, nil
}

// NewEngineWithClient creates an Engine over an existing Textract client
// (for testing).
func NewEngineWithClient(client api) *Engine {
	return &Engine{client: client}
}

// Extract runs text detection per image and concatenates LINE blocks in
// document order, so the block text preserves layout order for the
// label-anchored parser. Per-image texts are joined with single spaces in
// input order.
func (e *Engine) Extract(ctx context.Context, imagePaths []string) (string, error) {
	texts := make([]string, 0, len(imagePaths))
	for _, path := range imagePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("textract.Engine.Extract: %w: %v", domain.ErrInputUnavailable, err)
		}

		out, err := e.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
			Document: &types.Document{Bytes: data},
		})
		if err != nil {
			return "", fmt.Errorf("textract.Engine.Extract: %s: %w", path, err)
		}

		var lines []string
		for _, block := range out.Blocks {
			if block.BlockType == types.BlockTypeLine && block.Text != nil {
				lines = append(lines, *block.Text)
			}
		}
		texts = append(texts, strings.Join(lines, "\n"))
	}
	return strings.Join(texts, " "), nil
}
