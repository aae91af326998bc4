// Package inference talks to the model-serving sidecar that hosts the two
// pretrained artifacts: the general-purpose object detector used during
// frame selection and the freshness pilot model. The process holds a single
// Client; it is read-only after construction and safe for concurrent use.
package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"os"
	"time"

	xdraw "golang.org/x/image/draw"

	"flipgrid/internal/config"
	"flipgrid/internal/domain"
	"flipgrid/internal/port"
)

// modelInputSize is the square input geometry both models were trained on.
const modelInputSize = 224

// Client is an HTTP client for the model-serving sidecar. It implements
// port.ObjectDetector and port.ImageClassifier.
type Client struct {
	endpoint       string
	detectorModel  string
	freshnessModel string
	client         *http.Client
}

// NewClient creates a Client and probes both models for readiness. A model
// that is not loadable is fatal: the pipeline must refuse to start rather
// than degrade silently.
func NewClient(ctx context.Context, cfg *config.ClassifierConfig) (*Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		endpoint:       cfg.Endpoint,
		detectorModel:  cfg.DetectorModel,
		freshnessModel: cfg.FreshnessModel,
		client:         &http.Client{Timeout: timeout},
	}
	for _, model := range []string{cfg.DetectorModel, cfg.FreshnessModel} {
		if err := c.ready(ctx, model, cfg.ModelPath); err != nil {
			return nil, fmt.Errorf("%w: model %s: %v", domain.ErrModelUnavailable, model, err)
		}
	}
	return c, nil
}

// ready checks that the sidecar reports the model as available. The model
// artifact path is forwarded so a missing file on the serving side surfaces
// at our startup, not at first inference.
func (c *Client) ready(ctx context.Context, model, modelPath string) error {
	u := c.endpoint + "/v1/models/" + url.PathEscape(model)
	if modelPath != "" {
		u += "?path=" + url.QueryEscape(modelPath)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("probe status %s", resp.Status)
	}
	return nil
}

// Detect runs the object detector over a decoded frame and returns its top
// class and confidence on a [0,1] scale.
func (c *Client) Detect(ctx context.Context, img image.Image) (port.Detection, error) {
	payload, err := encodeImage(img)
	if err != nil {
		return port.Detection{}, fmt.Errorf("inference.Client.Detect: %w", err)
	}

	var out struct {
		Predictions []struct {
			Class      string  `json:"class"`
			Confidence float64 `json:"confidence"`
		} `json:"predictions"`
	}
	if err := c.predict(ctx, c.detectorModel, payload, &out); err != nil {
		return port.Detection{}, fmt.Errorf("inference.Client.Detect: %w", err)
	}
	if len(out.Predictions) == 0 {
		return port.Detection{}, fmt.Errorf("inference.Client.Detect: empty prediction set")
	}
	top := out.Predictions[0]
	return port.Detection{Class: top.Class, Confidence: top.Confidence}, nil
}

// Predict runs the freshness model over one image file and returns the raw
// softmax vector. A missing image is an input failure, not a model failure.
func (c *Client) Predict(ctx context.Context, imagePath string) ([]float64, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("inference.Client.Predict: %w: %v", domain.ErrInputUnavailable, err)
	}
	img, _, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("inference.Client.Predict: decoding %s: %w", imagePath, err)
	}

	payload, err := encodeImage(img)
	if err != nil {
		return nil, fmt.Errorf("inference.Client.Predict: %w", err)
	}

	var out struct {
		Predictions [][]float64 `json:"predictions"`
	}
	if err := c.predict(ctx, c.freshnessModel, payload, &out); err != nil {
		return nil, fmt.Errorf("inference.Client.Predict: %w", err)
	}
	if len(out.Predictions) == 0 {
		return nil, fmt.Errorf("inference.Client.Predict: empty prediction set")
	}
	return out.Predictions[0], nil
}

func (c *Client) predict(ctx context.Context, model, imageB64 string, v any) error {
	reqBody := map[string]any{
		"instances": []map[string]string{{"image_b64": imageB64}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	u := c.endpoint + "/v1/models/" + url.PathEscape(model) + ":predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model %s: unexpected status %s", model, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// encodeImage resizes to the models' 224x224 input geometry and returns the
// JPEG bytes base64-encoded.
func encodeImage(img image.Image) (string, error) {
	resized := image.NewRGBA(image.Rect(0, 0, modelInputSize, modelInputSize))
	xdraw.ApproxBiLinear.Scale(resized, resized.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 90}); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
