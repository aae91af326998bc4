package inference

import (
	"context"
	"encoding/json"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flipgrid/internal/config"
	"flipgrid/internal/domain"
)

func testConfig(endpoint string) *config.ClassifierConfig {
	return &config.ClassifierConfig{
		Endpoint:       endpoint,
		DetectorModel:  "detector",
		FreshnessModel: "freshness",
		Timeout:        5 * time.Second,
	}
}

func readyHandler(t *testing.T, predict func(model string, w http.ResponseWriter)) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusOK)
		case strings.HasSuffix(r.URL.Path, ":predict"):
			var body struct {
				Instances []map[string]string `json:"instances"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Instances, 1)
			require.NotEmpty(t, body.Instances[0]["image_b64"])

			model := strings.TrimSuffix(filepath.Base(r.URL.Path), ":predict")
			predict(model, w)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func writeTestJPEG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frame.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, 32, 32)), nil))
	require.NoError(t, f.Close())
	return path
}

func TestNewClient_ReadinessFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "freshness") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), testConfig(srv.URL))
	assert.Nil(t, c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestNewClient_ForwardsModelPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Query().Get("path")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ModelPath = "/models/pilot.h5"
	_, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "/models/pilot.h5", gotPath)
}

func TestDetect(t *testing.T) {
	srv := httptest.NewServer(readyHandler(t, func(model string, w http.ResponseWriter) {
		assert.Equal(t, "detector", model)
		_, _ = w.Write([]byte(`{"predictions":[{"class":"pop_bottle","confidence":0.87}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), testConfig(srv.URL))
	require.NoError(t, err)

	detection, err := c.Detect(context.Background(), image.NewRGBA(image.Rect(0, 0, 64, 48)))
	require.NoError(t, err)
	assert.Equal(t, "pop_bottle", detection.Class)
	assert.InDelta(t, 0.87, detection.Confidence, 1e-9)
}

func TestPredict(t *testing.T) {
	srv := httptest.NewServer(readyHandler(t, func(model string, w http.ResponseWriter) {
		assert.Equal(t, "freshness", model)
		_, _ = w.Write([]byte(`{"predictions":[[0.1,0.7,0.2]]}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), testConfig(srv.URL))
	require.NoError(t, err)

	scores, err := c.Predict(context.Background(), writeTestJPEG(t))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.7, 0.2}, scores)
}

func TestPredict_MissingImage(t *testing.T) {
	srv := httptest.NewServer(readyHandler(t, func(string, http.ResponseWriter) {}))
	defer srv.Close()

	c, err := NewClient(context.Background(), testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.Predict(context.Background(), "/nonexistent/frame.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInputUnavailable)
}

func TestDetect_ServerError(t *testing.T) {
	srv := httptest.NewServer(readyHandler(t, func(_ string, w http.ResponseWriter) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.Detect(context.Background(), image.NewRGBA(image.Rect(0, 0, 8, 8)))
	assert.Error(t, err)
}
