package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Log        LogConfig
	Frames     FramesConfig
	OCR        OCRConfig
	Classifier ClassifierConfig
	Parser     ParserConfig
	Vocab      VocabConfig
	Sink       SinkConfig
	DB         DBConfig
	Pipeline   PipelineConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FramesConfig holds frame selection settings.
type FramesConfig struct {
	// IntervalSecs is the ffmpeg sampling interval between decoded frames.
	IntervalSecs int `mapstructure:"interval_secs"`
	// ScoreThreshold is the composite score a frame must exceed to be
	// accepted. The scale is 0-100.
	ScoreThreshold float64 `mapstructure:"score_threshold"`
	// ArtifactDir receives the accepted best-frame JPEG of each run.
	ArtifactDir string `mapstructure:"artifact_dir"`
	// WorkDir holds per-run temporary frame extractions.
	WorkDir string `mapstructure:"work_dir"`
}

// OCREngineConfig holds settings for a single OCR backend.
type OCREngineConfig struct {
	Engine    string `mapstructure:"engine"`
	Languages string `mapstructure:"languages"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// OCRConfig selects and configures the OCR backend.
type OCRConfig struct {
	Engine    string `mapstructure:"engine"`
	Languages string `mapstructure:"languages"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// EngineConfig returns the OCR backend settings in factory form.
func (o *OCRConfig) EngineConfig() *OCREngineConfig {
	return &OCREngineConfig{
		Engine:    o.Engine,
		Languages: o.Languages,
		Region:    o.Region,
		AccessKey: o.AccessKey,
		SecretKey: o.SecretKey,
	}
}

// ClassifierConfig holds model-serving settings for the object detector and
// the freshness classifier.
type ClassifierConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	DetectorModel  string        `mapstructure:"detector_model"`
	FreshnessModel string        `mapstructure:"freshness_model"`
	ModelPath      string        `mapstructure:"model_path"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// ParserConfig selects the field-parsing strategy.
type ParserConfig struct {
	// Strategy is "chronological" (loose min/max date heuristic) or
	// "anchored" (label-proximity heuristic).
	Strategy string `mapstructure:"strategy"`
}

// VocabConfig points at the closed-vocabulary file.
type VocabConfig struct {
	Path string `mapstructure:"path"`
}

// SinkConfig selects the record sink backend.
type SinkConfig struct {
	// Provider is "postgres" or "noop".
	Provider string `mapstructure:"provider"`
}

// DBConfig holds PostgreSQL connection settings for the postgres sink.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// PipelineConfig holds batch execution settings.
type PipelineConfig struct {
	Workers      int           `mapstructure:"workers"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
}

// Load reads configuration from environment variables with the FLIPGRID_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FLIPGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Frame selection defaults
	v.SetDefault("frames.interval_secs", 1)
	v.SetDefault("frames.score_threshold", 50.0)
	v.SetDefault("frames.artifact_dir", "bestframes")
	v.SetDefault("frames.work_dir", "")

	// OCR defaults
	v.SetDefault("ocr.engine", "tesseract")
	v.SetDefault("ocr.languages", "eng")
	v.SetDefault("ocr.region", "ap-south-1")
	v.SetDefault("ocr.access_key", "")
	v.SetDefault("ocr.secret_key", "")

	// Classifier defaults
	v.SetDefault("classifier.endpoint", "http://localhost:8501")
	v.SetDefault("classifier.detector_model", "mobilenet_v2")
	v.SetDefault("classifier.freshness_model", "freshness_pilot")
	v.SetDefault("classifier.model_path", "")
	v.SetDefault("classifier.timeout", "30s")

	// Parser defaults
	v.SetDefault("parser.strategy", "chronological")

	// Vocabulary defaults
	v.SetDefault("vocab.path", "")

	// Sink defaults
	v.SetDefault("sink.provider", "noop")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "flipgrid")
	v.SetDefault("db.password", "flipgrid_secret")
	v.SetDefault("db.name", "flipgrid_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Pipeline defaults
	v.SetDefault("pipeline.workers", 3)
	v.SetDefault("pipeline.batch_timeout", "10m")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"log.level":                 "FLIPGRID_LOG_LEVEL",
		"log.format":                "FLIPGRID_LOG_FORMAT",
		"frames.interval_secs":      "FLIPGRID_FRAMES_INTERVAL_SECS",
		"frames.score_threshold":    "FLIPGRID_FRAMES_SCORE_THRESHOLD",
		"frames.artifact_dir":       "FLIPGRID_FRAMES_ARTIFACT_DIR",
		"frames.work_dir":           "FLIPGRID_FRAMES_WORK_DIR",
		"ocr.engine":                "FLIPGRID_OCR_ENGINE",
		"ocr.languages":             "FLIPGRID_OCR_LANGUAGES",
		"ocr.region":                "FLIPGRID_OCR_REGION",
		"ocr.access_key":            "FLIPGRID_OCR_ACCESS_KEY",
		"ocr.secret_key":            "FLIPGRID_OCR_SECRET_KEY",
		"classifier.endpoint":       "FLIPGRID_CLASSIFIER_ENDPOINT",
		"classifier.detector_model": "FLIPGRID_CLASSIFIER_DETECTOR_MODEL",
		"classifier.freshness_model": "FLIPGRID_CLASSIFIER_FRESHNESS_MODEL",
		"classifier.model_path":     "FLIPGRID_CLASSIFIER_MODEL_PATH",
		"classifier.timeout":        "FLIPGRID_CLASSIFIER_TIMEOUT",
		"parser.strategy":           "FLIPGRID_PARSER_STRATEGY",
		"vocab.path":                "FLIPGRID_VOCAB_PATH",
		"sink.provider":             "FLIPGRID_SINK_PROVIDER",
		"db.host":                   "FLIPGRID_DB_HOST",
		"db.port":                   "FLIPGRID_DB_PORT",
		"db.user":                   "FLIPGRID_DB_USER",
		"db.password":               "FLIPGRID_DB_PASSWORD",
		"db.name":                   "FLIPGRID_DB_NAME",
		"db.sslmode":                "FLIPGRID_DB_SSLMODE",
		"db.max_open":               "FLIPGRID_DB_MAX_OPEN",
		"db.max_idle":               "FLIPGRID_DB_MAX_IDLE",
		"pipeline.workers":          "FLIPGRID_PIPELINE_WORKERS",
		"pipeline.batch_timeout":    "FLIPGRID_PIPELINE_BATCH_TIMEOUT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Frames = FramesConfig{
		IntervalSecs:   v.GetInt("frames.interval_secs"),
		ScoreThreshold: v.GetFloat64("frames.score_threshold"),
		ArtifactDir:    v.GetString("frames.artifact_dir"),
		WorkDir:        v.GetString("frames.work_dir"),
	}
	cfg.OCR = OCRConfig{
		Engine:    v.GetString("ocr.engine"),
		Languages: v.GetString("ocr.languages"),
		Region:    v.GetString("ocr.region"),
		AccessKey: v.GetString("ocr.access_key"),
		SecretKey: v.GetString("ocr.secret_key"),
	}
	cfg.Classifier = ClassifierConfig{
		Endpoint:       v.GetString("classifier.endpoint"),
		DetectorModel:  v.GetString("classifier.detector_model"),
		FreshnessModel: v.GetString("classifier.freshness_model"),
		ModelPath:      v.GetString("classifier.model_path"),
		Timeout:        v.GetDuration("classifier.timeout"),
	}
	cfg.Parser = ParserConfig{
		Strategy: v.GetString("parser.strategy"),
	}
	cfg.Vocab = VocabConfig{
		Path: v.GetString("vocab.path"),
	}
	cfg.Sink = SinkConfig{
		Provider: v.GetString("sink.provider"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Pipeline = PipelineConfig{
		Workers:      v.GetInt("pipeline.workers"),
		BatchTimeout: v.GetDuration("pipeline.batch_timeout"),
	}

	return cfg, nil
}
