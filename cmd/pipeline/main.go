package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"

	"flipgrid/internal/classify"
	"flipgrid/internal/config"
	"flipgrid/internal/csvexport"
	"flipgrid/internal/domain"
	"flipgrid/internal/fieldparse"
	"flipgrid/internal/frameselect"
	"flipgrid/internal/inference"
	"flipgrid/internal/ocr"
	_ "flipgrid/internal/ocr/tesseract"
	_ "flipgrid/internal/ocr/textract"
	"flipgrid/internal/port"
	"flipgrid/internal/repository"
	"flipgrid/internal/repository/postgres"
	"flipgrid/internal/service"
	"flipgrid/internal/vocab"
)

// stringList is a repeatable flag value.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var videos stringList
	var images stringList
	exportPath := flag.String("export", "", "write batch results as CSV to this path")
	flag.Var(&videos, "video", "video file to process (repeatable)")
	flag.Var(&images, "images", "comma-separated image list forming one input (repeatable)")
	flag.Parse()

	if len(videos) == 0 && len(images) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: pipeline --video path/to/video.mp4 [--video ...] [--images a.jpg,b.jpg] [--export out.csv]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLogger(&cfg.Log)

	voc, err := vocab.Load(cfg.Vocab.Path)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary: %w", err)
	}

	ctx := context.Background()

	models, err := inference.NewClient(ctx, &cfg.Classifier)
	if err != nil {
		return fmt.Errorf("failed to reach model serving: %w", err)
	}

	extractor, err := ocr.New(cfg.OCR.EngineConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize OCR engine: %w", err)
	}

	parser, err := fieldparse.New(cfg.Parser.Strategy, voc)
	if err != nil {
		return fmt.Errorf("failed to initialize parser: %w", err)
	}

	sink, err := newSink(cfg)
	if err != nil {
		return err
	}

	source := &frameselect.FFmpegSource{
		IntervalSecs: cfg.Frames.IntervalSecs,
		WorkDir:      cfg.Frames.WorkDir,
	}
	selector := frameselect.NewSelector(source, models, voc, cfg.Frames.ScoreThreshold, cfg.Frames.ArtifactDir)
	classifier := classify.New(models)

	pipeline := service.NewPipelineService(selector, extractor, parser, classifier, sink, voc)
	batch := service.NewBatchRunner(pipeline, service.BatchConfig{
		Workers: cfg.Pipeline.Workers,
		Timeout: cfg.Pipeline.BatchTimeout,
	})

	inputs := buildInputs(videos, images)
	results := batch.RunBatch(ctx, inputs)

	printSummary(results)

	if *exportPath != "" {
		if err := writeCSV(*exportPath, results); err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
		log.Printf("exported %d results to %s", len(results), *exportPath)
	}
	return nil
}

func setupLogger(cfg *config.LogConfig) {
	level := slog.LevelDebug
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelDebug
	}
	handler := slog.Handler(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
	// Internal packages log through the standard logger; route it through
	// slog so both streams share one format.
	log.SetFlags(0)
	log.SetOutput(slogWriter{})
}

type slogWriter struct{}

func (slogWriter) Write(p []byte) (int, error) {
	slog.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func newSink(cfg *config.Config) (port.RecordSink, error) {
	switch cfg.Sink.Provider {
	case "postgres":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return postgres.NewProductRepo(db), nil
	case "noop":
		return repository.NewNoopSink(), nil
	default:
		return nil, fmt.Errorf("unknown sink provider: %s", cfg.Sink.Provider)
	}
}

func buildInputs(videos, imageLists []string) []domain.MediaInput {
	inputs := make([]domain.MediaInput, 0, len(videos)+len(imageLists))
	for _, v := range videos {
		inputs = append(inputs, domain.MediaInput{VideoPath: v})
	}
	for _, list := range imageLists {
		var paths []string
		for _, p := range strings.Split(list, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			inputs = append(inputs, domain.MediaInput{ImagePaths: paths})
		}
	}
	return inputs
}

func printSummary(results []domain.PipelineResult) {
	for i := range results {
		r := &results[i]
		fmt.Printf("%s: %s (%s)\n", r.InputID, r.Status, r.Message)
		if r.Fields != nil {
			fmt.Printf("  brand=%s mrp=%s mfg=%s exp=%s\n",
				strOrDash(r.Fields.Brand), strOrDash(r.Fields.MRP),
				strOrDash(r.Fields.ManufacturingDate), strOrDash(r.Fields.ExpiryDate))
		}
		if r.Classification != nil {
			fmt.Printf("  label=%s confidence=%.2f\n", r.Classification.Label, r.Classification.Confidence)
		}
	}
}

func strOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func writeCSV(path string, results []domain.PipelineResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(csvexport.BOM); err != nil {
		return err
	}
	w := csvexport.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteResults(results); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
