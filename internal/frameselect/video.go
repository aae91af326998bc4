package frameselect

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"flipgrid/internal/domain"
	"flipgrid/internal/port"
)

// FFmpegSource decodes videos into sequential frames by extracting JPEGs
// with ffmpeg into a per-open temporary directory. It implements
// port.FrameSource.
type FFmpegSource struct {
	// IntervalSecs is the sampling interval between extracted frames.
	IntervalSecs int
	// WorkDir hosts the temporary extractions; empty means the system temp
	// directory.
	WorkDir string
}

// Open extracts the video's frames and returns an iterator over them in
// source order. A video that is missing or that ffmpeg cannot read maps to
// domain.ErrInputUnavailable.
func (s *FFmpegSource) Open(ctx context.Context, videoPath string) (port.FrameIterator, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("frameselect.FFmpegSource.Open: %w: %v", domain.ErrInputUnavailable, err)
	}

	dir, err := os.MkdirTemp(s.WorkDir, "frames-*")
	if err != nil {
		return nil, fmt.Errorf("frameselect.FFmpegSource.Open: %w", err)
	}

	interval := s.IntervalSecs
	if interval <= 0 {
		interval = 1
	}
	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=1/%d", interval),
		filepath.Join(dir, "frame_%04d.jpg"),
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("frameselect.FFmpegSource.Open: %w: ffmpeg: %v: %s",
			domain.ErrInputUnavailable, err, string(output))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("frameselect.FFmpegSource.Open: %w", err)
	}
	var frames []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".jpg") {
			frames = append(frames, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(frames)

	sourceID := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return &ffmpegIterator{dir: dir, frames: frames, sourceID: sourceID}, nil
}

type ffmpegIterator struct {
	dir      string
	frames   []string
	next     int
	sourceID string
}

func (it *ffmpegIterator) Next() (*domain.Frame, error) {
	if it.next >= len(it.frames) {
		return nil, nil
	}
	path := it.frames[it.next]
	it.next++

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("frameselect.ffmpegIterator.Next: %w", err)
	}
	img, _, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("frameselect.ffmpegIterator.Next: decoding %s: %w", path, err)
	}

	return &domain.Frame{Image: img, Index: it.next, SourceID: it.sourceID}, nil
}

func (it *ffmpegIterator) Close() error {
	return os.RemoveAll(it.dir)
}
