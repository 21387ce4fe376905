// Package ffmpeg wraps the external ffmpeg binary for preview generation.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iconidentify/vidgate/internal/domain"
)

// Trimmer produces duration-capped preview clips from source videos.
type Trimmer struct {
	ffmpegPath      string
	durationSeconds int
}

// NewTrimmer creates a trimmer bound to the ffmpeg binary found in PATH.
func NewTrimmer(durationSeconds int) (*Trimmer, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFFmpegNotFound, err)
	}
	return NewTrimmerWithPath(ffmpegPath, durationSeconds), nil
}

// NewTrimmerWithPath creates a trimmer using an explicit ffmpeg binary.
func NewTrimmerWithPath(ffmpegPath string, durationSeconds int) *Trimmer {
	if durationSeconds <= 0 {
		durationSeconds = 10
	}
	return &Trimmer{
		ffmpegPath:      ffmpegPath,
		durationSeconds: durationSeconds,
	}
}

// Trim writes a stream-copied clip of at most the configured duration
// from inputPath to outputPath. No re-encode happens; ffmpeg writes its
// own output target, so only a non-zero exit is treated as failure.
// On failure the returned error carries the exact invocation for diagnosis.
func (t *Trimmer) Trim(ctx context.Context, inputPath, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	args := []string{
		"-i", inputPath,
		"-t", strconv.Itoa(t.durationSeconds),
		"-c", "copy",
		"-y", outputPath,
	}

	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if execErr, ok := err.(*exec.Error); ok && execErr.Err == exec.ErrNotFound {
			return fmt.Errorf("%w: %v", domain.ErrFFmpegNotFound, err)
		}
		return fmt.Errorf("ffmpeg failed (command: %s %s): %w: %s",
			t.ffmpegPath, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

// IsAvailable checks if ffmpeg is available on the system.
func IsAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// GetVersion returns the ffmpeg version string.
func GetVersion() (string, error) {
	cmd := exec.Command("ffmpeg", "-version")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		return strings.TrimSpace(lines[0]), nil
	}
	return "unknown", nil
}
