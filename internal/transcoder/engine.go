// Package transcoder is the boundary to the external media tooling. The
// Engine locates and health-checks the binaries, the Prober reports a
// file's current codec, and the Transcoder re-encodes a file to a Profile.
// The actual decode/encode work is entirely ffmpeg's; nothing in this
// package touches media bytes.
package transcoder

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Engine represents the external transcode tooling available on this host.
type Engine struct {
	FFmpegPath  string
	FFprobePath string
}

// NewEngine locates the ffmpeg and ffprobe binaries. Empty paths fall back
// to a PATH lookup. Returns an error when either binary cannot be found,
// so callers can fail before any file is touched.
func NewEngine(ffmpegPath, ffprobePath string) (*Engine, error) {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}

	resolved, err := exec.LookPath(ffmpegPath)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg binary not found: %w", err)
	}
	probeResolved, err := exec.LookPath(ffprobePath)
	if err != nil {
		return nil, fmt.Errorf("ffprobe binary not found: %w", err)
	}

	return &Engine{
		FFmpegPath:  resolved,
		FFprobePath: probeResolved,
	}, nil
}

// Verify runs the preflight health probe (`ffmpeg -version`). A non-zero
// exit means the binary exists but is not invocable, which is treated the
// same as missing: the whole run must abort before touching files.
func (e *Engine) Verify(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, e.FFmpegPath, "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg health probe failed: %w", err)
	}
	return nil
}

// Version returns the first line of `ffmpeg -version` output, for the
// check command's diagnostics.
func (e *Engine) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, e.FFmpegPath, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("ffmpeg -version: %w", err)
	}
	line := strings.TrimSpace(string(out))
	if idx := strings.Index(line, "\n"); idx > 0 {
		line = line[:idx]
	}
	return line, nil
}

// EncoderAvailable scans `ffmpeg -encoders` for the named encoder. This
// checks ffmpeg's view of the world rather than installed libraries, which
// proves the encoder is actually usable.
func (e *Engine) EncoderAvailable(ctx context.Context, name string) (bool, error) {
	cmd := exec.CommandContext(ctx, e.FFmpegPath, "-hide_banner", "-encoders")
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("ffmpeg -encoders: %w", err)
	}
	return strings.Contains(string(out), name), nil
}
