package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Transcoder re-encodes a media file to a target Profile. Like Prober,
// this is an interface so the pipeline can be tested with a fake.
type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputPath string, profile Profile) error
}

// FFmpegTranscoder shells out to ffmpeg. Each invocation is blocking;
// the pipeline waits for completion before moving to the next file.
type FFmpegTranscoder struct {
	binPath string
}

// NewTranscoder returns a Transcoder backed by the engine's ffmpeg binary.
func NewTranscoder(e *Engine) *FFmpegTranscoder {
	return &FFmpegTranscoder{binPath: e.FFmpegPath}
}

// ExecError carries ffmpeg's stderr alongside the exit error so callers
// can surface the tool's own diagnostic text.
type ExecError struct {
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("ffmpeg execution failed: %v", e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// StderrTail returns the last n lines of captured stderr, which is where
// ffmpeg puts the useful part of its failure output.
func (e *ExecError) StderrTail(n int) []string {
	s := strings.TrimSpace(e.Stderr)
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// Transcode runs ffmpeg against inputPath, writing the re-encoded result
// to outputPath. On failure the returned error is an *ExecError holding
// the captured stderr; the caller owns cleanup of any partial output.
func (t *FFmpegTranscoder) Transcode(ctx context.Context, inputPath, outputPath string, profile Profile) error {
	args := BuildArgs(inputPath, outputPath, profile)

	cmd := exec.CommandContext(ctx, t.binPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ExecError{Stderr: stderr.String(), Err: err}
	}
	return nil
}

// BuildArgs constructs the ffmpeg argument vector for a profile.
// Exported so tests can assert the command shape without running ffmpeg.
func BuildArgs(inputPath, outputPath string, p Profile) []string {
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-i", inputPath,
		"-c:v", p.Encoder,
		"-profile:v", p.EncoderProfile,
		"-pix_fmt", p.PixFmt,
		"-colorspace", p.ColorSpace,
		"-color_primaries", p.ColorPrimaries,
		"-color_trc", p.ColorTransfer,
		"-crf", strconv.Itoa(p.CRF),
		"-preset", p.Preset,
	}
	if p.MovFlags != "" {
		args = append(args, "-movflags", p.MovFlags)
	}
	// -y: the output is a fresh sibling temp path, safe to clobber.
	args = append(args, "-y", outputPath)
	return args
}
