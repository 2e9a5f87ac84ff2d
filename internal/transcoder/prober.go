package transcoder

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// Prober reports a media file's primary video codec. The pipeline depends
// on this interface rather than the ffprobe implementation so tests can
// substitute a fake without invoking real tooling.
type Prober interface {
	Probe(ctx context.Context, path string) (string, error)
}

// FFprobeProber asks ffprobe for the first video stream's codec name.
type FFprobeProber struct {
	binPath string
}

// NewProber returns a Prober backed by the engine's ffprobe binary.
func NewProber(e *Engine) *FFprobeProber {
	return &FFprobeProber{binPath: e.FFprobePath}
}

// Probe runs a single ffprobe JSON call selecting the first video stream
// and returns its codec name (e.g. "h264", "mpeg4").
func (p *FFprobeProber) Probe(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, p.binPath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name",
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseCodec(out)
}

// probeOutput is the subset of ffprobe's JSON wire format we read.
type probeOutput struct {
	Streams []struct {
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

// ParseCodec extracts the codec name from raw ffprobe JSON output.
// Exported for testing without a real ffprobe binary.
func ParseCodec(data []byte) (string, error) {
	var raw probeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	if len(raw.Streams) == 0 || raw.Streams[0].CodecName == "" {
		return "", fmt.Errorf("no video stream in ffprobe output")
	}
	return raw.Streams[0].CodecName, nil
}
