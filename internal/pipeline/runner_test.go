package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codecsweep/internal/console"
	"codecsweep/internal/transcoder"
	"codecsweep/pkg/models"
)

// --- fakes ---

type okVerifier struct{}

func (okVerifier) Verify(context.Context) error { return nil }

type failVerifier struct{}

func (failVerifier) Verify(context.Context) error { return errors.New("ffmpeg health probe failed") }

// contentProber reads the codec from the file content, written as
// "<codec>:<payload>". Because the fake transcoder writes target-codec
// content, re-running a batch naturally probes converted files as done.
type contentProber struct {
	calls []string
}

func (p *contentProber) Probe(_ context.Context, path string) (string, error) {
	p.calls = append(p.calls, filepath.Base(path))
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	codec, _, ok := strings.Cut(string(b), ":")
	if !ok {
		return "", errors.New("malformed probe output")
	}
	return codec, nil
}

// fakeTranscoder writes target-codec content to the output path, or fails
// (leaving a partial output behind) for inputs listed in failFor.
type fakeTranscoder struct {
	failFor map[string]bool
	inputs  []string
	outputs []string
}

func (t *fakeTranscoder) Transcode(_ context.Context, in, out string, p transcoder.Profile) error {
	t.inputs = append(t.inputs, filepath.Base(in))
	t.outputs = append(t.outputs, out)
	if t.failFor[filepath.Base(in)] {
		// Simulate a partial write before the tool dies.
		_ = os.WriteFile(out, []byte("garbage"), 0o644)
		return &transcoder.ExecError{Stderr: "broken input", Err: errors.New("exit status 1")}
	}
	return os.WriteFile(out, []byte(p.TargetCodec+":converted"), 0o644)
}

func newTestRunner(pr *contentProber, tr *fakeTranscoder, v Verifier) *Runner {
	return &Runner{
		Engine:     v,
		Prober:     pr,
		Transcoder: tr,
		Console:    console.NewWithWriter(&bytes.Buffer{}),
		Log:        hclog.NewNullLogger(),
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func defaultOpts(dir string) Options {
	return Options{
		Dir:     dir,
		Pattern: "video_*.mp4",
		Profile: transcoder.DefaultProfile(),
	}
}

// assertNoTempFiles checks that no residual temp artifacts survive a run.
func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "residual temp file: %s", e.Name())
	}
}

// --- tests ---

func TestRunNoCandidates(t *testing.T) {
	runner := newTestRunner(&contentProber{}, &fakeTranscoder{}, okVerifier{})

	sum, err := runner.Run(context.Background(), defaultOpts(t.TempDir()))

	require.NoError(t, err)
	assert.Equal(t, models.RunSummary{}, sum)
}

func TestRunToolUnavailableTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "video_0001.mp4", "mpeg4:original")

	pr := &contentProber{}
	tr := &fakeTranscoder{}
	runner := newTestRunner(pr, tr, failVerifier{})

	_, err := runner.Run(context.Background(), defaultOpts(dir))

	require.ErrorIs(t, err, ErrToolUnavailable)
	assert.Empty(t, pr.calls, "no file may be probed after preflight failure")
	assert.Empty(t, tr.inputs)

	b, readErr := os.ReadFile(filepath.Join(dir, "video_0001.mp4"))
	require.NoError(t, readErr)
	assert.Equal(t, "mpeg4:original", string(b))
}

// Mixed batch: one file already in the target codec, one converting
// cleanly, one failing inside the tool.
func TestRunMixedBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "video_0001.mp4", "h264:already-done")
	writeFile(t, dir, "video_0002.mp4", "mpeg4:needs-work")
	writeFile(t, dir, "video_0003.mp4", "mpeg4:will-fail")

	pr := &contentProber{}
	tr := &fakeTranscoder{failFor: map[string]bool{"video_0003.mp4": true}}
	runner := newTestRunner(pr, tr, okVerifier{})

	sum, err := runner.Run(context.Background(), defaultOpts(dir))
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.Converted)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 1, sum.Failed)

	// Skip correctness: the already-converted file never reaches the tool.
	assert.NotContains(t, tr.inputs, "video_0001.mp4")

	// Converted file is fully replaced.
	b, _ := os.ReadFile(filepath.Join(dir, "video_0002.mp4"))
	assert.Equal(t, "h264:converted", string(b))

	// Failed file keeps its original content, and its temp is cleaned up.
	b, _ = os.ReadFile(filepath.Join(dir, "video_0003.mp4"))
	assert.Equal(t, "mpeg4:will-fail", string(b))
	assertNoTempFiles(t, dir)
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "video_0001.mp4", "mpeg4:a")
	writeFile(t, dir, "video_0002.mp4", "mpeg4:b")

	tr := &fakeTranscoder{}
	runner := newTestRunner(&contentProber{}, tr, okVerifier{})

	first, err := runner.Run(context.Background(), defaultOpts(dir))
	require.NoError(t, err)
	assert.Equal(t, 2, first.Converted)

	tr2 := &fakeTranscoder{}
	runner2 := newTestRunner(&contentProber{}, tr2, okVerifier{})

	second, err := runner2.Run(context.Background(), defaultOpts(dir))
	require.NoError(t, err)
	assert.Equal(t, 0, second.Converted)
	assert.Equal(t, 2, second.Skipped)
	assert.Empty(t, tr2.inputs, "second run must not invoke the transcoder")
}

func TestRunIsolatesProbeFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "video_0001.mp4", "no-separator")
	writeFile(t, dir, "video_0002.mp4", "mpeg4:fine")
	writeFile(t, dir, "video_0003.mp4", "mpeg4:fine-too")

	tr := &fakeTranscoder{}
	runner := newTestRunner(&contentProber{}, tr, okVerifier{})

	sum, err := runner.Run(context.Background(), defaultOpts(dir))
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 2, sum.Converted)
	assert.Len(t, tr.inputs, 2, "remaining files still processed after one failure")
}

func TestRunTempSiblingStaysInDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "video_0001.mp4", "mpeg4:x")

	tr := &fakeTranscoder{}
	runner := newTestRunner(&contentProber{}, tr, okVerifier{})

	_, err := runner.Run(context.Background(), defaultOpts(dir))
	require.NoError(t, err)

	require.Len(t, tr.outputs, 1)
	out := tr.outputs[0]
	assert.Equal(t, dir, filepath.Dir(out), "temp must be a sibling for an atomic rename")
	assert.NotEqual(t, path, out)
	assert.Equal(t, ".mp4", filepath.Ext(out))
	assertNoTempFiles(t, dir)
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "video_0001.mp4", "mpeg4:untouched")

	tr := &fakeTranscoder{}
	runner := newTestRunner(&contentProber{}, tr, okVerifier{})

	opts := defaultOpts(dir)
	opts.DryRun = true
	sum, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Converted)
	assert.Empty(t, tr.inputs)

	b, _ := os.ReadFile(filepath.Join(dir, "video_0001.mp4"))
	assert.Equal(t, "mpeg4:untouched", string(b))
}
