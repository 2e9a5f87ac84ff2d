// Package pipeline orchestrates the batch: discover candidate files,
// classify each by current codec, invoke the external transcoder only when
// needed, atomically commit the result, and report aggregate outcome.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"codecsweep/internal/console"
	"codecsweep/internal/transcoder"
	"codecsweep/pkg/models"
)

// ErrToolUnavailable is returned when the preflight health probe fails.
// It is the only fatal condition: no candidate file has been touched yet.
var ErrToolUnavailable = errors.New("transcoder tool unavailable")

// Verifier is the preflight capability check, satisfied by transcoder.Engine.
type Verifier interface {
	Verify(ctx context.Context) error
}

// Runner holds the orchestrator's collaborators. Prober and Transcoder are
// interfaces so tests can substitute fakes without invoking real tooling.
type Runner struct {
	Engine     Verifier
	Prober     transcoder.Prober
	Transcoder transcoder.Transcoder
	Console    *console.Console
	Log        hclog.Logger
}

// Options configures a single batch run.
type Options struct {
	Dir     string
	Pattern string
	Profile transcoder.Profile
	DryRun  bool // probe and report only, never invoke the transcoder
}

// Run executes one batch. Per-file failures are isolated: they are counted
// and logged, and never abort processing of subsequent files. The only
// fatal error is ErrToolUnavailable from the preflight check. An empty
// candidate set returns an all-zero summary and a nil error.
func (r *Runner) Run(ctx context.Context, opts Options) (models.RunSummary, error) {
	var sum models.RunSummary

	files, err := Discover(opts.Dir, opts.Pattern)
	if err != nil {
		return sum, fmt.Errorf("discover %q: %w", opts.Pattern, err)
	}
	if len(files) == 0 {
		r.Console.Infof("No files matching %s found!", opts.Pattern)
		return sum, nil
	}
	sum.Total = len(files)

	// Preflight: verify the tool before touching any file.
	if err := r.Engine.Verify(ctx); err != nil {
		r.Log.Error("preflight check failed", "error", err)
		return models.RunSummary{}, fmt.Errorf("%w: %v", ErrToolUnavailable, err)
	}

	r.Console.Infof("Found %d video files to process", len(files))
	r.Console.Blank()

	for _, path := range files {
		sum.Record(r.processFile(ctx, path, opts))
		r.Console.Blank()
	}

	r.Console.Summary(sum)
	return sum, nil
}

// processFile handles one candidate: probe, skip or transcode, commit.
// Each file is attempted exactly once per run; there is no retry.
func (r *Runner) processFile(ctx context.Context, path string, opts Options) models.FileResult {
	base := filepath.Base(path)
	res := models.FileResult{Path: path, Outcome: models.OutcomeUnknown}

	codec, err := r.Prober.Probe(ctx, path)
	if err != nil {
		r.Log.Error("probe failed", "file", path, "error", err)
		r.Console.Failed(base, err)
		res.Outcome = models.OutcomeFailed
		res.Err = err.Error()
		return res
	}
	res.Codec = codec

	// Idempotence short-circuit: a file already in the target codec is
	// never handed to the transcoder.
	if codec == opts.Profile.TargetCodec {
		r.Console.Skipped(base, codec)
		res.Outcome = models.OutcomeSkipped
		return res
	}

	r.Console.Codec(codec)

	if opts.DryRun {
		r.Console.Infof("[DRY] Would convert: %s", base)
		res.Outcome = models.OutcomeConverted
		return res
	}

	r.Console.Converting(base)

	// The transcoder writes to a sibling temp path so a partial write is
	// never visible under the original name, and the commit below is a
	// same-volume atomic rename.
	tmp := tempPath(path)
	if err := r.Transcoder.Transcode(ctx, path, tmp, opts.Profile); err != nil {
		r.logToolFailure(path, err)
		r.Console.Failed(base, err)
		if rmErr := os.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
			r.Log.Warn("could not remove temp file", "file", tmp, "error", rmErr)
		}
		res.Outcome = models.OutcomeFailed
		res.Err = err.Error()
		return res
	}

	if err := os.Rename(tmp, path); err != nil {
		r.Log.Error("commit failed", "file", path, "error", err)
		r.Console.Failed(base, err)
		if rmErr := os.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
			r.Log.Warn("could not remove temp file", "file", tmp, "error", rmErr)
		}
		res.Outcome = models.OutcomeFailed
		res.Err = err.Error()
		return res
	}

	r.Console.Converted(base)
	res.Outcome = models.OutcomeConverted
	return res
}

// logToolFailure surfaces ffmpeg's own diagnostic text when available.
func (r *Runner) logToolFailure(path string, err error) {
	r.Log.Error("transcode failed", "file", path, "error", err)
	var execErr *transcoder.ExecError
	if errors.As(err, &execErr) {
		for _, line := range execErr.StderrTail(20) {
			r.Log.Error("ffmpeg: " + line)
		}
	}
}
