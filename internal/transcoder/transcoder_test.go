package transcoder

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgsDefaultProfile(t *testing.T) {
	args := BuildArgs("in.mp4", "out.mp4", DefaultProfile())

	joined := " " + strings.Join(args, " ") + " "
	for _, pair := range []string{
		"-i in.mp4",
		"-c:v libx264",
		"-profile:v high",
		"-pix_fmt yuv420p",
		"-colorspace bt709",
		"-color_primaries bt709",
		"-color_trc bt709",
		"-crf 23",
		"-preset medium",
		"-movflags +faststart",
	} {
		assert.Contains(t, joined, " "+pair+" ")
	}

	// Output path is the final argument, preceded by the overwrite flag.
	require.GreaterOrEqual(t, len(args), 2)
	assert.Equal(t, "-y", args[len(args)-2])
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

func TestBuildArgsOmitsEmptyMovFlags(t *testing.T) {
	p := DefaultProfile()
	p.MovFlags = ""

	args := BuildArgs("in.mkv", "out.mkv", p)
	assert.NotContains(t, args, "-movflags")
}

func TestParseCodec(t *testing.T) {
	codec, err := ParseCodec([]byte(`{"streams":[{"codec_name":"mpeg4"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "mpeg4", codec)
}

func TestParseCodecNoVideoStream(t *testing.T) {
	_, err := ParseCodec([]byte(`{"streams":[]}`))
	assert.Error(t, err)
}

func TestParseCodecMalformed(t *testing.T) {
	_, err := ParseCodec([]byte(`not json`))
	assert.Error(t, err)
}

func TestExecErrorStderrTail(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	execErr := &ExecError{Stderr: strings.Join(lines, "\n"), Err: errors.New("exit status 1")}

	assert.Len(t, execErr.StderrTail(20), 20)
	assert.ErrorIs(t, execErr, execErr.Err)
}
