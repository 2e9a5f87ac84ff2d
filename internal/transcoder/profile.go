package transcoder

// Define constants for the default target format to avoid "magic strings"
// spread across the argument builder and the config defaults.
const (
	CodecH264       = "h264"
	EncoderX264     = "libx264"
	ProfileHigh     = "high"
	PixFmtYUV420P   = "yuv420p"
	ColorBT709      = "bt709"
	PresetMedium    = "medium"
	DefaultCRF      = 23
	FaststartMovFlg = "+faststart"
)

// Profile is the fixed set of target encoding parameters for one run.
// It is immutable once the run starts; the argument builder in
// transcoder.go turns it into the ffmpeg CLI vector.
type Profile struct {
	TargetCodec    string // codec identifier as reported by the prober, e.g. "h264"
	Encoder        string // ffmpeg encoder name, e.g. "libx264"
	EncoderProfile string // e.g. "high"
	PixFmt         string // e.g. "yuv420p"
	ColorSpace     string
	ColorPrimaries string
	ColorTransfer  string
	CRF            int    // quality factor, lower is better
	Preset         string // speed/size tradeoff, e.g. "medium"
	MovFlags       string // container flags, e.g. "+faststart"
}

// DefaultProfile returns the H.264 "match the teaser" profile: High profile
// yuv420p with bt709 color, CRF 23, medium preset, faststart container flags.
func DefaultProfile() Profile {
	return Profile{
		TargetCodec:    CodecH264,
		Encoder:        EncoderX264,
		EncoderProfile: ProfileHigh,
		PixFmt:         PixFmtYUV420P,
		ColorSpace:     ColorBT709,
		ColorPrimaries: ColorBT709,
		ColorTransfer:  ColorBT709,
		CRF:            DefaultCRF,
		Preset:         PresetMedium,
		MovFlags:       FaststartMovFlg,
	}
}
