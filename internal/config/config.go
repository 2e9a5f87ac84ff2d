package config

import (
	"strings"

	"github.com/spf13/viper"

	"codecsweep/internal/transcoder"
)

// Config holds all the settings for a batch run.
type Config struct {
	MediaDir    string `mapstructure:"media_dir"`
	Pattern     string `mapstructure:"pattern"`
	FFmpegPath  string `mapstructure:"ffmpeg_path"`
	FFprobePath string `mapstructure:"ffprobe_path"`
	LogLevel    string `mapstructure:"log_level"`
	ReportURL   string `mapstructure:"report_url"`

	// Conversion profile overrides. Unset values fall back to the
	// defaults in the transcoder package.
	TargetCodec string `mapstructure:"target_codec"`
	Encoder     string `mapstructure:"encoder"`
	CRF         int    `mapstructure:"crf"`
	Preset      string `mapstructure:"preset"`
}

// LoadConfig initializes Viper and merges all config sources: defaults,
// then an optional YAML file, then SWEEP_* environment variables.
func LoadConfig(path string) (*Config, error) {
	viper.SetDefault("media_dir", "./static/videos")
	viper.SetDefault("pattern", "video_*.mp4")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("target_codec", transcoder.CodecH264)
	viper.SetDefault("encoder", transcoder.EncoderX264)
	viper.SetDefault("crf", transcoder.DefaultCRF)
	viper.SetDefault("preset", transcoder.PresetMedium)

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults still apply.
	}

	viper.SetEnvPrefix("SWEEP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	err := viper.Unmarshal(&cfg)
	return &cfg, err
}

// Profile builds the conversion profile for this run: the package defaults
// with any configured overrides applied.
func (c *Config) Profile() transcoder.Profile {
	p := transcoder.DefaultProfile()
	if c.TargetCodec != "" {
		p.TargetCodec = c.TargetCodec
	}
	if c.Encoder != "" {
		p.Encoder = c.Encoder
	}
	if c.CRF > 0 {
		p.CRF = c.CRF
	}
	if c.Preset != "" {
		p.Preset = c.Preset
	}
	return p
}
