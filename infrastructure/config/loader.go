package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Output OutputConfig `yaml:"output"`
	Watch  WatchConfig  `yaml:"watch"`
}

// EngineConfig contains the media engine binary locations. Paths are
// explicit configuration values rather than environment variables so the
// dependency is visible and mockable.
type EngineConfig struct {
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
}

// OutputConfig controls where trimmed files are written and how they are named
type OutputConfig struct {
	DirectoryName  string `yaml:"directory_name"`
	FilenamePrefix string `yaml:"filename_prefix"`
}

// WatchConfig contains directory watching settings
type WatchConfig struct {
	SettleSeconds float64 `yaml:"settle_seconds"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			FFmpegPath:  "ffmpeg",
			FFprobePath: "ffprobe",
		},
		Output: OutputConfig{
			DirectoryName:  "trimmed_videos",
			FilenamePrefix: "trimmed_",
		},
		Watch: WatchConfig{
			SettleSeconds: 2,
		},
	}
}

// Load reads and parses the configuration from the specified YAML file.
// Fields left empty in the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Engine.FFmpegPath == "" {
		c.Engine.FFmpegPath = def.Engine.FFmpegPath
	}
	if c.Engine.FFprobePath == "" {
		c.Engine.FFprobePath = def.Engine.FFprobePath
	}
	if c.Output.DirectoryName == "" {
		c.Output.DirectoryName = def.Output.DirectoryName
	}
	if c.Output.FilenamePrefix == "" {
		c.Output.FilenamePrefix = def.Output.FilenamePrefix
	}
	if c.Watch.SettleSeconds <= 0 {
		c.Watch.SettleSeconds = def.Watch.SettleSeconds
	}
}
