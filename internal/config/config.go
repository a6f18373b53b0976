package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/menta2k/collage-kit/pkg/borderzone"
)

// EnvPrefix is the prefix for environment overrides, e.g. COLLAGE_DRAG_MIN_PANEL_WIDTH_PX
const EnvPrefix = "COLLAGE"

// Config holds the application configuration
type Config struct {
	Detect  DetectConfig  `mapstructure:"detect" json:"detect"`
	Drag    DragConfig    `mapstructure:"drag" json:"drag"`
	Render  RenderConfig  `mapstructure:"render" json:"render"`
	Focus   FocusConfig   `mapstructure:"focus" json:"focus"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// DetectConfig holds border detection heuristics
type DetectConfig struct {
	MinHitTargetPx    float64 `mapstructure:"min_hit_target_px" json:"min_hit_target_px"`
	HandleLengthPx    float64 `mapstructure:"handle_length_px" json:"handle_length_px"`
	HandleThicknessPx float64 `mapstructure:"handle_thickness_px" json:"handle_thickness_px"`
	EpsilonPx         float64 `mapstructure:"epsilon_px" json:"epsilon_px"`
	HitLengthRatio    float64 `mapstructure:"hit_length_ratio" json:"hit_length_ratio"`
	HitLengthMinPx    float64 `mapstructure:"hit_length_min_px" json:"hit_length_min_px"`
	HitLengthMaxPx    float64 `mapstructure:"hit_length_max_px" json:"hit_length_max_px"`
	HitPaddingPx      float64 `mapstructure:"hit_padding_px" json:"hit_padding_px"`
}

// DragConfig holds resize limits and center snapping
type DragConfig struct {
	MinPanelWidthPx    float64 `mapstructure:"min_panel_width_px" json:"min_panel_width_px"`
	MinPanelHeightPx   float64 `mapstructure:"min_panel_height_px" json:"min_panel_height_px"`
	CenterSnap         bool    `mapstructure:"center_snap" json:"center_snap"`
	SnapThresholdPx    float64 `mapstructure:"snap_threshold_px" json:"snap_threshold_px"`
	SnapThresholdRatio float64 `mapstructure:"snap_threshold_ratio" json:"snap_threshold_ratio"`
	SnapThresholdMinPx float64 `mapstructure:"snap_threshold_min_px" json:"snap_threshold_min_px"`
	SnapThresholdMaxPx float64 `mapstructure:"snap_threshold_max_px" json:"snap_threshold_max_px"`
}

// RenderConfig holds collage output settings
type RenderConfig struct {
	Format      string `mapstructure:"format" json:"format"`
	Quality     int    `mapstructure:"quality" json:"quality"`
	Lossless    bool   `mapstructure:"lossless" json:"lossless"`
	Background  string `mapstructure:"background" json:"background"`
	Concurrency int    `mapstructure:"concurrency" json:"concurrency"`
}

// FocusConfig selects how panel images are positioned inside their panels
type FocusConfig struct {
	Mode          string  `mapstructure:"mode" json:"mode"`
	OllamaURL     string  `mapstructure:"ollama_url" json:"ollama_url"`
	LlamaCppURL   string  `mapstructure:"llamacpp_url" json:"llamacpp_url"`
	Model         string  `mapstructure:"model" json:"model"`
	MinConfidence float64 `mapstructure:"min_confidence" json:"min_confidence"`
	SendSize      int     `mapstructure:"send_size" json:"send_size"`
	SendQuality   int     `mapstructure:"send_quality" json:"send_quality"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// Default returns a configuration with default values
func Default() *Config {
	d := borderzone.DefaultDetectOptions()
	s := borderzone.DefaultCenterSnap()
	return &Config{
		Detect: DetectConfig{
			MinHitTargetPx:    d.MinHitTargetPx,
			HandleLengthPx:    d.HandleLengthPx,
			HandleThicknessPx: d.HandleThicknessPx,
			EpsilonPx:         d.EpsilonPx,
			HitLengthRatio:    d.HitLengthRatio,
			HitLengthMinPx:    d.HitLengthMinPx,
			HitLengthMaxPx:    d.HitLengthMaxPx,
			HitPaddingPx:      d.HitPaddingPx,
		},
		Drag: DragConfig{
			MinPanelWidthPx:    48,
			MinPanelHeightPx:   48,
			CenterSnap:         false,
			SnapThresholdRatio: s.ThresholdRatio,
			SnapThresholdMinPx: s.ThresholdMinPx,
			SnapThresholdMaxPx: s.ThresholdMaxPx,
		},
		Render: RenderConfig{
			Format:      "jpg",
			Quality:     90,
			Background:  "#ffffff",
			Concurrency: 4,
		},
		Focus: FocusConfig{
			Mode:          "saliency",
			OllamaURL:     "http://localhost:11434",
			LlamaCppURL:   "http://localhost:8080",
			Model:         "openbmb/minicpm-v4.5",
			MinConfidence: 0.3,
			SendSize:      768,
			SendQuality:   85,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// setDefaults registers every key so environment overrides apply on Unmarshal
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("detect.min_hit_target_px", c.Detect.MinHitTargetPx)
	v.SetDefault("detect.handle_length_px", c.Detect.HandleLengthPx)
	v.SetDefault("detect.handle_thickness_px", c.Detect.HandleThicknessPx)
	v.SetDefault("detect.epsilon_px", c.Detect.EpsilonPx)
	v.SetDefault("detect.hit_length_ratio", c.Detect.HitLengthRatio)
	v.SetDefault("detect.hit_length_min_px", c.Detect.HitLengthMinPx)
	v.SetDefault("detect.hit_length_max_px", c.Detect.HitLengthMaxPx)
	v.SetDefault("detect.hit_padding_px", c.Detect.HitPaddingPx)

	v.SetDefault("drag.min_panel_width_px", c.Drag.MinPanelWidthPx)
	v.SetDefault("drag.min_panel_height_px", c.Drag.MinPanelHeightPx)
	v.SetDefault("drag.center_snap", c.Drag.CenterSnap)
	v.SetDefault("drag.snap_threshold_px", c.Drag.SnapThresholdPx)
	v.SetDefault("drag.snap_threshold_ratio", c.Drag.SnapThresholdRatio)
	v.SetDefault("drag.snap_threshold_min_px", c.Drag.SnapThresholdMinPx)
	v.SetDefault("drag.snap_threshold_max_px", c.Drag.SnapThresholdMaxPx)

	v.SetDefault("render.format", c.Render.Format)
	v.SetDefault("render.quality", c.Render.Quality)
	v.SetDefault("render.lossless", c.Render.Lossless)
	v.SetDefault("render.background", c.Render.Background)
	v.SetDefault("render.concurrency", c.Render.Concurrency)

	v.SetDefault("focus.mode", c.Focus.Mode)
	v.SetDefault("focus.ollama_url", c.Focus.OllamaURL)
	v.SetDefault("focus.llamacpp_url", c.Focus.LlamaCppURL)
	v.SetDefault("focus.model", c.Focus.Model)
	v.SetDefault("focus.min_confidence", c.Focus.MinConfidence)
	v.SetDefault("focus.send_size", c.Focus.SendSize)
	v.SetDefault("focus.send_quality", c.Focus.SendQuality)

	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.format", c.Logging.Format)
}

// Load reads configuration from filename (JSON, YAML or TOML by extension)
// layered over defaults and COLLAGE_* environment variables. An empty
// filename uses defaults and environment only.
func Load(filename string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename != "" {
		v.SetConfigFile(filename)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file not found at %s: %w", filename, err)
			}
			return nil, fmt.Errorf("failed to read config file at %s: %w", filename, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a file
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("config filename is empty")
	}
	return Load(filename)
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Detect.EpsilonPx < 0 {
		return fmt.Errorf("detect.epsilon_px must not be negative")
	}
	if c.Detect.HitLengthRatio < 0 || c.Detect.HitLengthRatio > 1 {
		return fmt.Errorf("detect.hit_length_ratio must be between 0 and 1")
	}
	if c.Detect.HitLengthMaxPx > 0 && c.Detect.HitLengthMaxPx < c.Detect.HitLengthMinPx {
		return fmt.Errorf("detect.hit_length_max_px must be >= detect.hit_length_min_px")
	}

	if c.Drag.MinPanelWidthPx < 0 || c.Drag.MinPanelHeightPx < 0 {
		return fmt.Errorf("drag minimum panel sizes must not be negative")
	}
	if c.Drag.SnapThresholdRatio < 0 || c.Drag.SnapThresholdRatio > 1 {
		return fmt.Errorf("drag.snap_threshold_ratio must be between 0 and 1")
	}

	switch strings.ToLower(c.Render.Format) {
	case "jpg", "jpeg", "png", "webp":
	default:
		return fmt.Errorf("render.format must be jpg, png or webp")
	}
	if c.Render.Quality < 1 || c.Render.Quality > 100 {
		return fmt.Errorf("render.quality must be between 1 and 100")
	}
	if c.Render.Concurrency < 1 {
		return fmt.Errorf("render.concurrency must be positive")
	}

	switch c.Focus.Mode {
	case "none", "saliency":
	case "ollama":
		if c.Focus.OllamaURL == "" || c.Focus.Model == "" {
			return fmt.Errorf("focus.ollama_url and focus.model are required for ollama focus")
		}
	case "llamacpp":
		if c.Focus.LlamaCppURL == "" || c.Focus.Model == "" {
			return fmt.Errorf("focus.llamacpp_url and focus.model are required for llamacpp focus")
		}
	default:
		return fmt.Errorf("focus mode must be none, saliency, ollama or llamacpp")
	}
	if c.Focus.MinConfidence < 0 || c.Focus.MinConfidence > 1 {
		return fmt.Errorf("focus.min_confidence must be between 0 and 1")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}
	return nil
}

// DetectOptions converts the detect section for the border detector
func (c *Config) DetectOptions() borderzone.DetectOptions {
	return borderzone.DetectOptions{
		MinHitTargetPx:    c.Detect.MinHitTargetPx,
		HandleLengthPx:    c.Detect.HandleLengthPx,
		HandleThicknessPx: c.Detect.HandleThicknessPx,
		EpsilonPx:         c.Detect.EpsilonPx,
		HitLengthRatio:    c.Detect.HitLengthRatio,
		HitLengthMinPx:    c.Detect.HitLengthMinPx,
		HitLengthMaxPx:    c.Detect.HitLengthMaxPx,
		HitPaddingPx:      c.Detect.HitPaddingPx,
	}
}

// CenterSnap converts the drag section into center snap settings
func (c *Config) CenterSnap() borderzone.CenterSnap {
	return borderzone.CenterSnap{
		Enabled:        c.Drag.CenterSnap,
		ThresholdPx:    c.Drag.SnapThresholdPx,
		ThresholdRatio: c.Drag.SnapThresholdRatio,
		ThresholdMinPx: c.Drag.SnapThresholdMinPx,
		ThresholdMaxPx: c.Drag.SnapThresholdMaxPx,
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "collage-kit", "config.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "collage-kit", "config.json")
}
