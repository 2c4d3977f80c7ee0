package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything pullview reads from config.toml.
type Config struct {
	Threshold                            float64
	PullStep                             float64
	ShowsIndicators                      bool
	ShowsContentUnderProgressWhenLoading bool
	HapticsEnabled                       bool
	BackgroundColor                      string
	Indicator                            string
	Source                               string
	TailLines                            int
	LogDir                               string
	LogLevel                             string
}

const (
	defaultConfigPath = "~/.config/pullview/config.toml"
	defaultLogDir     = "~/.local/state/pullview"
	defaultThreshold  = 68
	defaultPullStep   = 17
	defaultTailLines  = 500
	defaultIndicator  = IndicatorSpinner
	defaultLogLevel   = "info"
)

// Indicator names accepted by the indicator setting.
const (
	IndicatorSpinner = "spinner"
	IndicatorBar     = "bar"
	IndicatorArrow   = "arrow"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Threshold:                            defaultThreshold,
		PullStep:                             defaultPullStep,
		ShowsIndicators:                      true,
		ShowsContentUnderProgressWhenLoading: true,
		Indicator:                            defaultIndicator,
		TailLines:                            defaultTailLines,
		LogDir:                               mustExpand(defaultLogDir),
		LogLevel:                             defaultLogLevel,
	}
}

// Load locates and parses config.toml, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Threshold                            float64 `toml:"threshold"`
		PullStep                             float64 `toml:"pull_step"`
		ShowsIndicators                      *bool   `toml:"shows_indicators"`
		ShowsContentUnderProgressWhenLoading *bool   `toml:"shows_content_under_progress_when_loading"`
		HapticsEnabled                       bool    `toml:"haptics_enabled"`
		BackgroundColor                      string  `toml:"background_color"`
		Indicator                            string  `toml:"indicator"`
		Source                               string  `toml:"source"`
		TailLines                            int     `toml:"tail_lines"`
		LogDir                               string  `toml:"log_dir"`
		LogLevel                             string  `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.Threshold != 0 {
		cfg.Threshold = raw.Threshold
	}
	if raw.PullStep != 0 {
		cfg.PullStep = raw.PullStep
	}
	if raw.TailLines != 0 {
		cfg.TailLines = raw.TailLines
	}
	if raw.ShowsIndicators != nil {
		cfg.ShowsIndicators = *raw.ShowsIndicators
	}
	if raw.ShowsContentUnderProgressWhenLoading != nil {
		cfg.ShowsContentUnderProgressWhenLoading = *raw.ShowsContentUnderProgressWhenLoading
	}
	cfg.HapticsEnabled = raw.HapticsEnabled
	cfg.BackgroundColor = strings.TrimSpace(raw.BackgroundColor)

	if indicator := strings.ToLower(strings.TrimSpace(raw.Indicator)); indicator != "" {
		cfg.Indicator = indicator
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if src := strings.TrimSpace(raw.Source); src != "" {
		cfg.Source = src
	}
	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the refresh engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Threshold <= 0 {
		errs = append(errs, fmt.Errorf("threshold must be > 0, got %v", c.Threshold))
	}
	if c.PullStep <= 0 {
		errs = append(errs, fmt.Errorf("pull_step must be > 0, got %v", c.PullStep))
	}
	if c.TailLines <= 0 {
		errs = append(errs, fmt.Errorf("tail_lines must be > 0, got %d", c.TailLines))
	}
	switch c.Indicator {
	case IndicatorSpinner, IndicatorBar, IndicatorArrow:
	default:
		errs = append(errs, fmt.Errorf("unknown indicator %q", c.Indicator))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ExpandPath resolves ~ and relative paths. Values with a URL scheme are
// returned unchanged.
func ExpandPath(path string) (string, error) {
	if strings.Contains(path, "://") {
		return strings.TrimSpace(path), nil
	}
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
