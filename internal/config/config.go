package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/tupshar/internal/config/loader"
	"github.com/dshills/tupshar/internal/glyph"
)

// Config is the merged configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Glyphs  GlyphsConfig  `toml:"glyphs"`
	Logging LoggingConfig `toml:"logging"`
	Save    SaveConfig    `toml:"save"`
	UI      UIConfig      `toml:"ui"`

	// Source is the file the configuration was read from, if any.
	Source string `toml:"-"`
}

// EditorConfig holds editing behaviour.
type EditorConfig struct {
	// Strict reports mode mismatches as errors instead of ignoring them.
	Strict bool `toml:"strict"`

	// DefaultView is the view shown when the editor starts.
	DefaultView string `toml:"default_view"`

	// Project is the project assigned to new documents.
	Project string `toml:"project"`
}

// GlyphsConfig locates the sign list.
type GlyphsConfig struct {
	// SignList is a JSON, YAML or TOML file mapping tokens to glyphs.
	SignList string `toml:"sign_list"`

	// Fallback is shown for tokens with no glyph.
	Fallback string `toml:"fallback"`

	// Watch reloads the sign list when the file changes.
	Watch bool `toml:"watch"`
}

// LoggingConfig controls diagnostics.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// SaveConfig controls persistence.
type SaveConfig struct {
	// Compress writes new documents with the .xz extension.
	Compress bool `toml:"compress"`
}

// UIConfig holds editor colours as hex strings.
type UIConfig struct {
	Accent    string `toml:"accent"`
	Selection string `toml:"selection"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			DefaultView: "transliteration",
			Project:     "Unassigned",
		},
		Glyphs: GlyphsConfig{
			Fallback: glyph.DefaultFallback,
			Watch:    true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			Accent:    "#d4a017",
			Selection: "#3a5f8a",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tupshar/config.toml, or the platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tupshar", "config.toml")
}

// Load reads path (DefaultPath when empty), applies the environment and
// validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	return load(loader.NewTOMLLoader(path), loader.NewEnvLoader(loader.Prefix))
}

func load(file *loader.TOMLLoader, env loader.Loader) (*Config, error) {
	merged := make(map[string]any)

	fromFile, err := file.Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, fromFile)

	fromEnv, err := env.Load()
	if err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	merged = loader.DeepMerge(merged, fromEnv)

	cfg, err := decode(merged)
	if err != nil {
		return nil, err
	}
	if fromFile != nil {
		cfg.Source = file.Path()
	}
	cfg.Glyphs.SignList = expandHome(cfg.Glyphs.SignList)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies a generic settings map over the defaults.
func decode(settings map[string]any) (*Config, error) {
	cfg := Default()
	if len(settings) == 0 {
		return cfg, nil
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
