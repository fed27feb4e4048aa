// Package config loads mergediff's configuration.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codalotl/mergediff/internal/diff"
	"github.com/codalotl/mergediff/internal/q/cascade"
)

// LocalFileName is the project config file, searched for upward from the working directory.
const LocalFileName = ".mergediff.json"

// Formats lists the accepted values of Config.Format.
var Formats = []string{"unified", "side", "json", "patch", "chunks"}

// Config is mergediff's configuration.
//
// Keys are the json tag names; cascade matches them case-insensitively. Each <Field>Providence records the source of <Field>; the CLI sets it to FromFlag when a
// flag overrides the loaded value.
type Config struct {
	// ScanLimit bounds the diff search depth (see diff.Config). 0 means unlimited.
	ScanLimit           int                `json:"scan_limit"`
	ScanLimitProvidence cascade.Providence `json:"-"`

	// Timeout is the wall-clock budget for one diff. 0 means none.
	Timeout           time.Duration      `json:"timeout"`
	TimeoutProvidence cascade.Providence `json:"-"`

	// Context is the number of unchanged lines shown around changes.
	Context           int                `json:"context"`
	ContextProvidence cascade.Providence `json:"-"`

	// Width is the side-by-side output width. 0 means the terminal width, or 120 when that is unknown.
	Width           int                `json:"width"`
	WidthProvidence cascade.Providence `json:"-"`

	Color           string             `json:"color"` // auto, always, or never
	ColorProvidence cascade.Providence `json:"-"`

	Format           string             `json:"format"`
	FormatProvidence cascade.Providence `json:"-"`

	// CacheDir, if set, is where diff results are cached, keyed by the content of both inputs and the diff settings.
	CacheDir           string             `json:"cache_dir"`
	CacheDirProvidence cascade.Providence `json:"-"`
}

// FromFlag is the provenance of a value given on the command line.
var FromFlag = cascade.Providence{SourceType: "flag"}

// DiffConfig returns the engine settings of cfg.
func (cfg Config) DiffConfig() diff.Config {
	return diff.Config{ScanLimit: cfg.ScanLimit, Timeout: cfg.Timeout}
}

// Load loads the configuration. Sources, from lowest to highest priority: defaults, the user config file, the nearest LocalFileName above the working directory,
// explicitPath (if not empty), and MERGEDIFF_* environment variables. An explicitPath that doesn't exist is an error; the other files are optional.
func Load(explicitPath string) (Config, error) {
	loader := cascade.New().
		WithDefaults(map[string]any{
			"scan_limit": diff.DefaultScanLimit,
			"timeout":    "5s",
			"context":    3,
			"width":      0,
			"color":      "auto",
			"format":     "unified",
			"cache_dir":  "",
		}).
		WithJSONFile(UserFile()).
		WithNearestJSONFile(LocalFileName, "")

	if explicitPath != "" {
		if _, err := os.Stat(cascade.ExpandPath(explicitPath)); err != nil {
			return Config{}, fmt.Errorf("load configuration: %w", err)
		}
		loader = loader.WithJSONFile(explicitPath)
	}

	loader = loader.WithEnv(map[string]string{
		"scan_limit": "MERGEDIFF_SCAN_LIMIT",
		"timeout":    "MERGEDIFF_TIMEOUT",
		"context":    "MERGEDIFF_CONTEXT",
		"width":      "MERGEDIFF_WIDTH",
		"color":      "MERGEDIFF_COLOR",
		"format":     "MERGEDIFF_FORMAT",
		"cache_dir":  "MERGEDIFF_CACHE_DIR",
	})

	var cfg Config
	if err := loader.StrictlyLoad(&cfg); err != nil {
		return Config{}, fmt.Errorf("load configuration: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UserFile is the path of the per-user config file.
func UserFile() string {
	return cascade.InUserConfigDirectory(filepath.Join("mergediff", "config.json"))
}

// Validate reports the first invalid setting in cfg.
func Validate(cfg Config) error {
	if cfg.ScanLimit < 0 {
		return fmt.Errorf("invalid configuration: scan_limit must be >= 0 (got %d)", cfg.ScanLimit)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("invalid configuration: timeout must be >= 0 (got %s)", cfg.Timeout)
	}
	if cfg.Context < 0 {
		return fmt.Errorf("invalid configuration: context must be >= 0 (got %d)", cfg.Context)
	}
	if cfg.Width != 0 && cfg.Width < 20 {
		return fmt.Errorf("invalid configuration: width must be 0 or >= 20 (got %d)", cfg.Width)
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid configuration: color must be auto, always, or never (got %q)", cfg.Color)
	}
	if !validFormat(cfg.Format) {
		return fmt.Errorf("invalid configuration: format must be one of %s (got %q)", strings.Join(Formats, ", "), cfg.Format)
	}
	return nil
}

func validFormat(f string) bool {
	for _, ok := range Formats {
		if f == ok {
			return true
		}
	}
	return false
}

// WriteJSON writes cfg as indented JSON.
func WriteJSON(w io.Writer, cfg Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(struct {
		ScanLimit int    `json:"scan_limit"`
		Timeout   string `json:"timeout"`
		Context   int    `json:"context"`
		Width     int    `json:"width"`
		Color     string `json:"color"`
		Format    string `json:"format"`
		CacheDir  string `json:"cache_dir"`
	}{cfg.ScanLimit, cfg.Timeout.String(), cfg.Context, cfg.Width, cfg.Color, cfg.Format, cfg.CacheDir})
}

// WriteSources writes one "key = value (source)" line per setting.
func WriteSources(w io.Writer, cfg Config) error {
	rows := []struct {
		key   string
		value any
		prov  cascade.Providence
	}{
		{"scan_limit", cfg.ScanLimit, cfg.ScanLimitProvidence},
		{"timeout", cfg.Timeout, cfg.TimeoutProvidence},
		{"context", cfg.Context, cfg.ContextProvidence},
		{"width", cfg.Width, cfg.WidthProvidence},
		{"color", cfg.Color, cfg.ColorProvidence},
		{"format", cfg.Format, cfg.FormatProvidence},
		{"cache_dir", cfg.CacheDir, cfg.CacheDirProvidence},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-10s = %v (%s)\n", r.key, r.value, r.prov); err != nil {
			return err
		}
	}
	return nil
}
