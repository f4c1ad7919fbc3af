// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads gesturesd's tunable recognizer parameters from
// a TOML file, falling back to gesture.DefaultConfig when no file is
// present. Grounded on noisetorch's config.go: same
// exists/initialize/read shape, same BurntSushi/toml encoder/decoder.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/a11y-gestures/gesturesd/gesture"
)

// FileName is the config file's name inside its directory.
const FileName = "gesturesd.toml"

// fileConfig mirrors gesture.Config with toml struct tags; it exists
// so the on-disk layout can evolve independently of the in-memory
// shape recognizers consume.
type fileConfig struct {
	SingleTap   tapSection    `toml:"single_tap"`
	DoubleTap   tapSection    `toml:"double_tap"`
	TripleTap   tapSection    `toml:"triple_tap"`
	Flick       flickSection  `toml:"flick"`
	ReturnFlick returnSection `toml:"return_flick"`
}

type tapSection struct {
	TimeoutMs    int `toml:"timeout_ms"`
	FingerSize   int `toml:"finger_size"`
	TapsRequired int `toml:"taps_required"`
}

type flickSection struct {
	MinLength         int     `toml:"min_length"`
	MaxLength         int     `toml:"max_length"`
	AngleToleranceDeg float64 `toml:"angle_tolerance_deg"`
	TimeLimitMs       int     `toml:"time_limit_ms"`
}

type returnSection struct {
	MaxTotalTimeMs              int     `toml:"max_total_time_ms"`
	MinForwardLength            int     `toml:"min_forward_length"`
	FingerSize                  int     `toml:"finger_size"`
	ForwardAngleToleranceDeg    float64 `toml:"forward_angle_tolerance_deg"`
	InflectionAngleToleranceDeg float64 `toml:"inflection_angle_tolerance_deg"`
	ReturnAngleToleranceDeg     float64 `toml:"return_angle_tolerance_deg"`
}

func toFileConfig(c gesture.Config) fileConfig {
	return fileConfig{
		SingleTap:   tapSection(c.SingleTap),
		DoubleTap:   tapSection(c.DoubleTap),
		TripleTap:   tapSection(c.TripleTap),
		Flick:       flickSection(c.Flick),
		ReturnFlick: returnSection(c.ReturnFlick),
	}
}

func (f fileConfig) toConfig() gesture.Config {
	return gesture.Config{
		SingleTap:   gesture.TapConfig(f.SingleTap),
		DoubleTap:   gesture.TapConfig(f.DoubleTap),
		TripleTap:   gesture.TapConfig(f.TripleTap),
		Flick:       gesture.FlickConfig(f.Flick),
		ReturnFlick: gesture.ReturnFlickConfig(f.ReturnFlick),
	}
}

// Dir returns the platform config directory gesturesd reads and
// writes its config file from, honoring $XDG_CONFIG_HOME like
// noisetorch's configDir.
func Dir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "gesturesd")
}

// Load reads path (Dir()/FileName if empty), returning
// gesture.DefaultConfig when the file does not exist.
func Load(path string) (gesture.Config, error) {
	if path == "" {
		path = filepath.Join(Dir(), FileName)
	}

	if ok, err := exists(path); err != nil {
		return gesture.Config{}, fmt.Errorf("config: checking %s: %w", path, err)
	} else if !ok {
		return gesture.DefaultConfig(), nil
	}

	var f fileConfig
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return gesture.Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return f.toConfig(), nil
}

// Encode writes cfg to w as TOML, in the same on-disk shape Load and
// Write use.
func Encode(w io.Writer, cfg gesture.Config) error {
	if err := toml.NewEncoder(w).Encode(toFileConfig(cfg)); err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	return nil
}

// Write encodes cfg as TOML to path (Dir()/FileName if empty),
// creating the parent directory if needed.
func Write(path string, cfg gesture.Config) error {
	if path == "" {
		path = filepath.Join(Dir(), FileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: creating directory for %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toFileConfig(cfg)); err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg, fallback string) string {
	if dir := os.Getenv(xdg); dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			return dir
		}
	}
	return fallback
}
