// SPDX-License-Identifier: Unlicense OR MIT

package gesture

// TapConfig parameterizes one tap-family recognizer variant. Single,
// double, and triple tap differ only in TimeoutMs and TapsRequired;
// FingerSize is shared across all variants in the source.
type TapConfig struct {
	TimeoutMs    int
	FingerSize   int
	TapsRequired int
}

// FlickConfig parameterizes the flick recognizer.
type FlickConfig struct {
	MinLength         int
	MaxLength         int
	AngleToleranceDeg float64
	TimeLimitMs       int
}

// ReturnFlickConfig parameterizes the return-flick recognizer.
type ReturnFlickConfig struct {
	MaxTotalTimeMs              int
	MinForwardLength            int
	FingerSize                  int
	ForwardAngleToleranceDeg    float64
	InflectionAngleToleranceDeg float64
	ReturnAngleToleranceDeg     float64
}

// Config bundles the tunable parameters of every recognizer. The zero
// value is not usable; construct via DefaultConfig and override
// individual fields, or load one from TOML via the internal/config
// package.
type Config struct {
	SingleTap   TapConfig
	DoubleTap   TapConfig
	TripleTap   TapConfig
	Flick       FlickConfig
	ReturnFlick ReturnFlickConfig
}

// DefaultConfig returns the numeric constants from spec.md section 6,
// which MUST match for the detector to remain bit-compatible with
// downstream consumers.
func DefaultConfig() Config {
	return Config{
		SingleTap:   TapConfig{TimeoutMs: 250, FingerSize: 80, TapsRequired: 1},
		DoubleTap:   TapConfig{TimeoutMs: 350, FingerSize: 80, TapsRequired: 2},
		TripleTap:   TapConfig{TimeoutMs: 850, FingerSize: 80, TapsRequired: 3},
		Flick: FlickConfig{
			MinLength:         40,
			MaxLength:         800,
			AngleToleranceDeg: 20.0,
			TimeLimitMs:       150,
		},
		ReturnFlick: ReturnFlickConfig{
			MaxTotalTimeMs:              600,
			MinForwardLength:            90,
			FingerSize:                  80,
			ForwardAngleToleranceDeg:    20.0,
			InflectionAngleToleranceDeg: 80.0,
			ReturnAngleToleranceDeg:     25.0,
		},
	}
}
