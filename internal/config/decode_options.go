// Package config holds the tuning knobs for the decode pipeline. It follows
// the same optional-field-with-defaults shape as the rest of this codebase's
// configuration types: a plain struct, a constructor seeding sane defaults,
// and a Validate method callers run once after loading.
package config

import "fmt"

// DecodeOptions tunes the rotation assembler and calibration lookup. Zero
// values are not meaningful on their own; use DefaultDecodeOptions and
// override individual fields.
type DecodeOptions struct {
	// MaxFramesPerRotation bounds the packet-batch queue the rotation
	// assembler holds before it must emit or drop the oldest entry.
	MaxFramesPerRotation int

	// AngleToleranceDeg is the slack allowed when deciding whether the
	// azimuth has wrapped back around to its starting value.
	AngleToleranceDeg float64

	// MinPacketsPerRotation is the minimum queue length the assembler
	// requires before a detected wraparound is allowed to emit a cloud.
	MinPacketsPerRotation int

	// UseCorrectedVLP16Elevation switches the VLP-16 calibration table
	// from the vendor-table values ported verbatim from the reference
	// decoder (known to not match the physical sensor) to a corrected
	// table. Defaults to false so behavior matches the reference decoder
	// unless a caller opts in.
	UseCorrectedVLP16Elevation bool
}

// DefaultDecodeOptions returns the options matching the reference decoder's
// hardcoded constants.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		MaxFramesPerRotation:       1200,
		AngleToleranceDeg:          0.01,
		MinPacketsPerRotation:      20,
		UseCorrectedVLP16Elevation: false,
	}
}

// Validate reports a field-specific error for the first invalid setting it
// finds, or nil if every field is usable.
func (o DecodeOptions) Validate() error {
	if o.MaxFramesPerRotation <= 0 {
		return fmt.Errorf("config: MaxFramesPerRotation must be positive, got %d", o.MaxFramesPerRotation)
	}
	if o.AngleToleranceDeg < 0 {
		return fmt.Errorf("config: AngleToleranceDeg must be non-negative, got %v", o.AngleToleranceDeg)
	}
	if o.MinPacketsPerRotation <= 0 {
		return fmt.Errorf("config: MinPacketsPerRotation must be positive, got %d", o.MinPacketsPerRotation)
	}
	if o.MinPacketsPerRotation > o.MaxFramesPerRotation {
		return fmt.Errorf("config: MinPacketsPerRotation (%d) exceeds MaxFramesPerRotation (%d)",
			o.MinPacketsPerRotation, o.MaxFramesPerRotation)
	}
	return nil
}
