package config

import "testing"

func TestDefaultDecodeOptionsValidates(t *testing.T) {
	if err := DefaultDecodeOptions().Validate(); err != nil {
		t.Fatalf("DefaultDecodeOptions().Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name string
		opts DecodeOptions
	}{
		{"zero max frames", DecodeOptions{MaxFramesPerRotation: 0, AngleToleranceDeg: 0.01, MinPacketsPerRotation: 1}},
		{"negative tolerance", DecodeOptions{MaxFramesPerRotation: 10, AngleToleranceDeg: -1, MinPacketsPerRotation: 1}},
		{"zero min packets", DecodeOptions{MaxFramesPerRotation: 10, AngleToleranceDeg: 0.01, MinPacketsPerRotation: 0}},
		{"min exceeds max", DecodeOptions{MaxFramesPerRotation: 5, AngleToleranceDeg: 0.01, MinPacketsPerRotation: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.opts.Validate(); err == nil {
				t.Fatalf("Validate() = nil, want error")
			}
		})
	}
}
