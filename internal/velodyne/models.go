// Package velodyne decodes Velodyne sensor UDP payloads into Cartesian point
// batches, using per-model calibration tables ported from the vendor
// reference decoder this package replaces.
package velodyne

import "errors"

// Model identifies a supported Velodyne sensor family.
type Model int

const (
	VLP16 Model = iota
	VLP32C
	VLS128
	HDL64
	HDL32E
)

func (m Model) String() string {
	switch m {
	case VLP16:
		return "VLP-16"
	case VLP32C:
		return "VLP-32c"
	case VLS128:
		return "VLS-128"
	case HDL64:
		return "HDL-64"
	case HDL32E:
		return "HDL-32E"
	default:
		return "unknown"
	}
}

// ErrUnsupportedModel is returned when a payload's product ID does not map
// to a known calibration table.
var ErrUnsupportedModel = errors.New("velodyne: unsupported product id")

// modelForProductID maps the payload's trailing product-ID byte to a
// Model. IDs 216 and 232 (seen in some captures for dual-return VLP-32c/VLS
// variants) are deliberately left unmapped: the reference decoder this
// package is ported from never assigned them a calibration table either.
func modelForProductID(id byte) (Model, bool) {
	switch id {
	case 34:
		return VLP16, true
	case 40:
		return VLP32C, true
	case 161, 128:
		return VLS128, true
	case 64:
		return HDL64, true
	case 32:
		return HDL32E, true
	default:
		return 0, false
	}
}
