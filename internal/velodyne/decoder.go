package velodyne

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/openlidar/velodecode/internal/points"
)

const (
	payloadSize    = 1248
	framingPrefix  = 42
	firingDataSize = 1200
	blockDataSize  = 100
	channelsPerRow = 32
)

// Decoder turns raw Velodyne UDP payloads into Cartesian point batches.
type Decoder struct {
	calibration *Provider
}

// NewDecoder returns a Decoder backed by the given calibration provider.
func NewDecoder(calibration *Provider) *Decoder {
	return &Decoder{calibration: calibration}
}

// ModelName resolves productID to its model name without decoding a full
// payload, using the same cached calibration lookup Decode does.
func (d *Decoder) ModelName(productID byte) (string, error) {
	cal, err := d.calibration.For(productID)
	if err != nil {
		return "", err
	}
	return cal.LidarName, nil
}

// Decode parses a single Velodyne sensor payload. order is the capture
// file's detected byte order, applied only to the product-ID and sensor
// timestamp fields (the trailing framing bytes) since those are written by
// the capture tooling; azimuth and range fields inside each firing block
// are always little-endian on the wire, regardless of capture byte order.
//
// It returns the decoded batch and the corrected start azimuth in degrees
// (the first point's azimuth after rotational correction), which the
// rotation assembler uses to detect sweep wraparound.
func (d *Decoder) Decode(payload []byte, order binary.ByteOrder) (points.Batch, float64, error) {
	if len(payload) != payloadSize {
		return points.Batch{}, 0, fmt.Errorf("velodyne: payload is %d bytes, want %d", len(payload), payloadSize)
	}

	productID := payload[payloadSize-1]
	cal, err := d.calibration.For(productID)
	if err != nil {
		return points.Batch{}, 0, err
	}

	// Sensor timestamp, decoded for parity with the reference decoder but
	// not surfaced to callers; nothing downstream needs packet-level
	// timing finer than capture-file packet headers already provide.
	_ = order.Uint32(payload[framingPrefix+firingDataSize : framingPrefix+firingDataSize+4])

	firing := payload[framingPrefix : framingPrefix+firingDataSize]
	nRows := firingDataSize / cal.ParseRowLen
	nPoints := nRows * channelsPerRow

	batch := points.NewBatch(nPoints)
	var startAzimuthDeg float64

	pointIdx := 0
	for row := 0; row < nRows; row++ {
		rowOffset := row * cal.ParseRowLen
		block := firing[rowOffset : rowOffset+blockDataSize]

		rawAzimuth := float64(binary.LittleEndian.Uint16(block[2:4])) / 100.0

		for ch := 0; ch < channelsPerRow; ch++ {
			base := 4 + ch*3
			rawDistance := float64(binary.LittleEndian.Uint16(block[base : base+2]))
			intensity := float64(block[base+2])

			distCorrection, rotCorrectionDeg, elevSin, elevCos := cal.at(pointIdx)

			azimuthDeg := rawAzimuth - rotCorrectionDeg
			azimuthRad := azimuthDeg * math.Pi / 180
			distance := rawDistance*cal.DistScalar + distCorrection

			x := distance * math.Sin(azimuthRad) * elevCos
			y := distance * math.Cos(azimuthRad) * elevCos
			z := distance * elevSin

			batch.Set(pointIdx, x, y, z, intensity)

			if pointIdx == 0 {
				startAzimuthDeg = azimuthRad * 180 / math.Pi
			}
			pointIdx++
		}
	}

	return batch, startAzimuthDeg, nil
}
