// Package pipeline composes the capture reader, calibration lookup, packet
// decoder, and rotation assembler into the single entry point most callers
// need: iterate a capture file, get back assembled point clouds.
package pipeline

import (
	"fmt"

	"github.com/openlidar/velodecode/internal/capture"
	"github.com/openlidar/velodecode/internal/config"
	"github.com/openlidar/velodecode/internal/rotation"
	"github.com/openlidar/velodecode/internal/velodyne"
)

// sensorPayloadSize is the only payload length forwarded to the decoder;
// anything else (e.g. the control/position packets Velodyne sensors also
// emit on the same port) is skipped.
const sensorPayloadSize = 1248

// VelodyneReader decodes a capture file into a sequence of rotation.Cloud
// values. Construct one with Open, then drive it with Each.
type VelodyneReader struct {
	capture   *capture.Reader
	decoder   *velodyne.Decoder
	assembler *rotation.Assembler

	lidarName         string
	lastFramesPerTurn int
}

// Open opens path as a capture file and prepares the decode pipeline for
// it. It does not decode any packets yet.
func Open(path string, opts config.DecodeOptions) (*VelodyneReader, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r, err := capture.Open(path)
	if err != nil {
		return nil, err
	}

	provider := velodyne.NewProvider(opts)
	return &VelodyneReader{
		capture:   r,
		decoder:   velodyne.NewDecoder(provider),
		assembler: rotation.NewAssembler(opts),
	}, nil
}

// Each decodes the capture file from the start, invoking fn once per
// assembled rotation in file order. Returning a non-nil error from fn stops
// iteration and that error is returned from Each. Packets of any length
// other than sensorPayloadSize are skipped outright, since those are the
// control/position traffic Velodyne sensors also emit on the same port, not
// malformed sensor data. A full-length packet carrying a product ID this
// pipeline doesn't recognize is different: it is a sensor packet this
// decoder cannot interpret, so Decode's velodyne.ErrUnsupportedModel is
// propagated and halts iteration rather than being skipped.
func (r *VelodyneReader) Each(fn func(rotation.Cloud) error) error {
	return r.capture.Each(func(payload []byte) (bool, error) {
		if len(payload) != sensorPayloadSize {
			return true, nil
		}

		batch, startAzimuth, err := r.decoder.Decode(payload, r.capture.Header.ByteOrder)
		if err != nil {
			return false, fmt.Errorf("pipeline: decoding packet: %w", err)
		}

		if r.lidarName == "" {
			if name, err := r.decoder.ModelName(payload[len(payload)-1]); err == nil {
				r.lidarName = name
			}
		}

		cloud, emitted, err := r.assembler.Add(batch, startAzimuth)
		if err != nil {
			return false, fmt.Errorf("pipeline: assembling rotation: %w", err)
		}
		if !emitted {
			return true, nil
		}

		r.lastFramesPerTurn = cloud.FramesPerRotation
		if err := fn(cloud); err != nil {
			return false, err
		}
		return true, nil
	})
}

// LidarName reports the model name of the first supported packet Each
// decoded, or the empty string if Each has not yet decoded any. Later
// packets do not change it.
func (r *VelodyneReader) LidarName() string {
	return r.lidarName
}

// FramesPerRotation reports the packet count of the most recently emitted
// rotation, or 0 if none has been emitted yet.
func (r *VelodyneReader) FramesPerRotation() int {
	return r.lastFramesPerTurn
}
