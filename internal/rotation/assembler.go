// Package rotation assembles decoded Velodyne packet batches into full
// 360-degree sweeps ("rotations"), detecting sweep boundaries by watching
// for the azimuth counter wrapping back past its starting value.
package rotation

import (
	"github.com/google/uuid"

	"github.com/openlidar/velodecode/internal/config"
	"github.com/openlidar/velodecode/internal/points"
)

// Cloud is one assembled rotation: every point decoded across the packets
// that made up a single sweep, plus bookkeeping the caller can use to
// correlate or deduplicate rotations.
type Cloud struct {
	Points            points.Batch
	RotationID        uuid.UUID
	FramesPerRotation int
}

// Assembler buffers decoded packet batches and their start azimuths,
// emitting a Cloud each time it detects the azimuth has completed a full
// revolution. It is not safe for concurrent use; a capture is decoded by a
// single goroutine in this pipeline.
type Assembler struct {
	opts config.DecodeOptions

	dataQueue          []points.Batch
	angleQueue         []float64
	wraparoundDetected bool
}

// NewAssembler returns an Assembler tuned by opts.
func NewAssembler(opts config.DecodeOptions) *Assembler {
	return &Assembler{opts: opts}
}

// Add feeds one decoded packet's batch and corrected start azimuth (in
// degrees) into the assembler. It returns the emitted Cloud and true when
// the azimuth history indicates a full rotation just completed; otherwise
// it returns a zero Cloud and false.
func (a *Assembler) Add(batch points.Batch, startAzimuthDeg float64) (Cloud, bool, error) {
	a.push(batch, startAzimuthDeg)

	n := len(a.angleQueue)
	if n >= 2 && a.angleQueue[n-2]-a.angleQueue[n-1] > 0 {
		a.wraparoundDetected = true
		debugf("wraparound detected at azimuth %.3f -> %.3f", a.angleQueue[n-2], a.angleQueue[n-1])
	}

	if n > a.opts.MinPacketsPerRotation && a.wraparoundDetected &&
		a.angleQueue[n-1]+a.opts.AngleToleranceDeg > a.angleQueue[0] {
		cloud, err := a.emit()
		if err != nil {
			return Cloud{}, false, err
		}
		return cloud, true, nil
	}

	return Cloud{}, false, nil
}

// push appends to both queues, evicting the oldest entry once the queue
// reaches MaxFramesPerRotation, matching the reference assembler's bounded
// deque.
func (a *Assembler) push(batch points.Batch, startAzimuthDeg float64) {
	a.dataQueue = append(a.dataQueue, batch)
	a.angleQueue = append(a.angleQueue, startAzimuthDeg)

	if len(a.dataQueue) > a.opts.MaxFramesPerRotation {
		evicted := len(a.dataQueue) - a.opts.MaxFramesPerRotation
		a.dataQueue = a.dataQueue[evicted:]
		a.angleQueue = a.angleQueue[evicted:]
		debugf("evicted %d oldest packet(s), queue at max %d", evicted, a.opts.MaxFramesPerRotation)
	}
}

func (a *Assembler) emit() (Cloud, error) {
	merged, err := points.VStack(a.dataQueue)
	if err != nil {
		return Cloud{}, err
	}

	cloud := Cloud{
		Points:            merged,
		RotationID:        uuid.New(),
		FramesPerRotation: len(a.dataQueue),
	}

	a.dataQueue = nil
	a.angleQueue = nil
	a.wraparoundDetected = false

	return cloud, nil
}
