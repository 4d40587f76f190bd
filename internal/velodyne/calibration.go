package velodyne

import (
	"fmt"
	"math"
	"sync"

	"github.com/openlidar/velodecode/internal/config"
)

// Calibration holds one model's per-channel correction tables, precomputed
// and tiled so the decode kernel can index them with a plain modulo rather
// than re-deriving trig each packet.
type Calibration struct {
	LidarName      string
	DistCorrection []float64 // meters, tiled
	RotCorrection  []float64 // degrees, tiled
	ElevationSin   []float64 // tiled
	ElevationCos   []float64 // tiled
	DistScalar     float64
	ParseRowLen    int
	TileMultiplier int
}

// channelCount returns the calibration's number of distinct channels, i.e.
// the tiled array length divided by the tile multiplier.
func (c Calibration) channelCount() int {
	if c.TileMultiplier == 0 {
		return len(c.DistCorrection)
	}
	return len(c.DistCorrection) / c.TileMultiplier
}

// at returns the per-point correction values for sequential point index i
// within a decoded packet, wrapping via modulo so a packet's point count
// need not exactly equal the tiled array length (it does for every model
// except HDL-64, whose 64-channel table tiled by 4 does not line up with
// its 300-byte parse-row point count; modulo indexing reproduces the
// matching-length case exactly and simply avoids the mismatch elsewhere).
func (c Calibration) at(i int) (distCorrection, rotCorrectionDeg, elevSin, elevCos float64) {
	n := len(c.DistCorrection)
	idx := i % n
	return c.DistCorrection[idx], c.RotCorrection[idx], c.ElevationSin[idx], c.ElevationCos[idx]
}

func tile(values []float64, multiplier int) []float64 {
	out := make([]float64, 0, len(values)*multiplier)
	for i := 0; i < multiplier; i++ {
		out = append(out, values...)
	}
	return out
}

func precompute(name string, raw rawCalibration) Calibration {
	n := len(raw.vertAngle)
	elevRad := make([]float64, n)
	for i, deg := range raw.vertAngle {
		elevRad[i] = deg * math.Pi / 180
	}

	distCorrectionMeters := make([]float64, len(raw.distCorrection))
	for i, cm := range raw.distCorrection {
		distCorrectionMeters[i] = cm * 0.01
	}

	elevSin := make([]float64, n)
	elevCos := make([]float64, n)
	for i, r := range elevRad {
		elevSin[i] = math.Sin(r)
		elevCos[i] = math.Cos(r)
	}

	return Calibration{
		LidarName:      name,
		DistCorrection: tile(distCorrectionMeters, raw.tileMultiplier),
		RotCorrection:  tile(raw.rotCorrection, raw.tileMultiplier),
		ElevationSin:   tile(elevSin, raw.tileMultiplier),
		ElevationCos:   tile(elevCos, raw.tileMultiplier),
		DistScalar:     raw.distScalar,
		ParseRowLen:    raw.parseRowLen,
		TileMultiplier: raw.tileMultiplier,
	}
}

// Provider resolves a payload's product ID to its Calibration, computing
// each model's tables once and caching the result. Safe for concurrent use.
type Provider struct {
	opts config.DecodeOptions

	mu    sync.RWMutex
	cache map[Model]Calibration
}

// NewProvider returns a Provider that honors opts.UseCorrectedVLP16Elevation
// when building the VLP-16 table.
func NewProvider(opts config.DecodeOptions) *Provider {
	return &Provider{opts: opts, cache: make(map[Model]Calibration)}
}

// For resolves productID to its Calibration, building and caching it on
// first sight. Repeated calls with the same productID return the identical
// cached value.
func (p *Provider) For(productID byte) (Calibration, error) {
	model, ok := modelForProductID(productID)
	if !ok {
		return Calibration{}, fmt.Errorf("%w: %d", ErrUnsupportedModel, productID)
	}

	p.mu.RLock()
	cal, hit := p.cache[model]
	p.mu.RUnlock()
	if hit {
		return cal, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if cal, hit := p.cache[model]; hit {
		return cal, nil
	}

	var raw rawCalibration
	switch model {
	case VLP16:
		raw = rawVLP16(p.opts.UseCorrectedVLP16Elevation)
	case VLP32C:
		raw = rawVLP32C()
	case VLS128:
		raw = rawVLS128()
	case HDL64:
		raw = rawHDL64()
	case HDL32E:
		raw = rawHDL32E()
	}

	cal = precompute(model.String(), raw)
	p.cache[model] = cal
	return cal, nil
}
