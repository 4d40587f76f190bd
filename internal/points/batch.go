// Package points holds the shared (N×4) point-cloud matrix type used by the
// packet decoder and the rotation assembler.
package points

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Column indices into a Batch.
const (
	ColX = iota
	ColY
	ColZ
	ColIntensity
	numCols
)

// Batch is a dense (N×4) matrix of decoded points: columns are
// (x, y, z, intensity) in sensor-native coordinates, one row per point.
// It wraps gonum's mat.Dense so batches can be concatenated with a single
// VStack call instead of hand-rolled row copying.
type Batch struct {
	m *mat.Dense
}

// NewBatch allocates a Batch with n rows, all columns zeroed.
func NewBatch(n int) Batch {
	return Batch{m: mat.NewDense(n, numCols, nil)}
}

// Rows reports the number of points in the batch.
func (b Batch) Rows() int {
	if b.m == nil {
		return 0
	}
	r, _ := b.m.Dims()
	return r
}

// Set stores the (x, y, z, intensity) values for row i.
func (b Batch) Set(i int, x, y, z, intensity float64) {
	b.m.Set(i, ColX, x)
	b.m.Set(i, ColY, y)
	b.m.Set(i, ColZ, z)
	b.m.Set(i, ColIntensity, intensity)
}

// At returns the (x, y, z, intensity) tuple for row i.
func (b Batch) At(i int) (x, y, z, intensity float64) {
	return b.m.At(i, ColX), b.m.At(i, ColY), b.m.At(i, ColZ), b.m.At(i, ColIntensity)
}

// Dense exposes the underlying matrix for callers that want direct gonum
// access (e.g. further numeric processing downstream of this module).
func (b Batch) Dense() *mat.Dense {
	return b.m
}

// VStack vertically concatenates batches in order, matching the original
// decoder's np.vstack(data_queue) semantics. An empty input yields a
// zero-row Batch.
func VStack(batches []Batch) (Batch, error) {
	if len(batches) == 0 {
		// mat.NewDense rejects zero rows, so the empty result is a Batch with
		// no backing matrix; Rows reports 0 for it.
		return Batch{}, nil
	}

	total := 0
	for _, b := range batches {
		total += b.Rows()
	}

	out := mat.NewDense(total, numCols, nil)
	offset := 0
	for i, b := range batches {
		if b.m == nil {
			continue
		}
		r, c := b.m.Dims()
		if c != numCols {
			return Batch{}, fmt.Errorf("points: batch %d has %d columns, want %d", i, c, numCols)
		}
		sub := out.Slice(offset, offset+r, 0, numCols).(*mat.Dense)
		sub.Copy(b.m)
		offset += r
	}

	return Batch{m: out}, nil
}
