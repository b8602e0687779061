package series

import (
	"errors"
	"math"

	"github.com/user/refindex_go/internal/parser"
)

// ErrEmpty is returned when there is nothing to split or bound.
var ErrEmpty = errors.New("no measurements")

// minSpan keeps a padded axis from collapsing when all values are equal.
const minSpan = 1e-9

// Split separates measurements into x (wavelength) and y (refractive index)
// sequences, preserving order.
func Split(measurements []parser.Measurement) Series {
	s := Series{
		X: make([]float64, len(measurements)),
		Y: make([]float64, len(measurements)),
	}
	for i, m := range measurements {
		s.X[i] = m.Wavelength
		s.Y[i] = m.RefractiveIndex
	}
	return s
}

// Bounds returns the extent of s.
func (s Series) Bounds() (Extent, error) {
	if s.Len() == 0 {
		return Extent{}, ErrEmpty
	}
	e := emptyExtent()
	for i := range s.X {
		e.MinX = math.Min(e.MinX, s.X[i])
		e.MaxX = math.Max(e.MaxX, s.X[i])
		e.MinY = math.Min(e.MinY, s.Y[i])
		e.MaxY = math.Max(e.MaxY, s.Y[i])
	}
	return e, nil
}

// padRange widens [lo, hi] by frac of its span on both sides.
func padRange(lo, hi, frac float64) (float64, float64) {
	span := hi - lo
	if span < minSpan {
		// Single value: pad relative to its magnitude, or by one unit at zero.
		span = math.Abs(lo)
		if span < minSpan {
			span = 1
		}
	}
	return lo - span*frac, hi + span*frac
}

// Padded returns e grown by frac of each axis span so points do not sit on
// the plot border.
func (e Extent) Padded(frac float64) Extent {
	var p Extent
	p.MinX, p.MaxX = padRange(e.MinX, e.MaxX, frac)
	p.MinY, p.MaxY = padRange(e.MinY, e.MaxY, frac)
	return p
}
