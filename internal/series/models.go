package series

import "math"

// Series holds the two parallel sequences plotted against each other.
// X[i] and Y[i] always come from the same measurement.
type Series struct {
	X []float64 // wavelength
	Y []float64 // refractive index
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.X)
}

// Extent is the bounding box of a non-empty series.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// emptyExtent is the starting box Bounds shrinks onto the first point.
func emptyExtent() Extent {
	return Extent{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
}
