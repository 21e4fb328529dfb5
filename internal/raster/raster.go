package raster

import (
	"errors"
	"fmt"
	"math"
)

// Grid is a single-band raster: rows of pixel values over one spatial grid.
// Grids are value-like and treated as immutable once produced; every function
// in this module returns a fresh Grid instead of mutating its inputs.
type Grid [][]float64

// ErrShapeMismatch is returned when rasters that must share a spatial grid
// disagree in shape. It is always fatal to the call, inputs are never resized.
var ErrShapeMismatch = errors.New("raster shape mismatch")

// NoData marks a pixel whose value is undefined, e.g. a normalized-difference
// index at a zero denominator. Reductions skip NoData pixels.
var NoData = math.NaN()

func IsNoData(v float64) bool {
	return math.IsNaN(v)
}

func New(rows, cols int) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = make([]float64, cols)
	}
	return g
}

func Uniform(rows, cols int, value float64) Grid {
	g := New(rows, cols)
	for i := range g {
		for j := range g[i] {
			g[i][j] = value
		}
	}
	return g
}

func (g Grid) Rows() int {
	return len(g)
}

func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Validate checks that every row has the same length. Ragged grids are
// rejected with ErrShapeMismatch.
func (g Grid) Validate() error {
	cols := g.Cols()
	for i := range g {
		if len(g[i]) != cols {
			return fmt.Errorf("%w: row %d has %d columns, expected %d", ErrShapeMismatch, i, len(g[i]), cols)
		}
	}
	return nil
}

// SameShape validates each grid and checks that all of them share the shape
// of the first one.
func SameShape(grids ...Grid) error {
	if len(grids) == 0 {
		return nil
	}
	rows, cols := grids[0].Rows(), grids[0].Cols()
	for i, g := range grids {
		if err := g.Validate(); err != nil {
			return err
		}
		if g.Rows() != rows || g.Cols() != cols {
			return fmt.Errorf("%w: grid %d is %dx%d, expected %dx%d", ErrShapeMismatch, i, g.Rows(), g.Cols(), rows, cols)
		}
	}
	return nil
}

// Mask restricts an aggregation to a subset of pixels. It is owned by the
// caller and must match the shape of the raster it is applied to.
type Mask [][]bool

func NewMask(rows, cols int) Mask {
	m := make(Mask, rows)
	for i := range m {
		m[i] = make([]bool, cols)
	}
	return m
}

// FullMask selects every pixel.
func FullMask(rows, cols int) Mask {
	m := NewMask(rows, cols)
	for i := range m {
		for j := range m[i] {
			m[i][j] = true
		}
	}
	return m
}

func (m Mask) Rows() int {
	return len(m)
}

func (m Mask) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Matches reports whether the mask covers the given grid pixel for pixel.
func (m Mask) Matches(g Grid) error {
	if m.Rows() != g.Rows() || m.Cols() != g.Cols() {
		return fmt.Errorf("%w: mask is %dx%d, raster is %dx%d", ErrShapeMismatch, m.Rows(), m.Cols(), g.Rows(), g.Cols())
	}
	return nil
}
