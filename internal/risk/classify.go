package risk

import (
	"fmt"
	"math"

	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
)

// ClassNoData marks a pixel whose score was NoData. It is excluded from
// class-area reporting.
const ClassNoData = 0

// Classes is an ordinal risk class per pixel, 1 (very low) through 5
// (very high), or ClassNoData.
type Classes [][]int

// Thresholds are the ascending score cut points between the five classes.
type Thresholds [4]float64

func DefaultThresholds() Thresholds {
	return Thresholds{20, 40, 60, 80}
}

func (t Thresholds) Validate() error {
	for i := 0; i < len(t); i++ {
		if math.IsNaN(t[i]) {
			return fmt.Errorf("%w: threshold %d is NaN", ErrInvalidParameter, i)
		}
		if i > 0 && t[i] <= t[i-1] {
			return fmt.Errorf("%w: thresholds must be strictly ascending, got %v", ErrInvalidParameter, t)
		}
	}
	return nil
}

// Classify maps a score raster onto classes 1..5. The mapping is a single
// pass piecewise step function, non-decreasing in score: a pixel gets one
// more than the number of thresholds at or below its score.
func Classify(score raster.Grid, t Thresholds) (Classes, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := score.Validate(); err != nil {
		return nil, err
	}

	out := make(Classes, score.Rows())
	for i := range out {
		out[i] = make([]int, score.Cols())
		for j := range out[i] {
			out[i][j] = classify(score[i][j], t)
		}
	}
	return out, nil
}

func classify(score float64, t Thresholds) int {
	if math.IsNaN(score) {
		return ClassNoData
	}
	class := 1
	for _, threshold := range t {
		if score >= threshold {
			class++
		}
	}
	return class
}

// Grid re-expresses the classes as a float raster so they can ride along in
// a composite next to the other layers.
func (c Classes) Grid() raster.Grid {
	out := make(raster.Grid, len(c))
	for i := range c {
		out[i] = make([]float64, len(c[i]))
		for j := range c[i] {
			if c[i][j] == ClassNoData {
				out[i][j] = raster.NoData
				continue
			}
			out[i][j] = float64(c[i][j])
		}
	}
	return out
}
