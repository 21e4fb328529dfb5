package stats

import (
	"fmt"
	"math"

	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
)

// Kind selects a single reduction over masked pixels.
type Kind string

const (
	Mean   Kind = "mean"
	StdDev Kind = "stddev"
	Min    Kind = "min"
	Max    Kind = "max"
	Sum    Kind = "sum"
)

// Summary holds every reduction over one raster and mask. Count is the
// number of masked pixels that carried a value; when it is zero the region
// was empty (or all NoData) and the float fields are NaN. That is the
// defined no-data result, not an error.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Sum    float64
}

// Summarize reduces the masked pixels of a single-band raster. Pixels
// outside the mask are excluded entirely, not treated as zero, and NoData
// pixels are skipped as missing.
func Summarize(g raster.Grid, mask raster.Mask) (Summary, error) {
	if err := g.Validate(); err != nil {
		return Summary{}, err
	}
	if err := mask.Matches(g); err != nil {
		return Summary{}, err
	}

	s := Summary{Min: math.Inf(1), Max: math.Inf(-1)}
	sumSquares := 0.0
	for i := range g {
		for j := range g[i] {
			if !mask[i][j] || raster.IsNoData(g[i][j]) {
				continue
			}
			v := g[i][j]
			s.Count++
			s.Sum += v
			sumSquares += v * v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
		}
	}

	if s.Count == 0 {
		return Summary{Mean: math.NaN(), StdDev: math.NaN(), Min: math.NaN(), Max: math.NaN(), Sum: math.NaN()}, nil
	}

	n := float64(s.Count)
	s.Mean = s.Sum / n
	// population standard deviation; guard tiny negative residue from
	// floating point cancellation
	variance := sumSquares/n - s.Mean*s.Mean
	if variance < 0 {
		variance = 0
	}
	s.StdDev = math.Sqrt(variance)
	return s, nil
}

// Reduce computes one statistic. The bool is false for an empty region.
func Reduce(g raster.Grid, mask raster.Mask, kind Kind) (float64, bool, error) {
	s, err := Summarize(g, mask)
	if err != nil {
		return math.NaN(), false, err
	}
	if s.Count == 0 {
		return math.NaN(), false, nil
	}
	switch kind {
	case Mean:
		return s.Mean, true, nil
	case StdDev:
		return s.StdDev, true, nil
	case Min:
		return s.Min, true, nil
	case Max:
		return s.Max, true, nil
	case Sum:
		return s.Sum, true, nil
	default:
		return math.NaN(), false, fmt.Errorf("unknown reducer kind %q", kind)
	}
}

// ClassCounts counts masked pixels per class value. No-data pixels
// (class 0) are skipped.
func ClassCounts(classes [][]int, mask raster.Mask) (map[int]int, error) {
	if err := matchesClasses(classes, mask); err != nil {
		return nil, err
	}
	counts := make(map[int]int)
	for i := range classes {
		for j := range classes[i] {
			if !mask[i][j] || classes[i][j] == 0 {
				continue
			}
			counts[classes[i][j]]++
		}
	}
	return counts, nil
}

// ClassAreas sums a per-pixel area raster per class value over the mask.
// A nil area raster weighs every pixel as one unit.
func ClassAreas(classes [][]int, mask raster.Mask, pixelArea raster.Grid) (map[int]float64, error) {
	if err := matchesClasses(classes, mask); err != nil {
		return nil, err
	}
	if pixelArea != nil {
		if err := mask.Matches(pixelArea); err != nil {
			return nil, err
		}
	}

	areas := make(map[int]float64)
	for i := range classes {
		for j := range classes[i] {
			if !mask[i][j] || classes[i][j] == 0 {
				continue
			}
			weight := 1.0
			if pixelArea != nil {
				if raster.IsNoData(pixelArea[i][j]) {
					continue
				}
				weight = pixelArea[i][j]
			}
			areas[classes[i][j]] += weight
		}
	}
	return areas, nil
}

func matchesClasses(classes [][]int, mask raster.Mask) error {
	rows := len(classes)
	cols := 0
	if rows > 0 {
		cols = len(classes[0])
	}
	for i := range classes {
		if len(classes[i]) != cols {
			return fmt.Errorf("%w: class row %d has %d columns, expected %d", raster.ErrShapeMismatch, i, len(classes[i]), cols)
		}
	}
	if mask.Rows() != rows || mask.Cols() != cols {
		return fmt.Errorf("%w: mask is %dx%d, classes are %dx%d", raster.ErrShapeMismatch, mask.Rows(), mask.Cols(), rows, cols)
	}
	return nil
}
