package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
)

// ErrInvalidParameter is returned for structurally invalid weights or
// thresholds. The check runs before any array computation starts, so a
// failed call produces no partial results.
var ErrInvalidParameter = errors.New("invalid parameter")

// Weights distributes the 100-point fire risk score across the four factors.
// The defaults are a contract with the classifier thresholds, not a tuning
// suggestion: each factor is normalized into its own weight's range before
// summation, so the final clamp only trims extreme combinations.
type Weights struct {
	Vegetation float64 // low NDVI raises risk
	Moisture   float64 // low NDMI raises risk
	Soil       float64 // high BSI raises risk
	Stress     float64 // high Redness raises risk
}

func DefaultWeights() Weights {
	return Weights{Vegetation: 40, Moisture: 30, Soil: 20, Stress: 10}
}

func (w Weights) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"vegetation", w.Vegetation},
		{"moisture", w.Moisture},
		{"soil", w.Soil},
		{"stress", w.Stress},
	} {
		if math.IsNaN(f.value) || f.value < 0 {
			return fmt.Errorf("%w: %s weight must be non-negative, got %v", ErrInvalidParameter, f.name, f.value)
		}
	}
	return nil
}

// Score combines NDVI, NDMI, BSI and Redness into a fire risk score per
// pixel, clamped to [0,100]. Pixels where any input index is NoData come out
// as NoData and stay excluded downstream.
func Score(ndvi, ndmi, bsi, redness raster.Grid, w Weights) (raster.Grid, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := raster.SameShape(ndvi, ndmi, bsi, redness); err != nil {
		return nil, err
	}

	out := raster.New(ndvi.Rows(), ndvi.Cols())
	for i := range out {
		for j := range out[i] {
			vegRisk := (1 - (ndvi[i][j]+1)/2) * w.Vegetation
			moistureRisk := (1 - (ndmi[i][j]+1)/2) * w.Moisture
			soilRisk := (bsi[i][j] + 1) / 2 * w.Soil
			stressRisk := clamp(redness[i][j]*w.Stress, 0, w.Stress)
			out[i][j] = clamp(vegRisk+moistureRisk+soilRisk+stressRisk, 0, 100)
		}
	}
	return out, nil
}

// clamp propagates NaN so missing pixels are not pinned to a bound.
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
