package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
)

func uniform(v float64) raster.Grid {
	return raster.Uniform(2, 2, v)
}

func TestScore(t *testing.T) {
	t.Run("reference scene", func(t *testing.T) {
		// NDVI 0.6, NDMI 1/3, BSI -0.2, Redness ~0.25 → 8 + 10 + 8 + 2.5
		out, err := Score(uniform(0.6), uniform(1.0/3.0), uniform(-0.2), uniform(0.25), DefaultWeights())
		require.NoError(t, err)
		assert.InDelta(t, 28.5, out[0][0], 1e-6)
	})

	t.Run("clamped to [0,100] at extremes", func(t *testing.T) {
		cases := []struct{ ndvi, ndmi, bsi, redness float64 }{
			{-1, -1, 1, 1000},
			{1, 1, -1, -1000},
			{-5, -5, 5, 1e9},
			{5, 5, -5, -1e9},
		}
		for _, c := range cases {
			out, err := Score(uniform(c.ndvi), uniform(c.ndmi), uniform(c.bsi), uniform(c.redness), DefaultWeights())
			require.NoError(t, err)
			assert.GreaterOrEqual(t, out[0][0], 0.0)
			assert.LessOrEqual(t, out[0][0], 100.0)
		}
	})

	t.Run("stress factor saturates at its weight", func(t *testing.T) {
		// maximal redness contributes exactly 10 points over the
		// redness-free baseline
		base, err := Score(uniform(0), uniform(0), uniform(0), uniform(0), DefaultWeights())
		require.NoError(t, err)
		stressed, err := Score(uniform(0), uniform(0), uniform(0), uniform(1e6), DefaultWeights())
		require.NoError(t, err)
		assert.InDelta(t, 10.0, stressed[0][0]-base[0][0], 1e-9)
	})

	t.Run("recomputation is bit-identical", func(t *testing.T) {
		ndvi, ndmi, bsi, redness := uniform(0.12), uniform(-0.3), uniform(0.4), uniform(0.7)
		first, err := Score(ndvi, ndmi, bsi, redness, DefaultWeights())
		require.NoError(t, err)
		second, err := Score(ndvi, ndmi, bsi, redness, DefaultWeights())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("no-data index propagates", func(t *testing.T) {
		out, err := Score(uniform(raster.NoData), uniform(0), uniform(0), uniform(0), DefaultWeights())
		require.NoError(t, err)
		assert.True(t, raster.IsNoData(out[0][0]))
	})

	t.Run("negative weight rejected before computation", func(t *testing.T) {
		w := DefaultWeights()
		w.Moisture = -1
		_, err := Score(uniform(0), uniform(0), uniform(0), uniform(0), w)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})

	t.Run("shape mismatch rejected", func(t *testing.T) {
		_, err := Score(raster.Uniform(3, 2, 0), uniform(0), uniform(0), uniform(0), DefaultWeights())
		require.Error(t, err)
		assert.ErrorIs(t, err, raster.ErrShapeMismatch)
	})
}

func TestClassify(t *testing.T) {
	t.Run("threshold boundaries", func(t *testing.T) {
		cases := []struct {
			score float64
			class int
		}{
			{0, 1},
			{19.999, 1},
			{20.0, 2},
			{39.999, 2},
			{40.0, 3},
			{60.0, 4},
			{79.999, 4},
			{80.0, 5},
			{100, 5},
		}
		for _, c := range cases {
			out, err := Classify(uniform(c.score), DefaultThresholds())
			require.NoError(t, err)
			assert.Equal(t, c.class, out[0][0], "score %v", c.score)
		}
	})

	t.Run("non-decreasing in score", func(t *testing.T) {
		previous := 0
		for score := 0.0; score <= 100.0; score += 0.25 {
			out, err := Classify(uniform(score), DefaultThresholds())
			require.NoError(t, err)
			assert.GreaterOrEqual(t, out[0][0], previous)
			assert.Contains(t, []int{1, 2, 3, 4, 5}, out[0][0])
			previous = out[0][0]
		}
	})

	t.Run("no-data score maps to no-data class", func(t *testing.T) {
		out, err := Classify(uniform(math.NaN()), DefaultThresholds())
		require.NoError(t, err)
		assert.Equal(t, ClassNoData, out[0][0])
	})

	t.Run("non-ascending thresholds rejected", func(t *testing.T) {
		_, err := Classify(uniform(50), Thresholds{20, 40, 40, 80})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParameter)

		_, err = Classify(uniform(50), Thresholds{80, 60, 40, 20})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})
}

func TestClassesGrid(t *testing.T) {
	classes := Classes{{1, 5}, {ClassNoData, 3}}
	grid := classes.Grid()
	assert.Equal(t, 1.0, grid[0][0])
	assert.Equal(t, 5.0, grid[0][1])
	assert.True(t, raster.IsNoData(grid[1][0]))
	assert.Equal(t, 3.0, grid[1][1])
}
