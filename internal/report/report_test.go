package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vihaanpunjabi/ScienceFair26/internal/analysis"
	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
)

func analyzeReference(t *testing.T) *analysis.Result {
	t.Helper()
	bands := map[string]raster.Grid{
		analysis.BandBlue:  raster.Uniform(2, 2, 0.05),
		analysis.BandGreen: raster.Uniform(2, 2, 0.08),
		analysis.BandRed:   raster.Uniform(2, 2, 0.10),
		analysis.BandNir:   raster.Uniform(2, 2, 0.40),
		analysis.BandSwir1: raster.Uniform(2, 2, 0.20),
		analysis.BandSwir2: raster.Uniform(2, 2, 0.15),
	}
	result, err := analysis.AnalyzeScene(bands, analysis.DefaultParams())
	require.NoError(t, err)
	return result
}

func TestBuild(t *testing.T) {
	result := analyzeReference(t)

	rpt, err := Build(result, raster.FullMask(2, 2), nil)
	require.NoError(t, err)

	t.Run("layer summaries", func(t *testing.T) {
		require.Len(t, rpt.Summaries, 4)
		byName := map[string]LayerSummary{}
		for _, s := range rpt.Summaries {
			byName[s.Layer] = s
		}
		assert.InDelta(t, 0.600, byName[analysis.LayerNDVI].Mean, 1e-9)
		assert.InDelta(t, 0.0, byName[analysis.LayerNDVI].StdDev, 1e-9)
		assert.Equal(t, 4, byName[analysis.LayerFireRisk].Pixels)
	})

	t.Run("class areas", func(t *testing.T) {
		require.Len(t, rpt.ClassAreas, 5)
		assert.Equal(t, "Low", rpt.ClassAreas[1].Label)
		assert.Equal(t, 4, rpt.ClassAreas[1].Pixels)
		assert.InDelta(t, 4.0, rpt.ClassAreas[1].AreaM2, 1e-9)
		for _, a := range rpt.ClassAreas {
			if a.Class != 2 {
				assert.Equal(t, 0, a.Pixels)
			}
		}
	})

	t.Run("overall assessment", func(t *testing.T) {
		assert.InDelta(t, 28.5, rpt.AverageRisk, 0.05)
		assert.Equal(t, "LOW", rpt.RiskLevel)
		assert.NotEmpty(t, rpt.Advice)
	})
}

func TestBuildPhysicalAreas(t *testing.T) {
	result := analyzeReference(t)
	pixelArea := raster.Uniform(2, 2, 250.0)

	rpt, err := Build(result, raster.FullMask(2, 2), pixelArea)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, rpt.ClassAreas[1].AreaM2, 1e-9)
}

func TestBuildEmptyRegion(t *testing.T) {
	result := analyzeReference(t)

	rpt, err := Build(result, raster.NewMask(2, 2), nil)
	require.NoError(t, err)
	assert.True(t, raster.IsNoData(rpt.AverageRisk))
	assert.Equal(t, "UNKNOWN", rpt.RiskLevel)
	for _, s := range rpt.Summaries {
		assert.Equal(t, 0, s.Pixels)
	}
	for _, a := range rpt.ClassAreas {
		assert.Equal(t, 0, a.Pixels)
	}
}

func TestAssessBuckets(t *testing.T) {
	cases := []struct {
		score float64
		level string
	}{
		{0, "LOW"},
		{29.99, "LOW"},
		{30, "MODERATE"},
		{49.99, "MODERATE"},
		{50, "HIGH"},
		{69.99, "HIGH"},
		{70, "VERY HIGH"},
		{100, "VERY HIGH"},
	}
	for _, c := range cases {
		level, advice := assess(c.score)
		assert.Equal(t, c.level, level, "score %v", c.score)
		assert.NotEmpty(t, advice)
	}
}

func TestRender(t *testing.T) {
	result := analyzeReference(t)
	rpt, err := Build(result, raster.FullMask(2, 2), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	rpt.Render(&buf)
	text := buf.String()
	assert.Contains(t, text, "FIRE RISK VEGETATION ANALYSIS REPORT")
	assert.Contains(t, text, "NDVI")
	assert.Contains(t, text, "Overall Risk Level: LOW")
}

func TestWriteCSV(t *testing.T) {
	result := analyzeReference(t)
	rpt, err := Build(result, raster.FullMask(2, 2), nil)
	require.NoError(t, err)

	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "summary.csv")
	require.NoError(t, rpt.WriteSummaryCSV(summaryPath))
	data, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "layer")

	areaPath := filepath.Join(dir, "areas.csv")
	require.NoError(t, rpt.WriteClassAreaCSV(areaPath))
	data, err = os.ReadFile(areaPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Very High")
}
