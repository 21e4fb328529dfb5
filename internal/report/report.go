package report

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/vihaanpunjabi/ScienceFair26/internal/analysis"
	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
	"github.com/vihaanpunjabi/ScienceFair26/internal/stats"
	"golang.org/x/sync/errgroup"
)

// ClassLabels names the five risk classes for reporting.
var ClassLabels = map[int]string{
	1: "Very Low",
	2: "Low",
	3: "Moderate",
	4: "High",
	5: "Very High",
}

// summarized layers, in print order
var reportLayers = []string{
	analysis.LayerNDVI,
	analysis.LayerSAVI,
	analysis.LayerNDMI,
	analysis.LayerFireRisk,
}

// LayerSummary is one row of the per-layer statistics table.
type LayerSummary struct {
	Layer  string  `csv:"layer"`
	Pixels int     `csv:"pixels"`
	Mean   float64 `csv:"mean"`
	StdDev float64 `csv:"stddev"`
	Min    float64 `csv:"min"`
	Max    float64 `csv:"max"`
}

// ClassArea is the surface covered by one risk class inside the region.
type ClassArea struct {
	Class  int     `csv:"class"`
	Label  string  `csv:"label"`
	Pixels int     `csv:"pixels"`
	AreaM2 float64 `csv:"area_m2"`
}

// Report is the summary handed to the presentation layer.
type Report struct {
	Summaries   []LayerSummary
	ClassAreas  []ClassArea
	AverageRisk float64 // NaN when the region is empty
	RiskLevel   string
	Advice      string
}

// Build reduces a scene over a region mask: per-layer statistics, per-class
// areas and the overall assessment. A nil pixelArea raster falls back to
// uniform unit pixels, with the area column reporting pixel counts. Layer
// reductions run concurrently, rasters are immutable at this point.
func Build(result *analysis.Result, mask raster.Mask, pixelArea raster.Grid) (*Report, error) {
	report := &Report{Summaries: make([]LayerSummary, len(reportLayers))}

	var g errgroup.Group
	var mu sync.Mutex
	for i, name := range reportLayers {
		i, name := i, name
		g.Go(func() error {
			layer, ok := result.Layers[name]
			if !ok {
				return fmt.Errorf("layer %q not present in analysis result", name)
			}
			summary, err := stats.Summarize(layer, mask)
			if err != nil {
				return fmt.Errorf("summarizing %s: %w", name, err)
			}
			mu.Lock()
			report.Summaries[i] = LayerSummary{
				Layer:  name,
				Pixels: summary.Count,
				Mean:   summary.Mean,
				StdDev: summary.StdDev,
				Min:    summary.Min,
				Max:    summary.Max,
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts, err := stats.ClassCounts(result.Classes, mask)
	if err != nil {
		return nil, err
	}
	areas, err := stats.ClassAreas(result.Classes, mask, pixelArea)
	if err != nil {
		return nil, err
	}
	for class := 1; class <= 5; class++ {
		report.ClassAreas = append(report.ClassAreas, ClassArea{
			Class:  class,
			Label:  ClassLabels[class],
			Pixels: counts[class],
			AreaM2: areas[class],
		})
	}

	for _, summary := range report.Summaries {
		if summary.Layer == analysis.LayerFireRisk {
			report.AverageRisk = summary.Mean
		}
	}
	report.RiskLevel, report.Advice = assess(report.AverageRisk)
	return report, nil
}

// assess buckets the average score the way the original report did.
func assess(averageRisk float64) (string, string) {
	switch {
	case raster.IsNoData(averageRisk):
		return "UNKNOWN", "No valid pixels in the selected region."
	case averageRisk < 30:
		return "LOW", "Area shows healthy vegetation with low fire risk."
	case averageRisk < 50:
		return "MODERATE", "Monitor conditions. Some areas may be fire-prone."
	case averageRisk < 70:
		return "HIGH", "High fire risk. Implement prevention measures."
	default:
		return "VERY HIGH", "Critical fire risk. Immediate action recommended."
	}
}

// Render prints the human-readable report.
func (r *Report) Render(w io.Writer) {
	line := "----------------------------------------------------------------------"
	fmt.Fprintln(w, "======================================================================")
	fmt.Fprintln(w, "FIRE RISK VEGETATION ANALYSIS REPORT")
	fmt.Fprintln(w, "======================================================================")

	fmt.Fprintln(w, "\n1. VEGETATION INDICES SUMMARY")
	fmt.Fprintln(w, line)
	for _, s := range r.Summaries {
		fmt.Fprintf(w, "%-16s Mean: %.3f, Std: %.3f, Range: [%.3f, %.3f] (%d px)\n",
			s.Layer, s.Mean, s.StdDev, s.Min, s.Max, s.Pixels)
	}

	fmt.Fprintln(w, "\n2. FIRE RISK DISTRIBUTION")
	fmt.Fprintln(w, line)
	for _, a := range r.ClassAreas {
		fmt.Fprintf(w, "%-12s: %.2f km² (%d px)\n", a.Label, a.AreaM2/1e6, a.Pixels)
	}

	fmt.Fprintln(w, "\n3. OVERALL FIRE RISK ASSESSMENT")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Average Fire Risk Score: %.2f/100\n", r.AverageRisk)
	fmt.Fprintf(w, "Overall Risk Level: %s\n", r.RiskLevel)
	fmt.Fprintf(w, "Recommendation: %s\n", r.Advice)
	fmt.Fprintln(w, "\n======================================================================")
}

// WriteSummaryCSV exports the per-layer table for spreadsheet analysis.
func (r *Report) WriteSummaryCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary CSV: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&r.Summaries, file); err != nil {
		return fmt.Errorf("writing summary CSV: %w", err)
	}
	return nil
}

// WriteClassAreaCSV exports the per-class area table.
func (r *Report) WriteClassAreaCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating class area CSV: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&r.ClassAreas, file); err != nil {
		return fmt.Errorf("writing class area CSV: %w", err)
	}
	return nil
}
