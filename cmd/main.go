package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/airbusgeo/godal"
	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/vihaanpunjabi/ScienceFair26/internal/analysis"
	"github.com/vihaanpunjabi/ScienceFair26/internal/notification"
	"github.com/vihaanpunjabi/ScienceFair26/internal/output"
	"github.com/vihaanpunjabi/ScienceFair26/internal/properties"
	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
	"github.com/vihaanpunjabi/ScienceFair26/internal/report"
	"github.com/vihaanpunjabi/ScienceFair26/internal/sentinel"
)

func printBanner() {
	figure1 := figure.NewFigure("Fire", "isometric1", true)
	figure2 := figure.NewFigure("Risk", "isometric1", true)
	bannercolor.Red(figure1.String())
	bannercolor.Yellow(figure2.String())
	fmt.Println()
}

func main() {
	printBanner()

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using process environment")
	}
	godal.RegisterAll()

	aoiPath := flag.String("aoi", "", "GeoJSON file with the area of interest polygon")
	imagePath := flag.String("image", "", "pre-downloaded six-band GeoTIFF (skips the Sentinel Hub request)")
	startDate := flag.String("start", "", "start date YYYY-MM-DD (default: 90 days ago)")
	endDate := flag.String("end", "", "end date YYYY-MM-DD (default: today)")
	maxCloud := flag.Int("cloud", 20, "maximum scene cloud coverage percent")
	outDir := flag.String("out", ".", "output directory")
	flag.Parse()

	if err := run(*aoiPath, *imagePath, *startDate, *endDate, *maxCloud, *outDir); err != nil {
		fmt.Println("Error:", err)
		if properties.DiscordErrorNotificationUrl() != "" {
			notification.SendDiscordErrorNotification(err.Error())
		}
		os.Exit(1)
	}
}

func run(aoiPath, imagePath, startDate, endDate string, maxCloud int, outDir string) error {
	tiffPath := imagePath
	if tiffPath == "" {
		if aoiPath == "" {
			return fmt.Errorf("either -image or -aoi is required")
		}
		start, end, err := parseDateRange(startDate, endDate)
		if err != nil {
			return err
		}

		aoi, err := sentinel.LoadAOIPolygon(aoiPath)
		if err != nil {
			return err
		}

		fmt.Println("Requesting Sentinel-2 imagery from Copernicus...")
		imageData, err := sentinel.RequestSceneImage(start, end, sentinel.BoundingBox(aoi), maxCloud)
		if err != nil {
			return err
		}

		tiffPath = filepath.Join(outDir, "scene.tiff")
		if err := os.WriteFile(tiffPath, imageData, 0o644); err != nil {
			return fmt.Errorf("failed to save scene image: %v", err)
		}
		fmt.Println("Scene image saved to", tiffPath)
	}

	bands, transform, err := sentinel.ReadBands(tiffPath)
	if err != nil {
		return err
	}

	rows := bands[analysis.BandRed].Rows()
	cols := bands[analysis.BandRed].Cols()

	mask := raster.FullMask(rows, cols)
	if aoiPath != "" {
		aoi, err := sentinel.LoadAOIPolygon(aoiPath)
		if err != nil {
			return err
		}
		mask = sentinel.RasterizeMask(aoi, transform, rows, cols)
	}

	result, err := analysis.AnalyzeScene(bands, analysis.DefaultParams())
	if err != nil {
		return err
	}

	pixelArea := sentinel.PixelAreaGrid(transform, rows, cols)
	rpt, err := report.Build(result, mask, pixelArea)
	if err != nil {
		return err
	}
	rpt.Render(os.Stdout)

	if err := rpt.WriteSummaryCSV(filepath.Join(outDir, "layer_summary.csv")); err != nil {
		return err
	}
	if err := rpt.WriteClassAreaCSV(filepath.Join(outDir, "class_areas.csv")); err != nil {
		return err
	}

	ndvi := result.Layers[analysis.LayerNDVI]
	if err := output.CreateLayerImage(ndvi, properties.NDVIPalette, -0.2, 0.8, filepath.Join(outDir, "ndvi.png")); err != nil {
		return err
	}
	score := result.Layers[analysis.LayerFireRisk]
	if err := output.CreateLayerImage(score, properties.ScorePalette, 0, 100, filepath.Join(outDir, "fire_risk_score.png")); err != nil {
		return err
	}
	if err := output.CreateRiskClassImage(result.Classes, filepath.Join(outDir, "risk_class.png")); err != nil {
		return err
	}
	if err := output.CreateRiskGeoJSON(score, result.Classes, mask, transform, filepath.Join(outDir, "risk_class.geojson")); err != nil {
		return err
	}
	if err := output.CreateCompositeTIFF(result.Composite, transform, filepath.Join(outDir, "fire_risk_composite.tiff")); err != nil {
		return err
	}

	if properties.DiscordSuccessNotificationUrl() != "" {
		notification.SendDiscordSuccessNotification(fmt.Sprintf(
			"Average fire risk %.2f/100 (%s) over %dx%d pixels.", rpt.AverageRisk, rpt.RiskLevel, rows, cols))
	}
	return nil
}

func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -90)
	var err error
	if endDate != "" {
		end, err = time.Parse("2006-01-02", endDate)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date: %v", err)
		}
	}
	if startDate != "" {
		start, err = time.Parse("2006-01-02", startDate)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date: %v", err)
		}
	}
	if !start.Before(end) {
		return start, end, fmt.Errorf("start date must be before end date")
	}
	return start, end, nil
}
