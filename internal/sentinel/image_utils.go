package sentinel

import (
	"fmt"
	"math"

	"github.com/airbusgeo/godal"
	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
)

// tiffBandOrder matches the evalscript output order in request_image.go.
var tiffBandOrder = []string{"blue", "green", "red", "nir", "swir1", "swir2"}

// ReadBands reads a six-band reflectance GeoTIFF into the canonical band
// map the analysis consumes, along with the image geotransform.
func ReadBands(tiffPath string) (map[string]raster.Grid, [6]float64, error) {
	var transform [6]float64

	dataset, err := godal.Open(tiffPath, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("gdal error %d: %s", code, msg)
	}))
	if err != nil {
		return nil, transform, fmt.Errorf("failed to open TIFF file: %v", err)
	}
	defer dataset.Close()

	transform, err = dataset.GeoTransform()
	if err != nil {
		return nil, transform, fmt.Errorf("failed to read geotransform: %v", err)
	}

	bandsData := dataset.Bands()
	if len(bandsData) < len(tiffBandOrder) {
		return nil, transform, fmt.Errorf("expected %d bands, image has %d", len(tiffBandOrder), len(bandsData))
	}

	width := dataset.Structure().SizeX
	height := dataset.Structure().SizeY

	bands := make(map[string]raster.Grid, len(tiffBandOrder))
	for i, name := range tiffBandOrder {
		data := make([]float64, width*height)
		if err := bandsData[i].Read(0, 0, data, width, height); err != nil {
			return nil, transform, fmt.Errorf("failed to read band %s: %v", name, err)
		}
		grid := make(raster.Grid, height)
		for row := range grid {
			grid[row] = data[row*width : (row+1)*width]
		}
		bands[name] = grid
	}

	return bands, transform, nil
}

// ApplyLandsatScale rescales Landsat Collection 2 surface reflectance
// digital numbers into reflectance fractions. Sentinel-2 L2A imagery fetched
// through the process API is already in fractions and does not need it.
func ApplyLandsatScale(g raster.Grid) raster.Grid {
	out := raster.New(g.Rows(), g.Cols())
	for i := range g {
		for j := range g[i] {
			out[i][j] = g[i][j]*0.0000275 - 0.2
		}
	}
	return out
}

// PixelCenterLonLat converts pixel coordinates to the geographic
// coordinates of the pixel center.
func PixelCenterLonLat(transform [6]float64, x, y int) (float64, float64) {
	lon := transform[0] + (float64(x)+0.5)*transform[1]
	lat := transform[3] + (float64(y)+0.5)*transform[5]
	return lon, lat
}

// PixelAreaGrid approximates the surface area in m² of each pixel from the
// geotransform of a geographic (degree) grid. The east-west extent shrinks
// with the cosine of latitude, so area varies by row.
func PixelAreaGrid(transform [6]float64, rows, cols int) raster.Grid {
	const metersPerDegreeLat = 110_540.0
	const metersPerDegreeLon = 111_320.0

	out := raster.New(rows, cols)
	for i := 0; i < rows; i++ {
		_, lat := PixelCenterLonLat(transform, 0, i)
		widthM := math.Abs(transform[1]) * metersPerDegreeLon * math.Cos(lat*math.Pi/180)
		heightM := math.Abs(transform[5]) * metersPerDegreeLat
		area := widthM * heightM
		for j := 0; j < cols; j++ {
			out[i][j] = area
		}
	}
	return out
}
