package output

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/schollz/progressbar/v3"
	"github.com/vihaanpunjabi/ScienceFair26/internal/properties"
	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
	"github.com/vihaanpunjabi/ScienceFair26/internal/risk"
)

var noDataColor = properties.Color{R: 128, G: 128, B: 128}

// CreateLayerImage renders a continuous layer as a PNG, stretching values
// between min and max over the palette. NoData pixels render gray.
func CreateLayerImage(layer raster.Grid, palette []properties.Color, min, max float64, outputPath string) error {
	if err := layer.Validate(); err != nil {
		return err
	}
	if len(palette) < 2 {
		return fmt.Errorf("palette needs at least two colors")
	}
	if max <= min {
		return fmt.Errorf("invalid value range [%v, %v]", min, max)
	}

	width, height := layer.Cols(), layer.Rows()
	dc := gg.NewContext(width, height)

	progressBar := progressbar.Default(int64(height), "Rendering layer")
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			c := noDataColor
			if !raster.IsNoData(layer[i][j]) {
				t := (layer[i][j] - min) / (max - min)
				c = interpolate(palette, t)
			}
			dc.SetRGB255(int(c.R), int(c.G), int(c.B))
			dc.SetPixel(j, i)
		}
		progressBar.Add(1)
	}

	if err := dc.SavePNG(outputPath); err != nil {
		return fmt.Errorf("failed to save image: %v", err)
	}
	return nil
}

// CreateRiskClassImage renders the class raster with the fixed class
// palette.
func CreateRiskClassImage(classes risk.Classes, outputPath string) error {
	height := len(classes)
	width := 0
	if height > 0 {
		width = len(classes[0])
	}

	dc := gg.NewContext(width, height)
	progressBar := progressbar.Default(int64(height), "Rendering risk classes")
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			c, ok := properties.ClassColorMap[classes[i][j]]
			if !ok {
				c = noDataColor
			}
			dc.SetRGB255(int(c.R), int(c.G), int(c.B))
			dc.SetPixel(j, i)
		}
		progressBar.Add(1)
	}

	if err := dc.SavePNG(outputPath); err != nil {
		return fmt.Errorf("failed to save image: %v", err)
	}
	return nil
}

// interpolate picks a color for t in [0,1] by blending between adjacent
// palette stops. Out-of-range values clamp to the end colors.
func interpolate(palette []properties.Color, t float64) properties.Color {
	if t <= 0 {
		return palette[0]
	}
	if t >= 1 {
		return palette[len(palette)-1]
	}

	scaled := t * float64(len(palette)-1)
	low := int(scaled)
	frac := scaled - float64(low)
	a, b := palette[low], palette[low+1]
	return properties.Color{
		R: uint8(float64(a.R) + frac*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + frac*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + frac*(float64(b.B)-float64(a.B))),
	}
}
