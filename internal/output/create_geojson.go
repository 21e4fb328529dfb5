package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
	"github.com/vihaanpunjabi/ScienceFair26/internal/risk"
	"github.com/vihaanpunjabi/ScienceFair26/internal/sentinel"
)

// CreateRiskGeoJSON exports one point feature per masked pixel carrying its
// fire risk score and class, georeferenced through the image geotransform.
func CreateRiskGeoJSON(score raster.Grid, classes risk.Classes, mask raster.Mask, transform [6]float64, outputPath string) error {
	if err := mask.Matches(score); err != nil {
		return err
	}

	fc := geojson.NewFeatureCollection()
	for i := range score {
		for j := range score[i] {
			if !mask[i][j] || classes[i][j] == risk.ClassNoData {
				continue
			}
			lon, lat := sentinel.PixelCenterLonLat(transform, j, i)
			feature := geojson.NewFeature(orb.Point{lon, lat})
			feature.Properties = geojson.Properties{
				"fire_risk_score": score[i][j],
				"risk_class":      classes[i][j],
			}
			fc.Append(feature)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("error creating GeoJSON file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fc); err != nil {
		return fmt.Errorf("error encoding GeoJSON: %v", err)
	}

	fmt.Println("GeoJSON file created successfully at", outputPath)
	return nil
}
