package output

import (
	"fmt"

	"github.com/airbusgeo/godal"
	"github.com/vihaanpunjabi/ScienceFair26/internal/composite"
)

// CreateCompositeTIFF writes the composite as a multi-band GeoTIFF, one
// band per layer in assembly order, carrying the source geotransform so
// external GIS tools can georeference it.
func CreateCompositeTIFF(comp *composite.Composite, transform [6]float64, outputPath string) error {
	names := comp.Names()
	width, height := comp.Cols(), comp.Rows()

	dataset, err := godal.Create(godal.GTiff, outputPath, len(names), godal.Float64, width, height)
	if err != nil {
		return fmt.Errorf("failed to create GeoTIFF: %v", err)
	}
	defer dataset.Close()

	if err := dataset.SetGeoTransform(transform); err != nil {
		return fmt.Errorf("failed to set geotransform: %v", err)
	}

	bands := dataset.Bands()
	for i, name := range names {
		layer, _ := comp.Layer(name)
		data := make([]float64, width*height)
		for row := 0; row < height; row++ {
			copy(data[row*width:(row+1)*width], layer[row])
		}
		if err := bands[i].Write(0, 0, data, width, height); err != nil {
			return fmt.Errorf("failed to write band %s: %v", name, err)
		}
		if err := dataset.SetMetadata(fmt.Sprintf("LAYER_%d", i+1), name); err != nil {
			return fmt.Errorf("failed to label band %s: %v", name, err)
		}
	}

	fmt.Println("Composite GeoTIFF created successfully at", outputPath)
	return nil
}
