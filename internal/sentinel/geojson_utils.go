package sentinel

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
)

// LoadAOIPolygon reads the first polygon feature of a GeoJSON file as the
// area of interest.
func LoadAOIPolygon(path string) (orb.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read AOI file: %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse AOI GeoJSON: %v", err)
	}

	for _, feature := range fc.Features {
		switch geometry := feature.Geometry.(type) {
		case orb.Polygon:
			return geometry, nil
		case orb.MultiPolygon:
			if len(geometry) > 0 {
				return geometry[0], nil
			}
		}
	}
	return nil, fmt.Errorf("no polygon feature found in %s", path)
}

// RasterizeMask converts the AOI polygon into a region mask on the image
// grid, selecting pixels whose center lies inside the polygon.
func RasterizeMask(aoi orb.Polygon, transform [6]float64, rows, cols int) raster.Mask {
	mask := raster.NewMask(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			lon, lat := PixelCenterLonLat(transform, j, i)
			mask[i][j] = planar.PolygonContains(aoi, orb.Point{lon, lat})
		}
	}
	return mask
}

// BoundingBox expands the AOI polygon to its bounding box for the imagery
// request.
func BoundingBox(aoi orb.Polygon) orb.Bound {
	return aoi.Bound()
}
