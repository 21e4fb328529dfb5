package indices

import (
	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
)

// Soil-brightness correction for SAVI when the caller does not supply one.
const DefaultSoilBrightness = 0.5

// Redness divides red by nir, which can both be zero over water or shadow.
// The epsilon keeps that ratio finite instead of producing a singularity.
const rednessEpsilon = 1e-4

// Singularity policy: the normalized-difference family (NDVI, NDMI, NBR, BSI)
// produces raster.NoData where the denominator is exactly zero. Downstream
// scoring, classification and statistics treat NoData as missing and exclude
// it. Only Redness uses an epsilon, matching its definition.
func normalizedDifference(a, b raster.Grid) (raster.Grid, error) {
	if err := raster.SameShape(a, b); err != nil {
		return nil, err
	}
	out := raster.New(a.Rows(), a.Cols())
	for i := range out {
		for j := range out[i] {
			den := a[i][j] + b[i][j]
			if den == 0 {
				out[i][j] = raster.NoData
				continue
			}
			out[i][j] = (a[i][j] - b[i][j]) / den
		}
	}
	return out, nil
}

// NDVI is the normalized difference vegetation index, (nir-red)/(nir+red).
func NDVI(nir, red raster.Grid) (raster.Grid, error) {
	return normalizedDifference(nir, red)
}

// SAVI is NDVI with a soil-brightness correction L:
// ((nir-red)/(nir+red+L)) * (1+L).
func SAVI(nir, red raster.Grid, l float64) (raster.Grid, error) {
	if err := raster.SameShape(nir, red); err != nil {
		return nil, err
	}
	out := raster.New(nir.Rows(), nir.Cols())
	for i := range out {
		for j := range out[i] {
			den := nir[i][j] + red[i][j] + l
			if den == 0 {
				out[i][j] = raster.NoData
				continue
			}
			out[i][j] = (nir[i][j] - red[i][j]) / den * (1 + l)
		}
	}
	return out, nil
}

// EVI is the enhanced vegetation index,
// 2.5 * (nir-red) / (nir + 6*red - 7.5*blue + 1).
func EVI(nir, red, blue raster.Grid) (raster.Grid, error) {
	if err := raster.SameShape(nir, red, blue); err != nil {
		return nil, err
	}
	out := raster.New(nir.Rows(), nir.Cols())
	for i := range out {
		for j := range out[i] {
			den := nir[i][j] + 6*red[i][j] - 7.5*blue[i][j] + 1
			if den == 0 {
				out[i][j] = raster.NoData
				continue
			}
			out[i][j] = 2.5 * (nir[i][j] - red[i][j]) / den
		}
	}
	return out, nil
}

// NDMI is the normalized difference moisture index, (nir-swir1)/(nir+swir1).
func NDMI(nir, swir1 raster.Grid) (raster.Grid, error) {
	return normalizedDifference(nir, swir1)
}

// NBR is the normalized burn ratio, (nir-swir2)/(nir+swir2).
func NBR(nir, swir2 raster.Grid) (raster.Grid, error) {
	return normalizedDifference(nir, swir2)
}

// BSI is the bare soil index,
// ((swir1+red)-(nir+blue)) / ((swir1+red)+(nir+blue)).
func BSI(swir1, red, nir, blue raster.Grid) (raster.Grid, error) {
	if err := raster.SameShape(swir1, red, nir, blue); err != nil {
		return nil, err
	}
	out := raster.New(swir1.Rows(), swir1.Cols())
	for i := range out {
		for j := range out[i] {
			num := (swir1[i][j] + red[i][j]) - (nir[i][j] + blue[i][j])
			den := (swir1[i][j] + red[i][j]) + (nir[i][j] + blue[i][j])
			if den == 0 {
				out[i][j] = raster.NoData
				continue
			}
			out[i][j] = num / den
		}
	}
	return out, nil
}

// Greenness is the raw nir-red difference.
func Greenness(nir, red raster.Grid) (raster.Grid, error) {
	if err := raster.SameShape(nir, red); err != nil {
		return nil, err
	}
	out := raster.New(nir.Rows(), nir.Cols())
	for i := range out {
		for j := range out[i] {
			out[i][j] = nir[i][j] - red[i][j]
		}
	}
	return out, nil
}

// Redness is red/(nir+ε), a plant stress signal.
func Redness(red, nir raster.Grid) (raster.Grid, error) {
	if err := raster.SameShape(red, nir); err != nil {
		return nil, err
	}
	out := raster.New(red.Rows(), red.Cols())
	for i := range out {
		for j := range out[i] {
			out[i][j] = red[i][j] / (nir[i][j] + rednessEpsilon)
		}
	}
	return out, nil
}

// Brightness is the per-pixel mean of the visible bands.
func Brightness(red, green, blue raster.Grid) (raster.Grid, error) {
	if err := raster.SameShape(red, green, blue); err != nil {
		return nil, err
	}
	out := raster.New(red.Rows(), red.Cols())
	for i := range out {
		for j := range out[i] {
			out[i][j] = (red[i][j] + green[i][j] + blue[i][j]) / 3
		}
	}
	return out, nil
}
