package analysis

import (
	"fmt"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/vihaanpunjabi/ScienceFair26/internal/composite"
	"github.com/vihaanpunjabi/ScienceFair26/internal/indices"
	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
	"github.com/vihaanpunjabi/ScienceFair26/internal/risk"
)

// Canonical band names the analysis expects from the acquisition layer.
const (
	BandBlue  = "blue"
	BandGreen = "green"
	BandRed   = "red"
	BandNir   = "nir"
	BandSwir1 = "swir1"
	BandSwir2 = "swir2"
)

// Derived layer names, matching the exported composite band names.
const (
	LayerNDVI       = "NDVI"
	LayerSAVI       = "SAVI"
	LayerEVI        = "EVI"
	LayerNDMI       = "NDMI"
	LayerNBR        = "NBR"
	LayerBSI        = "BSI"
	LayerGreenness  = "Greenness"
	LayerRedness    = "Redness"
	LayerBrightness = "Brightness"
	LayerFireRisk   = "Fire_Risk_Score"
	LayerRiskClass  = "Risk_Class"
)

// RequiredBands lists every band the index engine consumes, in composite
// order.
var RequiredBands = []string{BandBlue, BandGreen, BandRed, BandNir, BandSwir1, BandSwir2}

var derivedOrder = []string{
	LayerNDVI, LayerSAVI, LayerEVI, LayerNDMI, LayerNBR, LayerBSI,
	LayerGreenness, LayerRedness, LayerBrightness,
}

// Params carries the tunables of the pipeline. Zero value is not usable,
// start from DefaultParams.
type Params struct {
	SoilBrightness float64 // SAVI L constant
	Weights        risk.Weights
	Thresholds     risk.Thresholds
}

func DefaultParams() Params {
	return Params{
		SoilBrightness: indices.DefaultSoilBrightness,
		Weights:        risk.DefaultWeights(),
		Thresholds:     risk.DefaultThresholds(),
	}
}

// Result holds every derived layer of one scene.
type Result struct {
	Layers    map[string]raster.Grid // indices plus Fire_Risk_Score
	Classes   risk.Classes
	Composite *composite.Composite
}

// AnalyzeScene runs the whole pipeline on a set of co-registered band
// rasters: indices, fire risk score, risk classes and the labeled
// composite. Parameters and band presence are checked before any pixel
// math starts, so a failed call produces no partial results.
func AnalyzeScene(bands map[string]raster.Grid, params Params) (*Result, error) {
	if err := params.Weights.Validate(); err != nil {
		return nil, err
	}
	if err := params.Thresholds.Validate(); err != nil {
		return nil, err
	}

	grids := make([]raster.Grid, 0, len(RequiredBands))
	for _, name := range RequiredBands {
		band, ok := bands[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing required band %q", risk.ErrInvalidParameter, name)
		}
		grids = append(grids, band)
	}
	if err := raster.SameShape(grids...); err != nil {
		return nil, err
	}

	layers, err := computeIndices(bands, params.SoilBrightness)
	if err != nil {
		return nil, err
	}

	score, err := risk.Score(layers[LayerNDVI], layers[LayerNDMI], layers[LayerBSI], layers[LayerRedness], params.Weights)
	if err != nil {
		return nil, err
	}
	layers[LayerFireRisk] = score

	classes, err := risk.Classify(score, params.Thresholds)
	if err != nil {
		return nil, err
	}

	stack := make([]composite.Layer, 0, len(RequiredBands)+len(derivedOrder)+2)
	for _, name := range RequiredBands {
		stack = append(stack, composite.Layer{Name: name, Data: bands[name]})
	}
	for _, name := range derivedOrder {
		stack = append(stack, composite.Layer{Name: name, Data: layers[name]})
	}
	stack = append(stack,
		composite.Layer{Name: LayerFireRisk, Data: score},
		composite.Layer{Name: LayerRiskClass, Data: classes.Grid()},
	)
	comp, err := composite.Assemble(stack...)
	if err != nil {
		return nil, err
	}

	return &Result{Layers: layers, Classes: classes, Composite: comp}, nil
}

// computeIndices fans the nine index computations out over a worker pool.
// Each index reads only its own bands, so they are safe to run in parallel.
func computeIndices(bands map[string]raster.Grid, soilBrightness float64) (map[string]raster.Grid, error) {
	blue := bands[BandBlue]
	green := bands[BandGreen]
	red := bands[BandRed]
	nir := bands[BandNir]
	swir1 := bands[BandSwir1]
	swir2 := bands[BandSwir2]

	jobs := map[string]func() (raster.Grid, error){
		LayerNDVI: func() (raster.Grid, error) { return indices.NDVI(nir, red) },
		LayerSAVI: func() (raster.Grid, error) { return indices.SAVI(nir, red, soilBrightness) },
		LayerEVI:  func() (raster.Grid, error) { return indices.EVI(nir, red, blue) },
		LayerNDMI: func() (raster.Grid, error) { return indices.NDMI(nir, swir1) },
		LayerNBR:  func() (raster.Grid, error) { return indices.NBR(nir, swir2) },
		LayerBSI:  func() (raster.Grid, error) { return indices.BSI(swir1, red, nir, blue) },
		LayerGreenness: func() (raster.Grid, error) {
			return indices.Greenness(nir, red)
		},
		LayerRedness: func() (raster.Grid, error) {
			return indices.Redness(red, nir)
		},
		LayerBrightness: func() (raster.Grid, error) {
			return indices.Brightness(red, green, blue)
		},
	}

	var (
		mu     sync.Mutex
		layers = make(map[string]raster.Grid, len(jobs))
	)
	errChan := make(chan error, 1)
	var firstErr sync.Once

	wp := workerpool.New(len(jobs))
	for name, job := range jobs {
		name, job := name, job
		wp.Submit(func() {
			grid, err := job()
			if err != nil {
				firstErr.Do(func() { errChan <- fmt.Errorf("computing %s: %w", name, err) })
				return
			}
			mu.Lock()
			layers[name] = grid
			mu.Unlock()
		})
	}

	go func() {
		wp.StopWait()
		close(errChan)
	}()

	if err := <-errChan; err != nil {
		return nil, err
	}
	return layers, nil
}
