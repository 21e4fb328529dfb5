package composite

import (
	"fmt"

	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
)

// Layer pairs a raster with the name downstream consumers address it by.
type Layer struct {
	Name string
	Data raster.Grid
}

// Composite is an ordered, labeled stack of rasters sharing one spatial
// grid. It is assembled once and read-only afterwards; export and reporting
// collaborators consume it without modifying it.
type Composite struct {
	names  []string
	layers map[string]raster.Grid
	rows   int
	cols   int
}

// Assemble validates that every layer shares one shape and builds the stack
// in the given order. Duplicate names and shape disagreements are rejected.
func Assemble(layers ...Layer) (*Composite, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("composite must contain at least one layer")
	}

	grids := make([]raster.Grid, len(layers))
	for i, layer := range layers {
		grids[i] = layer.Data
	}
	if err := raster.SameShape(grids...); err != nil {
		return nil, err
	}

	c := &Composite{
		names:  make([]string, 0, len(layers)),
		layers: make(map[string]raster.Grid, len(layers)),
		rows:   layers[0].Data.Rows(),
		cols:   layers[0].Data.Cols(),
	}
	for _, layer := range layers {
		if _, exists := c.layers[layer.Name]; exists {
			return nil, fmt.Errorf("duplicate layer name %q", layer.Name)
		}
		c.names = append(c.names, layer.Name)
		c.layers[layer.Name] = layer.Data
	}
	return c, nil
}

// Names returns the layer names in assembly order.
func (c *Composite) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

func (c *Composite) Layer(name string) (raster.Grid, bool) {
	g, ok := c.layers[name]
	return g, ok
}

func (c *Composite) Rows() int {
	return c.rows
}

func (c *Composite) Cols() int {
	return c.cols
}
