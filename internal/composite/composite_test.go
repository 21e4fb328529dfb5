package composite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vihaanpunjabi/ScienceFair26/internal/raster"
)

func TestAssemble(t *testing.T) {
	red := raster.Uniform(2, 2, 0.1)
	nir := raster.Uniform(2, 2, 0.4)
	ndvi := raster.Uniform(2, 2, 0.6)

	t.Run("preserves order and lookup", func(t *testing.T) {
		comp, err := Assemble(
			Layer{Name: "red", Data: red},
			Layer{Name: "nir", Data: nir},
			Layer{Name: "NDVI", Data: ndvi},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"red", "nir", "NDVI"}, comp.Names())
		assert.Equal(t, 2, comp.Rows())
		assert.Equal(t, 2, comp.Cols())

		layer, ok := comp.Layer("NDVI")
		assert.True(t, ok)
		assert.Equal(t, ndvi, layer)

		_, ok = comp.Layer("missing")
		assert.False(t, ok)
	})

	t.Run("shape mismatch is fatal", func(t *testing.T) {
		_, err := Assemble(
			Layer{Name: "red", Data: red},
			Layer{Name: "nir", Data: raster.Uniform(3, 2, 0.4)},
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, raster.ErrShapeMismatch)
	})

	t.Run("duplicate names rejected", func(t *testing.T) {
		_, err := Assemble(
			Layer{Name: "red", Data: red},
			Layer{Name: "red", Data: nir},
		)
		require.Error(t, err)
	})

	t.Run("empty composite rejected", func(t *testing.T) {
		_, err := Assemble()
		require.Error(t, err)
	})

	t.Run("names are a copy", func(t *testing.T) {
		comp, err := Assemble(Layer{Name: "red", Data: red})
		require.NoError(t, err)
		names := comp.Names()
		names[0] = "mutated"
		assert.Equal(t, []string{"red"}, comp.Names())
	})
}
