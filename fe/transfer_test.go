package fe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/femprep/mesh"
)

func TestVolumeQuadValuesLinearField(t *testing.T) {
	// First-order elements reproduce linear fields exactly, so interpolated
	// quadrature values must match the field evaluated at the physical
	// quadrature point positions
	msh := mesh.BoxMesh(2, 2, 2, 1, 1, 1)
	fel, err := NewFiniteElement(msh, 2, 0, nil)
	require.NoError(t, err)
	var (
		offset = []float64{1.0, -2.0}
		slope  = [][]float64{{2, -1, 3}, {0.5, 4, -2}}
		sol    = linearField(msh, offset, slope)
	)
	vals := fel.VolumeQuadValues(sol)
	pts := fel.PhysicalQuadPoints()
	nr, _ := vals.Dims()
	require.Equal(t, fel.NumCells*fel.NumQuads, nr)
	for i := 0; i < nr; i++ {
		p := pts.Row(i)
		for v := range offset {
			want := offset[v]
			for d := 0; d < 3; d++ {
				want += slope[v][d] * p[d]
			}
			assert.True(t, near(want, vals.At(i, v), 1.e-10))
		}
	}
}

func TestVolumeQuadGradientsLinearField(t *testing.T) {
	// The gradient of a linear field is its slope, constant over the mesh
	msh := mesh.RectangleMesh(2, 3, 1.0, 1.5)
	fel, err := NewFiniteElement(msh, 2, 0, nil)
	require.NoError(t, err)
	var (
		offset = []float64{0.5, 2.0}
		slope  = [][]float64{{3, -1}, {-2, 0.25}}
		sol    = linearField(msh, offset, slope)
	)
	grads := fel.VolumeQuadGradients(sol)
	nr, _ := grads.Dims()
	require.Equal(t, fel.NumCells*fel.NumQuads*fel.Vec, nr)
	for c := 0; c < fel.NumCells; c++ {
		for q := 0; q < fel.NumQuads; q++ {
			for v := 0; v < fel.Vec; v++ {
				g := grads.Row((c*fel.NumQuads+q)*fel.Vec + v)
				assert.True(t, nearVec(slope[v], g, 1.e-10))
			}
		}
	}
}

func TestFaceQuadValuesLinearField(t *testing.T) {
	msh := mesh.BoxMesh(2, 2, 2, 1, 1, 1)
	fel, err := NewFiniteElement(msh, 1, 0, nil)
	require.NoError(t, err)
	boundary, err := fel.SelectFaces(AtPoints(func(p []float64) bool {
		return math.Abs(p[1]-1) < 1.e-9
	}))
	require.NoError(t, err)
	require.NotEmpty(t, boundary)
	var (
		offset = []float64{-1.0}
		slope  = [][]float64{{1, 2, -0.5}}
		sol    = linearField(msh, offset, slope)
	)
	vals := fel.FaceQuadValues(sol, boundary)
	pts := fel.PhysicalSurfaceQuadPoints(boundary)
	nr, _ := vals.Dims()
	require.Equal(t, len(boundary)*fel.NumFaceQuads, nr)
	for i := 0; i < nr; i++ {
		p := pts.Row(i)
		want := offset[0] + slope[0][0]*p[0] + slope[0][1]*p[1] + slope[0][2]*p[2]
		assert.True(t, near(want, vals.At(i, 0), 1.e-10))
	}
}

func TestFieldShapeChecked(t *testing.T) {
	msh := mesh.RectangleMesh(1, 1, 1, 1)
	fel, err := NewFiniteElement(msh, 2, 0, nil)
	require.NoError(t, err)
	assert.Panics(t, func() {
		fel.VolumeQuadValues(linearField(msh, []float64{0},
			[][]float64{{1, 1}}))
	})
}
