package fe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/femprep/mesh"
	"github.com/notargets/femprep/reference"
)

func TestIdentityMapGeometry(t *testing.T) {
	// A single cell whose node positions equal the reference coordinates has
	// J = I everywhere: JxW recovers the quadrature weights and the physical
	// gradients recover the reference gradients, for every element type
	for _, et := range []reference.ElementType{
		reference.TRI3, reference.TRI6,
		reference.QUAD4, reference.QUAD8,
		reference.TET4, reference.TET10,
		reference.HEX8, reference.HEX20, reference.HEX27,
	} {
		fel, err := NewFiniteElement(identityMesh(et), 1, 0, nil)
		require.NoError(t, err, string(et))
		var (
			Q, M = fel.NumQuads, fel.NumNodes
		)
		assert.True(t, nearVec(fel.Ref.QuadWeights, fel.JxW.Row(0), 1.e-12),
			string(et))
		for q := 0; q < Q; q++ {
			for m := 0; m < M; m++ {
				assert.True(t, nearVec(
					fel.Ref.ShapeGradsRef.Row(q*M+m),
					fel.ShapeGradAt(0, q, m), 1.e-10), string(et))
			}
		}
	}
}

func TestAffineScalingLaws(t *testing.T) {
	// Scaling every coordinate by k multiplies JxW by k^dim and divides
	// physical gradients by k
	var (
		k = 2.5
	)
	for _, et := range []reference.ElementType{
		reference.TRI3, reference.QUAD4, reference.TET4, reference.HEX8,
	} {
		base := identityMesh(et)
		fel, err := NewFiniteElement(base, 1, 0, nil)
		require.NoError(t, err)
		fsc, err := NewFiniteElement(scaledMesh(base, k), 1, 0, nil)
		require.NoError(t, err)
		var (
			Q, M = fel.NumQuads, fel.NumNodes
			vol  = math.Pow(k, float64(fel.Dim))
		)
		for q := 0; q < Q; q++ {
			assert.True(t, near(vol*fel.JxW.At(0, q), fsc.JxW.At(0, q), 1.e-10))
			for m := 0; m < M; m++ {
				g, gs := fel.ShapeGradAt(0, q, m), fsc.ShapeGradAt(0, q, m)
				for d := 0; d < fel.Dim; d++ {
					assert.True(t, near(g[d]/k, gs[d], 1.e-10))
				}
			}
		}
	}
}

func TestJxWSumsToMeshVolume(t *testing.T) {
	// The JxW entries of a mesh tile its physical volume
	msh := mesh.BoxMesh(2, 3, 2, 2.0, 1.5, 1.0)
	fel, err := NewFiniteElement(msh, 1, 0, nil)
	require.NoError(t, err)
	var sum float64
	for c := 0; c < fel.NumCells; c++ {
		for q := 0; q < fel.NumQuads; q++ {
			sum += fel.JxW.At(c, q)
		}
	}
	assert.True(t, near(3.0, sum, 1.e-10))

	msh2d := mesh.RectangleMesh(3, 2, 1.5, 1.0)
	fel2d, err := NewFiniteElement(msh2d, 1, 0, nil)
	require.NoError(t, err)
	sum = 0
	for c := 0; c < fel2d.NumCells; c++ {
		for q := 0; q < fel2d.NumQuads; q++ {
			sum += fel2d.JxW.At(c, q)
		}
	}
	assert.True(t, near(1.5, sum, 1.e-10))
}

func TestVGradsJxWScalesShapeGrads(t *testing.T) {
	// VGradsJxW feeds stiffness assembly directly: every row must equal the
	// matching ShapeGrads row scaled by that (cell, quad point)'s JxW.
	// Anisotropic stretching keeps the Jacobians non-trivial.
	msh := mesh.BoxMesh(2, 2, 2, 1.3, 0.7, 2.1)
	fel, err := NewFiniteElement(msh, 1, 0, nil)
	require.NoError(t, err)
	var (
		Q, M = fel.NumQuads, fel.NumNodes
	)
	for c := 0; c < fel.NumCells; c++ {
		for q := 0; q < Q; q++ {
			jxw := fel.JxW.At(c, q)
			for m := 0; m < M; m++ {
				row := (c*Q+q)*M + m
				g := fel.ShapeGrads.Row(row)
				gw := fel.VGradsJxW.Row(row)
				for d := 0; d < fel.Dim; d++ {
					assert.True(t, near(g[d]*jxw, gw[d], 1.e-12))
				}
			}
		}
	}
}

func TestGradientSumVanishes(t *testing.T) {
	// Shape functions sum to one, so their physical gradients sum to zero at
	// every quadrature point of every cell
	msh := mesh.BoxMesh(2, 2, 2, 1, 1, 1)
	fel, err := NewFiniteElement(msh, 1, 0, nil)
	require.NoError(t, err)
	for c := 0; c < fel.NumCells; c++ {
		for q := 0; q < fel.NumQuads; q++ {
			sum := make([]float64, fel.Dim)
			for m := 0; m < fel.NumNodes; m++ {
				g := fel.ShapeGradAt(c, q, m)
				for d := 0; d < fel.Dim; d++ {
					sum[d] += g[d]
				}
			}
			assert.True(t, nearVec([]float64{0, 0, 0}, sum, 1.e-10))
		}
	}
}

func TestInvertedElementRejected(t *testing.T) {
	// Reversing the corner order of a quad flips the Jacobian sign; setup
	// must fail naming the offending cell
	points := [][]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	msh, err := mesh.NewMesh(points, [][]int{{0, 1, 2, 3}}, reference.QUAD4)
	require.NoError(t, err)
	_, err = NewFiniteElement(msh, 1, 0, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cell 0")
	assert.Contains(t, err.Error(), "Jacobian")
}

func TestNewFiniteElementValidation(t *testing.T) {
	msh := mesh.RectangleMesh(1, 1, 1, 1)

	_, err := NewFiniteElement(nil, 1, 0, nil)
	assert.Error(t, err)

	_, err = NewFiniteElement(msh, 0, 0, nil)
	assert.Error(t, err)

	// vector-valued setup sizes the dof count accordingly
	fel, err := NewFiniteElement(msh, 3, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, fel.NumTotalNodes)
	assert.Equal(t, 12, fel.NumTotalDofs)
}
