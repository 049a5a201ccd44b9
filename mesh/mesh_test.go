package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/femprep/reference"
)

func TestNewMeshValidation(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {0, 1}}
	cells := [][]int{{0, 1, 2}}

	msh, err := NewMesh(points, cells, reference.TRI3)
	require.NoError(t, err)
	assert.Equal(t, 3, msh.NumPoints())
	assert.Equal(t, 1, msh.NumCells())
	assert.Equal(t, 2, msh.Dim)

	// out of range node index
	_, err = NewMesh(points, [][]int{{0, 1, 3}}, reference.TRI3)
	assert.Error(t, err)
	_, err = NewMesh(points, [][]int{{0, 1, -1}}, reference.TRI3)
	assert.Error(t, err)

	// wrong node count for the element type
	_, err = NewMesh(points, [][]int{{0, 1}}, reference.TRI3)
	assert.Error(t, err)

	// wrong coordinate dimension
	_, err = NewMesh(points, cells, reference.TET4)
	assert.Error(t, err)

	// unsupported element tag
	_, err = NewMesh(points, cells, "TRI7")
	assert.Error(t, err)

	// empty inputs
	_, err = NewMesh(nil, cells, reference.TRI3)
	assert.Error(t, err)
	_, err = NewMesh(points, nil, reference.TRI3)
	assert.Error(t, err)
}

func TestStructuredMeshes(t *testing.T) {
	rect := RectangleMesh(3, 2, 3, 2)
	assert.Equal(t, 4*3, rect.NumPoints())
	assert.Equal(t, 6, rect.NumCells())
	assert.Equal(t, reference.QUAD4, rect.EleType)

	box := BoxMesh(2, 2, 2, 1, 1, 1)
	assert.Equal(t, 27, box.NumPoints())
	assert.Equal(t, 8, box.NumCells())
	assert.Equal(t, reference.HEX8, box.EleType)

	// every cell is a unit/nx cube; check one cell's coordinate gather
	X := box.CellCoords(0)
	nr, nc := X.Dims()
	assert.Equal(t, 8, nr)
	assert.Equal(t, 3, nc)
	assert.InDelta(t, 0.0, X.At(0, 0), 1.e-15)
	assert.InDelta(t, 0.5, X.At(1, 0), 1.e-15)
}

func TestCheckTetOrientation(t *testing.T) {
	points := [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	msh, err := NewMesh(points, [][]int{{0, 1, 2, 3}}, reference.TET4)
	require.NoError(t, err)
	assert.NoError(t, msh.CheckTetOrientation())

	// swapping two vertices inverts the element
	inverted, err := NewMesh(points, [][]int{{1, 0, 2, 3}}, reference.TET4)
	require.NoError(t, err)
	assert.Error(t, inverted.CheckTetOrientation())

	// only meaningful for TET4
	rect := RectangleMesh(1, 1, 1, 1)
	assert.Error(t, rect.CheckTetOrientation())
}
