// Package mesh holds the node coordinate and element connectivity arrays
// consumed by the geometric setup, plus the structured meshes used by tests.
// A Mesh is immutable after construction.
package mesh

import (
	"fmt"

	"github.com/notargets/femprep/reference"
	"github.com/notargets/femprep/utils"
)

type Mesh struct {
	Points  [][]float64 // [numPoints][dim] node coordinates
	Cells   [][]int     // [numCells][nodesPerCell] node indices, canonical local order
	EleType reference.ElementType
	Dim     int
}

// NewMesh validates points and cells against the element type's topology.
// Every cell must have exactly the element's node count and every node index
// must be in range; violations are fatal input errors.
func NewMesh(points [][]float64, cells [][]int, eleType reference.ElementType) (msh *Mesh, err error) {
	props, err := reference.GetProperties(eleType)
	if err != nil {
		return
	}
	if len(points) == 0 {
		err = fmt.Errorf("mesh has no points")
		return
	}
	if len(cells) == 0 {
		err = fmt.Errorf("mesh has no cells")
		return
	}
	for n, p := range points {
		if len(p) != props.Dim {
			err = fmt.Errorf("point %d has %d coordinates, element type %q needs %d",
				n, len(p), eleType, props.Dim)
			return
		}
	}
	numPoints := len(points)
	for c, cell := range cells {
		if len(cell) != props.NumNodes {
			err = fmt.Errorf("cell %d has %d nodes, element type %q needs %d",
				c, len(cell), eleType, props.NumNodes)
			return
		}
		for _, n := range cell {
			if n < 0 || n >= numPoints {
				err = fmt.Errorf("cell %d references node %d, valid range is [0,%d)",
					c, n, numPoints)
				return
			}
		}
	}
	msh = &Mesh{
		Points:  points,
		Cells:   cells,
		EleType: eleType,
		Dim:     props.Dim,
	}
	return
}

func (msh *Mesh) NumPoints() int { return len(msh.Points) }
func (msh *Mesh) NumCells() int  { return len(msh.Cells) }

// CellCoords gathers the node coordinates of cell c into an M x dim matrix
func (msh *Mesh) CellCoords(c int) (X utils.Matrix) {
	cell := msh.Cells[c]
	X = utils.NewMatrix(len(cell), msh.Dim)
	for m, n := range cell {
		X.SetRow(m, msh.Points[n])
	}
	return
}

// CheckTetOrientation verifies that every TET4 cell has positive signed
// volume, reporting the first inverted cell. Call before setup when the
// connectivity source does not guarantee canonical ordering.
func (msh *Mesh) CheckTetOrientation() error {
	if msh.EleType != reference.TET4 {
		return fmt.Errorf("orientation check only applies to TET4 meshes, got %q", msh.EleType)
	}
	for c, cell := range msh.Cells {
		p1 := msh.Points[cell[0]]
		p2 := msh.Points[cell[1]]
		p3 := msh.Points[cell[2]]
		p4 := msh.Points[cell[3]]
		var v1, v2, v3 [3]float64
		for d := 0; d < 3; d++ {
			v1[d] = p2[d] - p1[d]
			v2[d] = p3[d] - p1[d]
			v3[d] = p4[d] - p1[d]
		}
		// (v1 x v2) . v3
		qlt := (v1[1]*v2[2]-v1[2]*v2[1])*v3[0] +
			(v1[2]*v2[0]-v1[0]*v2[2])*v3[1] +
			(v1[0]*v2[1]-v1[1]*v2[0])*v3[2]
		if qlt <= 0 {
			return fmt.Errorf("cell %d is inverted or degenerate: signed volume measure %g", c, qlt)
		}
	}
	return nil
}
