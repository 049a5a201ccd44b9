// Package fe precomputes the reference-to-physical geometry a finite element
// problem setup needs before any assembly can run: physical shape function
// gradients and volume weights, face gradients and surface measures, boundary
// face index sets, Dirichlet constraint entries, and the operators carrying a
// nodal field to quadrature points.
package fe

import (
	"fmt"
	"runtime"

	"github.com/notargets/femprep/mesh"
	"github.com/notargets/femprep/reference"
	"github.com/notargets/femprep/utils"
)

// FiniteElement holds the derived geometry for one solution variable on one
// mesh. Everything here is computed once at construction and treated as
// read-only afterwards; concurrent readers are safe. The only mutation entry
// point is UpdateDirichletBCs, which replaces DirichletEntries wholesale and
// must be serialized by the caller against readers.
type FiniteElement struct {
	Mesh *mesh.Mesh
	Vec  int // number of solution components per node
	Dim  int

	Ref        *reference.Tables
	GaussOrder int

	NumCells      int
	NumTotalNodes int
	NumTotalDofs  int
	NumQuads      int // volume quadrature points per element
	NumNodes      int // nodes per element
	NumFaces      int
	NumFaceQuads  int

	// Derived geometry, written once by computeShapeGrads:
	// ShapeGrads row (c*NumQuads+q)*NumNodes+m is the physical gradient of
	// shape function m at quadrature point q of cell c. JxW is the volume
	// integration weight per (cell, quad point). VGradsJxW has ShapeGrads'
	// layout with each row scaled by the matching JxW, the tensor consumed
	// directly by stiffness assembly.
	ShapeGrads utils.Matrix // (C*Q*M) x dim
	JxW        utils.Matrix // C x Q
	VGradsJxW  utils.Matrix // (C*Q*M) x dim

	// Dirichlet constraint entries for the current group list. Entries from
	// different groups are concatenated without deduplication; when several
	// target the same (node, component), downstream assembly applies them in
	// order, last write wins.
	DirichletEntries []DirichletEntry

	pm *utils.PartitionMap
}

// NewFiniteElement runs the full geometric setup for one variable: reference
// tables, physical shape gradients and volume weights, and Dirichlet entries
// for the supplied boundary condition groups (which may be nil).
// gaussOrder 0 selects the element type's default quadrature degree.
func NewFiniteElement(msh *mesh.Mesh, vec int, gaussOrder int,
	bcs []DirichletBC) (fel *FiniteElement, err error) {
	if msh == nil {
		return nil, fmt.Errorf("nil mesh")
	}
	if vec < 1 {
		return nil, fmt.Errorf("vec must be at least 1, got %d", vec)
	}
	tbl, err := reference.NewTables(msh.EleType, gaussOrder)
	if err != nil {
		return nil, err
	}
	fel = &FiniteElement{
		Mesh:          msh,
		Vec:           vec,
		Dim:           msh.Dim,
		Ref:           tbl,
		GaussOrder:    gaussOrder,
		NumCells:      msh.NumCells(),
		NumTotalNodes: msh.NumPoints(),
		NumTotalDofs:  msh.NumPoints() * vec,
		NumQuads:      tbl.NumQuads,
		NumNodes:      tbl.NumNodes,
		NumFaces:      tbl.NumFaces,
		NumFaceQuads:  tbl.NumFaceQuads,
	}
	fel.pm = utils.NewPartitionMap(runtime.NumCPU(), fel.NumCells)

	if err = fel.computeShapeGrads(); err != nil {
		return nil, err
	}
	if fel.DirichletEntries, err = fel.BuildDirichletEntries(bcs); err != nil {
		return nil, err
	}

	fmt.Printf("Geometric setup: %d cells, %dx%d = %d dofs, element type %s, %d quad points per element, JxW min/max = %8.5f/%8.5f\n",
		fel.NumCells, fel.NumTotalNodes, fel.Vec, fel.NumTotalDofs,
		msh.EleType, fel.NumQuads, fel.JxW.Min(), fel.JxW.Max())
	return
}

// UpdateDirichletBCs recomputes the cached Dirichlet entries from a new group
// list, replacing the previous entries wholesale. Pass an empty or nil list
// to clear all constraints. Used by time-dependent problems between steps.
func (fel *FiniteElement) UpdateDirichletBCs(bcs []DirichletBC) (err error) {
	entries, err := fel.BuildDirichletEntries(bcs)
	if err != nil {
		return
	}
	fel.DirichletEntries = entries
	return
}
