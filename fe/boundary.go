package fe

import (
	"fmt"
)

// PointPredicate reports whether a node position satisfies a location
// condition, e.g. lying on the x=0 plane
type PointPredicate func(point []float64) bool

// PointIndexPredicate is the indexed form, additionally receiving the global
// node index
type PointIndexPredicate func(point []float64, node int) bool

// Locator wraps either predicate form into a single internal shape. The
// wrapping happens once, at configuration time; a zero Locator is invalid
// and rejected at setup.
type Locator struct {
	fn PointIndexPredicate
}

func AtPoints(f PointPredicate) Locator {
	if f == nil {
		return Locator{}
	}
	return Locator{fn: func(p []float64, _ int) bool { return f(p) }}
}

func AtPointsWithIndex(f PointIndexPredicate) Locator {
	return Locator{fn: f}
}

// DirichletBC configures one boundary condition group: the nodes it selects,
// the solution component it constrains, and the prescribed value as a
// function of node position.
type DirichletBC struct {
	Location  Locator
	Component int
	Value     func(point []float64) float64
}

// DirichletEntry is one constrained scalar degree of freedom
type DirichletEntry struct {
	Node      int
	Component int
	Value     float64
}

// BoundaryIndexSet lists selected faces as (cell index, local face index)
// pairs in discovery order, cell-major then face-local
type BoundaryIndexSet [][2]int

// SelectFaces scans every face of every cell and selects those whose nodes
// ALL satisfy the locator; this is what makes a purely nodal predicate
// well-defined as a face condition. Different condition groups may select
// overlapping faces.
func (fel *FiniteElement) SelectFaces(loc Locator) (boundary BoundaryIndexSet, err error) {
	if loc.fn == nil {
		err = fmt.Errorf("invalid location predicate: construct with AtPoints or AtPointsWithIndex")
		return
	}
	var (
		cells    = fel.Mesh.Cells
		points   = fel.Mesh.Points
		faceInds = fel.Ref.FaceInds
	)
	for c := range cells {
		for f := range faceInds {
			onBoundary := true
			for _, m := range faceInds[f] {
				n := cells[c][m]
				if !loc.fn(points[n], n) {
					onBoundary = false
					break
				}
			}
			if onBoundary {
				boundary = append(boundary, [2]int{c, f})
			}
		}
	}
	return
}

// CountSelectedFaces reports how many faces satisfy the locator, useful for
// sizing distributed load conditions before committing to a selection
func (fel *FiniteElement) CountSelectedFaces(loc Locator) (count int, err error) {
	boundary, err := fel.SelectFaces(loc)
	if err != nil {
		return
	}
	count = len(boundary)
	return
}

// BuildDirichletEntries evaluates each group's locator against every mesh
// node and emits one entry per selected (node, component), with the value
// function evaluated at the node position. Groups are processed
// independently and concatenated; no deduplication is performed here —
// resolving duplicate (node, component) targets is the assembler's job,
// applying entries in order so that later groups win.
func (fel *FiniteElement) BuildDirichletEntries(bcs []DirichletBC) (entries []DirichletEntry, err error) {
	for g, bc := range bcs {
		if bc.Location.fn == nil {
			err = fmt.Errorf("Dirichlet group %d: invalid location predicate: construct with AtPoints or AtPointsWithIndex", g)
			return
		}
		if bc.Value == nil {
			err = fmt.Errorf("Dirichlet group %d: nil value function", g)
			return
		}
		if bc.Component < 0 || bc.Component >= fel.Vec {
			err = fmt.Errorf("Dirichlet group %d: component %d outside [0,%d)", g, bc.Component, fel.Vec)
			return
		}
		for n, p := range fel.Mesh.Points {
			if bc.Location.fn(p, n) {
				entries = append(entries, DirichletEntry{
					Node:      n,
					Component: bc.Component,
					Value:     bc.Value(p),
				})
			}
		}
	}
	return
}
