// Package reference provides the per-element-type shape function, quadrature
// and face tables used by the geometric setup in package fe. All tables are
// expressed on the canonical reference element: triangles and tetrahedra on
// the unit simplex, quadrilaterals and hexahedra on [-1,1]^dim.
package reference

import (
	"fmt"
	"math"

	"github.com/notargets/femprep/utils"
)

type ElementType string

const (
	TRI3   ElementType = "TRI3"
	TRI6   ElementType = "TRI6"
	QUAD4  ElementType = "QUAD4"
	QUAD8  ElementType = "QUAD8"
	TET4   ElementType = "TET4"
	TET10  ElementType = "TET10"
	HEX8   ElementType = "HEX8"
	HEX20  ElementType = "HEX20"
	HEX27  ElementType = "HEX27"
)

const NODETOL = 1.e-10

// ElementProperties describes the fixed topology of an element type
type ElementProperties struct {
	Type     ElementType
	Dim      int // spatial dimension, 2 or 3
	Order    int // polynomial order of the nodal basis
	NumNodes int // nodes per element
	NumFaces int // faces (edges in 2D) per element
	Simplex  bool
}

var elementProps = map[ElementType]ElementProperties{
	TRI3:  {TRI3, 2, 1, 3, 3, true},
	TRI6:  {TRI6, 2, 2, 6, 3, true},
	QUAD4: {QUAD4, 2, 1, 4, 4, false},
	QUAD8: {QUAD8, 2, 2, 8, 4, false},
	TET4:  {TET4, 3, 1, 4, 4, true},
	TET10: {TET10, 3, 2, 10, 4, true},
	HEX8:  {HEX8, 3, 1, 8, 6, false},
	HEX20: {HEX20, 3, 2, 20, 6, false},
	HEX27: {HEX27, 3, 2, 27, 6, false},
}

// GetProperties returns the topology of et, or an error for an unsupported tag
func GetProperties(et ElementType) (props ElementProperties, err error) {
	props, ok := elementProps[et]
	if !ok {
		err = fmt.Errorf("unsupported element type %q", et)
	}
	return
}

// ParseElementType validates a string tag against the supported enumeration
func ParseElementType(tag string) (et ElementType, err error) {
	et = ElementType(tag)
	_, err = GetProperties(et)
	return
}

// DefaultGaussOrder is the quadrature degree used when a caller passes 0:
// twice the polynomial order of the basis, enough for mass-type integrands
func DefaultGaussOrder(et ElementType) int {
	props := elementProps[et]
	return 2 * props.Order
}

// NodalCoords returns the natural coordinates of the element's nodes in the
// canonical local numbering, one row per node
func NodalCoords(et ElementType) (R utils.Matrix) {
	var coords [][]float64
	switch et {
	case TRI3:
		coords = triCorners
	case TRI6:
		coords = [][]float64{
			{0, 0}, {1, 0}, {0, 1},
			{0.5, 0}, {0.5, 0.5}, {0, 0.5},
		}
	case QUAD4:
		coords = quadCorners
	case QUAD8:
		coords = [][]float64{
			{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
			{0, -1}, {1, 0}, {0, 1}, {-1, 0},
		}
	case TET4:
		coords = tetCorners
	case TET10:
		coords = [][]float64{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
			{0.5, 0, 0}, {0.5, 0.5, 0}, {0, 0.5, 0},
			{0, 0, 0.5}, {0.5, 0, 0.5}, {0, 0.5, 0.5},
		}
	case HEX8:
		coords = hexCorners
	case HEX20:
		coords = append(append([][]float64{}, hexCorners...), hexEdgeMids...)
	case HEX27:
		coords = append(append(append([][]float64{}, hexCorners...), hexEdgeMids...),
			[][]float64{
				{-1, 0, 0}, {1, 0, 0}, {0, -1, 0}, {0, 1, 0}, {0, 0, -1}, {0, 0, 1},
				{0, 0, 0},
			}...)
	default:
		panic(fmt.Errorf("unsupported element type %q", et))
	}
	props := elementProps[et]
	R = utils.NewMatrix(props.NumNodes, props.Dim)
	for i, c := range coords {
		R.SetRow(i, c)
	}
	return
}

var (
	triCorners  = [][]float64{{0, 0}, {1, 0}, {0, 1}}
	quadCorners = [][]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	tetCorners  = [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	hexCorners  = [][]float64{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	// Edge midside nodes in VTK hexahedron20 order: bottom ring, top ring,
	// then the four vertical edges
	hexEdgeMids = [][]float64{
		{0, -1, -1}, {1, 0, -1}, {0, 1, -1}, {-1, 0, -1},
		{0, -1, 1}, {1, 0, 1}, {0, 1, 1}, {-1, 0, 1},
		{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
	}
)

// faceTopology describes one face of a reference element: the cyclically
// ordered corner vertices spanning it and the outward unit normal
type faceTopology struct {
	Corners [][]float64
	Normal  []float64
}

func faceTopologies(et ElementType) (faces []faceTopology) {
	s := 1.0 / math.Sqrt2
	t := 1.0 / math.Sqrt(3)
	switch et {
	case TRI3, TRI6:
		faces = []faceTopology{
			{[][]float64{{0, 0}, {1, 0}}, []float64{0, -1}},
			{[][]float64{{1, 0}, {0, 1}}, []float64{s, s}},
			{[][]float64{{0, 1}, {0, 0}}, []float64{-1, 0}},
		}
	case QUAD4, QUAD8:
		faces = []faceTopology{
			{[][]float64{{-1, -1}, {1, -1}}, []float64{0, -1}},
			{[][]float64{{1, -1}, {1, 1}}, []float64{1, 0}},
			{[][]float64{{1, 1}, {-1, 1}}, []float64{0, 1}},
			{[][]float64{{-1, 1}, {-1, -1}}, []float64{-1, 0}},
		}
	case TET4, TET10:
		faces = []faceTopology{
			{[][]float64{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}}, []float64{0, 0, -1}},
			{[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}}, []float64{0, -1, 0}},
			{[][]float64{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}}, []float64{-1, 0, 0}},
			{[][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, []float64{t, t, t}},
		}
	case HEX8, HEX20, HEX27:
		faces = []faceTopology{
			{[][]float64{{-1, -1, -1}, {-1, 1, -1}, {-1, 1, 1}, {-1, -1, 1}}, []float64{-1, 0, 0}},
			{[][]float64{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}, []float64{1, 0, 0}},
			{[][]float64{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}, []float64{0, -1, 0}},
			{[][]float64{{-1, 1, -1}, {1, 1, -1}, {1, 1, 1}, {-1, 1, 1}}, []float64{0, 1, 0}},
			{[][]float64{{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1}}, []float64{0, 0, -1}},
			{[][]float64{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}, []float64{0, 0, 1}},
		}
	default:
		panic(fmt.Errorf("unsupported element type %q", et))
	}
	return
}

// buildFaceInds finds the local nodes lying on each face plane by scanning
// nodal natural coordinates, the same way BuildFmask locates face nodes in
// nodal DG codes. Nodes are reported in local index order.
func buildFaceInds(et ElementType) (faceInds []utils.Index) {
	var (
		props, _ = GetProperties(et)
		coords   = NodalCoords(et)
		faces    = faceTopologies(et)
	)
	faceInds = make([]utils.Index, len(faces))
	for f, face := range faces {
		// A node is on the face iff its offset from a face corner has no
		// component along the outward normal
		v0 := face.Corners[0]
		for m := 0; m < props.NumNodes; m++ {
			var dot float64
			for d := 0; d < props.Dim; d++ {
				dot += (coords.At(m, d) - v0[d]) * face.Normal[d]
			}
			if math.Abs(dot) < NODETOL {
				faceInds[f] = append(faceInds[f], m)
			}
		}
	}
	return
}
