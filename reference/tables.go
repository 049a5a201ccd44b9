package reference

import (
	"fmt"

	"github.com/notargets/femprep/utils"
)

// Tables carries every reference-space quantity the geometric setup needs
// for one (element type, quadrature order) pair: volume shape values and
// gradients at quadrature points, the face analogues, reference outward
// face normals, and the local node index set of each face.
//
// Gradient tables are stored flattened with the quadrature point as the
// slowest axis: row q*NumNodes+m of ShapeGradsRef is the natural-coordinate
// gradient of shape function m at quadrature point q.
type Tables struct {
	EleType ElementType
	Props   ElementProperties

	NumQuads     int // Q, volume quadrature points per element
	NumNodes     int // M, nodes per element
	NumFaces     int // F, faces per element
	NumFaceQuads int // Qf, quadrature points per face

	QuadPoints    utils.Matrix // Q x dim, natural coordinates
	QuadWeights   []float64    // Q
	ShapeVals     utils.Matrix // Q x M
	ShapeGradsRef utils.Matrix // (Q*M) x dim

	FaceQuadPoints    []utils.Matrix // [F] Qf x dim, natural coordinates
	FaceQuadWeights   utils.Matrix   // F x Qf, reference face measure weights
	FaceShapeVals     []utils.Matrix // [F] Qf x M
	FaceShapeGradsRef []utils.Matrix // [F] (Qf*M) x dim
	FaceNormals       utils.Matrix   // F x dim, outward unit normals
	FaceInds          []utils.Index  // [F] local nodes lying on each face
}

// NewTables builds the reference tables for et at the given quadrature
// degree. gaussOrder 0 selects DefaultGaussOrder(et). Unsupported element
// tags or untabulated quadrature degrees are configuration errors.
func NewTables(et ElementType, gaussOrder int) (tbl *Tables, err error) {
	props, err := GetProperties(et)
	if err != nil {
		return
	}
	if gaussOrder == 0 {
		gaussOrder = DefaultGaussOrder(et)
	}
	if gaussOrder < 0 {
		err = fmt.Errorf("invalid quadrature order %d for element type %q", gaussOrder, et)
		return
	}

	tbl = &Tables{
		EleType:  et,
		Props:    props,
		NumNodes: props.NumNodes,
		NumFaces: props.NumFaces,
	}

	// Volume rule and shape tables
	tbl.QuadPoints, tbl.QuadWeights, err = volumeQuadrature(et, gaussOrder)
	if err != nil {
		return nil, err
	}
	tbl.NumQuads = len(tbl.QuadWeights)
	tbl.ShapeVals, tbl.ShapeGradsRef = evalShapeTables(et, tbl.QuadPoints)

	// Face rules and face shape tables. The face shape functions are the
	// full element basis evaluated at points lying on the face, so the face
	// tables keep the element's M-node width.
	faces := faceTopologies(et)
	tbl.FaceInds = buildFaceInds(et)
	tbl.FaceNormals = utils.NewMatrix(tbl.NumFaces, props.Dim)
	tbl.FaceQuadPoints = make([]utils.Matrix, tbl.NumFaces)
	tbl.FaceShapeVals = make([]utils.Matrix, tbl.NumFaces)
	tbl.FaceShapeGradsRef = make([]utils.Matrix, tbl.NumFaces)
	for f, face := range faces {
		tbl.FaceNormals.SetRow(f, face.Normal)
		var fw []float64
		tbl.FaceQuadPoints[f], fw, err = faceQuadrature(et, face, gaussOrder)
		if err != nil {
			return nil, err
		}
		if f == 0 {
			tbl.NumFaceQuads = len(fw)
			tbl.FaceQuadWeights = utils.NewMatrix(tbl.NumFaces, tbl.NumFaceQuads)
		}
		tbl.FaceQuadWeights.SetRow(f, fw)
		tbl.FaceShapeVals[f], tbl.FaceShapeGradsRef[f] = evalShapeTables(et, tbl.FaceQuadPoints[f])
	}
	return
}

// evalShapeTables evaluates the basis of et at each row of pts, returning
// shape values (nPts x M) and flattened gradients ((nPts*M) x dim)
func evalShapeTables(et ElementType, pts utils.Matrix) (vals, grads utils.Matrix) {
	var (
		nPts, _  = pts.Dims()
		props, _ = GetProperties(et)
		nn       = props.NumNodes
	)
	vals = utils.NewMatrix(nPts, nn)
	grads = utils.NewMatrix(nPts*nn, props.Dim)
	for q := 0; q < nPts; q++ {
		S, dS := ShapeFuncs(et, pts.Row(q))
		vals.SetRow(q, S)
		for m := 0; m < nn; m++ {
			grads.SetRow(q*nn+m, dS[m])
		}
	}
	return
}
