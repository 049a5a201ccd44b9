package fe

import (
	"fmt"
	"sync"

	"github.com/notargets/femprep/utils"
)

// The transfer operators are pure linear maps from a nodal field to
// quadrature point data. They read only cached geometry and are safe to call
// concurrently; results are never cached, so they must be re-evaluated after
// every nodal field update (e.g. each nonlinear iteration).

// gatherCellField extracts the nodal values of cell c from a full
// (NumTotalNodes x vec) field into an M x vec matrix
func (fel *FiniteElement) gatherCellField(sol utils.Matrix, c int) (R utils.Matrix) {
	return sol.SliceRows(utils.Index(fel.Mesh.Cells[c]))
}

func (fel *FiniteElement) checkField(sol utils.Matrix) {
	nr, nc := sol.Dims()
	if nr != fel.NumTotalNodes || nc != fel.Vec {
		panic(fmt.Errorf("nodal field is %dx%d, expected %dx%d",
			nr, nc, fel.NumTotalNodes, fel.Vec))
	}
}

// VolumeQuadValues interpolates a nodal field (NumTotalNodes x vec) to the
// volume quadrature points, row c*Q+q holding the vec components at quad
// point q of cell c
func (fel *FiniteElement) VolumeQuadValues(sol utils.Matrix) (R utils.Matrix) {
	fel.checkField(sol)
	var (
		Q  = fel.NumQuads
		NP = fel.pm.ParallelDegree
		wg = sync.WaitGroup{}
	)
	R = utils.NewMatrix(fel.NumCells*Q, fel.Vec)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := fel.pm.GetBucketRange(np)
			for c := kMin; c < kMax; c++ {
				// (Q x M) * (M x vec)
				vals := fel.Ref.ShapeVals.Mul(fel.gatherCellField(sol, c))
				for q := 0; q < Q; q++ {
					R.SetRow(c*Q+q, vals.Row(q))
				}
			}
		}(np)
	}
	wg.Wait()
	return
}

// VolumeQuadGradients computes the physical gradient of a nodal field at the
// volume quadrature points: row (c*Q+q)*vec+v holds the dim gradient
// components of solution component v at quad point q of cell c
func (fel *FiniteElement) VolumeQuadGradients(sol utils.Matrix) (R utils.Matrix) {
	fel.checkField(sol)
	var (
		Q, M, dim = fel.NumQuads, fel.NumNodes, fel.Dim
		vec       = fel.Vec
		NP        = fel.pm.ParallelDegree
		wg        = sync.WaitGroup{}
	)
	R = utils.NewMatrix(fel.NumCells*Q*vec, dim)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := fel.pm.GetBucketRange(np)
			for c := kMin; c < kMax; c++ {
				cellSol := fel.gatherCellField(sol, c)
				for q := 0; q < Q; q++ {
					for m := 0; m < M; m++ {
						g := fel.ShapeGrads.Row((c*Q+q)*M + m)
						u := cellSol.Row(m)
						for v := 0; v < vec; v++ {
							out := R.Row((c*Q+q)*vec + v)
							for d := 0; d < dim; d++ {
								out[d] += u[v] * g[d]
							}
						}
					}
				}
			}
		}(np)
	}
	wg.Wait()
	return
}

// FaceQuadValues interpolates a nodal field to the face quadrature points of
// the selected faces, row s*Qf+q holding the vec components at face quad
// point q of selected face s
func (fel *FiniteElement) FaceQuadValues(sol utils.Matrix, boundary BoundaryIndexSet) (R utils.Matrix) {
	fel.checkField(sol)
	var (
		Qf = fel.NumFaceQuads
	)
	R = utils.NewMatrix(len(boundary)*Qf, fel.Vec)
	for s, pair := range boundary {
		c, f := pair[0], pair[1]
		// (Qf x M) * (M x vec)
		vals := fel.Ref.FaceShapeVals[f].Mul(fel.gatherCellField(sol, c))
		for q := 0; q < Qf; q++ {
			R.SetRow(s*Qf+q, vals.Row(q))
		}
	}
	return
}

// PhysicalQuadPoints interpolates the physical positions of the volume
// quadrature points, row c*Q+q holding the dim coordinates of quad point q
// of cell c
func (fel *FiniteElement) PhysicalQuadPoints() (R utils.Matrix) {
	var (
		Q = fel.NumQuads
	)
	R = utils.NewMatrix(fel.NumCells*Q, fel.Dim)
	for c := 0; c < fel.NumCells; c++ {
		// (Q x M) * (M x dim)
		pts := fel.Ref.ShapeVals.Mul(fel.Mesh.CellCoords(c))
		for q := 0; q < Q; q++ {
			R.SetRow(c*Q+q, pts.Row(q))
		}
	}
	return
}
