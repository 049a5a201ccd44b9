package fe

import (
	"fmt"
	"sync"

	"github.com/notargets/femprep/utils"
)

// computeShapeGrads builds the physical shape gradients, volume weights and
// the measure-weighted gradient tensor for every (cell, quad point). The
// cell axis is split across goroutines; each (cell, quad point) computation
// is independent. Fails fast on the first non-positive Jacobian determinant,
// naming the offending cell.
func (fel *FiniteElement) computeShapeGrads() error {
	var (
		Q, M, dim = fel.NumQuads, fel.NumNodes, fel.Dim
		dSref     = fel.Ref.ShapeGradsRef
		weights   = fel.Ref.QuadWeights
		NP        = fel.pm.ParallelDegree
		wg        = sync.WaitGroup{}
		errs      = make([]error, NP)
	)
	fel.ShapeGrads = utils.NewMatrix(fel.NumCells*Q*M, dim)
	fel.JxW = utils.NewMatrix(fel.NumCells, Q)
	fel.VGradsJxW = utils.NewMatrix(fel.NumCells*Q*M, dim)

	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := fel.pm.GetBucketRange(np)
			var (
				jac  = make([]float64, dim*dim)
				jInv = make([]float64, dim*dim)
			)
			for c := kMin; c < kMax; c++ {
				X := fel.Mesh.CellCoords(c)
				for q := 0; q < Q; q++ {
					// J[i][j] = sum_m X[m][i] * dSref[q,m][j]
					for i := range jac {
						jac[i] = 0
					}
					for m := 0; m < M; m++ {
						dS := dSref.Row(q*M + m)
						Xm := X.Row(m)
						for i := 0; i < dim; i++ {
							for j := 0; j < dim; j++ {
								jac[i*dim+j] += Xm[i] * dS[j]
							}
						}
					}
					det := invertSmall(jac, jInv, dim)
					if det <= 0 {
						errs[np] = fmt.Errorf(
							"non-positive Jacobian determinant %g at cell %d, quad point %d",
							det, c, q)
						return
					}
					fel.JxW.Set(c, q, det*weights[q])
					// physical gradient: row vector dSref[q,m] times J^-1
					for m := 0; m < M; m++ {
						dS := dSref.Row(q*M + m)
						row := (c*Q+q)*M + m
						g := fel.ShapeGrads.Row(row)
						gw := fel.VGradsJxW.Row(row)
						for i := 0; i < dim; i++ {
							var sum float64
							for j := 0; j < dim; j++ {
								sum += dS[j] * jInv[j*dim+i]
							}
							g[i] = sum
							gw[i] = sum * det * weights[q]
						}
					}
				}
			}
		}(np)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// invertSmall computes the determinant and inverse of a dim x dim matrix
// (dim 2 or 3) by cofactors, writing the inverse into inv. The caller checks
// the determinant sign; a non-positive value leaves inv undefined.
func invertSmall(a, inv []float64, dim int) (det float64) {
	switch dim {
	case 2:
		det = a[0]*a[3] - a[1]*a[2]
		if det <= 0 {
			return
		}
		inv[0] = a[3] / det
		inv[1] = -a[1] / det
		inv[2] = -a[2] / det
		inv[3] = a[0] / det
	case 3:
		c00 := a[4]*a[8] - a[5]*a[7]
		c01 := a[5]*a[6] - a[3]*a[8]
		c02 := a[3]*a[7] - a[4]*a[6]
		det = a[0]*c00 + a[1]*c01 + a[2]*c02
		if det <= 0 {
			return
		}
		inv[0] = c00 / det
		inv[1] = (a[2]*a[7] - a[1]*a[8]) / det
		inv[2] = (a[1]*a[5] - a[2]*a[4]) / det
		inv[3] = c01 / det
		inv[4] = (a[0]*a[8] - a[2]*a[6]) / det
		inv[5] = (a[2]*a[3] - a[0]*a[5]) / det
		inv[6] = c02 / det
		inv[7] = (a[1]*a[6] - a[0]*a[7]) / det
		inv[8] = (a[0]*a[4] - a[1]*a[3]) / det
	default:
		panic(fmt.Errorf("unsupported spatial dimension %d", dim))
	}
	return
}

// ShapeGradAt returns the physical gradient of shape function m at quad
// point q of cell c, a slice aliasing the cached ShapeGrads storage
func (fel *FiniteElement) ShapeGradAt(c, q, m int) []float64 {
	return fel.ShapeGrads.Row((c*fel.NumQuads+q)*fel.NumNodes + m)
}
