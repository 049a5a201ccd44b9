package fe

import (
	"fmt"
	"math"

	"github.com/notargets/femprep/utils"
)

// FaceShapeGrads computes physical shape gradients and surface integration
// weights on the selected (cell, local face) pairs. Row (s*Qf+q)*M+m of
// faceGrads is the physical gradient of shape function m at face quadrature
// point q of selected face s. nansonScale is (S x Qf): the reference face
// normal is pushed through the inverse-transpose Jacobian (Nanson's formula),
// its norm times det(J) times the face quadrature weight giving the physical
// surface measure. A non-positive scale reveals an inconsistent face or
// element orientation and fails the setup.
func (fel *FiniteElement) FaceShapeGrads(boundary BoundaryIndexSet) (
	faceGrads utils.Matrix, nansonScale utils.Matrix, err error) {
	var (
		S, M, dim = len(boundary), fel.NumNodes, fel.Dim
		Qf        = fel.NumFaceQuads
		jac       = make([]float64, dim*dim)
		jInv      = make([]float64, dim*dim)
	)
	faceGrads = utils.NewMatrix(S*Qf*M, dim)
	nansonScale = utils.NewMatrix(S, Qf)
	for s, pair := range boundary {
		var (
			c, f   = pair[0], pair[1]
			X      = fel.Mesh.CellCoords(c)
			dSref  = fel.Ref.FaceShapeGradsRef[f]
			normal = fel.Ref.FaceNormals.Row(f)
		)
		for q := 0; q < Qf; q++ {
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
				err = fmt.Errorf(
					"non-positive Jacobian determinant %g at cell %d, face %d, face quad point %d",
					det, c, f, q)
				return
			}
			for m := 0; m < M; m++ {
				dS := dSref.Row(q*M + m)
				g := faceGrads.Row((s*Qf+q)*M + m)
				for i := 0; i < dim; i++ {
					var sum float64
					for j := 0; j < dim; j++ {
						sum += dS[j] * jInv[j*dim+i]
					}
					g[i] = sum
				}
			}
			// Nanson: n_phys dA = det(J) * J^-T n_ref dA_ref; the norm of
			// n_ref^T J^-1 carries the area change of the face itself
			var norm2 float64
			for i := 0; i < dim; i++ {
				var sum float64
				for j := 0; j < dim; j++ {
					sum += normal[j] * jInv[j*dim+i]
				}
				norm2 += sum * sum
			}
			scale := math.Sqrt(norm2) * det * fel.Ref.FaceQuadWeights.At(f, q)
			if scale <= 0 {
				err = fmt.Errorf(
					"non-positive surface measure %g at cell %d, face %d, face quad point %d",
					scale, c, f, q)
				return
			}
			nansonScale.Set(s, q, scale)
		}
	}
	return
}

// PhysicalSurfaceQuadPoints interpolates the physical positions of the face
// quadrature points on the selected faces, one row per (selected face, face
// quad point) in face-major order, S*Qf x dim
func (fel *FiniteElement) PhysicalSurfaceQuadPoints(boundary BoundaryIndexSet) (R utils.Matrix) {
	var (
		Qf, dim = fel.NumFaceQuads, fel.Dim
	)
	R = utils.NewMatrix(len(boundary)*Qf, dim)
	for s, pair := range boundary {
		c, f := pair[0], pair[1]
		// (Qf x M) * (M x dim)
		pts := fel.Ref.FaceShapeVals[f].Mul(fel.Mesh.CellCoords(c))
		for q := 0; q < Qf; q++ {
			R.SetRow(s*Qf+q, pts.Row(q))
		}
	}
	return
}
