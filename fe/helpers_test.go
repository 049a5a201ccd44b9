package fe

import (
	"fmt"
	"math"

	"github.com/notargets/femprep/mesh"
	"github.com/notargets/femprep/reference"
	"github.com/notargets/femprep/utils"
)

// identityMesh builds a single-cell mesh whose physical coordinates equal
// the reference element's natural coordinates, so the geometric map is the
// identity and every derived quantity is known exactly
func identityMesh(et reference.ElementType) *mesh.Mesh {
	var (
		coords   = reference.NodalCoords(et)
		nn, ndim = coords.Dims()
		points   [][]float64
		cell     []int
	)
	for m := 0; m < nn; m++ {
		p := make([]float64, ndim)
		copy(p, coords.Row(m))
		points = append(points, p)
		cell = append(cell, m)
	}
	msh, err := mesh.NewMesh(points, [][]int{cell}, et)
	if err != nil {
		panic(err)
	}
	return msh
}

// scaledMesh returns a copy of msh with all coordinates multiplied by k
func scaledMesh(msh *mesh.Mesh, k float64) *mesh.Mesh {
	var points [][]float64
	for _, p := range msh.Points {
		q := make([]float64, len(p))
		for d := range p {
			q[d] = k * p[d]
		}
		points = append(points, q)
	}
	scaled, err := mesh.NewMesh(points, msh.Cells, msh.EleType)
	if err != nil {
		panic(err)
	}
	return scaled
}

// linearField samples u_v(p) = offset[v] + sum_d slope[v][d]*p[d] at every
// mesh node, the field class first-order elements reproduce exactly
func linearField(msh *mesh.Mesh, offset []float64, slope [][]float64) (sol utils.Matrix) {
	sol = utils.NewMatrix(msh.NumPoints(), len(offset))
	for n, p := range msh.Points {
		for v := range offset {
			val := offset[v]
			for d := range p {
				val += slope[v][d] * p[d]
			}
			sol.Set(n, v, val)
		}
	}
	return
}

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
			fmt.Printf("Diff = %v, Left[%d] = %v, Right[%d] = %v\n",
				math.Abs(val-b[i]), i, val, i, b[i])
			return false
		}
	}
	return true
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
