package reference

import (
	"fmt"
	"math"

	"github.com/notargets/femprep/utils"
)

// gauss1D returns the n-point Gauss-Legendre rule on [-1,1], exact for
// polynomials of degree 2n-1. Tabulated through n=5 (degree 9).
func gauss1D(n int) (x, w []float64, err error) {
	switch n {
	case 1:
		x = []float64{0}
		w = []float64{2}
	case 2:
		x = []float64{-0.5773502691896257, 0.5773502691896257}
		w = []float64{1, 1}
	case 3:
		x = []float64{-0.7745966692414834, 0, 0.7745966692414834}
		w = []float64{5.0 / 9.0, 8.0 / 9.0, 5.0 / 9.0}
	case 4:
		x = []float64{-0.8611363115940526, -0.3399810435848563,
			0.3399810435848563, 0.8611363115940526}
		w = []float64{0.3478548451374538, 0.6521451548625461,
			0.6521451548625461, 0.3478548451374538}
	case 5:
		x = []float64{-0.9061798459386640, -0.5384693101056831, 0,
			0.5384693101056831, 0.9061798459386640}
		w = []float64{0.2369268850561891, 0.4786286704993665,
			0.5688888888888889, 0.4786286704993665, 0.2369268850561891}
	default:
		err = fmt.Errorf("no %d-point Gauss-Legendre rule tabulated", n)
	}
	return
}

// triQuadrature returns a symmetric rule on the unit triangle
// {(r,s): r,s >= 0, r+s <= 1}, exact to the requested degree.
// Weights are all positive and sum to the reference area 1/2.
func triQuadrature(degree int) (pts [][]float64, w []float64, err error) {
	switch {
	case degree <= 1:
		pts = [][]float64{{1.0 / 3.0, 1.0 / 3.0}}
		w = []float64{0.5}
	case degree <= 2:
		pts = [][]float64{
			{1.0 / 6.0, 1.0 / 6.0},
			{2.0 / 3.0, 1.0 / 6.0},
			{1.0 / 6.0, 2.0 / 3.0},
		}
		w = []float64{1.0 / 6.0, 1.0 / 6.0, 1.0 / 6.0}
	case degree <= 4:
		const (
			a  = 0.445948490915965
			b  = 0.091576213509771
			wa = 0.223381589678011 / 2
			wb = 0.109951743655322 / 2
		)
		pts = [][]float64{
			{a, a}, {1 - 2*a, a}, {a, 1 - 2*a},
			{b, b}, {1 - 2*b, b}, {b, 1 - 2*b},
		}
		w = []float64{wa, wa, wa, wb, wb, wb}
	case degree <= 5:
		const (
			a  = 0.470142064105115
			b  = 0.101286507323456
			wa = 0.132394152788506 / 2
			wb = 0.125939180544827 / 2
			wc = 0.225 / 2
		)
		pts = [][]float64{
			{1.0 / 3.0, 1.0 / 3.0},
			{a, a}, {1 - 2*a, a}, {a, 1 - 2*a},
			{b, b}, {1 - 2*b, b}, {b, 1 - 2*b},
		}
		w = []float64{wc, wa, wa, wa, wb, wb, wb}
	default:
		err = fmt.Errorf("no triangle quadrature of degree %d tabulated", degree)
	}
	return
}

// tetQuadrature returns a symmetric rule on the unit tetrahedron, exact to
// the requested degree. Weights are all positive and sum to the reference
// volume 1/6 (rules with negative weights are deliberately not used, so
// JxW keeps the sign of det(J)).
func tetQuadrature(degree int) (pts [][]float64, w []float64, err error) {
	switch {
	case degree <= 1:
		pts = [][]float64{{0.25, 0.25, 0.25}}
		w = []float64{1.0 / 6.0}
	case degree <= 2:
		const (
			a = 0.585410196624969
			b = 0.138196601125011
		)
		pts = [][]float64{
			{b, b, b}, {a, b, b}, {b, a, b}, {b, b, a},
		}
		w = []float64{1.0 / 24.0, 1.0 / 24.0, 1.0 / 24.0, 1.0 / 24.0}
	case degree <= 5:
		// 14-point degree-5 rule (Keast), all weights positive
		const (
			a1 = 0.3108859192843845
			a2 = 0.0927352503108912
			b  = 0.0455037041256497
			w1 = 0.1126879257180162 / 6
			w2 = 0.0734930431163619 / 6
			w3 = 0.0425460207770812 / 6
		)
		c1 := 1 - 3*a1
		c2 := 1 - 3*a2
		d := 0.5 - b
		pts = [][]float64{
			{a1, a1, a1}, {c1, a1, a1}, {a1, c1, a1}, {a1, a1, c1},
			{a2, a2, a2}, {c2, a2, a2}, {a2, c2, a2}, {a2, a2, c2},
			{b, b, d}, {b, d, b}, {d, b, b},
			{d, d, b}, {d, b, d}, {b, d, d},
		}
		w = []float64{
			w1, w1, w1, w1,
			w2, w2, w2, w2,
			w3, w3, w3, w3, w3, w3,
		}
	default:
		err = fmt.Errorf("no tetrahedron quadrature of degree %d tabulated", degree)
	}
	return
}

// volumeQuadrature returns points (one row per point) and weights on the
// reference element of et, exact for polynomials of the given degree
func volumeQuadrature(et ElementType, degree int) (R utils.Matrix, w []float64, err error) {
	var (
		props, _ = GetProperties(et)
		pts      [][]float64
	)
	if props.Simplex {
		if props.Dim == 2 {
			pts, w, err = triQuadrature(degree)
		} else {
			pts, w, err = tetQuadrature(degree)
		}
	} else {
		pts, w, err = tensorQuadrature(props.Dim, degree)
	}
	if err != nil {
		return
	}
	R = utils.NewMatrix(len(pts), props.Dim)
	for i, p := range pts {
		R.SetRow(i, p)
	}
	return
}

// tensorQuadrature builds the dim-fold tensor product Gauss rule on [-1,1]^dim
func tensorQuadrature(dim, degree int) (pts [][]float64, w []float64, err error) {
	var (
		n1       = degree/2 + 1
		x1d, w1d []float64
	)
	x1d, w1d, err = gauss1D(n1)
	if err != nil {
		return
	}
	switch dim {
	case 1:
		for i := range x1d {
			pts = append(pts, []float64{x1d[i]})
			w = append(w, w1d[i])
		}
	case 2:
		for j := range x1d {
			for i := range x1d {
				pts = append(pts, []float64{x1d[i], x1d[j]})
				w = append(w, w1d[i]*w1d[j])
			}
		}
	case 3:
		for k := range x1d {
			for j := range x1d {
				for i := range x1d {
					pts = append(pts, []float64{x1d[i], x1d[j], x1d[k]})
					w = append(w, w1d[i]*w1d[j]*w1d[k])
				}
			}
		}
	default:
		err = fmt.Errorf("unsupported dimension %d", dim)
	}
	return
}

// faceQuadrature maps a rule on the face's own reference domain through the
// affine parameterization spanned by the face corners, producing points in
// element natural coordinates and weights measuring the reference face
func faceQuadrature(et ElementType, face faceTopology, degree int) (R utils.Matrix, w []float64, err error) {
	var (
		props, _ = GetProperties(et)
		corners  = face.Corners
	)
	switch props.Dim {
	case 2:
		// face is a line segment, map from [-1,1]
		var x1d, w1d []float64
		x1d, w1d, err = gauss1D(degree/2 + 1)
		if err != nil {
			return
		}
		v0, v1 := corners[0], corners[1]
		scale := 0.5 * math.Hypot(v1[0]-v0[0], v1[1]-v0[1])
		R = utils.NewMatrix(len(x1d), 2)
		w = make([]float64, len(x1d))
		for i, xi := range x1d {
			for d := 0; d < 2; d++ {
				R.Set(i, d, v0[d]+0.5*(1+xi)*(v1[d]-v0[d]))
			}
			w[i] = w1d[i] * scale
		}
	case 3:
		var (
			pts [][]float64
			wd  []float64
			e1  = make([]float64, 3)
			e2  = make([]float64, 3)
		)
		if props.Simplex {
			// triangular face, map from the unit triangle
			pts, wd, err = triQuadrature(degree)
			if err != nil {
				return
			}
			v0, v1, v2 := corners[0], corners[1], corners[2]
			for d := 0; d < 3; d++ {
				e1[d] = v1[d] - v0[d]
				e2[d] = v2[d] - v0[d]
			}
			scale := crossNorm(e1, e2)
			R = utils.NewMatrix(len(pts), 3)
			w = make([]float64, len(pts))
			for i, p := range pts {
				for d := 0; d < 3; d++ {
					R.Set(i, d, v0[d]+p[0]*e1[d]+p[1]*e2[d])
				}
				w[i] = wd[i] * scale
			}
		} else {
			// quadrilateral face, map from [-1,1]^2
			pts, wd, err = tensorQuadrature(2, degree)
			if err != nil {
				return
			}
			v0, v1, v3 := corners[0], corners[1], corners[3]
			for d := 0; d < 3; d++ {
				e1[d] = 0.5 * (v1[d] - v0[d])
				e2[d] = 0.5 * (v3[d] - v0[d])
			}
			scale := crossNorm(e1, e2)
			R = utils.NewMatrix(len(pts), 3)
			w = make([]float64, len(pts))
			for i, p := range pts {
				for d := 0; d < 3; d++ {
					R.Set(i, d, v0[d]+(1+p[0])*e1[d]+(1+p[1])*e2[d])
				}
				w[i] = wd[i] * scale
			}
		}
	}
	return
}

func crossNorm(a, b []float64) float64 {
	cx := a[1]*b[2] - a[2]*b[1]
	cy := a[2]*b[0] - a[0]*b[2]
	cz := a[0]*b[1] - a[1]*b[0]
	return math.Sqrt(cx*cx + cy*cy + cz*cz)
}
