package reference

import "fmt"

// ShapeFuncs evaluates the nodal basis of et at natural coordinate p,
// returning shape function values S[m] and gradients dS[m][d] with respect
// to the natural coordinates.
func ShapeFuncs(et ElementType, p []float64) (S []float64, dS [][]float64) {
	switch et {
	case TRI3:
		return shapeTri3(p)
	case TRI6:
		return shapeTri6(p)
	case QUAD4:
		return shapeQuad4(p)
	case QUAD8:
		return shapeQuad8(p)
	case TET4:
		return shapeTet4(p)
	case TET10:
		return shapeTet10(p)
	case HEX8:
		return shapeHex8(p)
	case HEX20:
		return shapeHex20(p)
	case HEX27:
		return shapeLagrangeTensor(HEX27, p)
	default:
		panic(fmt.Errorf("unsupported element type %q", et))
	}
}

func shapeTri3(p []float64) (S []float64, dS [][]float64) {
	r, s := p[0], p[1]
	S = []float64{1 - r - s, r, s}
	dS = [][]float64{
		{-1, -1},
		{1, 0},
		{0, 1},
	}
	return
}

func shapeTri6(p []float64) (S []float64, dS [][]float64) {
	var (
		r, s = p[0], p[1]
		L    = []float64{1 - r - s, r, s}
		dL   = [][]float64{{-1, -1}, {1, 0}, {0, 1}}
	)
	S = make([]float64, 6)
	dS = make([][]float64, 6)
	// vertex modes
	for i := 0; i < 3; i++ {
		S[i] = L[i] * (2*L[i] - 1)
		dS[i] = []float64{
			(4*L[i] - 1) * dL[i][0],
			(4*L[i] - 1) * dL[i][1],
		}
	}
	// midside modes on edges (0,1), (1,2), (2,0)
	edges := [3][2]int{{0, 1}, {1, 2}, {2, 0}}
	for e, pair := range edges {
		a, b := pair[0], pair[1]
		S[3+e] = 4 * L[a] * L[b]
		dS[3+e] = []float64{
			4 * (L[a]*dL[b][0] + L[b]*dL[a][0]),
			4 * (L[a]*dL[b][1] + L[b]*dL[a][1]),
		}
	}
	return
}

func shapeQuad4(p []float64) (S []float64, dS [][]float64) {
	var (
		xi, eta = p[0], p[1]
	)
	S = make([]float64, 4)
	dS = make([][]float64, 4)
	for i, c := range quadCorners {
		xii, etai := c[0], c[1]
		S[i] = 0.25 * (1 + xi*xii) * (1 + eta*etai)
		dS[i] = []float64{
			0.25 * xii * (1 + eta*etai),
			0.25 * etai * (1 + xi*xii),
		}
	}
	return
}

func shapeQuad8(p []float64) (S []float64, dS [][]float64) {
	var (
		xi, eta = p[0], p[1]
	)
	S = make([]float64, 8)
	dS = make([][]float64, 8)
	// corner modes of the serendipity basis
	for i, c := range quadCorners {
		xii, etai := c[0], c[1]
		S[i] = 0.25 * (1 + xi*xii) * (1 + eta*etai) * (xi*xii + eta*etai - 1)
		dS[i] = []float64{
			0.25 * xii * (1 + eta*etai) * (2*xi*xii + eta*etai),
			0.25 * etai * (1 + xi*xii) * (xi*xii + 2*eta*etai),
		}
	}
	// midside modes
	mids := [][]float64{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	for k, c := range mids {
		xii, etai := c[0], c[1]
		i := 4 + k
		if xii == 0 {
			S[i] = 0.5 * (1 - xi*xi) * (1 + eta*etai)
			dS[i] = []float64{
				-xi * (1 + eta*etai),
				0.5 * etai * (1 - xi*xi),
			}
		} else {
			S[i] = 0.5 * (1 + xi*xii) * (1 - eta*eta)
			dS[i] = []float64{
				0.5 * xii * (1 - eta*eta),
				-eta * (1 + xi*xii),
			}
		}
	}
	return
}

func shapeTet4(p []float64) (S []float64, dS [][]float64) {
	r, s, t := p[0], p[1], p[2]
	S = []float64{1 - r - s - t, r, s, t}
	dS = [][]float64{
		{-1, -1, -1},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	return
}

func shapeTet10(p []float64) (S []float64, dS [][]float64) {
	var (
		r, s, t = p[0], p[1], p[2]
		L       = []float64{1 - r - s - t, r, s, t}
		dL      = [][]float64{{-1, -1, -1}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	)
	S = make([]float64, 10)
	dS = make([][]float64, 10)
	for i := 0; i < 4; i++ {
		S[i] = L[i] * (2*L[i] - 1)
		dS[i] = []float64{
			(4*L[i] - 1) * dL[i][0],
			(4*L[i] - 1) * dL[i][1],
			(4*L[i] - 1) * dL[i][2],
		}
	}
	// midside modes in VTK tetra10 edge order
	edges := [6][2]int{{0, 1}, {1, 2}, {0, 2}, {0, 3}, {1, 3}, {2, 3}}
	for e, pair := range edges {
		a, b := pair[0], pair[1]
		S[4+e] = 4 * L[a] * L[b]
		dS[4+e] = []float64{
			4 * (L[a]*dL[b][0] + L[b]*dL[a][0]),
			4 * (L[a]*dL[b][1] + L[b]*dL[a][1]),
			4 * (L[a]*dL[b][2] + L[b]*dL[a][2]),
		}
	}
	return
}

func shapeHex8(p []float64) (S []float64, dS [][]float64) {
	var (
		xi, eta, zeta = p[0], p[1], p[2]
	)
	S = make([]float64, 8)
	dS = make([][]float64, 8)
	for i, c := range hexCorners {
		xii, etai, zetai := c[0], c[1], c[2]
		S[i] = 0.125 * (1 + xi*xii) * (1 + eta*etai) * (1 + zeta*zetai)
		dS[i] = []float64{
			0.125 * xii * (1 + eta*etai) * (1 + zeta*zetai),
			0.125 * etai * (1 + xi*xii) * (1 + zeta*zetai),
			0.125 * zetai * (1 + xi*xii) * (1 + eta*etai),
		}
	}
	return
}

func shapeHex20(p []float64) (S []float64, dS [][]float64) {
	var (
		xi, eta, zeta = p[0], p[1], p[2]
	)
	S = make([]float64, 20)
	dS = make([][]float64, 20)
	// corner modes of the serendipity basis
	for i, c := range hexCorners {
		xii, etai, zetai := c[0], c[1], c[2]
		a, b, g := 1+xi*xii, 1+eta*etai, 1+zeta*zetai
		q := xi*xii + eta*etai + zeta*zetai - 2
		S[i] = 0.125 * a * b * g * q
		dS[i] = []float64{
			0.125 * xii * b * g * (q + a),
			0.125 * etai * a * g * (q + b),
			0.125 * zetai * a * b * (q + g),
		}
	}
	// midside modes: the zero coordinate selects the quadratic bubble axis
	for k, c := range hexEdgeMids {
		xii, etai, zetai := c[0], c[1], c[2]
		i := 8 + k
		switch {
		case xii == 0:
			S[i] = 0.25 * (1 - xi*xi) * (1 + eta*etai) * (1 + zeta*zetai)
			dS[i] = []float64{
				-0.5 * xi * (1 + eta*etai) * (1 + zeta*zetai),
				0.25 * etai * (1 - xi*xi) * (1 + zeta*zetai),
				0.25 * zetai * (1 - xi*xi) * (1 + eta*etai),
			}
		case etai == 0:
			S[i] = 0.25 * (1 + xi*xii) * (1 - eta*eta) * (1 + zeta*zetai)
			dS[i] = []float64{
				0.25 * xii * (1 - eta*eta) * (1 + zeta*zetai),
				-0.5 * eta * (1 + xi*xii) * (1 + zeta*zetai),
				0.25 * zetai * (1 + xi*xii) * (1 - eta*eta),
			}
		default:
			S[i] = 0.25 * (1 + xi*xii) * (1 + eta*etai) * (1 - zeta*zeta)
			dS[i] = []float64{
				0.25 * xii * (1 + eta*etai) * (1 - zeta*zeta),
				0.25 * etai * (1 + xi*xii) * (1 - zeta*zeta),
				-0.5 * zeta * (1 + xi*xii) * (1 + eta*etai),
			}
		}
	}
	return
}

// shapeLagrangeTensor covers full tensor-product Lagrange bases whose nodes
// sit on the {-1,0,1}^3 lattice (HEX27)
func shapeLagrangeTensor(et ElementType, p []float64) (S []float64, dS [][]float64) {
	var (
		coords   = NodalCoords(et)
		nn, ndim = coords.Dims()
	)
	S = make([]float64, nn)
	dS = make([][]float64, nn)
	for m := 0; m < nn; m++ {
		S[m] = 1
		dS[m] = make([]float64, ndim)
		var l, dl [3]float64
		for d := 0; d < ndim; d++ {
			l[d], dl[d] = lagrange1D(coords.At(m, d), p[d])
		}
		for d := 0; d < ndim; d++ {
			S[m] *= l[d]
			dS[m][d] = dl[d]
			for e := 0; e < ndim; e++ {
				if e != d {
					dS[m][d] *= l[e]
				}
			}
		}
	}
	return
}

// lagrange1D is the quadratic 1D Lagrange basis on nodes {-1, 0, 1},
// evaluated for the node at position a
func lagrange1D(a, x float64) (l, dl float64) {
	switch {
	case a < 0:
		l = 0.5 * x * (x - 1)
		dl = x - 0.5
	case a > 0:
		l = 0.5 * x * (x + 1)
		dl = x + 0.5
	default:
		l = 1 - x*x
		dl = -2 * x
	}
	return
}
