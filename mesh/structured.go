package mesh

import "github.com/notargets/femprep/reference"

// RectangleMesh builds a structured QUAD4 mesh of nx by ny cells over
// [0,lx] x [0,ly]. Nodes run x-major, matching the canonical
// counter-clockwise local numbering.
func RectangleMesh(nx, ny int, lx, ly float64) *Mesh {
	var (
		points [][]float64
		cells  [][]int
		nid    = func(i, j int) int { return i*(ny+1) + j }
	)
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			points = append(points, []float64{
				lx * float64(i) / float64(nx),
				ly * float64(j) / float64(ny),
			})
		}
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			cells = append(cells, []int{
				nid(i, j), nid(i+1, j), nid(i+1, j+1), nid(i, j+1),
			})
		}
	}
	msh, err := NewMesh(points, cells, reference.QUAD4)
	if err != nil {
		panic(err) // structurally impossible for positive nx, ny
	}
	return msh
}

// BoxMesh builds a structured HEX8 mesh of nx by ny by nz cells over
// [0,lx] x [0,ly] x [0,lz]
func BoxMesh(nx, ny, nz int, lx, ly, lz float64) *Mesh {
	var (
		points [][]float64
		cells  [][]int
		nid    = func(i, j, k int) int { return (i*(ny+1)+j)*(nz+1) + k }
	)
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			for k := 0; k <= nz; k++ {
				points = append(points, []float64{
					lx * float64(i) / float64(nx),
					ly * float64(j) / float64(ny),
					lz * float64(k) / float64(nz),
				})
			}
		}
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				cells = append(cells, []int{
					nid(i, j, k), nid(i+1, j, k), nid(i+1, j+1, k), nid(i, j+1, k),
					nid(i, j, k+1), nid(i+1, j, k+1), nid(i+1, j+1, k+1), nid(i, j+1, k+1),
				})
			}
		}
	}
	msh, err := NewMesh(points, cells, reference.HEX8)
	if err != nil {
		panic(err)
	}
	return msh
}
