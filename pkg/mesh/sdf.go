package mesh

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// weldEpsilon is the grid size used to merge coincident vertices when
// converting triangle soup into an indexed snapshot. Marching cubes
// emits exact duplicates at shared corners, so a tight grid is enough.
const weldEpsilon = 1e-9

// FromSDF tessellates a signed distance field into a snapshot using
// marching cubes at the given resolution. The triangle soup is welded
// into shared vertices so that edge adjacency, and with it the
// closed/open classification, is meaningful.
func FromSDF(s sdf.SDF3, cells int) (*Snapshot, error) {
	if s == nil {
		return nil, fmt.Errorf("nil SDF")
	}
	if cells <= 0 {
		return nil, fmt.Errorf("cells must be positive, got %d", cells)
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	var positions []v3.Vec
	index := make(map[weldKey]int)
	lookup := func(p v3.Vec) int {
		key := makeWeldKey(p)
		if vi, ok := index[key]; ok {
			return vi
		}
		vi := len(positions)
		positions = append(positions, p)
		index[key] = vi
		return vi
	}

	faces := make([][]int, 0, len(triangles))
	for _, tri := range triangles {
		a := lookup(tri[0])
		b := lookup(tri[1])
		c := lookup(tri[2])
		if a == b || b == c || a == c {
			// Sliver collapsed by welding; drop it.
			continue
		}
		faces = append(faces, []int{a, b, c})
	}

	return New(positions, faces, Identity())
}

type weldKey struct {
	x, y, z int64
}

func makeWeldKey(p v3.Vec) weldKey {
	return weldKey{
		x: int64(math.Round(p.X / weldEpsilon)),
		y: int64(math.Round(p.Y / weldEpsilon)),
		z: int64(math.Round(p.Z / weldEpsilon)),
	}
}
