// Package mesh defines the immutable mesh snapshot consumed by the
// validation checkers. A Snapshot is built once per scan from whatever
// supplies the geometry (an OBJ file, an SDF tessellation, a host
// exporter) and carries vertices, faces, and edge-to-face adjacency as
// plain indexed arrays. Detection logic never reaches back into the
// source document, so a stale host edit can never leak into a scan.
package mesh

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Face is an ordered cycle of vertex indices. The cycle order defines
// the winding, and the normal follows the right-hand rule over that
// winding in local space.
type Face struct {
	Verts  []int   // ordered vertex cycle, len >= 3
	Normal v3.Vec  // unit normal in local space
	Center v3.Vec  // median centroid in local space
	Area   float64 // non-negative
}

// Edge is an unordered vertex pair with its incident faces. For a
// locally manifold edge len(Faces) == 2; boundary edges have 1 and
// non-manifold edges more than 2.
type Edge struct {
	A, B  int // vertex indices, A < B
	Faces []int
}

// Snapshot is one mesh at one point in time. Positions are in local
// space; World carries the object transform applied before any
// geometric test. Snapshots are never mutated after construction.
type Snapshot struct {
	Positions []v3.Vec
	Faces     []Face
	Edges     []Edge
	World     Mat4

	edgeIndex map[edgeKey]int
}

type edgeKey struct {
	a, b int // a < b
}

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// New builds a Snapshot from vertex positions and face vertex cycles.
// Face normals, centroids, areas, and edge adjacency are derived here.
// Faces with fewer than 3 vertices or out-of-range indices are
// rejected: adjacency built on top of them would be meaningless.
func New(positions []v3.Vec, faces [][]int, world Mat4) (*Snapshot, error) {
	return NewWithWires(positions, faces, nil, world)
}

// NewWithWires is New plus standalone wire edges: edges that belong to
// no face, as hosts report them for loose geometry. Wire edges take
// part in edge bookkeeping but never in face adjacency.
func NewWithWires(positions []v3.Vec, faces [][]int, wires [][2]int, world Mat4) (*Snapshot, error) {
	s := &Snapshot{
		Positions: positions,
		Faces:     make([]Face, 0, len(faces)),
		World:     world,
		edgeIndex: make(map[edgeKey]int),
	}

	for fi, cycle := range faces {
		if len(cycle) < 3 {
			return nil, fmt.Errorf("face %d has %d vertices, need at least 3", fi, len(cycle))
		}
		for _, vi := range cycle {
			if vi < 0 || vi >= len(positions) {
				return nil, fmt.Errorf("face %d references vertex %d, have %d vertices", fi, vi, len(positions))
			}
		}

		verts := make([]int, len(cycle))
		copy(verts, cycle)
		normal, area := newellNormal(positions, verts)
		s.Faces = append(s.Faces, Face{
			Verts:  verts,
			Normal: normal,
			Center: medianCenter(positions, verts),
			Area:   area,
		})

		for i := range verts {
			s.addEdge(verts[i], verts[(i+1)%len(verts)], fi)
		}
	}

	for wi, w := range wires {
		if w[0] < 0 || w[0] >= len(positions) || w[1] < 0 || w[1] >= len(positions) {
			return nil, fmt.Errorf("wire edge %d references vertex out of range", wi)
		}
		key := makeEdgeKey(w[0], w[1])
		if _, ok := s.edgeIndex[key]; ok {
			continue
		}
		s.edgeIndex[key] = len(s.Edges)
		s.Edges = append(s.Edges, Edge{A: key.a, B: key.b})
	}

	return s, nil
}

// addEdge records face fi as incident on the edge (a, b), creating the
// edge on first sight.
func (s *Snapshot) addEdge(a, b, fi int) {
	key := makeEdgeKey(a, b)
	ei, ok := s.edgeIndex[key]
	if !ok {
		ei = len(s.Edges)
		s.Edges = append(s.Edges, Edge{A: key.a, B: key.b})
		s.edgeIndex[key] = ei
	}
	s.Edges[ei].Faces = append(s.Edges[ei].Faces, fi)
}

// VertexCount returns the number of vertices.
func (s *Snapshot) VertexCount() int {
	return len(s.Positions)
}

// FaceCount returns the number of faces.
func (s *Snapshot) FaceCount() int {
	return len(s.Faces)
}

// EdgeCount returns the number of distinct edges.
func (s *Snapshot) EdgeCount() int {
	return len(s.Edges)
}

// IsEmpty returns true if the snapshot has no faces.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Faces) == 0
}

// Winding reports how face fi traverses the edge (a, b): +1 if b
// immediately follows a in the face cycle, -1 if a follows b, and 0 if
// the pair is not adjacent in the cycle (malformed face data).
func (s *Snapshot) Winding(fi, a, b int) int {
	verts := s.Faces[fi].Verts
	n := len(verts)
	for i := 0; i < n; i++ {
		if verts[i] == a && verts[(i+1)%n] == b {
			return 1
		}
		if verts[i] == b && verts[(i+1)%n] == a {
			return -1
		}
	}
	return 0
}

// Centroid returns the arithmetic mean of all vertex positions in
// world space. Returns the origin for a snapshot with no vertices.
func (s *Snapshot) Centroid() v3.Vec {
	if len(s.Positions) == 0 {
		return v3.Vec{}
	}
	var sum v3.Vec
	for _, p := range s.Positions {
		sum = sum.Add(s.World.MulPosition(p))
	}
	return sum.DivScalar(float64(len(s.Positions)))
}

// WorldCenter returns the face centroid transformed into world space.
func (s *Snapshot) WorldCenter(fi int) v3.Vec {
	return s.World.MulPosition(s.Faces[fi].Center)
}

// WorldNormal returns the face normal transformed into world space
// using the inverse-transpose of the 3x3 world matrix, so non-uniform
// scale does not skew it. The zero vector is returned for a singular
// transform or a degenerate face normal.
func (s *Snapshot) WorldNormal(fi int) v3.Vec {
	nmat, ok := s.World.Mat3().Inverse()
	if !ok {
		return v3.Vec{}
	}
	n := nmat.Transpose().MulVec(s.Faces[fi].Normal)
	if n.Length() == 0 {
		return v3.Vec{}
	}
	return n.Normalize()
}

// newellNormal computes the unit normal and area of a (possibly
// non-planar) polygon using Newell's method. A degenerate polygon
// yields a zero normal and zero area.
func newellNormal(positions []v3.Vec, verts []int) (v3.Vec, float64) {
	var n v3.Vec
	for i := range verts {
		cur := positions[verts[i]]
		next := positions[verts[(i+1)%len(verts)]]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	length := n.Length()
	if length == 0 {
		return v3.Vec{}, 0
	}
	return n.DivScalar(length), length / 2
}

// medianCenter returns the mean of the face's vertex positions. This
// matches the median-center convention most hosts use for the face
// centroid, as opposed to an area-weighted center.
func medianCenter(positions []v3.Vec, verts []int) v3.Vec {
	var sum v3.Vec
	for _, vi := range verts {
		sum = sum.Add(positions[vi])
	}
	return sum.DivScalar(float64(len(verts)))
}
