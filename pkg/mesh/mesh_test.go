package mesh

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const eps = 1e-9

func vecNear(a, b v3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

// unitQuad is a CCW square in the XY plane; its normal is +Z.
func unitQuad() ([]v3.Vec, [][]int) {
	positions := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	return positions, [][]int{{0, 1, 2, 3}}
}

func TestNewRejectsBadFaces(t *testing.T) {
	positions := []v3.Vec{{X: 0}, {X: 1}, {X: 2}}

	if _, err := New(positions, [][]int{{0, 1}}, Identity()); err == nil {
		t.Error("expected error for a 2-vertex face")
	}
	if _, err := New(positions, [][]int{{0, 1, 3}}, Identity()); err == nil {
		t.Error("expected error for an out-of-range vertex index")
	}
	if _, err := New(positions, [][]int{{0, 1, -1}}, Identity()); err == nil {
		t.Error("expected error for a negative vertex index")
	}
}

func TestQuadNormalAndArea(t *testing.T) {
	positions, faces := unitQuad()
	s, err := New(positions, faces, Identity())
	if err != nil {
		t.Fatal(err)
	}

	f := s.Faces[0]
	if !vecNear(f.Normal, v3.Vec{X: 0, Y: 0, Z: 1}, eps) {
		t.Errorf("normal = %v, want +Z", f.Normal)
	}
	if math.Abs(f.Area-1) > eps {
		t.Errorf("area = %g, want 1", f.Area)
	}
	if !vecNear(f.Center, v3.Vec{X: 0.5, Y: 0.5, Z: 0}, eps) {
		t.Errorf("center = %v, want (0.5, 0.5, 0)", f.Center)
	}
}

func TestReversedQuadNormal(t *testing.T) {
	positions, _ := unitQuad()
	s, err := New(positions, [][]int{{3, 2, 1, 0}}, Identity())
	if err != nil {
		t.Fatal(err)
	}
	if !vecNear(s.Faces[0].Normal, v3.Vec{X: 0, Y: 0, Z: -1}, eps) {
		t.Errorf("normal = %v, want -Z", s.Faces[0].Normal)
	}
}

func TestEdgeAdjacency(t *testing.T) {
	// Two triangles sharing the edge (0, 2).
	positions := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	faces := [][]int{{0, 1, 2}, {0, 2, 3}}
	s, err := New(positions, faces, Identity())
	if err != nil {
		t.Fatal(err)
	}

	if s.EdgeCount() != 5 {
		t.Fatalf("EdgeCount = %d, want 5", s.EdgeCount())
	}
	shared := 0
	for _, e := range s.Edges {
		switch len(e.Faces) {
		case 1:
			// boundary
		case 2:
			shared++
			if e.A != 0 || e.B != 2 {
				t.Errorf("shared edge = (%d, %d), want (0, 2)", e.A, e.B)
			}
		default:
			t.Errorf("edge (%d, %d) has %d faces", e.A, e.B, len(e.Faces))
		}
	}
	if shared != 1 {
		t.Errorf("shared edges = %d, want 1", shared)
	}
}

func TestWinding(t *testing.T) {
	positions, faces := unitQuad()
	s, err := New(positions, faces, Identity())
	if err != nil {
		t.Fatal(err)
	}

	if w := s.Winding(0, 0, 1); w != 1 {
		t.Errorf("Winding(0, 0, 1) = %d, want 1", w)
	}
	if w := s.Winding(0, 1, 0); w != -1 {
		t.Errorf("Winding(0, 1, 0) = %d, want -1", w)
	}
	// Cycle wraps: 3 -> 0 closes the quad.
	if w := s.Winding(0, 3, 0); w != 1 {
		t.Errorf("Winding(0, 3, 0) = %d, want 1", w)
	}
	if w := s.Winding(0, 0, 2); w != 0 {
		t.Errorf("Winding(0, 0, 2) = %d, want 0 for a non-adjacent pair", w)
	}
}

func TestWireEdges(t *testing.T) {
	positions := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 5, Y: 5, Z: 5},
		{X: 6, Y: 5, Z: 5},
	}
	s, err := NewWithWires(positions, [][]int{{0, 1, 2}}, [][2]int{{3, 4}}, Identity())
	if err != nil {
		t.Fatal(err)
	}

	if s.EdgeCount() != 4 {
		t.Fatalf("EdgeCount = %d, want 4", s.EdgeCount())
	}
	wire := s.Edges[3]
	if wire.A != 3 || wire.B != 4 {
		t.Errorf("wire edge = (%d, %d), want (3, 4)", wire.A, wire.B)
	}
	if len(wire.Faces) != 0 {
		t.Errorf("wire edge has %d faces, want 0", len(wire.Faces))
	}
}

func TestWireEdgeDoesNotDuplicateFaceEdge(t *testing.T) {
	positions := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
	}
	s, err := NewWithWires(positions, [][]int{{0, 1, 2}}, [][2]int{{1, 0}}, Identity())
	if err != nil {
		t.Fatal(err)
	}
	if s.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", s.EdgeCount())
	}
}

func TestCentroidUsesWorldTransform(t *testing.T) {
	positions, faces := unitQuad()
	world := Translate(10, 0, 0)
	s, err := New(positions, faces, world)
	if err != nil {
		t.Fatal(err)
	}
	if !vecNear(s.Centroid(), v3.Vec{X: 10.5, Y: 0.5, Z: 0}, eps) {
		t.Errorf("Centroid = %v, want (10.5, 0.5, 0)", s.Centroid())
	}
}

func TestWorldNormalNonUniformScale(t *testing.T) {
	// A 45-degree ramp in the YZ sense: normal (0, -1, 1)/sqrt2.
	positions := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: 0, Y: 1, Z: 1},
	}
	faces := [][]int{{0, 1, 2, 3}}

	// Squash Z. A plain rotation of the local normal would keep the
	// 45-degree direction; the inverse-transpose must steepen it.
	world := Scale(1, 1, 0.1)
	s, err := New(positions, faces, world)
	if err != nil {
		t.Fatal(err)
	}

	n := s.WorldNormal(0)
	if math.Abs(n.Length()-1) > eps {
		t.Fatalf("WorldNormal not unit length: %v", n)
	}
	// Inverse-transpose of diag(1, 1, 0.1) is diag(1, 1, 10): the Z
	// component dominates after normalization.
	want := v3.Vec{X: 0, Y: -1, Z: 10}.Normalize()
	if !vecNear(n, want, 1e-6) {
		t.Errorf("WorldNormal = %v, want %v", n, want)
	}
}

func TestWorldNormalSingularTransform(t *testing.T) {
	positions, faces := unitQuad()
	s, err := New(positions, faces, Scale(1, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.WorldNormal(0); got.Length() != 0 {
		t.Errorf("WorldNormal = %v, want zero vector for singular transform", got)
	}
}

func TestDegenerateFace(t *testing.T) {
	// All three vertices collinear: zero normal, zero area.
	positions := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
	}
	s, err := New(positions, [][]int{{0, 1, 2}}, Identity())
	if err != nil {
		t.Fatal(err)
	}
	if s.Faces[0].Area != 0 {
		t.Errorf("area = %g, want 0", s.Faces[0].Area)
	}
	if s.Faces[0].Normal.Length() != 0 {
		t.Errorf("normal = %v, want zero vector", s.Faces[0].Normal)
	}
}
