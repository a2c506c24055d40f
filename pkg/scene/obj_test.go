package scene

import (
	"strings"
	"testing"
)

func TestReadOBJSingleObject(t *testing.T) {
	src := `
# a quad with UVs
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
usemtl wood
f 1/1 2/2 3/3 4/4
`
	objects, err := ReadOBJ(strings.NewReader(src), "fallback")
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 1 {
		t.Fatalf("got %d objects, want 1", len(objects))
	}

	o := objects[0]
	if o.Name != "fallback" {
		t.Errorf("name = %q, want the default name", o.Name)
	}
	if !o.IsMesh() {
		t.Error("object is not a mesh")
	}
	if o.Mesh.FaceCount() != 1 || o.Mesh.VertexCount() != 4 {
		t.Errorf("faces = %d verts = %d, want 1 and 4", o.Mesh.FaceCount(), o.Mesh.VertexCount())
	}
	if len(o.Mesh.Faces[0].Verts) != 4 {
		t.Errorf("face has %d vertices, want the quad untriangulated", len(o.Mesh.Faces[0].Verts))
	}
	if len(o.UVLayers) != 1 {
		t.Errorf("UVLayers = %v, want one layer", o.UVLayers)
	}
	if len(o.MaterialSlots) != 1 || o.MaterialSlots[0] != "wood" {
		t.Errorf("MaterialSlots = %v, want [wood]", o.MaterialSlots)
	}
}

func TestReadOBJMultipleObjects(t *testing.T) {
	src := `
o first
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
o second
v 2 0 0
v 3 0 0
v 2 1 0
f 4 5 6
`
	objects, err := ReadOBJ(strings.NewReader(src), "unused")
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(objects))
	}
	if objects[0].Name != "first" || objects[1].Name != "second" {
		t.Errorf("names = %q, %q", objects[0].Name, objects[1].Name)
	}
	// Indices are global in the file but local in each snapshot.
	for _, o := range objects {
		if o.Mesh.VertexCount() != 3 {
			t.Errorf("object %s has %d vertices, want 3", o.Name, o.Mesh.VertexCount())
		}
		for _, vi := range o.Mesh.Faces[0].Verts {
			if vi < 0 || vi > 2 {
				t.Errorf("object %s face index %d not remapped", o.Name, vi)
			}
		}
	}
}

func TestReadOBJNegativeIndices(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	objects, err := ReadOBJ(strings.NewReader(src), "m")
	if err != nil {
		t.Fatal(err)
	}
	if objects[0].Mesh.FaceCount() != 1 {
		t.Fatalf("face not parsed")
	}
	got := objects[0].Mesh.Faces[0].Verts
	want := []int{0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("face = %v, want %v", got, want)
		}
	}
}

func TestReadOBJWireEdges(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
v 5 5 5
v 6 5 5
v 7 5 5
f 1 2 3
l 4 5 6
`
	objects, err := ReadOBJ(strings.NewReader(src), "m")
	if err != nil {
		t.Fatal(err)
	}
	snap := objects[0].Mesh

	// 3 face edges plus 2 polyline segments.
	if snap.EdgeCount() != 5 {
		t.Fatalf("EdgeCount = %d, want 5", snap.EdgeCount())
	}
	wires := 0
	for _, e := range snap.Edges {
		if len(e.Faces) == 0 {
			wires++
		}
	}
	if wires != 2 {
		t.Errorf("wire edges = %d, want 2", wires)
	}
}

func TestReadOBJErrors(t *testing.T) {
	cases := map[string]string{
		"face index out of range": "v 0 0 0\nf 1 2 3\n",
		"short vertex":            "v 0 0\n",
		"bad coordinate":          "v a b c\n",
		"unnamed object":          "o\n",
		"short face":              "v 0 0 0\nv 1 0 0\nf 1 2\n",
	}
	for name, src := range cases {
		if _, err := ReadOBJ(strings.NewReader(src), "m"); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestReadOBJEmptyFile(t *testing.T) {
	objects, err := ReadOBJ(strings.NewReader("# nothing\n"), "m")
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 0 {
		t.Errorf("got %d objects from an empty file", len(objects))
	}
}
