package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"meshlint/pkg/mesh"
)

// uvLayerName is the layer name reported for OBJ texture coordinates.
// OBJ has no named UV layers, so every file gets the one default name.
const uvLayerName = "UVMap"

// LoadOBJ reads a Wavefront OBJ file and returns one mesh object per
// `o` group. A file without `o` lines produces a single object named
// after the file. Faces keep their full vertex cycles; nothing is
// triangulated, so n-gons and winding survive into validation.
func LoadOBJ(path string) ([]*Object, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	objects, err := ReadOBJ(file, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return objects, nil
}

// objGroup accumulates one object's worth of OBJ data during parsing.
// OBJ vertex indices are global to the file, so faces are remapped to
// per-object indices when the group is sealed.
type objGroup struct {
	name      string
	faces     [][]int  // global vertex indices
	wires     [][2]int // `l` polyline segments, global vertex indices
	materials []string
	hasUVs    bool
}

func (g *objGroup) empty() bool {
	return len(g.faces) == 0 && len(g.wires) == 0
}

// ReadOBJ parses OBJ data from r. defaultName names the object used
// for geometry that appears before any `o` line.
func ReadOBJ(r io.Reader, defaultName string) ([]*Object, error) {
	var verts []v3.Vec
	var groups []*objGroup
	current := &objGroup{name: defaultName}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineno := 0

	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "o":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: object without a name", lineno)
			}
			if !current.empty() {
				groups = append(groups, current)
			}
			current = &objGroup{name: fields[1]}

		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineno)
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			z, errZ := strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil || errZ != nil {
				return nil, fmt.Errorf("line %d: bad vertex coordinates", lineno)
			}
			verts = append(verts, v3.Vec{X: x, Y: y, Z: z})

		case "usemtl":
			if len(fields) >= 2 {
				current.materials = appendUnique(current.materials, fields[1])
			}

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineno)
			}
			cycle := make([]int, 0, len(fields)-1)
			for _, arg := range fields[1:] {
				vi, hasUV, err := parseFaceVertex(arg, len(verts))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineno, err)
				}
				cycle = append(cycle, vi)
				if hasUV {
					current.hasUVs = true
				}
			}
			current.faces = append(current.faces, cycle)

		case "l":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: polyline needs at least 2 vertices", lineno)
			}
			prev := -1
			for _, arg := range fields[1:] {
				vi, _, err := parseFaceVertex(arg, len(verts))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineno, err)
				}
				if prev >= 0 {
					current.wires = append(current.wires, [2]int{prev, vi})
				}
				prev = vi
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !current.empty() {
		groups = append(groups, current)
	}

	objects := make([]*Object, 0, len(groups))
	for _, g := range groups {
		o, err := g.build(verts)
		if err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}
	return objects, nil
}

// build remaps the group's global vertex indices into a compact local
// snapshot and wraps it in an Object.
func (g *objGroup) build(verts []v3.Vec) (*Object, error) {
	remap := make(map[int]int)
	var positions []v3.Vec
	local := func(gi int) int {
		li, ok := remap[gi]
		if !ok {
			li = len(positions)
			positions = append(positions, verts[gi])
			remap[gi] = li
		}
		return li
	}

	faces := make([][]int, 0, len(g.faces))
	for _, cycle := range g.faces {
		f := make([]int, len(cycle))
		for i, gi := range cycle {
			f[i] = local(gi)
		}
		faces = append(faces, f)
	}
	wires := make([][2]int, 0, len(g.wires))
	for _, w := range g.wires {
		wires = append(wires, [2]int{local(w[0]), local(w[1])})
	}

	o := &Object{
		Name:  g.name,
		Kind:  KindMesh,
		Scale: v3.Vec{X: 1, Y: 1, Z: 1},
	}
	snap, err := mesh.NewWithWires(positions, faces, wires, o.WorldMatrix())
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", g.name, err)
	}
	o.Mesh = snap
	o.MaterialSlots = g.materials
	if g.hasUVs {
		o.UVLayers = []string{uvLayerName}
	}
	return o, nil
}

// parseFaceVertex parses one `f` element (v, v/vt, v//vn, v/vt/vn)
// and returns the zero-based vertex index. Negative OBJ indices count
// back from the current end of the vertex list.
func parseFaceVertex(arg string, vertCount int) (int, bool, error) {
	parts := strings.Split(arg, "/")
	vi, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false, fmt.Errorf("bad face vertex %q", arg)
	}
	if vi < 0 {
		vi += vertCount
	} else {
		vi-- // OBJ indices are one-based
	}
	if vi < 0 || vi >= vertCount {
		return 0, false, fmt.Errorf("face vertex %q out of range", arg)
	}
	hasUV := len(parts) >= 2 && parts[1] != ""
	return vi, hasUV, nil
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}
