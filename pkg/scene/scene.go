// Package scene models the host-facing object set handed to the
// validation engine: named objects tagged with a kind, carrying a
// transform and, for mesh objects, an immutable mesh snapshot.
package scene

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"meshlint/pkg/mesh"
)

// Kind tags what an object is. Only mesh objects are validated; the
// rest pass through the engine untouched.
type Kind int

const (
	KindMesh Kind = iota
	KindEmpty
	KindCamera
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindEmpty:
		return "empty"
	case KindCamera:
		return "camera"
	case KindLight:
		return "light"
	default:
		return "unknown"
	}
}

// Object is one entry in the selection set. Position/Rotation/Scale
// are the object-level transform as the host reports it; Rotation is
// Euler angles in radians.
type Object struct {
	Name     string
	Kind     Kind
	Position v3.Vec
	Rotation v3.Vec
	Scale    v3.Vec

	MaterialSlots []string // slot -> material name, "" for an empty slot
	UVLayers      []string
	Mesh          *mesh.Snapshot
}

// IsMesh reports whether the object carries validatable geometry.
func (o *Object) IsMesh() bool {
	return o.Kind == KindMesh
}

// WorldMatrix composes the object transform in the conventional
// T * Rz * Ry * Rx * S order.
func (o *Object) WorldMatrix() mesh.Mat4 {
	t := mesh.Translate(o.Position.X, o.Position.Y, o.Position.Z)
	r := mesh.RotateZ(o.Rotation.Z).
		Mul(mesh.RotateY(o.Rotation.Y)).
		Mul(mesh.RotateX(o.Rotation.X))
	s := mesh.Scale(o.Scale.X, o.Scale.Y, o.Scale.Z)
	return t.Mul(r).Mul(s)
}

// NewMeshObject builds a mesh object with a unit transform and a
// snapshot derived from the given geometry.
func NewMeshObject(name string, positions []v3.Vec, faces [][]int) (*Object, error) {
	o := &Object{
		Name:  name,
		Kind:  KindMesh,
		Scale: v3.Vec{X: 1, Y: 1, Z: 1},
	}
	snap, err := mesh.New(positions, faces, o.WorldMatrix())
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", name, err)
	}
	o.Mesh = snap
	return o, nil
}

// MeshObjects filters the selection down to mesh-kind entries,
// preserving order.
func MeshObjects(objects []*Object) []*Object {
	var out []*Object
	for _, o := range objects {
		if o.IsMesh() {
			out = append(out, o)
		}
	}
	return out
}
