// Package render turns scene entities into trees of drawable objects backed by the
// shared resource cache. Objects are rebuilt every frame; geometry and materials
// are never owned by an object.
package render

import (
	"github.com/Chemberlein/ADA-Cosmos/engine/light"
	"github.com/Chemberlein/ADA-Cosmos/engine/material"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	"github.com/go-gl/mathgl/mgl32"
)

// ObjectKind identifies what an Object draws.
type ObjectKind int

const (
	KindGroup ObjectKind = iota
	KindMesh
	KindLines
	KindPoints
	KindLabel
	KindLight
)

func (k ObjectKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindLines:
		return "lines"
	case KindPoints:
		return "points"
	case KindLabel:
		return "label"
	case KindLight:
		return "light"
	default:
		return "unknown"
	}
}

// Object is one node of a render tree. Transforms are relative to the parent;
// rotation is Euler XYZ in radians.
type Object struct {
	Name     string
	Kind     ObjectKind
	EntityID string

	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	Geometry *resource.Geometry
	Material material.Material
	Label    *resource.Label
	Light    light.Light

	Children []*Object
}

// NewGroup creates an empty transform node.
func NewGroup(name string) *Object {
	return &Object{Name: name, Kind: KindGroup, Scale: mgl32.Vec3{1, 1, 1}}
}

// NewMesh creates a drawable node.
//
// Parameters:
//   - name: the node name
//   - kind: KindMesh, KindLines or KindPoints
//   - g: cached geometry, not owned by the node
//   - m: cached material, not owned by the node
//
// Returns:
//   - *Object: the new node
func NewMesh(name string, kind ObjectKind, g *resource.Geometry, m material.Material) *Object {
	return &Object{Name: name, Kind: kind, Scale: mgl32.Vec3{1, 1, 1}, Geometry: g, Material: m}
}

// NewLabelObject creates a node anchoring a screen label.
func NewLabelObject(l *resource.Label, offset mgl32.Vec3) *Object {
	return &Object{Name: "label", Kind: KindLabel, Scale: mgl32.Vec3{1, 1, 1}, Label: l, Position: offset}
}

// NewLightObject creates a node carrying a light.
func NewLightObject(l light.Light) *Object {
	p := l.Position()
	return &Object{Name: "light", Kind: KindLight, Scale: mgl32.Vec3{1, 1, 1}, Light: l, Position: mgl32.Vec3{p[0], p[1], p[2]}}
}

// Add appends children and returns o for chaining.
func (o *Object) Add(children ...*Object) *Object {
	o.Children = append(o.Children, children...)
	return o
}

// LocalMatrix returns translate * rotateX * rotateY * rotateZ * scale.
func (o *Object) LocalMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2]).
		Mul4(mgl32.HomogRotate3DX(o.Rotation[0])).
		Mul4(mgl32.HomogRotate3DY(o.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation[2])).
		Mul4(mgl32.Scale3D(o.Scale[0], o.Scale[1], o.Scale[2]))
}

// Walk visits o and its descendants depth first with their world matrices.
//
// Parameters:
//   - parent: the world matrix of o's parent, mgl32.Ident4() for a root
//   - fn: called for every node
func (o *Object) Walk(parent mgl32.Mat4, fn func(obj *Object, world mgl32.Mat4)) {
	world := parent.Mul4(o.LocalMatrix())
	fn(o, world)
	for _, c := range o.Children {
		c.Walk(world, fn)
	}
}

// Find returns the first descendant (or o itself) with the given name, or nil.
func (o *Object) Find(name string) *Object {
	if o.Name == name {
		return o
	}
	for _, c := range o.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Count returns the number of nodes of the given kind in the tree.
func (o *Object) Count(kind ObjectKind) int {
	n := 0
	if o.Kind == kind {
		n++
	}
	for _, c := range o.Children {
		n += c.Count(kind)
	}
	return n
}
