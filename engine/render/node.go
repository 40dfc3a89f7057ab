package render

import (
	"fmt"

	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/Chemberlein/ADA-Cosmos/engine/lod"
	"github.com/Chemberlein/ADA-Cosmos/engine/material"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	hubSegments = 32

	ringScale     = 1.2
	ringThickness = 0.3

	hubMaterialName = "hub"
	hubColor        = 0xffcc00
	hubEmissive     = 0xff8800
)

// Params is the per-frame input to BuildNode.
type Params struct {
	Stage     lod.Stage
	Hovered   entity.Entity
	Selected  entity.Entity
	Animating bool
	Resources *resource.Resources
}

// BuildNode returns the render tree for e at the current stage. The root is a
// group positioned at the entity and tagged with its id.
//
// Parameters:
//   - e: the entity to draw
//   - p: stage, highlight and cache state for this frame
//
// Returns:
//   - *Object: the root of the entity's render tree
func BuildNode(e entity.Entity, p Params) *Object {
	if p.Resources == nil {
		panic("render: BuildNode requires resources")
	}

	var root *Object
	switch n := e.(type) {
	case *entity.Hub:
		root = buildHub(n, p)
	case *entity.Explorer:
		root = buildExplorer(n, p)
	case *entity.Ranked:
		root = buildRanked(n, p)
	default:
		panic(fmt.Sprintf("render: unhandled entity type %T", e))
	}

	root.EntityID = e.ID()
	root.Position = e.Position()
	if ring := highlightRing(e, p); ring != nil {
		root.Add(ring)
	}
	return root
}

// NodeRadius is the world radius a node is drawn and picked with.
func NodeRadius(e entity.Entity) float32 {
	return math32.Cbrt(e.SizeMetric())
}

func buildHub(h *entity.Hub, p Params) *Object {
	root := NewGroup(entity.HubID)
	m := p.Resources.Material(hubMaterialName,
		material.WithHex(hubColor),
		material.WithEmissive(hubEmissive, 0.5),
	)
	root.Add(NewMesh("body", KindMesh, p.Resources.SphereGeometry(NodeRadius(h), hubSegments), m))
	if p.Stage >= lod.StageBasic {
		root.Add(NewLabelObject(p.Resources.Labels().GetOrCreate(h.ID(), h.Data.Symbol), mgl32.Vec3{}))
	}
	return root
}

func buildRanked(r *entity.Ranked, p Params) *Object {
	root := NewGroup(r.ID())
	if p.Stage == lod.StageInitial {
		return root
	}
	segments := lod.SphereSegments(p.Stage, p.Animating)
	root.Add(NewMesh("body", KindMesh, p.Resources.SphereGeometry(NodeRadius(r), segments), TokenMaterial(p.Resources, r.ID())))
	if p.Stage >= lod.StageComplete {
		root.Add(NewLabelObject(p.Resources.Labels().GetOrCreate(r.ID(), r.Ticker), mgl32.Vec3{}))
	}
	return root
}

// highlightRing returns the hover or selection ring for e, or nil. Hover wins
// when e is both hovered and selected.
func highlightRing(e entity.Entity, p Params) *Object {
	if p.Stage == lod.StageInitial {
		return nil
	}
	var m material.Material
	switch {
	case entity.SameID(e, p.Hovered):
		m = p.Resources.HoverMaterial()
	case entity.SameID(e, p.Selected):
		m = p.Resources.SelectedMaterial()
	default:
		return nil
	}

	inner := NodeRadius(e) * ringScale
	g := p.Resources.RingGeometry(inner, inner+ringThickness, lod.RingSegments(p.Stage))
	ring := NewMesh("ring", KindMesh, g, m)
	ring.Rotation = mgl32.Vec3{math32.Pi / 2, 0, 0}
	return ring
}
