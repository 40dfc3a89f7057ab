package gpu

import (
	"cmp"
	"slices"

	"github.com/Chemberlein/ADA-Cosmos/engine/light"
	"github.com/Chemberlein/ADA-Cosmos/engine/material"
	"github.com/Chemberlein/ADA-Cosmos/engine/render"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	"github.com/go-gl/mathgl/mgl32"
)

// defaultAmbient lights every fragment when the scene carries no ambient light.
var defaultAmbient = [4]float32{1, 1, 1, 0.35}

// Frame is the camera state one Draw renders with.
type Frame struct {
	// ViewProjection is the column-major view-projection matrix.
	ViewProjection [16]float32
	// Eye is the camera position in world space.
	Eye mgl32.Vec3
	// Width and Height are the drawable size in pixels.
	Width, Height int
}

// pipelineKey selects the render pipeline variant for a draw.
type pipelineKey struct {
	topology    resource.Topology
	transparent bool
	doubleSided bool
}

// drawItem is one drawable node with its resolved world matrix.
type drawItem struct {
	object *render.Object
	world  mgl32.Mat4
	key    pipelineKey
}

// sceneLights is the lighting gathered from the light nodes of a frame.
type sceneLights struct {
	hasPoint      bool
	pointPosition mgl32.Vec3
	pointColor    [4]float32
	hasAmbient    bool
	ambient       [4]float32
}

// keyFor derives the pipeline variant from the node's geometry and material.
func keyFor(obj *render.Object) pipelineKey {
	return pipelineKey{
		topology:    obj.Geometry.Topology,
		transparent: obj.Material.Transparent(),
		doubleSided: obj.Material.Side() == material.SideDouble,
	}
}

// collectDraws walks the render trees and returns every live drawable node along
// with the lights it passed. Group and label nodes only contribute transforms.
//
// Parameters:
//   - objects: render tree roots
//
// Returns:
//   - []drawItem: drawable nodes in tree order
//   - sceneLights: the first point light and the summed ambient lights
func collectDraws(objects []*render.Object) ([]drawItem, sceneLights) {
	var items []drawItem
	var lights sceneLights
	for _, root := range objects {
		if root == nil {
			continue
		}
		root.Walk(mgl32.Ident4(), func(obj *render.Object, world mgl32.Mat4) {
			switch obj.Kind {
			case render.KindMesh, render.KindLines, render.KindPoints:
				if obj.Geometry == nil || obj.Material == nil {
					return
				}
				if obj.Geometry.Disposed() || obj.Material.Disposed() {
					return
				}
				items = append(items, drawItem{object: obj, world: world, key: keyFor(obj)})
			case render.KindLight:
				if obj.Light != nil {
					lights.add(obj.Light, world)
				}
			}
		})
	}
	return items, lights
}

func (s *sceneLights) add(l light.Light, world mgl32.Mat4) {
	c := l.Color()
	switch l.Type() {
	case light.LightTypePoint:
		if s.hasPoint {
			return
		}
		s.hasPoint = true
		s.pointPosition = world.Col(3).Vec3()
		s.pointColor = [4]float32{c[0], c[1], c[2], l.Intensity()}
	case light.LightTypeAmbient:
		if !s.hasAmbient {
			s.hasAmbient = true
			s.ambient[3] = 1
		}
		for i := range 3 {
			s.ambient[i] += c[i] * l.Intensity()
		}
	}
}

// frameUniform builds the per-frame block. Without a point light the camera carries a
// white headlight; without ambient lights defaultAmbient applies.
//
// Parameters:
//   - f: the camera state
//   - lights: lights gathered by collectDraws
//
// Returns:
//   - GPUFrameUniform: the uniform to upload
func frameUniform(f Frame, lights sceneLights) GPUFrameUniform {
	u := GPUFrameUniform{
		ViewProj:      f.ViewProjection,
		Eye:           [4]float32{f.Eye[0], f.Eye[1], f.Eye[2], 1},
		LightPosition: [4]float32{f.Eye[0], f.Eye[1], f.Eye[2], 1},
		LightColor:    [4]float32{1, 1, 1, 0.8},
		Ambient:       defaultAmbient,
	}
	if lights.hasPoint {
		p := lights.pointPosition
		u.LightPosition = [4]float32{p[0], p[1], p[2], 1}
		u.LightColor = lights.pointColor
	}
	if lights.hasAmbient {
		u.Ambient = lights.ambient
	}
	return u
}

// sortDraws orders opaque draws first in tree order, then transparent draws from
// the farthest to the nearest relative to eye.
//
// Parameters:
//   - items: the draws to order in place
//   - eye: camera position
func sortDraws(items []drawItem, eye mgl32.Vec3) {
	slices.SortStableFunc(items, func(a, b drawItem) int {
		if a.key.transparent != b.key.transparent {
			if a.key.transparent {
				return 1
			}
			return -1
		}
		if !a.key.transparent {
			return 0
		}
		da := a.world.Col(3).Vec3().Sub(eye).Len()
		db := b.world.Col(3).Vec3().Sub(eye).Len()
		return cmp.Compare(db, da)
	})
}
