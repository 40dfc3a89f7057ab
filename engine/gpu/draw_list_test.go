package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Chemberlein/ADA-Cosmos/engine/light"
	"github.com/Chemberlein/ADA-Cosmos/engine/material"
	"github.com/Chemberlein/ADA-Cosmos/engine/render"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meshNode(name string, topology resource.Topology, m material.Material) *render.Object {
	g := &resource.Geometry{Topology: topology, Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}}
	kind := render.KindMesh
	switch topology {
	case resource.TopologyLines:
		kind = render.KindLines
	case resource.TopologyPoints:
		kind = render.KindPoints
	}
	return render.NewMesh(name, kind, g, m)
}

func TestCollectDrawsSkipsNonDrawables(t *testing.T) {
	opaque := material.NewMaterial(material.WithName("opaque"))
	disposed := material.NewMaterial(material.WithName("gone"))
	disposed.Dispose()

	group := render.NewGroup("system")
	group.Position = mgl32.Vec3{10, 0, 0}
	group.Add(
		meshNode("planet", resource.TopologyTriangles, opaque),
		meshNode("stale", resource.TopologyTriangles, disposed),
		render.NewMesh("empty", render.KindMesh, nil, opaque),
		render.NewLabelObject(&resource.Label{ID: "snek", Text: "SNEK"}, mgl32.Vec3{0, 1, 0}),
		render.NewLightObject(light.NewLight(light.LightTypePoint,
			light.WithPosition(1, 2, 3),
			light.WithColor(1, 0.5, 0),
			light.WithIntensity(2),
		)),
	)
	grid := meshNode("grid", resource.TopologyLines, opaque)

	items, lights := collectDraws([]*render.Object{group, nil, grid})
	require.Len(t, items, 2)
	assert.Equal(t, "planet", items[0].object.Name)
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, items[0].world.Col(3).Vec3())
	assert.Equal(t, "grid", items[1].object.Name)
	assert.Equal(t, resource.TopologyLines, items[1].key.topology)

	require.True(t, lights.hasPoint)
	assert.Equal(t, mgl32.Vec3{11, 2, 3}, lights.pointPosition)
	assert.Equal(t, [4]float32{1, 0.5, 0, 2}, lights.pointColor)
	assert.False(t, lights.hasAmbient)
}

func TestFrameUniformFallsBackToHeadlight(t *testing.T) {
	f := Frame{Eye: mgl32.Vec3{0, 5, 20}, Width: 800, Height: 600}
	f.ViewProjection[0] = 2

	u := frameUniform(f, sceneLights{})
	assert.Equal(t, float32(2), u.ViewProj[0])
	assert.Equal(t, [4]float32{0, 5, 20, 1}, u.Eye)
	assert.Equal(t, u.Eye, u.LightPosition)
	assert.Equal(t, defaultAmbient, u.Ambient)

	ambient := light.NewLight(light.LightTypeAmbient, light.WithColor(0.2, 0.4, 1), light.WithIntensity(0.5))
	var lights sceneLights
	lights.add(ambient, mgl32.Ident4())
	u = frameUniform(f, lights)
	assert.InDeltaSlice(t, []float32{0.1, 0.2, 0.5, 1}, u.Ambient[:], 1e-6)
}

func TestSortDrawsPutsTransparentLastFarthestFirst(t *testing.T) {
	at := func(name string, transparent bool, z float32) drawItem {
		return drawItem{
			object: &render.Object{Name: name},
			world:  mgl32.Translate3D(0, 0, z),
			key:    pipelineKey{transparent: transparent},
		}
	}
	items := []drawItem{
		at("near-glass", true, 5),
		at("sun", false, 50),
		at("far-glass", true, 40),
		at("ship", false, 1),
	}
	sortDraws(items, mgl32.Vec3{})

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.object.Name
	}
	assert.Equal(t, []string{"sun", "ship", "far-glass", "near-glass"}, names)
}

func TestStateForTopologies(t *testing.T) {
	s := stateFor(pipelineKey{topology: resource.TopologyTriangles})
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, s.topology)
	assert.Equal(t, wgpu.CullModeBack, s.cullMode)
	assert.True(t, s.depthWrite)
	assert.False(t, s.blend)
	assert.Equal(t, "fs_lit", s.fragmentEntry)

	s = stateFor(pipelineKey{topology: resource.TopologyTriangles, transparent: true, doubleSided: true})
	assert.Equal(t, wgpu.CullModeNone, s.cullMode)
	assert.False(t, s.depthWrite)
	assert.True(t, s.blend)

	s = stateFor(pipelineKey{topology: resource.TopologyLines})
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, s.topology)
	assert.Equal(t, wgpu.CullModeNone, s.cullMode)
	assert.Equal(t, "fs_flat", s.fragmentEntry)

	s = stateFor(pipelineKey{topology: resource.TopologyPoints, transparent: true})
	assert.Equal(t, wgpu.PrimitiveTopologyPointList, s.topology)
	assert.Equal(t, "fs_flat", s.fragmentEntry)
	assert.True(t, s.blend)
}

func TestModelCapacityFor(t *testing.T) {
	assert.Equal(t, 64, modelCapacityFor(0))
	assert.Equal(t, 64, modelCapacityFor(64))
	assert.Equal(t, 128, modelCapacityFor(65))
	assert.Equal(t, 1024, modelCapacityFor(1000))
}

func TestUniformLayouts(t *testing.T) {
	readFloat := func(buf []byte, off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}

	fu := GPUFrameUniform{
		Eye:        [4]float32{1, 2, 3, 1},
		LightColor: [4]float32{0, 0, 0, 0.8},
		Ambient:    [4]float32{0, 0, 0, 0.35},
	}
	fu.ViewProj[15] = 7
	buf := fu.Marshal()
	require.Len(t, buf, FrameUniformSize)
	assert.Equal(t, float32(7), readFloat(buf, 60))
	assert.Equal(t, float32(3), readFloat(buf, 72))
	assert.Equal(t, float32(0.8), readFloat(buf, 108))
	assert.Equal(t, float32(0.35), readFloat(buf, 124))

	slots := make([]byte, 2*modelStride)
	mu := GPUModelUniform{World: mgl32.Translate3D(4, 5, 6)}
	mu.MarshalInto(slots, modelStride)
	assert.Equal(t, float32(0), readFloat(slots, 48))
	assert.Equal(t, float32(4), readFloat(slots, modelStride+48))
	assert.Equal(t, float32(6), readFloat(slots, modelStride+56))

	assert.Contains(t, ShaderSource, "fn vs_main")
	assert.Contains(t, ShaderSource, "fn fs_lit")
	assert.Contains(t, ShaderSource, "fn fs_flat")
}
