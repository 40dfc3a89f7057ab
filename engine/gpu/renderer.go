package gpu

import (
	"fmt"

	"github.com/Chemberlein/ADA-Cosmos/engine/material"
	"github.com/Chemberlein/ADA-Cosmos/engine/render"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// clearColor is the deep space backdrop behind the starfield.
var clearColor = wgpu.Color{R: 0.008, G: 0.01, B: 0.03, A: 1.0}

// materialBinding is the device copy of one material's uniform block. It is handed
// to the material as its GPU resource and drops itself from the backend on Release.
type materialBinding struct {
	backend   *backendImpl
	material  material.Material
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

func (m *materialBinding) Release() {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()
	if m.backend.materials[m.material] == m {
		delete(m.backend.materials, m.material)
	}
	if m.bindGroup != nil {
		m.bindGroup.Release()
		m.bindGroup = nil
	}
	if m.buffer != nil {
		m.buffer.Release()
		m.buffer = nil
	}
}

// pipelineState is the fixed-function setup of one pipeline variant.
type pipelineState struct {
	topology      wgpu.PrimitiveTopology
	cullMode      wgpu.CullMode
	depthWrite    bool
	blend         bool
	fragmentEntry string
}

// stateFor maps a pipeline key onto its fixed-function state. Lines and points are
// drawn flat and never culled; transparent draws blend and leave depth untouched.
func stateFor(key pipelineKey) pipelineState {
	s := pipelineState{
		topology:      wgpu.PrimitiveTopologyTriangleList,
		cullMode:      wgpu.CullModeBack,
		depthWrite:    !key.transparent,
		blend:         key.transparent,
		fragmentEntry: "fs_lit",
	}
	switch key.topology {
	case resource.TopologyLines:
		s.topology = wgpu.PrimitiveTopologyLineList
		s.cullMode = wgpu.CullModeNone
		s.fragmentEntry = "fs_flat"
	case resource.TopologyPoints:
		s.topology = wgpu.PrimitiveTopologyPointList
		s.cullMode = wgpu.CullModeNone
		s.fragmentEntry = "fs_flat"
	default:
		if key.doubleSided {
			s.cullMode = wgpu.CullModeNone
		}
	}
	return s
}

// modelCapacityFor returns the number of model slots to allocate for n draws: the
// next power of two, never below 64.
func modelCapacityFor(n int) int {
	c := 64
	for c < n {
		c *= 2
	}
	return c
}

// initRenderResources compiles the shader and creates the bind group layouts and the
// frame uniform. Caller must hold the mutex.
func (b *backendImpl) initRenderResources() error {
	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return fmt.Errorf("gpu: surface reports no formats")
	}
	b.surfaceFormat = capabilities.Formats[0]
	b.alphaMode = capabilities.AlphaModes[0]

	shader, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Cosmos Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: ShaderSource},
	})
	if err != nil {
		return fmt.Errorf("gpu: compile shader: %w", err)
	}
	b.shader = shader

	uniformLayout := func(label string, size uint64, dynamic bool) (*wgpu.BindGroupLayout, error) {
		return b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label: label,
			Entries: []wgpu.BindGroupLayoutEntry{{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: dynamic,
					MinBindingSize:   size,
				},
			}},
		})
	}
	if b.frameLayout, err = uniformLayout("Frame Bind Group Layout", FrameUniformSize, false); err != nil {
		return fmt.Errorf("gpu: frame layout: %w", err)
	}
	if b.materialLayout, err = uniformLayout("Material Bind Group Layout", material.UniformSize, false); err != nil {
		return fmt.Errorf("gpu: material layout: %w", err)
	}
	if b.modelLayout, err = uniformLayout("Model Bind Group Layout", ModelUniformSize, true); err != nil {
		return fmt.Errorf("gpu: model layout: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Cosmos Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.materialLayout, b.modelLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: pipeline layout: %w", err)
	}

	b.frameBuffer, err = b.createBuffer("Frame Uniform Buffer", make([]byte, FrameUniformSize), wgpu.BufferUsageUniform)
	if err != nil {
		return err
	}
	b.frameBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  b.frameBuffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		return fmt.Errorf("gpu: frame bind group: %w", err)
	}
	return nil
}

// configureSurface sizes the swapchain and recreates the depth texture.
// Caller must hold the mutex.
func (b *backendImpl) configureSurface(width, height int) error {
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   b.alphaMode,
	})

	b.releaseDepth()
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("gpu: depth texture: %w", err)
	}
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		depthTexture.Release()
		return fmt.Errorf("gpu: depth view: %w", err)
	}
	b.depthTexture = depthTexture
	b.depthView = depthView

	// View is set per frame to the swapchain view.
	b.renderPass = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clearColor,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	b.width, b.height = width, height
	b.logger.Debug().Int("width", width).Int("height", height).Msg("surface configured")
	return nil
}

// pipeline returns the render pipeline for key, creating it on first use.
// Caller must hold the mutex.
func (b *backendImpl) pipeline(key pipelineKey) (*wgpu.RenderPipeline, error) {
	if p, ok := b.pipelines[key]; ok {
		return p, nil
	}
	s := stateFor(key)

	target := wgpu.ColorTargetState{
		Format:    b.surfaceFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
	if s.blend {
		target.Blend = &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	}

	p, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("Cosmos Pipeline %d/%t/%t", key.topology, key.transparent, key.doubleSided),
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     b.shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: 12,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{{
					Format:         wgpu.VertexFormatFloat32x3,
					Offset:         0,
					ShaderLocation: 0,
				}},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     b.shader,
			EntryPoint: s.fragmentEntry,
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  s.topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  s.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: s.depthWrite,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create pipeline: %w", err)
	}
	b.pipelines[key] = p
	return p, nil
}

// ensureModelCapacity grows the per-draw model buffer to hold n slots.
// Caller must hold the mutex.
func (b *backendImpl) ensureModelCapacity(n int) error {
	if b.modelBuffer != nil && n <= b.modelCapacity {
		return nil
	}
	capacity := modelCapacityFor(n)
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Model Uniform Buffer",
		Size:  uint64(capacity * modelStride),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: model buffer: %w", err)
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Model Bind Group",
		Layout: b.modelLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Offset:  0,
			Size:    ModelUniformSize,
		}},
	})
	if err != nil {
		buf.Release()
		return fmt.Errorf("gpu: model bind group: %w", err)
	}
	b.releaseModel()
	b.modelBuffer = buf
	b.modelBindGroup = bg
	b.modelCapacity = capacity
	return nil
}

func (b *backendImpl) Draw(frame Frame, objects []*render.Object) error {
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil
	}
	items, lights := collectDraws(objects)
	sortDraws(items, frame.Eye)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device == nil {
		return fmt.Errorf("gpu: device released")
	}
	if frame.Width != b.width || frame.Height != b.height {
		if err := b.configureSurface(frame.Width, frame.Height); err != nil {
			return err
		}
	}

	// Resolve every draw before the pass opens so a failure leaves no pass dangling.
	type resolved struct {
		world    mgl32.Mat4
		mesh     *meshBuffers
		material *materialBinding
		pipeline *wgpu.RenderPipeline
	}
	draws := make([]resolved, 0, len(items))
	for _, it := range items {
		mesh, ok := it.object.Geometry.GPU().(*meshBuffers)
		if !ok || mesh.vertexBuffer == nil {
			continue
		}
		mb := b.materials[it.object.Material]
		if mb == nil {
			continue
		}
		p, err := b.pipeline(it.key)
		if err != nil {
			return err
		}
		draws = append(draws, resolved{world: it.world, mesh: mesh, material: mb, pipeline: p})
	}

	if err := b.ensureModelCapacity(len(draws)); err != nil {
		return err
	}
	fu := frameUniform(frame, lights)
	b.queue.WriteBuffer(b.frameBuffer, 0, fu.Marshal())
	if len(draws) > 0 {
		data := make([]byte, len(draws)*modelStride)
		for i, d := range draws {
			u := GPUModelUniform{World: d.world}
			u.MarshalInto(data, i*modelStride)
		}
		b.queue.WriteBuffer(b.modelBuffer, 0, data)
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		// Force a reconfigure next frame; the swapchain is usually outdated after a resize.
		b.width, b.height = 0, 0
		return fmt.Errorf("gpu: acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("gpu: surface view: %w", err)
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("gpu: command encoder: %w", err)
	}
	defer encoder.Release()

	b.renderPass.ColorAttachments[0].View = view
	pass := encoder.BeginRenderPass(b.renderPass)
	pass.SetBindGroup(0, b.frameBindGroup, nil)
	for i, d := range draws {
		pass.SetPipeline(d.pipeline)
		pass.SetBindGroup(1, d.material.bindGroup, nil)
		pass.SetBindGroup(2, b.modelBindGroup, []uint32{uint32(i * modelStride)})
		pass.SetVertexBuffer(0, d.mesh.vertexBuffer, 0, wgpu.WholeSize)
		if d.mesh.indexBuffer != nil {
			pass.SetIndexBuffer(d.mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			pass.DrawIndexed(uint32(d.mesh.indexCount), 1, 0, 0, 0)
		} else {
			pass.Draw(uint32(d.mesh.vertexCount), 1, 0, 0)
		}
	}
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("gpu: finish frame: %w", err)
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.surface.Present()
	return nil
}

// releaseDepth frees the depth attachment. Caller must hold the mutex.
func (b *backendImpl) releaseDepth() {
	if b.depthView != nil {
		b.depthView.Release()
		b.depthView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

// releaseModel frees the per-draw model buffer. Caller must hold the mutex.
func (b *backendImpl) releaseModel() {
	if b.modelBindGroup != nil {
		b.modelBindGroup.Release()
		b.modelBindGroup = nil
	}
	if b.modelBuffer != nil {
		b.modelBuffer.Release()
		b.modelBuffer = nil
	}
	b.modelCapacity = 0
}

// releaseRenderResources frees pipelines, layouts, the shader and frame targets.
// Caller must hold the mutex.
func (b *backendImpl) releaseRenderResources() {
	for key, p := range b.pipelines {
		p.Release()
		delete(b.pipelines, key)
	}
	b.releaseModel()
	b.releaseDepth()
	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
		b.frameBindGroup = nil
	}
	if b.frameBuffer != nil {
		b.frameBuffer.Release()
		b.frameBuffer = nil
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	for _, l := range []**wgpu.BindGroupLayout{&b.frameLayout, &b.materialLayout, &b.modelLayout} {
		if *l != nil {
			(*l).Release()
			*l = nil
		}
	}
	if b.shader != nil {
		b.shader.Release()
		b.shader = nil
	}
	b.width, b.height = 0, 0
}
