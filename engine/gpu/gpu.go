// Package gpu owns the WebGPU device, mirrors cached geometries and materials into
// device buffers and draws render trees to the window surface.
package gpu

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Chemberlein/ADA-Cosmos/common"
	"github.com/Chemberlein/ADA-Cosmos/engine/material"
	"github.com/Chemberlein/ADA-Cosmos/engine/render"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog"
)

// Backend uploads scene resources to a WebGPU device.
type Backend interface {
	resource.Uploader

	// UploadMaterial writes the material's uniform block to a new buffer, binds it for
	// drawing and hands the binding to the material, which releases it on Dispose.
	//
	// Parameters:
	//   - m: the material to upload
	//
	// Returns:
	//   - error: error if buffer creation fails
	UploadMaterial(m material.Material) error

	// Draw renders one frame of the given render trees and presents it. The surface is
	// reconfigured whenever the frame size changes. Nodes whose geometry or material
	// has not been uploaded are skipped.
	//
	// Parameters:
	//   - frame: camera matrices and drawable size
	//   - objects: render tree roots
	//
	// Returns:
	//   - error: error if the surface or a pipeline cannot be prepared
	Draw(frame Frame, objects []*render.Object) error

	// Release destroys the device, adapter, surface and instance.
	Release()
}

type backendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat  wgpu.TextureFormat
	alphaMode      wgpu.CompositeAlphaMode
	width, height  int
	depthTexture   *wgpu.Texture
	depthView      *wgpu.TextureView
	renderPass     *wgpu.RenderPassDescriptor
	shader         *wgpu.ShaderModule
	frameLayout    *wgpu.BindGroupLayout
	materialLayout *wgpu.BindGroupLayout
	modelLayout    *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout
	pipelines      map[pipelineKey]*wgpu.RenderPipeline
	frameBuffer    *wgpu.Buffer
	frameBindGroup *wgpu.BindGroup
	modelBuffer    *wgpu.Buffer
	modelBindGroup *wgpu.BindGroup
	modelCapacity  int
	materials      map[material.Material]*materialBinding

	forceFallbackAdapter bool
	logger               zerolog.Logger
}

var _ Backend = &backendImpl{}

// NewBackend requests an adapter compatible with the window surface and opens a device on it.
//
// Parameters:
//   - surfaceDescriptor: platform surface of the target window
//   - options: functional options to configure the backend
//
// Returns:
//   - Backend: the ready backend
//   - error: error if no adapter or device is available
func NewBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...BackendBuilderOption) (Backend, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("gpu: nil surface descriptor")
	}
	runtime.LockOSThread()

	b := &backendImpl{
		mu:        &sync.Mutex{},
		pipelines: make(map[pipelineKey]*wgpu.RenderPipeline),
		materials: make(map[material.Material]*materialBinding),
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(b)
	}

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("gpu: request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Cosmos Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	b.mu.Lock()
	err = b.initRenderResources()
	b.mu.Unlock()
	if err != nil {
		b.Release()
		return nil, err
	}

	b.logger.Info().Bool("fallback", b.forceFallbackAdapter).Msg("gpu device ready")
	return b, nil
}

func (b *backendImpl) UploadMesh(g *resource.Geometry) (resource.GPUMesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	label := g.Key.String()
	mesh := &meshBuffers{vertexCount: g.VertexCount(), indexCount: len(g.Indices)}

	if vertexData := common.SliceToBytes(g.Vertices); len(vertexData) > 0 {
		buf, err := b.createBuffer(label+" Vertex Buffer", vertexData, wgpu.BufferUsageVertex)
		if err != nil {
			return nil, err
		}
		mesh.vertexBuffer = buf
	}

	if indexData := common.SliceToBytes(g.Indices); len(indexData) > 0 {
		buf, err := b.createBuffer(label+" Index Buffer", indexData, wgpu.BufferUsageIndex)
		if err != nil {
			mesh.Release()
			return nil, err
		}
		mesh.indexBuffer = buf
	}

	return mesh, nil
}

func (b *backendImpl) UploadMaterial(m material.Material) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.createBuffer(m.Name()+" Uniform Buffer", material.UniformBytes(m), wgpu.BufferUsageUniform)
	if err != nil {
		return err
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  m.Name() + " Bind Group",
		Layout: b.materialLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		buf.Release()
		return fmt.Errorf("gpu: bind %s: %w", m.Name(), err)
	}
	binding := &materialBinding{backend: b, material: m, buffer: buf, bindGroup: bg}
	b.materials[m] = binding
	m.SetGPUResource(binding)
	return nil
}

func (b *backendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseRenderResources()
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// createBuffer allocates a buffer of the given usage and fills it through the queue.
// Caller must hold the mutex.
func (b *backendImpl) createBuffer(label string, data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	if b.device == nil {
		return nil, fmt.Errorf("gpu: device released")
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             uint64(len(data)),
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
