package gpu

import "github.com/cogentcore/webgpu/wgpu"

// meshBuffers holds the device copy of one geometry.
type meshBuffers struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	vertexCount  int
	indexCount   int
}

// Release frees both buffers. The geometry owning the mesh calls it once on dispose.
func (m *meshBuffers) Release() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
	m.vertexCount = 0
	m.indexCount = 0
}
