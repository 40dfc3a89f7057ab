package gpu

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// ShaderSource is the WGSL program every pipeline is built from. Its uniform structs
// match GPUFrameUniform, material.GPUMaterialUniform and GPUModelUniform.
//
//go:embed assets/cosmos.wgsl
var ShaderSource string

const (
	// FrameUniformSize is the byte size of GPUFrameUniform.
	FrameUniformSize = 128

	// ModelUniformSize is the byte size of GPUModelUniform.
	ModelUniformSize = 64

	// modelStride is the distance between per-draw model slots. It matches the
	// default minUniformBufferOffsetAlignment so each slot is a valid dynamic offset.
	modelStride = 256
)

// GPUFrameUniform is the per-frame camera and lighting block (128 bytes, std140 aligned).
type GPUFrameUniform struct {
	ViewProj      [16]float32 // offset   0
	Eye           [4]float32  // offset  64: xyz, w unused
	LightPosition [4]float32  // offset  80: xyz, w unused
	LightColor    [4]float32  // offset  96: rgb + intensity
	Ambient       [4]float32  // offset 112: rgb + intensity
}

// Marshal serializes the uniform into little-endian bytes for upload.
//
// Returns:
//   - []byte: FrameUniformSize bytes
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, FrameUniformSize)
	putFloats(buf, 0, g.ViewProj[:])
	putFloats(buf, 64, g.Eye[:])
	putFloats(buf, 80, g.LightPosition[:])
	putFloats(buf, 96, g.LightColor[:])
	putFloats(buf, 112, g.Ambient[:])
	return buf
}

// GPUModelUniform is the world matrix of one draw (64 bytes).
type GPUModelUniform struct {
	World [16]float32 // offset 0, mat4x4<f32>
}

// MarshalInto writes the uniform at off in dst, which must hold ModelUniformSize bytes past off.
//
// Parameters:
//   - dst: destination buffer
//   - off: byte offset of the slot
func (g *GPUModelUniform) MarshalInto(dst []byte, off int) {
	putFloats(dst, off, g.World[:])
}

func putFloats(dst []byte, off int, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(dst[off+i*4:], math.Float32bits(v))
	}
}
