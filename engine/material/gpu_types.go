package material

import (
	"encoding/binary"
	"math"
)

// UniformSize is the byte size of the material uniform block.
const UniformSize = 48

// GPUMaterialUniform mirrors the WGSL MaterialUniform struct (48 bytes, std140 aligned).
type GPUMaterialUniform struct {
	BaseColor [4]float32 // offset  0
	Emissive  [4]float32 // offset 16: rgb + intensity
	Metallic  float32    // offset 32
	Roughness float32    // offset 36
	Unlit     float32    // offset 40: 1 when lighting is skipped
	_pad      float32    // offset 44
}

// Marshal serializes the uniform into little-endian bytes for upload.
//
// Returns:
//   - []byte: the serialized uniform, UniformSize bytes long
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, UniformSize)
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i := range 4 {
		put(i*4, g.BaseColor[i])
		put(16+i*4, g.Emissive[i])
	}
	put(32, g.Metallic)
	put(36, g.Roughness)
	put(40, g.Unlit)
	put(44, 0)
	return buf
}

// UniformBytes builds the uniform block for m.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - []byte: the serialized uniform
func UniformBytes(m Material) []byte {
	emissive, intensity := m.Emissive()
	u := GPUMaterialUniform{
		BaseColor: m.BaseColor(),
		Emissive:  [4]float32{emissive[0], emissive[1], emissive[2], intensity},
		Metallic:  m.Metallic(),
		Roughness: m.Roughness(),
	}
	if m.Unlit() {
		u.Unlit = 1
	}
	return u.Marshal()
}
