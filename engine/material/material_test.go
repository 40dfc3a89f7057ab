package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingReleaser struct{ n int }

func (c *countingReleaser) Release() { c.n++ }

func TestNewMaterialOptions(t *testing.T) {
	m := NewMaterial(
		WithName("hub"),
		WithHex(0xffcc00),
		WithEmissive(0xff8800, 0.5),
		WithSide(SideDouble),
		WithOpacity(0.8),
	)

	assert.Equal(t, "hub", m.Name())
	c := m.BaseColor()
	assert.InDelta(t, 1, c[0], 1e-6)
	assert.InDelta(t, 0.8, c[1], 1e-6)
	assert.InDelta(t, 0, c[2], 1e-6)
	assert.InDelta(t, 0.8, c[3], 1e-6)
	assert.True(t, m.Transparent())
	assert.Equal(t, SideDouble, m.Side())

	e, intensity := m.Emissive()
	assert.InDelta(t, 0x88/255.0, e[1], 1e-6)
	assert.Equal(t, float32(0.5), intensity)
}

func TestDisposeReleasesGPUResourceOnce(t *testing.T) {
	r := &countingReleaser{}
	m := NewMaterial()
	m.SetGPUResource(r)

	assert.False(t, m.Disposed())
	m.Dispose()
	m.Dispose()
	assert.True(t, m.Disposed())
	assert.Equal(t, 1, r.n)
}

func TestUniformBytesLayout(t *testing.T) {
	m := NewMaterial(WithHex(0xff0000), WithEmissive(0x0000ff, 2), WithUnlit())
	b := UniformBytes(m)

	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
	}
	assert.Len(t, b, UniformSize)
	assert.Equal(t, float32(1), read(0))
	assert.Equal(t, float32(1), read(12))
	assert.Equal(t, float32(1), read(24))
	assert.Equal(t, float32(2), read(28))
	assert.Equal(t, float32(1), read(36))
	assert.Equal(t, float32(1), read(40))
}
