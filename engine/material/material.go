// Package material describes the surface appearance of scene meshes.
package material

// Side selects which triangle faces a material renders.
type Side int

const (
	SideFront Side = iota
	SideDouble
)

// Releaser is a GPU-side resource owned by a material.
type Releaser interface {
	Release()
}

// material is the implementation of the Material interface.
type material struct {
	name              string
	baseColor         [4]float32
	emissive          [3]float32
	emissiveIntensity float32
	metallic          float32
	roughness         float32
	transparent       bool
	side              Side
	unlit             bool

	gpuResource Releaser
	disposed    bool
}

// Material defines the interface for a render material: surface colour, emission,
// transparency and face culling, plus the GPU resource backing it once uploaded.
//
// Surface properties are fixed at construction. A material shared between meshes
// is owned by the resource cache that created it and disposed exactly once.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the RGBA colour of the material. Alpha below 1 only takes
	// effect when the material is transparent.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Emissive retrieves the RGB emission colour and its intensity multiplier.
	//
	// Returns:
	//   - [3]float32: the emission colour
	//   - float32: the emission intensity
	Emissive() ([3]float32, float32)

	// Metallic retrieves the metallic factor of the material.
	//
	// Returns:
	//   - float32: the metallic factor
	Metallic() float32

	// Roughness retrieves the roughness factor of the material.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// Transparent reports whether the material is alpha blended.
	//
	// Returns:
	//   - bool: true when blended
	Transparent() bool

	// Side retrieves which faces are rendered.
	//
	// Returns:
	//   - Side: front only or both faces
	Side() Side

	// Unlit reports whether lighting is ignored and the base colour drawn as is.
	//
	// Returns:
	//   - bool: true for basic, unlit materials
	Unlit() bool

	// SetGPUResource attaches the GPU resource backing this material. The material
	// takes ownership and releases it on Dispose.
	//
	// Parameters:
	//   - r: the resource to own
	SetGPUResource(r Releaser)

	// Dispose releases the GPU resource, if any, and marks the material disposed.
	Dispose()

	// Disposed reports whether Dispose has been called.
	//
	// Returns:
	//   - bool: true after Dispose
	Disposed() bool
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: [4]float32{1, 1, 1, 1},
		metallic:  0.0,
		roughness: 1.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Emissive() ([3]float32, float32) {
	return m.emissive, m.emissiveIntensity
}

func (m *material) Metallic() float32 {
	return m.metallic
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) Side() Side {
	return m.side
}

func (m *material) Unlit() bool {
	return m.unlit
}

func (m *material) SetGPUResource(r Releaser) {
	m.gpuResource = r
}

func (m *material) Dispose() {
	if m.gpuResource != nil {
		m.gpuResource.Release()
		m.gpuResource = nil
	}
	m.disposed = true
}

func (m *material) Disposed() bool {
	return m.disposed
}
