// Package light describes light sources attached to scene nodes.
package light

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypePoint emits in all directions from a position and attenuates
	// with distance up to its range.
	LightTypePoint LightType = iota

	// LightTypeAmbient lights every fragment uniformly. Position and range are ignored.
	LightTypeAmbient
)

func (t LightType) String() string {
	switch t {
	case LightTypePoint:
		return "point"
	case LightTypeAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType  LightType
	position   [3]float32
	color      [3]float32
	intensity  float32
	lightRange float32
}

// Light defines the interface for a light source in the scene.
//
// Lights are immutable once built. A light attached to a render node is positioned
// relative to that node.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the position of the light relative to its parent node.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the attenuation distance of a point light. Zero means unlimited.
	//
	// Returns:
	//   - float32: the range value
	Range() float32
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type.
//
// Parameters:
//   - lightType: the kind of light source
//   - opts: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     [3]float32{1, 1, 1},
		intensity: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}
