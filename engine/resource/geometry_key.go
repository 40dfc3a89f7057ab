package resource

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Shape identifies a geometry generator.
type Shape int

const (
	ShapeRing Shape = iota
	ShapeSphere
	ShapeHemisphere
	ShapeBox
	ShapeCylinder
	ShapePolarGrid
	ShapeStarfield
)

// GeometryKey identifies a geometry by shape and parameters. Dimensions are stored
// in hundredths so that keys built from equal rounded values compare equal.
type GeometryKey struct {
	Shape    Shape
	Dims     [3]int32
	Segments [2]int
}

func quantize(v float32) int32 {
	return int32(math32.Round(v * 100))
}

func (k GeometryKey) dim(i int) float32 {
	return float32(k.Dims[i]) / 100
}

// RingKey identifies a flat annulus.
func RingKey(inner, outer float32, segments int) GeometryKey {
	return GeometryKey{Shape: ShapeRing, Dims: [3]int32{quantize(inner), quantize(outer)}, Segments: [2]int{segments}}
}

// SphereKey identifies a UV sphere with the same width and height segment count.
func SphereKey(radius float32, segments int) GeometryKey {
	return GeometryKey{Shape: ShapeSphere, Dims: [3]int32{quantize(radius)}, Segments: [2]int{segments}}
}

// HemisphereKey identifies the upper half of a UV sphere.
func HemisphereKey(radius float32, segments int) GeometryKey {
	return GeometryKey{Shape: ShapeHemisphere, Dims: [3]int32{quantize(radius)}, Segments: [2]int{segments}}
}

// BoxKey identifies an axis-aligned box centred on the origin.
func BoxKey(width, height, depth float32) GeometryKey {
	return GeometryKey{Shape: ShapeBox, Dims: [3]int32{quantize(width), quantize(height), quantize(depth)}}
}

// CylinderKey identifies a capped cylinder along the Y axis.
func CylinderKey(radiusTop, radiusBottom, height float32, radialSegments int) GeometryKey {
	return GeometryKey{
		Shape:    ShapeCylinder,
		Dims:     [3]int32{quantize(radiusTop), quantize(radiusBottom), quantize(height)},
		Segments: [2]int{radialSegments},
	}
}

// PolarGridKey identifies the set of orbit circles drawn behind the ranked entities.
func PolarGridKey(rings int, gap, offset float32, segments int) GeometryKey {
	return GeometryKey{Shape: ShapePolarGrid, Dims: [3]int32{quantize(gap), quantize(offset)}, Segments: [2]int{rings, segments}}
}

// StarfieldKey identifies a shell of background points.
func StarfieldKey(count int, radius float32) GeometryKey {
	return GeometryKey{Shape: ShapeStarfield, Dims: [3]int32{quantize(radius)}, Segments: [2]int{count}}
}

// String returns the canonical descriptor of the key, such as "ring-1.20-1.50-32".
func (k GeometryKey) String() string {
	switch k.Shape {
	case ShapeRing:
		return fmt.Sprintf("ring-%.2f-%.2f-%d", k.dim(0), k.dim(1), k.Segments[0])
	case ShapeSphere:
		return fmt.Sprintf("sphere-%.2f-%d", k.dim(0), k.Segments[0])
	case ShapeHemisphere:
		return fmt.Sprintf("hemisphere-%.2f-%d", k.dim(0), k.Segments[0])
	case ShapeBox:
		return fmt.Sprintf("box-%.2f-%.2f-%.2f", k.dim(0), k.dim(1), k.dim(2))
	case ShapeCylinder:
		return fmt.Sprintf("cylinder-%.2f-%.2f-%.2f-%d", k.dim(0), k.dim(1), k.dim(2), k.Segments[0])
	case ShapePolarGrid:
		return fmt.Sprintf("grid-%d-%.2f-%.2f-%d", k.Segments[0], k.dim(0), k.dim(1), k.Segments[1])
	case ShapeStarfield:
		return fmt.Sprintf("stars-%d-%.2f", k.Segments[0], k.dim(0))
	default:
		return fmt.Sprintf("shape%d", int(k.Shape))
	}
}
