package resource

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// Topology is the primitive assembly of a geometry's index list.
type Topology int

const (
	TopologyTriangles Topology = iota
	TopologyLines
	TopologyPoints
)

// GPUMesh is the device-side copy of a geometry.
type GPUMesh interface {
	Release()
}

// Geometry is immutable vertex data for one GeometryKey, optionally mirrored on the GPU.
type Geometry struct {
	Key      GeometryKey
	Topology Topology
	// Vertices holds packed xyz positions.
	Vertices []float32
	Indices  []uint32

	gpu      GPUMesh
	disposed bool
}

// VertexCount returns the number of xyz positions.
func (g *Geometry) VertexCount() int {
	return len(g.Vertices) / 3
}

// GPU returns the uploaded mesh, or nil when the geometry is CPU only.
func (g *Geometry) GPU() GPUMesh {
	return g.gpu
}

// Disposed reports whether Dispose has been called.
func (g *Geometry) Disposed() bool {
	return g.disposed
}

// Dispose releases the GPU mesh, if any.
func (g *Geometry) Dispose() {
	if g.gpu != nil {
		g.gpu.Release()
		g.gpu = nil
	}
	g.disposed = true
}

// BuildGeometry generates the vertex data described by key. It touches no shared
// state and is safe to call from worker goroutines.
func BuildGeometry(key GeometryKey) *Geometry {
	g := &Geometry{Key: key, Topology: TopologyTriangles}
	switch key.Shape {
	case ShapeRing:
		g.Vertices, g.Indices = ring(key.dim(0), key.dim(1), max(key.Segments[0], 3))
	case ShapeSphere:
		seg := max(key.Segments[0], 3)
		g.Vertices, g.Indices = sphere(key.dim(0), seg, max(seg, 2), math32.Pi)
	case ShapeHemisphere:
		seg := max(key.Segments[0], 3)
		g.Vertices, g.Indices = sphere(key.dim(0), seg, max(seg/2, 2), math32.Pi/2)
	case ShapeBox:
		g.Vertices, g.Indices = box(key.dim(0), key.dim(1), key.dim(2))
	case ShapeCylinder:
		g.Vertices, g.Indices = cylinder(key.dim(0), key.dim(1), key.dim(2), max(key.Segments[0], 3))
	case ShapePolarGrid:
		g.Topology = TopologyLines
		g.Vertices, g.Indices = polarGrid(key.Segments[0], key.dim(0), key.dim(1), max(key.Segments[1], 3))
	case ShapeStarfield:
		g.Topology = TopologyPoints
		g.Vertices = starfield(key.Segments[0], key.dim(0))
	default:
		panic("resource: unknown geometry shape " + key.String())
	}
	return g
}

// ring lies in the XY plane; callers rotate it onto the orbit plane.
func ring(inner, outer float32, segments int) ([]float32, []uint32) {
	verts := make([]float32, 0, (segments+1)*6)
	for i := 0; i <= segments; i++ {
		theta := float32(i) / float32(segments) * 2 * math32.Pi
		c, s := math32.Cos(theta), math32.Sin(theta)
		verts = append(verts, inner*c, inner*s, 0, outer*c, outer*s, 0)
	}
	idx := make([]uint32, 0, segments*6)
	for i := 0; i < segments; i++ {
		a, b := uint32(2*i), uint32(2*i+1)
		c, d := a+2, b+2
		idx = append(idx, a, b, d, a, d, c)
	}
	return verts, idx
}

// sphere sweeps theta from the +Y pole down to thetaLength.
func sphere(radius float32, widthSeg, heightSeg int, thetaLength float32) ([]float32, []uint32) {
	verts := make([]float32, 0, (widthSeg+1)*(heightSeg+1)*3)
	for y := 0; y <= heightSeg; y++ {
		theta := float32(y) / float32(heightSeg) * thetaLength
		for x := 0; x <= widthSeg; x++ {
			phi := float32(x) / float32(widthSeg) * 2 * math32.Pi
			verts = append(verts,
				-radius*math32.Cos(phi)*math32.Sin(theta),
				radius*math32.Cos(theta),
				radius*math32.Sin(phi)*math32.Sin(theta),
			)
		}
	}

	closedBottom := thetaLength >= math32.Pi
	row := uint32(widthSeg + 1)
	idx := make([]uint32, 0, widthSeg*heightSeg*6)
	for y := 0; y < heightSeg; y++ {
		for x := 0; x < widthSeg; x++ {
			a := uint32(y)*row + uint32(x) + 1
			b := uint32(y)*row + uint32(x)
			c := uint32(y+1)*row + uint32(x)
			d := uint32(y+1)*row + uint32(x) + 1
			if y != 0 {
				idx = append(idx, a, b, d)
			}
			if y != heightSeg-1 || !closedBottom {
				idx = append(idx, b, c, d)
			}
		}
	}
	return verts, idx
}

func box(w, h, d float32) ([]float32, []uint32) {
	hw, hh, hd := w/2, h/2, d/2
	faces := [6][4][3]float32{
		{{hw, -hh, hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {hw, hh, hd}},     // +x
		{{-hw, -hh, -hd}, {-hw, -hh, hd}, {-hw, hh, hd}, {-hw, hh, -hd}}, // -x
		{{-hw, hh, hd}, {hw, hh, hd}, {hw, hh, -hd}, {-hw, hh, -hd}},     // +y
		{{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, -hh, hd}, {-hw, -hh, hd}}, // -y
		{{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd}},     // +z
		{{hw, -hh, -hd}, {-hw, -hh, -hd}, {-hw, hh, -hd}, {hw, hh, -hd}}, // -z
	}
	verts := make([]float32, 0, 24*3)
	idx := make([]uint32, 0, 36)
	for f, quad := range faces {
		for _, v := range quad {
			verts = append(verts, v[0], v[1], v[2])
		}
		base := uint32(f * 4)
		idx = append(idx, base, base+1, base+2, base, base+2, base+3)
	}
	return verts, idx
}

func cylinder(radiusTop, radiusBottom, height float32, radial int) ([]float32, []uint32) {
	half := height / 2
	row := uint32(radial + 1)
	verts := make([]float32, 0, (2*(radial+1)+2)*3)
	for y, r := range [2]float32{radiusTop, radiusBottom} {
		py := half - float32(y)*height
		for x := 0; x <= radial; x++ {
			theta := float32(x) / float32(radial) * 2 * math32.Pi
			verts = append(verts, r*math32.Sin(theta), py, r*math32.Cos(theta))
		}
	}
	idx := make([]uint32, 0, radial*12)
	for x := uint32(0); x < uint32(radial); x++ {
		a, b := x, row+x
		c, d := row+x+1, x+1
		idx = append(idx, a, b, d, b, c, d)
	}

	top := uint32(len(verts) / 3)
	verts = append(verts, 0, half, 0)
	bottom := top + 1
	verts = append(verts, 0, -half, 0)
	for x := uint32(0); x < uint32(radial); x++ {
		idx = append(idx, top, x, x+1)
		idx = append(idx, bottom, row+x+1, row+x)
	}
	return verts, idx
}

// polarGrid draws one circle per ring on the XZ plane as a line list.
func polarGrid(rings int, gap, offset float32, segments int) ([]float32, []uint32) {
	verts := make([]float32, 0, rings*segments*3)
	idx := make([]uint32, 0, rings*segments*2)
	for r := 0; r < rings; r++ {
		radius := (offset + float32(r)) * gap
		base := uint32(r * segments)
		for i := 0; i < segments; i++ {
			theta := float32(i) / float32(segments) * 2 * math32.Pi
			verts = append(verts, radius*math32.Cos(theta), 0, radius*math32.Sin(theta))
			next := uint32((i + 1) % segments)
			idx = append(idx, base+uint32(i), base+next)
		}
	}
	return verts, idx
}

// starfield scatters count points through the outer half of a sphere of the given
// radius. The layout is seeded by count so equal keys produce equal skies.
func starfield(count int, radius float32) []float32 {
	rng := rand.New(rand.NewSource(int64(count)))
	verts := make([]float32, 0, count*3)
	for i := 0; i < count; i++ {
		u := float32(rng.Float64())*2 - 1
		phi := float32(rng.Float64()) * 2 * math32.Pi
		r := radius * (0.5 + 0.5*float32(rng.Float64()))
		s := math32.Sqrt(1 - u*u)
		verts = append(verts, r*s*math32.Cos(phi), r*u, r*s*math32.Sin(phi))
	}
	return verts
}
