package resource

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Chemberlein/ADA-Cosmos/engine/material"
	"github.com/rs/zerolog"
)

const (
	HoverMaterialName    = "highlight-hover"
	SelectedMaterialName = "highlight-selected"

	hoverColor    uint32 = 0xff0000
	selectedColor uint32 = 0xffa500
)

// Uploader copies geometry vertex data to the GPU.
type Uploader interface {
	// UploadMesh creates device buffers for g.
	//
	// Parameters:
	//   - g: the geometry to upload
	//
	// Returns:
	//   - GPUMesh: the device-side mesh, owned by the geometry from then on
	//   - error: error if buffer creation fails
	UploadMesh(g *Geometry) (GPUMesh, error)
}

// MaterialUploader is implemented by uploaders that also keep material uniforms on the GPU.
type MaterialUploader interface {
	UploadMaterial(m material.Material) error
}

// Stats is a snapshot of cache sizes.
type Stats struct {
	Geometries int
	Materials  int
	Labels     int
	Uploaded   int
}

// Resources is the per-scene resource cache. It is created on mount and disposed
// on unmount through Dispose, the only teardown path.
// Resources is used from the scene's loop goroutine only; Prewarm fans work out
// to a worker pool but joins before touching the caches.
type Resources struct {
	geometries *Cache[GeometryKey, *Geometry]
	materials  *Cache[string, material.Material]
	labels     *LabelRegistry

	hover    material.Material
	selected material.Material

	uploader Uploader
	workers  int
	pool     worker.DynamicWorkerPool

	logger zerolog.Logger
}

// NewResources creates an empty cache with the shared highlight materials in place.
//
// Parameters:
//   - options: functional options to configure the cache
//
// Returns:
//   - *Resources: the newly created cache
func NewResources(options ...ResourcesBuilderOption) *Resources {
	r := &Resources{
		geometries: NewCache[GeometryKey, *Geometry](),
		materials:  NewCache[string, material.Material](),
		labels:     NewLabelRegistry(),
		workers:    max(runtime.NumCPU()-1, 1),
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(r)
	}

	r.hover = r.Material(HoverMaterialName,
		material.WithHex(hoverColor), material.WithSide(material.SideDouble), material.WithUnlit())
	r.selected = r.Material(SelectedMaterialName,
		material.WithHex(selectedColor), material.WithSide(material.SideDouble), material.WithUnlit())
	return r
}

// Geometry returns the cached geometry for key, generating and uploading it on a miss.
func (r *Resources) Geometry(key GeometryKey) *Geometry {
	return r.geometries.GetOrCreate(key, func() *Geometry {
		return r.upload(BuildGeometry(key))
	})
}

// RingGeometry returns the highlight ring with the given radii and segment count.
// Equal rounded parameters always yield the same instance.
func (r *Resources) RingGeometry(inner, outer float32, segments int) *Geometry {
	return r.Geometry(RingKey(inner, outer, segments))
}

// SphereGeometry returns a cached UV sphere.
func (r *Resources) SphereGeometry(radius float32, segments int) *Geometry {
	return r.Geometry(SphereKey(radius, segments))
}

// HemisphereGeometry returns a cached half sphere.
func (r *Resources) HemisphereGeometry(radius float32, segments int) *Geometry {
	return r.Geometry(HemisphereKey(radius, segments))
}

// BoxGeometry returns a cached box.
func (r *Resources) BoxGeometry(width, height, depth float32) *Geometry {
	return r.Geometry(BoxKey(width, height, depth))
}

// CylinderGeometry returns a cached cylinder.
func (r *Resources) CylinderGeometry(radiusTop, radiusBottom, height float32, radialSegments int) *Geometry {
	return r.Geometry(CylinderKey(radiusTop, radiusBottom, height, radialSegments))
}

// PolarGrid returns the cached orbit circles.
func (r *Resources) PolarGrid(rings int, gap, offset float32, segments int) *Geometry {
	return r.Geometry(PolarGridKey(rings, gap, offset, segments))
}

// Starfield returns the cached background points.
func (r *Resources) Starfield(count int, radius float32) *Geometry {
	return r.Geometry(StarfieldKey(count, radius))
}

// Material returns the material registered under name, building it from options on
// first use. Options passed on later calls are ignored.
func (r *Resources) Material(name string, options ...material.MaterialBuilderOption) material.Material {
	return r.materials.GetOrCreate(name, func() material.Material {
		m := material.NewMaterial(append([]material.MaterialBuilderOption{material.WithName(name)}, options...)...)
		r.uploadMaterial(m)
		return m
	})
}

// HoverMaterial returns the shared material for hover rings.
func (r *Resources) HoverMaterial() material.Material {
	return r.hover
}

// SelectedMaterial returns the shared material for selection rings.
func (r *Resources) SelectedMaterial() material.Material {
	return r.selected
}

// Labels returns the label registry.
func (r *Resources) Labels() *LabelRegistry {
	return r.labels
}

// HasGeometry reports whether key has been generated.
func (r *Resources) HasGeometry(key GeometryKey) bool {
	return r.geometries.Has(key)
}

// Prewarm generates every missing geometry in keys on the worker pool, then uploads
// and stores them on the calling goroutine.
//
// Parameters:
//   - keys: geometries expected to be needed soon; duplicates and cached keys are skipped
//
// Returns:
//   - int: the number of geometries added
func (r *Resources) Prewarm(keys []GeometryKey) int {
	seen := make(map[GeometryKey]struct{}, len(keys))
	missing := make([]GeometryKey, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup || r.geometries.Has(k) {
			continue
		}
		seen[k] = struct{}{}
		missing = append(missing, k)
	}
	if len(missing) == 0 {
		return 0
	}

	if r.pool == nil {
		r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	}

	// The pool's own Wait blocks until workers idle out, so a WaitGroup is the barrier.
	built := make([]*Geometry, len(missing))
	var wg sync.WaitGroup
	for i, k := range missing {
		wg.Add(1)
		r.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				built[i] = BuildGeometry(k)
				return nil, nil
			},
		})
	}
	wg.Wait()

	for _, g := range built {
		r.geometries.Set(g.Key, r.upload(g))
	}
	r.logger.Debug().Int("count", len(built)).Msg("prewarmed geometries")
	return len(built)
}

// Stats returns the current cache sizes.
func (r *Resources) Stats() Stats {
	s := Stats{
		Geometries: r.geometries.Len(),
		Materials:  r.materials.Len(),
		Labels:     r.labels.Len(),
	}
	r.geometries.ForEach(func(_ GeometryKey, g *Geometry) {
		if g.GPU() != nil {
			s.Uploaded++
		}
	})
	return s
}

// Dispose stops the prewarm workers, releases every geometry and material and drops all labels.
func (r *Resources) Dispose() {
	stats := r.Stats()
	if r.pool != nil {
		r.pool.Stop()
		r.pool = nil
	}
	r.geometries.Clear()
	r.materials.Clear()
	r.labels.Clear()
	r.logger.Debug().
		Int("geometries", stats.Geometries).
		Int("materials", stats.Materials).
		Int("labels", stats.Labels).
		Msg("resources disposed")
}

func (r *Resources) upload(g *Geometry) *Geometry {
	if r.uploader == nil {
		return g
	}
	mesh, err := r.uploader.UploadMesh(g)
	if err != nil {
		r.logger.Warn().Err(err).Str("geometry", g.Key.String()).Msg("geometry upload failed, keeping CPU copy")
		return g
	}
	g.gpu = mesh
	return g
}

func (r *Resources) uploadMaterial(m material.Material) {
	mu, ok := r.uploader.(MaterialUploader)
	if !ok {
		return
	}
	if err := mu.UploadMaterial(m); err != nil {
		r.logger.Warn().Err(err).Str("material", m.Name()).Msg("material upload failed")
	}
}
