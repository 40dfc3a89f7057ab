package resource

import "github.com/go-gl/mathgl/mgl32"

// Label is a screen-anchored text overlay that follows an entity.
type Label struct {
	ID   string
	Text string
	// Screen is the anchor in pixels, updated every frame from the camera projection.
	Screen  mgl32.Vec2
	Visible bool
}

// LabelRegistry keeps one Label per entity for the lifetime of a scene.
// Labels hold no GPU resources, so Clear drops them without disposing anything.
type LabelRegistry struct {
	labels map[string]*Label
}

// NewLabelRegistry creates an empty registry.
func NewLabelRegistry() *LabelRegistry {
	return &LabelRegistry{labels: make(map[string]*Label)}
}

// GetOrCreate returns the label for id, creating it on first use. The text is
// refreshed when it differs from the stored one.
//
// Parameters:
//   - id: the entity identifier
//   - text: the label text
//
// Returns:
//   - *Label: the shared label instance for id
func (r *LabelRegistry) GetOrCreate(id, text string) *Label {
	l, ok := r.labels[id]
	if !ok {
		l = &Label{ID: id, Text: text}
		r.labels[id] = l
		return l
	}
	if l.Text != text {
		l.Text = text
	}
	return l
}

// Get returns the label for id, or nil.
func (r *LabelRegistry) Get(id string) *Label {
	return r.labels[id]
}

// Len returns the number of labels.
func (r *LabelRegistry) Len() int {
	return len(r.labels)
}

// HideAll marks every label invisible. Labels reached during the next frame
// become visible again.
func (r *LabelRegistry) HideAll() {
	for _, l := range r.labels {
		l.Visible = false
	}
}

// Visible returns the labels currently marked visible.
func (r *LabelRegistry) Visible() []*Label {
	var out []*Label
	for _, l := range r.labels {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}

// Clear removes every label.
func (r *LabelRegistry) Clear() {
	clear(r.labels)
}
