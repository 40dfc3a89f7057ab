// Package layout assigns orbital positions to the ranked list and appends the
// optional hub and explorer entities.
package layout

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/chewxy/math32"
)

var (
	// ErrEmptyID is returned when a ranked input has no identifier.
	ErrEmptyID = errors.New("layout: empty entity id")

	// ErrDuplicateID is returned when two entities would share an identifier.
	ErrDuplicateID = errors.New("layout: duplicate entity id")
)

// Layout is the positioned node set for one data snapshot.
type Layout struct {
	Ranked   []*entity.Ranked
	Hub      *entity.Hub
	Explorer *entity.Explorer

	ringGap    float32
	baseOffset float32
}

// Nodes returns every entity in render order: ranked first, then the hub, then the explorer.
//
// Returns:
//   - []entity.Entity: a fresh slice of the layout's entities
func (l *Layout) Nodes() []entity.Entity {
	nodes := make([]entity.Entity, 0, len(l.Ranked)+2)
	for _, r := range l.Ranked {
		nodes = append(nodes, r)
	}
	if l.Hub != nil {
		nodes = append(nodes, l.Hub)
	}
	if l.Explorer != nil {
		nodes = append(nodes, l.Explorer)
	}
	return nodes
}

// Find looks up an entity by identifier.
//
// Parameters:
//   - id: the identifier to look for
//
// Returns:
//   - entity.Entity: the entity, or nil if none matches
func (l *Layout) Find(id string) entity.Entity {
	for _, n := range l.Nodes() {
		if n.ID() == id {
			return n
		}
	}
	return nil
}

// RingCount returns the number of orbit rings occupied by ranked entities.
func (l *Layout) RingCount() int {
	return len(l.Ranked)
}

// RingGap returns the radial spacing between consecutive rings.
func (l *Layout) RingGap() float32 {
	return l.ringGap
}

// BaseOffset returns the number of empty rings inside the first occupied one.
func (l *Layout) BaseOffset() float32 {
	return l.baseOffset
}

// Extent returns the largest distance of any entity from the origin.
func (l *Layout) Extent() float32 {
	var max float32
	for _, n := range l.Nodes() {
		if d := n.Position().Len(); d > max {
			max = d
		}
	}
	return max
}

// Build positions the ranked inputs on concentric rings and appends the hub and
// explorer when their data is present. Inputs are never mutated.
//
// Ranked entity i sits on radius (baseOffset + i) * ringGap at a random angle
// drawn once. The hub is placed at the origin when hub is non-nil. The explorer
// is placed on its own tight orbit when explorer carries an address and a payload.
//
// Parameters:
//   - ranked: the ranked list, in rank order
//   - hub: aggregate hub figures, or nil
//   - explorer: explorer address and payload, or nil
//   - options: functional options overriding spacing and the random source
//
// Returns:
//   - *Layout: the positioned entities
//   - error: ErrEmptyID or ErrDuplicateID, wrapped with the offending id
func Build(ranked []entity.RankedInput, hub *entity.HubData, explorer *entity.ExplorerInput, options ...BuilderOption) (*Layout, error) {
	b := &builder{
		ringGap:        DefaultRingGap,
		baseOffset:     DefaultBaseOffset,
		explorerRadius: DefaultExplorerRadius,
		maxNodeSize:    DefaultMaxNodeSize,
	}
	for _, opt := range options {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	l := &Layout{
		Ranked:     make([]*entity.Ranked, 0, len(ranked)),
		ringGap:    b.ringGap,
		baseOffset: b.baseOffset,
	}

	seen := make(map[string]struct{}, len(ranked)+2)
	if hub != nil {
		seen[entity.HubID] = struct{}{}
	}
	if explorer.Valid() {
		seen[entity.ExplorerIDPrefix+explorer.Address] = struct{}{}
	}

	var maxMetric float64
	for _, in := range ranked {
		if in.SizeMetric > maxMetric {
			maxMetric = in.SizeMetric
		}
	}

	for i, in := range ranked {
		if in.ID == "" {
			return nil, fmt.Errorf("ranked entry %d: %w", i, ErrEmptyID)
		}
		if _, dup := seen[in.ID]; dup {
			return nil, fmt.Errorf("%q: %w", in.ID, ErrDuplicateID)
		}
		seen[in.ID] = struct{}{}

		var size float32
		if maxMetric > 0 {
			size = float32(in.SizeMetric / maxMetric * float64(b.maxNodeSize))
		}
		radius := (b.baseOffset + float32(i)) * b.ringGap
		l.Ranked = append(l.Ranked, entity.NewRanked(in, i, size, radius, b.angle()))
	}

	if hub != nil {
		l.Hub = entity.NewHub(*hub)
	}
	if explorer.Valid() {
		l.Explorer = entity.NewExplorer(*explorer, b.explorerRadius, b.angle())
	}

	return l, nil
}

// builder holds the tunables for one Build call.
type builder struct {
	ringGap        float32
	baseOffset     float32
	explorerRadius float32
	maxNodeSize    float32
	rng            *rand.Rand
}

// angle draws a uniform angle in [0, 2π).
func (b *builder) angle() float32 {
	a := float32(b.rng.Float64()) * 2 * math32.Pi
	if a >= 2*math32.Pi {
		a = 0
	}
	return a
}
