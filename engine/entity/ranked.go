package entity

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RankedInput is one element of the ranked list handed to the layout builder.
type RankedInput struct {
	ID         string
	Ticker     string
	SizeMetric float64
	Holders    int
	Metadata   map[string]any
}

// Ranked is a token placed on its own orbit ring. All fields are fixed once
// the layout has built it.
type Ranked struct {
	id string

	Ticker      string
	Rank        int
	Size        float32
	MarketCap   float64
	Holders     int
	Metadata    map[string]any
	OrbitRadius float32
	Angle       float32

	position mgl32.Vec3
}

var _ Entity = &Ranked{}

// NewRanked creates a Ranked entity at the given orbit.
//
// Parameters:
//   - in: the source record; its metadata map is copied
//   - rank: zero-based position in the ranked list
//   - size: the normalized visual size metric
//   - orbitRadius: distance from the origin on the XZ plane
//   - angle: orbit angle in radians
//
// Returns:
//   - *Ranked: the new entity
func NewRanked(in RankedInput, rank int, size, orbitRadius, angle float32) *Ranked {
	var meta map[string]any
	if in.Metadata != nil {
		meta = make(map[string]any, len(in.Metadata))
		for k, v := range in.Metadata {
			meta[k] = v
		}
	}
	return &Ranked{
		id:          in.ID,
		Ticker:      in.Ticker,
		Rank:        rank,
		Size:        size,
		MarketCap:   in.SizeMetric,
		Holders:     in.Holders,
		Metadata:    meta,
		OrbitRadius: orbitRadius,
		Angle:       angle,
		position:    orbitPoint(orbitRadius, angle),
	}
}

func (r *Ranked) ID() string           { return r.id }
func (r *Ranked) Kind() Kind           { return KindRanked }
func (r *Ranked) Position() mgl32.Vec3 { return r.position }
func (r *Ranked) SizeMetric() float32  { return r.Size }
func (r *Ranked) isEntity()            {}
