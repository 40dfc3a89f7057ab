package render

import (
	"github.com/Chemberlein/ADA-Cosmos/engine/lod"
	"github.com/Chemberlein/ADA-Cosmos/engine/material"
)

const (
	GridSegments   = 64
	StarCount      = 1500
	StarfieldRange = 20000
)

// Grid describes the orbit rings drawn on the XZ plane.
type Grid struct {
	Rings  int
	Gap    float32
	Offset float32
}

// BuildBackground returns the orbit grid from StageBasic and the starfield from
// StageComplete. At StageInitial the group is empty.
//
// Parameters:
//   - g: ring layout; no grid is drawn when Rings is zero
//   - p: stage and cache state for this frame
//
// Returns:
//   - *Object: the background group
func BuildBackground(g Grid, p Params) *Object {
	root := NewGroup("background")
	if p.Stage >= lod.StageBasic && g.Rings > 0 {
		m := p.Resources.Material("grid",
			material.WithHex(0x444466), material.WithOpacity(0.35), material.WithUnlit())
		root.Add(NewMesh("grid", KindLines, p.Resources.PolarGrid(g.Rings, g.Gap, g.Offset, GridSegments), m))
	}
	if p.Stage >= lod.StageComplete {
		m := p.Resources.Material("stars", material.WithHex(0xffffff), material.WithUnlit())
		root.Add(NewMesh("stars", KindPoints, p.Resources.Starfield(StarCount, StarfieldRange), m))
	}
	return root
}
