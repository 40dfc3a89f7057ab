package camera

import (
	"github.com/Chemberlein/ADA-Cosmos/common"
	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FocusProfile controls how far from an entity the camera settles and how far above it.
type FocusProfile struct {
	Distance     float32
	VerticalBias float32
}

var (
	// RankedProfile frames a ranked token.
	RankedProfile = FocusProfile{Distance: 150, VerticalBias: 100}

	// ExplorerProfile frames the explorer closely.
	ExplorerProfile = FocusProfile{Distance: 30, VerticalBias: 10}

	// HubProfile frames the hub. The hub sits at the origin, so the fallback pose is used.
	HubProfile = FocusProfile{Distance: 150, VerticalBias: 100}

	// FallbackOffset is the camera position used for entities at the origin or at a
	// non-finite position.
	FallbackOffset = mgl32.Vec3{200, 400, 0}
)

// ProfileFor returns the default focus profile of an entity's variant.
func ProfileFor(e entity.Entity) FocusProfile {
	switch e.(type) {
	case *entity.Explorer:
		return ExplorerProfile
	case *entity.Hub:
		return HubProfile
	case *entity.Ranked:
		return RankedProfile
	default:
		panic("camera: unknown entity variant")
	}
}

// FocusPose computes where the camera goes to frame an entity at p. The camera is
// pushed out along the ray from the origin through p so the entity is seen with
// the system behind it, then lifted by the vertical bias.
//
// Parameters:
//   - p: the entity position
//   - profile: distance and vertical bias
//
// Returns:
//   - Pose: the camera target pose
func FocusPose(p mgl32.Vec3, profile FocusProfile) Pose {
	length := p.Len()
	if !common.IsFinite(p) || length == 0 || math32.IsInf(length, 0) {
		return Pose{Position: FallbackOffset, LookAt: mgl32.Vec3{}}
	}
	ratio := 1 + profile.Distance/length
	return Pose{
		Position: mgl32.Vec3{p[0] * ratio, p[1]*ratio + profile.VerticalBias, p[2] * ratio},
		LookAt:   p,
	}
}
