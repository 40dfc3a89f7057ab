// Package entity holds the closed set of node variants placed in the scene: ranked
// tokens, the hub aggregate and the explorer wallet.
package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies an Entity variant.
type Kind int

const (
	KindRanked Kind = iota
	KindHub
	KindExplorer
)

func (k Kind) String() string {
	switch k {
	case KindRanked:
		return "ranked"
	case KindHub:
		return "hub"
	case KindExplorer:
		return "explorer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	// HubID is the reserved identifier of the hub entity.
	HubID = "hub"

	// ExplorerIDPrefix prefixes the explorer's address to form its identifier.
	ExplorerIDPrefix = "explorer-"

	// HubSize is the fixed size metric of the hub.
	HubSize float32 = 28000

	// ExplorerSize is the fixed size metric of the explorer.
	ExplorerSize float32 = 200

	// DefaultHubSymbol labels the hub when its data carries no symbol.
	DefaultHubSymbol = "ADA"
)

// Entity is a node in the orbital scene.
// The set of implementations is closed: Ranked, Hub and Explorer. Consumers
// dispatch with a type switch over those three pointer types.
type Entity interface {
	// ID returns the stable identifier of the entity, unique within a layout.
	//
	// Returns:
	//   - string: the identifier
	ID() string

	// Kind returns the variant tag.
	//
	// Returns:
	//   - Kind: the variant
	Kind() Kind

	// Position returns the current world-space position.
	// Ranked and hub positions never change; the explorer's moves as it orbits.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	Position() mgl32.Vec3

	// SizeMetric returns the visual size metric. Rendered radii derive from its cube root.
	//
	// Returns:
	//   - float32: the size metric
	SizeMetric() float32

	isEntity()
}

// SameID reports whether a and b are both non-nil and share an identifier.
func SameID(a, b Entity) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}
