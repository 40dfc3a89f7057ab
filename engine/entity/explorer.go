package entity

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ExplorerAngularSpeed is the explorer's self-orbit speed in radians per second.
const ExplorerAngularSpeed float32 = 3

// ExplorerInput identifies the explorer wallet and the payload it was loaded with.
type ExplorerInput struct {
	Address string
	Payload any
}

// Valid reports whether the input carries both an address and a payload.
func (in *ExplorerInput) Valid() bool {
	return in != nil && in.Address != "" && in.Payload != nil
}

// Explorer is the single wallet entity circling the hub on a tight orbit.
// Only its angle and XZ position change after construction, through Advance.
type Explorer struct {
	Address     string
	Payload     any
	OrbitRadius float32

	angle    float32
	position mgl32.Vec3
}

var _ Entity = &Explorer{}

// NewExplorer creates the explorer entity.
//
// Parameters:
//   - in: address and payload
//   - orbitRadius: distance from the origin
//   - angle: initial orbit angle in radians
//
// Returns:
//   - *Explorer: the new entity
func NewExplorer(in ExplorerInput, orbitRadius, angle float32) *Explorer {
	return &Explorer{
		Address:     in.Address,
		Payload:     in.Payload,
		OrbitRadius: orbitRadius,
		angle:       angle,
		position:    orbitPoint(orbitRadius, angle),
	}
}

// Advance moves the explorer along its orbit by ExplorerAngularSpeed * dt.
//
// Parameters:
//   - dt: elapsed time since the last advance
func (e *Explorer) Advance(dt time.Duration) {
	e.angle += ExplorerAngularSpeed * float32(dt.Seconds())
	e.position = orbitPoint(e.OrbitRadius, e.angle)
}

// Angle returns the current orbit angle in radians.
func (e *Explorer) Angle() float32 { return e.angle }

func (e *Explorer) ID() string           { return ExplorerIDPrefix + e.Address }
func (e *Explorer) Kind() Kind           { return KindExplorer }
func (e *Explorer) Position() mgl32.Vec3 { return e.position }
func (e *Explorer) SizeMetric() float32  { return ExplorerSize }
func (e *Explorer) isEntity()            {}
