package entity

import (
	"github.com/Chemberlein/ADA-Cosmos/common"
	"github.com/go-gl/mathgl/mgl32"
)

// HubData carries the aggregate figures shown for the hub.
type HubData struct {
	Symbol          string
	Price           float64
	Volume          float64
	ActiveCount     int64
	SecondaryVolume float64
}

// Hub is the aggregate node fixed at the origin.
type Hub struct {
	Data HubData
}

var _ Entity = &Hub{}

// NewHub creates the hub entity. An empty symbol falls back to DefaultHubSymbol.
//
// Parameters:
//   - data: aggregate figures, copied
//
// Returns:
//   - *Hub: the new entity
func NewHub(data HubData) *Hub {
	data.Symbol = common.Coalesce(data.Symbol, DefaultHubSymbol)
	return &Hub{Data: data}
}

func (h *Hub) ID() string           { return HubID }
func (h *Hub) Kind() Kind           { return KindHub }
func (h *Hub) Position() mgl32.Vec3 { return mgl32.Vec3{} }
func (h *Hub) SizeMetric() float32  { return HubSize }
func (h *Hub) isEntity()            {}
