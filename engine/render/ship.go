package render

import (
	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/Chemberlein/ADA-Cosmos/engine/light"
	"github.com/Chemberlein/ADA-Cosmos/engine/lod"
	"github.com/Chemberlein/ADA-Cosmos/engine/material"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	shipScale = 1.5

	explorerLabel = "Wallet"

	thrusterColor     = 0x3366ff
	thrusterIntensity = 3
	thrusterRange     = 20

	accentEmissive  = 0x222266
	accentIntensity = 0.5
)

var labelOffset = mgl32.Vec3{0, 6, 0}

func buildExplorer(x *entity.Explorer, p Params) *Object {
	root := NewGroup(x.ID())
	switch {
	case p.Stage >= lod.StageComplete:
		ship := detailedShip(p.Resources)
		ship.Add(NewLightObject(light.NewLight(light.LightTypePoint,
			light.WithHex(thrusterColor),
			light.WithIntensity(thrusterIntensity),
			light.WithRange(thrusterRange),
			light.WithPosition(-1.5, 0, 0),
		)))
		orientShip(ship, x.Angle())
		root.Add(ship)
		root.Add(NewLabelObject(p.Resources.Labels().GetOrCreate(x.ID(), explorerLabel), labelOffset))
	case p.Stage == lod.StageBasic:
		ship := simpleShip(p.Resources)
		orientShip(ship, x.Angle())
		root.Add(ship)
	}
	return root
}

// orientShip scales the ship and yaws it onto the orbit tangent.
func orientShip(ship *Object, angle float32) {
	ship.Scale = mgl32.Vec3{shipScale, shipScale, shipScale}
	ship.Rotation = mgl32.Vec3{0, angle + math32.Pi/2, 0}
}

func simpleShip(res *resource.Resources) *Object {
	ship := NewGroup("ship")

	body := res.Material("ship-body-simple",
		material.WithHex(0xeeeeee), material.WithEmissive(0x444444, 1))
	wings := res.Material("ship-wings-simple",
		material.WithHex(0xcc5500), material.WithEmissive(0x662200, 0.5))
	engine := res.Material("ship-engine-simple",
		material.WithHex(thrusterColor), material.WithOpacity(0.9), material.WithUnlit())

	ship.Add(NewMesh("body", KindMesh, res.BoxGeometry(4, 1, 2), body))

	w := NewMesh("wings", KindMesh, res.BoxGeometry(1.5, 0.1, 4), wings)
	w.Position = mgl32.Vec3{-1, -0.2, 0}
	ship.Add(w)

	e := NewMesh("engine", KindMesh, res.CylinderGeometry(0.5, 0.7, 0.6, 8), engine)
	e.Position = mgl32.Vec3{-2.2, 0, 0}
	e.Rotation = mgl32.Vec3{0, 0, math32.Pi / 2}
	ship.Add(e)

	return ship
}

// detailedShip carries the blue accent emission on every part.
func detailedShip(res *resource.Resources) *Object {
	ship := NewGroup("ship")

	body := res.Material("ship-body",
		material.WithHex(0xeeeeee), material.WithMetallic(0.8), material.WithRoughness(0.2),
		material.WithEmissive(accentEmissive, accentIntensity))
	cockpit := res.Material("ship-cockpit",
		material.WithHex(0x88ccff), material.WithOpacity(0.9), material.WithMetallic(0.2), material.WithRoughness(0.3),
		material.WithEmissive(accentEmissive, accentIntensity))
	wings := res.Material("ship-wings",
		material.WithHex(0xcc5500), material.WithMetallic(0.5), material.WithRoughness(0.5),
		material.WithEmissive(accentEmissive, accentIntensity))
	engine := res.Material("ship-engine",
		material.WithHex(0x66aaff), material.WithOpacity(0.9),
		material.WithEmissive(accentEmissive, accentIntensity))

	ship.Add(NewMesh("body", KindMesh, res.BoxGeometry(4, 1, 2), body))

	c := NewMesh("cockpit", KindMesh, res.HemisphereGeometry(0.8, 8), cockpit)
	c.Position = mgl32.Vec3{0.5, 0.5, 0}
	c.Rotation = mgl32.Vec3{math32.Pi, 0, 0}
	ship.Add(c)

	w := NewMesh("wings", KindMesh, res.BoxGeometry(1.5, 0.1, 4), wings)
	w.Position = mgl32.Vec3{-1, -0.2, 0}
	ship.Add(w)

	e := NewMesh("engine", KindMesh, res.CylinderGeometry(0.6, 0.8, 0.8, 8), engine)
	e.Position = mgl32.Vec3{-2.2, 0, 0}
	e.Rotation = mgl32.Vec3{0, 0, math32.Pi / 2}
	ship.Add(e)

	return ship
}
