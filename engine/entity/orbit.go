package entity

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// orbitPoint returns the XZ-plane point at radius r and angle theta.
func orbitPoint(r, theta float32) mgl32.Vec3 {
	return mgl32.Vec3{r * math32.Cos(theta), 0, r * math32.Sin(theta)}
}
