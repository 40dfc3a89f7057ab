package render

import (
	"fmt"
	"hash/fnv"

	"github.com/Chemberlein/ADA-Cosmos/engine/material"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const hueBuckets = 100

// TokenHue maps an id onto one of 100 hue buckets in [0, 1). The same id always
// lands in the same bucket.
func TokenHue(id string) float64 {
	return float64(hueBucket(id)) / hueBuckets
}

func hueBucket(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % hueBuckets)
}

// TokenColor returns the RGB colour of a ranked node.
func TokenColor(id string) colorful.Color {
	return colorful.Hsl(TokenHue(id)*360, 0.7, 0.5)
}

// TokenMaterial returns the shared material for the hue bucket of id. Nodes in the
// same bucket share one material.
//
// Parameters:
//   - res: the resource cache
//   - id: the node id
//
// Returns:
//   - material.Material: the cached material
func TokenMaterial(res *resource.Resources, id string) material.Material {
	c := TokenColor(id)
	return res.Material(fmt.Sprintf("token-%02d", hueBucket(id)),
		material.WithBaseColor([4]float32{float32(c.R), float32(c.G), float32(c.B), 1}),
		material.WithMetallic(0.3),
		material.WithRoughness(0.7),
	)
}
