package layout

import "math/rand"

const (
	DefaultRingGap        float32 = 30
	DefaultBaseOffset     float32 = 3
	DefaultExplorerRadius float32 = 2
	DefaultMaxNodeSize    float32 = 1000
)

// BuilderOption is a functional option for configuring a Build call.
type BuilderOption func(*builder)

// WithRingGap sets the radial spacing between consecutive rings.
//
// Parameters:
//   - gap: world units between rings
//
// Returns:
//   - BuilderOption: option function to apply
func WithRingGap(gap float32) BuilderOption {
	return func(b *builder) {
		b.ringGap = gap
	}
}

// WithBaseOffset sets how many empty rings precede the first ranked entity.
//
// Parameters:
//   - offset: ring count left empty around the hub
//
// Returns:
//   - BuilderOption: option function to apply
func WithBaseOffset(offset float32) BuilderOption {
	return func(b *builder) {
		b.baseOffset = offset
	}
}

// WithExplorerRadius sets the explorer's orbit radius around the origin.
//
// Parameters:
//   - radius: world units from the origin
//
// Returns:
//   - BuilderOption: option function to apply
func WithExplorerRadius(radius float32) BuilderOption {
	return func(b *builder) {
		b.explorerRadius = radius
	}
}

// WithMaxNodeSize sets the size metric given to the largest ranked entity.
//
// Parameters:
//   - size: upper bound of the normalized size metric
//
// Returns:
//   - BuilderOption: option function to apply
func WithMaxNodeSize(size float32) BuilderOption {
	return func(b *builder) {
		b.maxNodeSize = size
	}
}

// WithRand sets the random source used to draw orbit angles.
// Tests pass a seeded source to get reproducible layouts.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - BuilderOption: option function to apply
func WithRand(rng *rand.Rand) BuilderOption {
	return func(b *builder) {
		b.rng = rng
	}
}
