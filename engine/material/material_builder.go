package material

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the RGBA colour of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithHex is an option builder that sets an opaque base colour from a 0xRRGGBB value.
//
// Parameters:
//   - hex: the colour as a packed 24-bit integer
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithHex(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		rgb := HexToRGB(hex)
		m.baseColor = [4]float32{rgb[0], rgb[1], rgb[2], m.baseColor[3]}
	}
}

// WithEmissive is an option builder that sets the emission colour and intensity.
//
// Parameters:
//   - hex: the emission colour as a packed 24-bit integer
//   - intensity: the emission multiplier
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive option to a material
func WithEmissive(hex uint32, intensity float32) MaterialBuilderOption {
	return func(m *material) {
		m.emissive = HexToRGB(hex)
		m.emissiveIntensity = intensity
	}
}

// WithMetallic is an option builder that sets the metallic factor of the material.
//
// Parameters:
//   - metallic: the metallic factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metallic option to a material
func WithMetallic(metallic float32) MaterialBuilderOption {
	return func(m *material) {
		m.metallic = metallic
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithOpacity is an option builder that makes the material transparent with the given alpha.
//
// Parameters:
//   - opacity: alpha in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity option to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor[3] = opacity
		m.transparent = opacity < 1
	}
}

// WithSide is an option builder that selects which faces are rendered.
//
// Parameters:
//   - side: SideFront or SideDouble
//
// Returns:
//   - MaterialBuilderOption: a function that applies the side option to a material
func WithSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.side = side
	}
}

// WithUnlit is an option builder that disables lighting for the material.
//
// Returns:
//   - MaterialBuilderOption: a function that applies the unlit option to a material
func WithUnlit() MaterialBuilderOption {
	return func(m *material) {
		m.unlit = true
	}
}

// HexToRGB unpacks a 0xRRGGBB value into normalized RGB components.
func HexToRGB(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}
