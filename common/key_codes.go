package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyF     = 70  // F key (ASCII), frame every node
	KeyH     = 72  // H key (ASCII), focus the hub
	KeySpace = 32  // Spacebar (ASCII), interrupt the orbit
	KeyEsc   = 256 // Escape key (GLFW)
)

// MouseButton identifies a pointer button. Values match GLFW mouse button numbers.
type MouseButton int

const (
	MouseLeft   MouseButton = 0
	MouseRight  MouseButton = 1
	MouseMiddle MouseButton = 2
)
