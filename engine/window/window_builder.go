package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the initial title bar text.
//
// Parameters:
//   - title: the window title
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the requested client area size. The framebuffer size reported by
// Width and Height may differ on high-DPI displays.
//
// Parameters:
//   - width: requested width in screen coordinates
//   - height: requested height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
		w.height = height
	}
}

// WithSizeLimits bounds interactive resizing. A value <= 0 leaves that bound free.
//
// Parameters:
//   - limits: the minimum and maximum client area size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(limits SizeLimits) WindowBuilderOption {
	return func(w *engineWindow) {
		w.limits = limits
	}
}
