package gpu

import "github.com/rs/zerolog"

// BackendBuilderOption is a functional option for configuring a Backend.
type BackendBuilderOption func(*backendImpl)

// WithForceFallbackAdapter requests the software adapter instead of a hardware one.
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - BackendBuilderOption: option function to apply
func WithForceFallbackAdapter(force bool) BackendBuilderOption {
	return func(b *backendImpl) {
		b.forceFallbackAdapter = force
	}
}

// WithLogger sets the logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - BackendBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) BackendBuilderOption {
	return func(b *backendImpl) {
		b.logger = logger
	}
}
