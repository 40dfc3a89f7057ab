package resource

import "github.com/rs/zerolog"

// ResourcesBuilderOption is a functional option for configuring Resources.
type ResourcesBuilderOption func(*Resources)

// WithUploader sets the GPU uploader. Without one, geometries stay CPU only.
//
// Parameters:
//   - u: the uploader
//
// Returns:
//   - ResourcesBuilderOption: option function to apply
func WithUploader(u Uploader) ResourcesBuilderOption {
	return func(r *Resources) {
		r.uploader = u
	}
}

// WithWorkers sets the worker count of the prewarm pool.
//
// Parameters:
//   - n: number of workers (values below 1 are raised to 1)
//
// Returns:
//   - ResourcesBuilderOption: option function to apply
func WithWorkers(n int) ResourcesBuilderOption {
	return func(r *Resources) {
		r.workers = max(n, 1)
	}
}

// WithLogger sets the logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - ResourcesBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) ResourcesBuilderOption {
	return func(r *Resources) {
		r.logger = logger
	}
}
