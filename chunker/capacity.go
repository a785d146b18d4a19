package chunker

import (
	"fmt"

	"github.com/botirk38/semanticchunk/types"
)

// Capacity describes the valid chunk size(s) a chunker may generate.
//
// The desired size is the target size for a chunk. In most cases it also
// serves as the maximum. A chunk may still come out smaller than desired,
// because adding the next section would have pushed it over.
//
// The max size is the largest chunk size that may be generated. Setting it
// above desired means the chunk should be as close to desired as possible,
// but may grow up to max if that lets it stay at a larger semantic level.
type Capacity struct {
	desired int
	max     int
}

// NewCapacity returns a Capacity with the same desired and max size.
// Use this when a fixed size matters, for example when maximizing an
// embedding model's context window.
func NewCapacity(size int) Capacity {
	return Capacity{desired: size, max: size}
}

// NewCapacityRange returns a Capacity with separate desired and max sizes.
// Returns ErrCapacityMaxBelowDesired if max < desired.
func NewCapacityRange(desired, max int) (Capacity, error) {
	if max < desired {
		return Capacity{}, fmt.Errorf("%w: desired=%d max=%d", ErrCapacityMaxBelowDesired, desired, max)
	}
	return Capacity{desired: desired, max: max}, nil
}

// Desired returns the target chunk size.
func (c Capacity) Desired() int { return c.desired }

// Max returns the maximum chunk size.
func (c Capacity) Max() int { return c.max }

// Fit classifies a measured size against the capacity.
//
//   - TooSmall: more could still be added
//   - Fits: the size is within [desired, max]
//   - TooLarge: the size exceeds max
func (c Capacity) Fit(size int) types.Fit {
	switch {
	case size < c.desired:
		return types.TooSmall
	case size > c.max:
		return types.TooLarge
	default:
		return types.Fits
	}
}
