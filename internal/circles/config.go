package circles

// Arena half-extents (world units). The window maps x to [-1.5,1.5] and
// y to [-1,1] after aspect correction.
const (
	ArenaHalfWidth  = 1.5
	ArenaHalfHeight = 1.0
)

// Spawn defaults.
const (
	DefaultBodyCount = 21
	MinRadius        = 0.05
	RadiusRange      = 0.1  // radius = MinRadius + U*RadiusRange
	MaxSpeed         = 0.05 // per-tick displacement, not per second
	StrictRetries    = 256  // resample budget per body in strict placement
)

// SpeedEpsilon bounds the divisor when recovering a heading from a
// recombined velocity. A body that comes out of a collision at rest keeps
// speed 0 and gets a finite heading.
const SpeedEpsilon = 1e-9
