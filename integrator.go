package numint

import (
	"errors"
	"strings"
)

// Method names under which the built-in strategies register themselves.
const (
	MethodBinned  = "binned"
	MethodRK4Quad = "rk4quad"
)

// Option keys understood by the built-in strategies.
const (
	OptNumBins  = "numBins"  // per-dimension bin count of the binned strategy
	OptNumSteps = "numSteps" // step count of the RK4 quadrature strategy
)

var (
	// ErrNilIntegrand is returned when constructing an integrator without an integrand.
	ErrNilIntegrand = errors.New("integrand may not be nil")
	// ErrUnsupportedDimension is returned for integrands outside the 1 to 3 dimension range.
	ErrUnsupportedDimension = errors.New("only 1, 2 and 3 dimensional integrands are supported")
	// ErrNotOneDimensional is returned by strategies which only handle one dimension.
	ErrNotOneDimensional = errors.New("this strategy only supports one dimensional integrands")
	// ErrBadLimits is returned when the integration range is empty or not finite.
	ErrBadLimits = errors.New("integration limits must be finite with min < max")
	// ErrIntegrandLimits is returned by SetLimits on integrators which always
	// derive their limits from the integrand.
	ErrIntegrandLimits = errors.New("cannot override the integrand's limits")
	// ErrDimensionMismatch is returned when limit slices do not match the integrand dimension.
	ErrDimensionMismatch = errors.New("limits do not match the integrand dimension")
	// ErrBadBinCount is returned for a bin or step count below 1.
	ErrBadBinCount = errors.New("bin and step counts must be at least 1")
	// ErrUnknownMethod is returned when no integrator is registered under the requested name.
	ErrUnknownMethod = errors.New("no integrator registered under this method name")
)

// Integrator is implemented by all integration strategies. An instance is
// bound to exactly one integrand and one configuration; the registry realizes
// new instances by calling Clone on a stored prototype, which is itself never
// evaluated.
type Integrator interface {
	Integral() (float64, error)            // Compute the integral over the current limits.
	CheckLimits() bool                     // Report whether the current limits are usable.
	SetLimits(xmin, xmax []float64) error  // Override the limits, one value per dimension.
	Clone(fn Integrand, opts Options) (Integrator, error)
}

// Options carries named numerical settings into an integrator constructor,
// e.g. Options{OptNumBins: 50}.
type Options map[string]float64

// Value returns the option stored under key, or fallback if it is absent.
// Keys are matched case-insensitively since viper lowercases keys read from
// configuration files.
func (o Options) Value(key string, fallback float64) float64 {
	if v, found := o[key]; found {
		return v
	}
	for k, v := range o {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return fallback
}

// set stores val under key, replacing a case-insensitive match if one is
// already present so a map never carries two spellings of the same option.
func (o Options) set(key string, val float64) {
	for k := range o {
		if strings.EqualFold(k, key) {
			o[k] = val
			return
		}
	}
	o[key] = val
}
