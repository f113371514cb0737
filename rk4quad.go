package numint

import (
	"os"

	"github.com/ChristopherRabotin/ode"
	kitlog "github.com/go-kit/kit/log"
)

// DefaultNumSteps is the step count of the RK4 quadrature strategy when the
// options do not provide one.
const DefaultNumSteps = 1000

// RK4QuadIntegrator integrates a one dimensional integrand by solving the
// equivalent initial value problem y' = f(x) with a fixed-step RK4 scheme.
// It suits smooth unbinned integrands where the midpoint rule wastes
// evaluations; any natural binning of the integrand is ignored.
//
// RK4QuadIntegrator is an ode.Integrable: the accumulated integral is its
// single-element state vector.
type RK4QuadIntegrator struct {
	fn                 Integrand
	numSteps           int
	useIntegrandLimits bool
	xmin, xmax         float64
	step               float64
	sum                float64
	x                  []float64 // coordinate buffer, reused on every evaluation
	logger             kitlog.Logger
}

var _ ode.Integrable = (*RK4QuadIntegrator)(nil)

// NewRK4QuadIntegrator returns an RK4 quadrature integrator whose limits
// always derive from the integrand.
func NewRK4QuadIntegrator(fn Integrand, opts Options) (*RK4QuadIntegrator, error) {
	return newRK4Quad(fn, true, 0, 0, opts)
}

// NewRK4QuadIntegratorWithLimits returns an RK4 quadrature integrator over
// caller-supplied limits; SetLimits is permitted.
func NewRK4QuadIntegratorWithLimits(fn Integrand, xmin, xmax float64, opts Options) (*RK4QuadIntegrator, error) {
	return newRK4Quad(fn, false, xmin, xmax, opts)
}

func newRK4Quad(fn Integrand, useIntegrandLimits bool, xmin, xmax float64, opts Options) (*RK4QuadIntegrator, error) {
	if fn == nil {
		return nil, ErrNilIntegrand
	}
	if fn.Dimension() != 1 {
		return nil, ErrNotOneDimensional
	}
	numSteps := int(opts.Value(OptNumSteps, DefaultNumSteps))
	if numSteps < 1 {
		return nil, ErrBadBinCount
	}
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	r := &RK4QuadIntegrator{
		fn:                 fn,
		numSteps:           numSteps,
		useIntegrandLimits: useIntegrandLimits,
		xmin:               xmin,
		xmax:               xmax,
		x:                  make([]float64, 1),
		logger:             kitlog.With(klog, "subsys", "integ", "method", MethodRK4Quad),
	}
	r.CheckLimits()
	return r, nil
}

// CheckLimits reports whether the integration range is finite and properly
// ordered, re-pulling it from the integrand when the limits derive from it.
func (r *RK4QuadIntegrator) CheckLimits() bool {
	if r.useIntegrandLimits {
		r.xmin = r.fn.MinLimit(0)
		r.xmax = r.fn.MaxLimit(0)
	}
	return checkRange(r.logger, []float64{r.xmin}, []float64{r.xmax})
}

// SetLimits overrides the integration range. It fails when this integrator
// was constructed to always derive its limits from the integrand, or when
// the slices do not hold exactly one value each.
func (r *RK4QuadIntegrator) SetLimits(xmin, xmax []float64) error {
	if r.useIntegrandLimits {
		r.logger.Log("level", "error", "message", "cannot override integrand's limits")
		return ErrIntegrandLimits
	}
	if len(xmin) != 1 || len(xmax) != 1 {
		return ErrDimensionMismatch
	}
	r.xmin = xmin[0]
	r.xmax = xmax[0]
	if !r.CheckLimits() {
		return ErrBadLimits
	}
	return nil
}

// Integral solves y' = f(x) from xmin to xmax and returns y(xmax). The
// accumulator is reset on every call, so repeated calls are idempotent.
func (r *RK4QuadIntegrator) Integral() (float64, error) {
	if !r.CheckLimits() {
		return 0, ErrBadLimits
	}
	r.sum = 0
	r.step = (r.xmax - r.xmin) / float64(r.numSteps)
	if _, _, err := ode.NewRK4(r.xmin, r.step, r).Solve(); err != nil {
		return 0, err
	}
	return r.sum, nil
}

// Clone returns a new RK4 quadrature integrator bound to the given integrand
// and options. The receiver's own binding is not consulted.
func (r *RK4QuadIntegrator) Clone(fn Integrand, opts Options) (Integrator, error) {
	return NewRK4QuadIntegrator(fn, opts)
}

// GetState returns the accumulated integral as a state vector.
func (r *RK4QuadIntegrator) GetState() []float64 {
	return []float64{r.sum}
}

// SetState sets the accumulated integral from the propagated state.
func (r *RK4QuadIntegrator) SetState(t float64, s []float64) {
	r.sum = s[0]
}

// Stop returns whether the propagation has reached the upper limit. The half
// step guard keeps float drift from sneaking in an extra step at the end.
func (r *RK4QuadIntegrator) Stop(t float64) bool {
	return t >= r.xmax-r.step/2
}

// Func returns the integrand value at x; the state is ignored since the
// derivative of the running integral is f(x) itself.
func (r *RK4QuadIntegrator) Func(x float64, s []float64) []float64 {
	r.x[0] = x
	return []float64{r.fn.Evaluate(r.x)}
}
