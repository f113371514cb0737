package numint

import (
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/floats"
)

// DefaultNumBins is the per-dimension bin count used when neither the
// integrand nor the options provide one.
const DefaultNumBins = 100

// BinIntegrator computes the integral of a binned distribution by summing
// f(midpoint)×width over every bin, generalized to hypervolumes in two and
// three dimensions. It is meant for integrands whose binning is itself
// meaningful (e.g. piecewise-constant models), where consistency with that
// binning matters more than quadrature order. Integrands of four or more
// dimensions are rejected at construction.
//
// A BinIntegrator is not safe for concurrent use: the coordinate buffer is
// shared across evaluations of the same instance.
type BinIntegrator struct {
	fn                 Integrand
	numBins            int
	useIntegrandLimits bool
	xmin, xmax         []float64
	binb               [][]float64
	x                  []float64 // coordinate buffer, reused on every evaluation
	logger             kitlog.Logger
}

// NewBinIntegrator returns a binned integrator whose limits always derive
// from the integrand, with the default bin count for dimensions the
// integrand does not bin.
func NewBinIntegrator(fn Integrand) (*BinIntegrator, error) {
	return newBinIntegrator(fn, true, nil, nil, Options{}, nil)
}

// NewBinIntegratorWithOptions is NewBinIntegrator with the bin count read
// from the given options.
func NewBinIntegratorWithOptions(fn Integrand, opts Options) (*BinIntegrator, error) {
	return newBinIntegrator(fn, true, nil, nil, opts, nil)
}

// NewBinIntegratorWithLimits returns a binned integrator over caller-supplied
// limits instead of the integrand's own. The bin table is synthesized
// uniformly over those limits, the integrand's natural binning is ignored,
// and SetLimits is permitted.
func NewBinIntegratorWithLimits(fn Integrand, xmin, xmax []float64, opts Options) (*BinIntegrator, error) {
	return newBinIntegrator(fn, false, xmin, xmax, opts, nil)
}

// newBinIntegrator does the work of the exported constructors. A nil logger
// selects the default logfmt logger on stdout.
func newBinIntegrator(fn Integrand, useIntegrandLimits bool, xmin, xmax []float64, opts Options, logger kitlog.Logger) (*BinIntegrator, error) {
	if fn == nil {
		return nil, ErrNilIntegrand
	}
	dim := fn.Dimension()
	if dim < 1 || dim > 3 {
		return nil, ErrUnsupportedDimension
	}
	if !useIntegrandLimits && (len(xmin) != int(dim) || len(xmax) != int(dim)) {
		return nil, ErrDimensionMismatch
	}
	numBins := int(opts.Value(OptNumBins, DefaultNumBins))
	if numBins < 1 {
		return nil, ErrBadBinCount
	}
	if logger == nil {
		klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
		logger = kitlog.With(klog, "subsys", "integ", "method", MethodBinned)
	}
	bi := &BinIntegrator{
		fn:                 fn,
		numBins:            numBins,
		useIntegrandLimits: useIntegrandLimits,
		xmin:               make([]float64, dim),
		xmax:               make([]float64, dim),
		binb:               make([][]float64, dim),
		x:                  make([]float64, dim),
		logger:             logger,
	}
	for i := uint(0); i < dim; i++ {
		if useIntegrandLimits {
			bi.xmin[i] = fn.MinLimit(i)
			bi.xmax[i] = fn.MaxLimit(i)
		} else {
			bi.xmin[i] = xmin[i]
			bi.xmax[i] = xmax[i]
		}
		var bounds []float64
		if useIntegrandLimits {
			bounds = fn.BinBoundaries(i)
		}
		if len(bounds) == 0 {
			if useIntegrandLimits {
				bi.logger.Log("level", "warning", "dim", i, "message", "integrand provides no binning definition, substituting uniform binning", "numBins", numBins)
			}
			bounds = floats.Span(make([]float64, numBins+1), bi.xmin[i], bi.xmax[i])
		} else {
			// The integrand may reuse its slice on the next call.
			bounds = append([]float64(nil), bounds...)
		}
		bi.binb[i] = bounds
	}
	bi.CheckLimits()
	return bi, nil
}

// CheckLimits reports whether the integration range is finite and properly
// ordered in every dimension. When the limits derive from the integrand they
// are re-pulled first, so integrands with parameter-dependent domains stay
// honest between calls.
func (bi *BinIntegrator) CheckLimits() bool {
	if bi.useIntegrandLimits {
		for i := uint(0); i < bi.fn.Dimension(); i++ {
			bi.xmin[i] = bi.fn.MinLimit(i)
			bi.xmax[i] = bi.fn.MaxLimit(i)
		}
	}
	return checkRange(bi.logger, bi.xmin, bi.xmax)
}

// SetLimits overrides the integration range with one bound per dimension and
// re-synthesizes the uniform bin table over the new range. It fails without
// changing any state when this integrator was constructed to always derive
// its limits from the integrand, or when the slice lengths do not match the
// integrand dimension.
func (bi *BinIntegrator) SetLimits(xmin, xmax []float64) error {
	if bi.useIntegrandLimits {
		bi.logger.Log("level", "error", "message", "cannot override integrand's limits")
		return ErrIntegrandLimits
	}
	if len(xmin) != len(bi.xmin) || len(xmax) != len(bi.xmax) {
		return ErrDimensionMismatch
	}
	copy(bi.xmin, xmin)
	copy(bi.xmax, xmax)
	for i := range bi.binb {
		bi.binb[i] = floats.Span(make([]float64, bi.numBins+1), bi.xmin[i], bi.xmax[i])
	}
	if !bi.CheckLimits() {
		return ErrBadLimits
	}
	return nil
}

// BinBoundaries returns a copy of the boundary table used for the given
// dimension, numBins+1 values when the binning was synthesized.
func (bi *BinIntegrator) BinBoundaries(dim uint) []float64 {
	return append([]float64(nil), bi.binb[dim]...)
}

// Integral computes Σ f(midpoint)×hypervolume over every bin combination.
// The integrand is evaluated exactly once per combination, so the total work
// is the product of the per-dimension bin counts. It fails if the current
// limits do not pass CheckLimits.
func (bi *BinIntegrator) Integral() (float64, error) {
	if !bi.CheckLimits() {
		return 0, ErrBadLimits
	}
	sum := 0.0
	switch bi.fn.Dimension() {
	case 1:
		binb := bi.binb[0]
		for k := 0; k < len(binb)-1; k++ {
			xlo, xhi := binb[k], binb[k+1]
			bi.x[0] = (xlo + xhi) / 2
			sum += bi.fn.Evaluate(bi.x) * (xhi - xlo)
		}
	case 2:
		binbx, binby := bi.binb[0], bi.binb[1]
		for k0 := 0; k0 < len(binbx)-1; k0++ {
			x0lo, x0hi := binbx[k0], binbx[k0+1]
			bi.x[0] = (x0lo + x0hi) / 2
			for k1 := 0; k1 < len(binby)-1; k1++ {
				x1lo, x1hi := binby[k1], binby[k1+1]
				bi.x[1] = (x1lo + x1hi) / 2
				sum += bi.fn.Evaluate(bi.x) * (x0hi - x0lo) * (x1hi - x1lo)
			}
		}
	case 3:
		binbx, binby, binbz := bi.binb[0], bi.binb[1], bi.binb[2]
		for k0 := 0; k0 < len(binbx)-1; k0++ {
			x0lo, x0hi := binbx[k0], binbx[k0+1]
			bi.x[0] = (x0lo + x0hi) / 2
			for k1 := 0; k1 < len(binby)-1; k1++ {
				x1lo, x1hi := binby[k1], binby[k1+1]
				bi.x[1] = (x1lo + x1hi) / 2
				for k2 := 0; k2 < len(binbz)-1; k2++ {
					x2lo, x2hi := binbz[k2], binbz[k2+1]
					bi.x[2] = (x2lo + x2hi) / 2
					sum += bi.fn.Evaluate(bi.x) * (x0hi - x0lo) * (x1hi - x1lo) * (x2hi - x2lo)
				}
			}
		}
	default:
		return 0, ErrUnsupportedDimension
	}
	return sum, nil
}

// Clone returns a new binned integrator bound to the given integrand and
// options. The receiver's own binding is not consulted, which lets the
// registry keep a zero value as prototype.
func (bi *BinIntegrator) Clone(fn Integrand, opts Options) (Integrator, error) {
	return NewBinIntegratorWithOptions(fn, opts)
}

// checkRange reports whether every [min, max] pair is finite and non-empty,
// logging the offending dimension otherwise.
func checkRange(logger kitlog.Logger, xmin, xmax []float64) bool {
	for i := range xmin {
		if math.IsNaN(xmin[i]) || math.IsNaN(xmax[i]) || math.IsInf(xmin[i], 0) || math.IsInf(xmax[i], 0) {
			logger.Log("level", "error", "dim", i, "message", "integration limit is not finite", "xmin", xmin[i], "xmax", xmax[i])
			return false
		}
		if xmax[i] <= xmin[i] {
			logger.Log("level", "error", "dim", i, "message", "bad range with min >= max", "xmin", xmin[i], "xmax", xmax[i])
			return false
		}
	}
	return true
}
