package numint

// Integrand defines something which can be numerically integrated over a
// finite domain, i.e. has a fixed dimension, per-dimension limits and a value
// at any coordinate vector.
// WARNING: Evaluate must be a pure function of its coordinates. The integrator
// derives its bin table once at construction and never checks purity.
type Integrand interface {
	Dimension() uint                  // Number of coordinates Evaluate expects, at least 1.
	MinLimit(dim uint) float64        // Inclusive lower bound of the given dimension.
	MaxLimit(dim uint) float64        // Inclusive upper bound of the given dimension.
	BinBoundaries(dim uint) []float64 // Natural binning of the given dimension, or nil if there is none.
	Evaluate(coords []float64) float64
}

// Func1D wraps a plain function of one variable as an Integrand without any
// natural binning.
type Func1D struct {
	F        func(x float64) float64
	Min, Max float64
}

// Dimension returns 1.
func (f Func1D) Dimension() uint { return 1 }

// MinLimit returns the lower bound.
func (f Func1D) MinLimit(dim uint) float64 { return f.Min }

// MaxLimit returns the upper bound.
func (f Func1D) MaxLimit(dim uint) float64 { return f.Max }

// BinBoundaries returns nil: a plain function has no natural binning.
func (f Func1D) BinBoundaries(dim uint) []float64 { return nil }

// Evaluate calls F with the first coordinate.
func (f Func1D) Evaluate(coords []float64) float64 { return f.F(coords[0]) }

// FuncND wraps a function of several variables as an Integrand. Bins may be
// nil altogether, or hold one boundary sequence per dimension where a nil row
// means that dimension has no natural binning. If boundaries are provided,
// the first must equal the dimension's minimum and the last its maximum.
type FuncND struct {
	F          func(coords []float64) float64
	Mins, Maxs []float64
	Bins       [][]float64
}

// Dimension returns the number of configured lower bounds.
func (f FuncND) Dimension() uint { return uint(len(f.Mins)) }

// MinLimit returns the lower bound of the given dimension.
func (f FuncND) MinLimit(dim uint) float64 { return f.Mins[dim] }

// MaxLimit returns the upper bound of the given dimension.
func (f FuncND) MaxLimit(dim uint) float64 { return f.Maxs[dim] }

// BinBoundaries returns the configured boundaries of the given dimension, if any.
func (f FuncND) BinBoundaries(dim uint) []float64 {
	if f.Bins == nil || int(dim) >= len(f.Bins) {
		return nil
	}
	return f.Bins[dim]
}

// Evaluate calls F with the given coordinates.
func (f FuncND) Evaluate(coords []float64) float64 { return f.F(coords) }
