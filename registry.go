package numint

import "sort"

// Registry associates method names with prototype integrators and their
// default options, and realizes configured instances by cloning a prototype
// against a concrete integrand. Build one at startup and treat it read-mostly
// afterwards; it is not safe for concurrent mutation.
type Registry struct {
	entries       map[string]registryEntry
	defaultMethod string
}

type registryEntry struct {
	proto    Integrator
	defaults Options
}

// NewRegistry returns a registry pre-loaded with the built-in strategies,
// with the default method and per-method option overrides applied from the
// configuration file when one is present.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]registryEntry), defaultMethod: MethodBinned}
	r.Register(MethodBinned, new(BinIntegrator), Options{OptNumBins: DefaultNumBins})
	r.Register(MethodRK4Quad, new(RK4QuadIntegrator), Options{OptNumSteps: DefaultNumSteps})
	cfg := numintConfig()
	for method, opts := range cfg.methodOptions {
		entry, found := r.entries[method]
		if !found {
			continue
		}
		for key, val := range opts {
			entry.defaults.set(key, val)
		}
	}
	if _, found := r.entries[cfg.defaultMethod]; found {
		r.defaultMethod = cfg.defaultMethod
	}
	return r
}

// Register stores the given prototype and its default options under the
// given method name. The last registration for a name wins.
func (r *Registry) Register(method string, proto Integrator, defaults Options) {
	if defaults == nil {
		defaults = Options{}
	}
	r.entries[method] = registryEntry{proto: proto, defaults: defaults}
}

// Create clones the prototype registered under the given method name against
// the given integrand, with opts merged over the registered defaults. An
// empty method name selects the default method.
func (r *Registry) Create(method string, fn Integrand, opts Options) (Integrator, error) {
	if method == "" {
		method = r.defaultMethod
	}
	entry, found := r.entries[method]
	if !found {
		return nil, ErrUnknownMethod
	}
	merged := make(Options, len(entry.defaults)+len(opts))
	for k, v := range entry.defaults {
		merged[k] = v
	}
	for k, v := range opts {
		merged.set(k, v)
	}
	return entry.proto.Clone(fn, merged)
}

// SetDefaultMethod changes the method used by Create when no name is given.
// The method must already be registered.
func (r *Registry) SetDefaultMethod(method string) error {
	if _, found := r.entries[method]; !found {
		return ErrUnknownMethod
	}
	r.defaultMethod = method
	return nil
}

// DefaultMethod returns the method used by Create when no name is given.
func (r *Registry) DefaultMethod() string {
	return r.defaultMethod
}

// Methods returns the registered method names, sorted.
func (r *Registry) Methods() []string {
	methods := make([]string, 0, len(r.entries))
	for method := range r.entries {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}
