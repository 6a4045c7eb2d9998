// Package registry describes constructible targets: named types whose
// constructor parameters are declared as an ordered table instead of
// being discovered at runtime.
//
// A Target pairs an identifier (for example "nlog.StreamHandler") with
// its Params and a Constructor. Configuration binders fill the
// parameters by name, in declared order, and hand the result to the
// Constructor as Args. Constructors read Args by parameter name and
// fall back to their own defaults for trailing parameters that were
// not supplied.
package registry
