package interp

import "sort"

// Env is the flat variable environment for one interpretation: a single
// mapping from variable name to its most recently assigned value. There
// are no nested scopes; a variable springs into existence on assignment.
type Env struct {
	bindings map[string]float64
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{bindings: make(map[string]float64)}
}

// Get looks up a variable by name.
func (e *Env) Get(name string) (float64, bool) {
	val, ok := e.bindings[name]
	return val, ok
}

// Set binds a variable, overwriting any previous binding.
func (e *Env) Set(name string, val float64) {
	e.bindings[name] = val
}

// Has checks whether a variable is bound.
func (e *Env) Has(name string) bool {
	_, ok := e.bindings[name]
	return ok
}

// Names returns all bound variable names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.bindings))
	for name := range e.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
